package score

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// LoadError represents a failure to load or validate a score document.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

// Load error codes.
const (
	ErrCodeNotFound = "SCORE_NOT_FOUND"
	ErrCodeSyntax   = "SCORE_SYNTAX"
	ErrCodeSchema   = "SCORE_SCHEMA"
)

// Load reads, schema-validates, and decodes a YAML score file.
//
// Validation runs against the embedded CUE schema before decoding, so a
// malformed document fails with a positioned schema error instead of a
// half-decoded struct.
func Load(path string) (*Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}
	return Parse(path, data)
}

// Parse validates and decodes score bytes. path is used for positions only.
func Parse(path string, data []byte) (*Score, error) {
	if err := validate(path, data); err != nil {
		return nil, err
	}

	var s Score
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &LoadError{Code: ErrCodeSyntax, Path: path, Message: err.Error()}
	}
	if s.Beat == "" {
		s.Beat = DefaultBeat
	}
	return &s, nil
}

func validate(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Score"))
	if err := schema.Err(); err != nil {
		// The schema is embedded; failing to compile it is a programming error.
		panic(fmt.Sprintf("score: embedded schema is invalid: %v", err))
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return &LoadError{Code: ErrCodeSyntax, Path: path, Message: err.Error()}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return &LoadError{Code: ErrCodeSyntax, Path: path, Message: cueerrors.Details(err, nil)}
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return &LoadError{Code: ErrCodeSchema, Path: path, Message: cueerrors.Details(err, nil)}
	}
	return nil
}
