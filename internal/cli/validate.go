package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cadenza/internal/score"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Path   string `json:"path"`
	Voices int    `json:"voices,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <score.yaml>",
		Short: "Validate a score file without playing it",
		Long: `Validate a YAML score against the score schema without binding any
ports or queuing any events. Fast feedback while composing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, scorePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sc, err := score.Load(scorePath)
	if err != nil {
		var loadErr *score.LoadError
		if errors.As(err, &loadErr) {
			_ = formatter.Error(loadErr.Code, "score is invalid", loadErr.Message)
			return NewExitError(ExitFailure, loadErr.Error())
		}
		return WrapExitError(ExitCommandError, "failed to read score", err)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Path: scorePath, Voices: len(sc.Voices)})
	}
	return formatter.Success(fmt.Sprintf("%s: valid (%d voices)", scorePath, len(sc.Voices)))
}
