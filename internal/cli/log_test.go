package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cadenza/internal/event"
	"github.com/roach88/cadenza/internal/journal"
)

// seedJournal records one completed and one abandoned pass.
func seedJournal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	j, err := journal.Open(path)
	require.NoError(t, err)
	defer j.Close()

	passID, err := j.BeginPass(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, j.RecordSent(ctx, passID, 0, event.Event{
		ID: "a", Kind: event.KindCreate, Target: "kick", Start: 0.5,
		Params: []event.Param{event.P("amp", event.Number(-7))},
	}))
	require.NoError(t, j.CompletePass(ctx, passID, 1))

	_, err = j.BeginPass(ctx, 3)
	require.NoError(t, err)
	return path
}

func TestLog_ListsPasses(t *testing.T) {
	path := seedJournal(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewLogCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "pass 1")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "pass 2")
	assert.Contains(t, out, "abandoned")
}

func TestLog_PassEvents(t *testing.T) {
	path := seedJournal(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewLogCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--pass", "1"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "new")
	assert.Contains(t, out, "kick")
	assert.Contains(t, out, "start=0.500")
}

func TestLog_JSONPasses(t *testing.T) {
	path := seedJournal(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewLogCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string         `json:"status"`
		Data   []journal.Pass `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.True(t, resp.Data[0].Completed())
	assert.False(t, resp.Data[1].Completed())
}
