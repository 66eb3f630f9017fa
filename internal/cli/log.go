package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cadenza/internal/journal"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Pass int64
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log <journal.db>",
		Short: "Inspect a session journal",
		Long: `List the drain passes recorded in a session journal, or the events of
one pass with --pass. Abandoned passes (reset mid-pass) show as such.

Example:
  cadenza log session.db
  cadenza log session.db --pass 2 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Pass, "pass", 0, "show the events of one pass")

	return cmd
}

func runLog(opts *LogOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	j, err := journal.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	ctx := cmd.Context()

	if opts.Pass != 0 {
		events, err := j.Events(ctx, opts.Pass)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		if opts.Format == "json" {
			return formatter.Success(events)
		}
		for _, e := range events {
			fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-4s %-12s start=%.3f  %s\n",
				e.Position, e.Kind, e.Target, e.Start, e.Params)
		}
		return nil
	}

	passes, err := j.Passes(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	if opts.Format == "json" {
		return formatter.Success(passes)
	}
	for _, p := range passes {
		status := "abandoned"
		if p.Completed() {
			status = fmt.Sprintf("completed %s", p.CompletedAt)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pass %d  started %s  planned=%d sent=%d  %s\n",
			p.ID, p.StartedAt, p.Planned, p.Sent, status)
	}
	return nil
}
