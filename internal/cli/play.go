package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/cadenza/internal/journal"
	"github.com/roach88/cadenza/internal/schedule"
	"github.com/roach88/cadenza/internal/score"
)

// PlayOptions holds flags for the play command.
type PlayOptions struct {
	*RootOptions
	Host        string
	SendPort    int
	ReceivePort int
	Pacing      time.Duration
	Journal     string
	Start       bool
}

// NewPlayCommand creates the play command.
func NewPlayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "play <score.yaml>",
		Short: "Load a score and serve it to the synthesis engine",
		Long: `Load a YAML score, queue its events, and run the scheduler until
interrupted.

By default delivery waits for the engine to send /start on the control
port; pass --start to begin draining immediately. The scheduler keeps
answering /pause, /resume, /reset, /new_synth and /set_synth either way.

Example:
  cadenza play composition.yaml --start
  cadenza play composition.yaml --journal session.db --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", schedule.DefaultHost, "synthesis engine host")
	cmd.Flags().IntVar(&opts.SendPort, "send-port", schedule.DefaultSendPort, "outbound OSC port")
	cmd.Flags().IntVar(&opts.ReceivePort, "receive-port", schedule.DefaultReceivePort, "inbound control port")
	cmd.Flags().DurationVar(&opts.Pacing, "pacing", schedule.DefaultPacing, "inter-message pacing delay")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to a SQLite session journal (optional)")
	cmd.Flags().BoolVar(&opts.Start, "start", false, "begin draining immediately instead of waiting for /start")

	return cmd
}

func runPlay(opts *PlayOptions, scorePath string, cmd *cobra.Command) error {
	configureLogging(opts.RootOptions)

	sc, err := score.Load(scorePath)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to load score", err)
	}

	schedOpts := []schedule.Option{}
	if opts.Journal != "" {
		j, err := journal.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()
		schedOpts = append(schedOpts, schedule.WithJournal(j))
	}

	sched, err := schedule.New(schedule.Config{
		Host:        opts.Host,
		SendPort:    opts.SendPort,
		ReceivePort: opts.ReceivePort,
		Pacing:      opts.Pacing,
	}, schedOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start scheduler", err)
	}
	defer func() {
		if shutErr := sched.Shutdown(); shutErr != nil {
			slog.Error("error shutting down scheduler", "error", shutErr)
		}
	}()

	queued, err := sc.Schedule(sched)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to expand score", err)
	}
	slog.Info("score queued", "name", sc.Name, "events", queued)

	if opts.Start {
		sched.Start()
	}

	// Run until interrupted; control traffic drives everything else.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	c := sched.Counters()
	slog.Info("shutting down", "sent", c.Sent, "processed", c.Processed, "total", c.Total)
	return nil
}

func configureLogging(opts *RootOptions) {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}
