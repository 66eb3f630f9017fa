package cli

import (
	"fmt"
	"strconv"

	"github.com/chabad360/go-osc/osc"
	"github.com/spf13/cobra"

	"github.com/roach88/cadenza/internal/schedule"
	"github.com/roach88/cadenza/internal/transport"
	"github.com/roach88/cadenza/internal/wire"
)

// controlAddresses maps bare command names to scheduler control addresses.
var controlAddresses = map[string]string{
	"pause":           wire.AddrPause,
	"resume":          wire.AddrResume,
	"reset":           wire.AddrReset,
	"start":           wire.AddrStart,
	"event_processed": wire.AddrEventProcessed,
	"new_synth":       wire.AddrNewSynth,
	"set_synth":       wire.AddrSetSynth,
	"clear_events":    wire.AddrClearEvents,
}

// SendOptions holds flags for the send command.
type SendOptions struct {
	*RootOptions
	Host string
	Port int
}

// NewSendCommand creates the send command.
func NewSendCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SendOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "send <control> [args...]",
		Short: "Fire a control message at a running scheduler",
		Long: `Send one OSC control message to a scheduler's inbound port.

Controls: pause, resume, reset, start, event_processed, clear_events
(no arguments); new_synth <uid> <target> <start> [k v]...;
set_synth <uid> <start> [k v]...

Arguments that parse as numbers are sent as floats, everything else as
strings.

Example:
  cadenza send pause
  cadenza send new_synth 7f3a kick 0.5 amp -7`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", schedule.DefaultHost, "scheduler host")
	cmd.Flags().IntVar(&opts.Port, "port", schedule.DefaultReceivePort, "scheduler control port")

	return cmd
}

func runSend(opts *SendOptions, args []string, cmd *cobra.Command) error {
	address, ok := controlAddresses[args[0]]
	if !ok {
		return NewExitError(ExitFailure, fmt.Sprintf("unknown control %q", args[0]))
	}

	msg := osc.NewMessage(address)
	for _, arg := range args[1:] {
		if f, err := strconv.ParseFloat(arg, 64); err == nil {
			msg.Append(float32(f))
		} else {
			msg.Append(arg)
		}
	}

	client := transport.NewClient(opts.Host, opts.Port)
	if err := client.Send(msg); err != nil {
		return WrapExitError(ExitCommandError, "send failed", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return formatter.Success(fmt.Sprintf("sent %s to %s:%d", address, opts.Host, opts.Port))
}
