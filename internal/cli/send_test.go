package cli

import (
	"bytes"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/chabad360/go-osc/osc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cadenza/internal/transport"
	"github.com/roach88/cadenza/internal/wire"
)

func TestSend_UnknownControl(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSendCommand(rootOpts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"explode"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "unknown control")
}

func TestSend_DeliversControlMessage(t *testing.T) {
	received := make(chan *osc.Message, 1)
	srv, err := transport.New("127.0.0.1:0", map[string]transport.Handler{
		wire.AddrNewSynth: func(msg *osc.Message) { received <- msg },
	})
	require.NoError(t, err)
	defer srv.Shutdown()

	port := srv.LocalAddr().(*net.UDPAddr).Port

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewSendCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"new_synth", "7f3a", "kick", "0.5", "amp", "-7",
		"--port", strconv.Itoa(port)})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "sent "+wire.AddrNewSynth)

	select {
	case msg := <-received:
		// Numeric args travel as float32, the rest as strings.
		require.Len(t, msg.Arguments, 5)
		assert.Equal(t, "7f3a", msg.Arguments[0])
		assert.Equal(t, "kick", msg.Arguments[1])
		assert.Equal(t, float32(0.5), msg.Arguments[2])
		assert.Equal(t, "amp", msg.Arguments[3])
		assert.Equal(t, float32(-7), msg.Arguments[4])
	case <-time.After(2 * time.Second):
		t.Fatal("control message never arrived")
	}
}
