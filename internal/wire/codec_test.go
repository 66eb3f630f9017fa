package wire

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/chabad360/go-osc/osc"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cadenza/internal/event"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	ev := event.Event{
		ID:     "ab12",
		Kind:   event.KindCreate,
		Target: "kick",
		Start:  1.5,
		Params: []event.Param{event.P("amp", event.Number(-7.0))},
	}

	got, err := DecodeStoreEvent(EncodeEvent(ev))
	require.NoError(t, err)

	assert.Equal(t, "ab12", got.ID)
	assert.True(t, ev.Equivalent(got), "round-trip must preserve kind, target, start, and params")
}

func TestEncodeDecode_RoundTrip_Update(t *testing.T) {
	ev := event.Event{
		ID:    "ab12",
		Kind:  event.KindUpdate,
		Start: 2.25,
		Params: []event.Param{
			event.P("freq", event.Number(440)),
			event.P("wave", event.String("saw")),
		},
	}

	got, err := DecodeStoreEvent(EncodeEvent(ev))
	require.NoError(t, err)
	assert.Equal(t, event.KindUpdate, got.Kind)
	assert.Empty(t, got.Target, "updates carry no target")
	assert.True(t, ev.Equivalent(got))
}

func TestDecodeNewSynth(t *testing.T) {
	msg := osc.NewMessage(AddrNewSynth)
	msg.Append("uid-1")
	msg.Append("perc")
	msg.Append(float32(0.5))
	msg.Append("freq")
	msg.Append(float32(333))

	ev, err := DecodeNewSynth(msg)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", ev.ID)
	assert.Equal(t, event.KindCreate, ev.Kind)
	assert.Equal(t, "perc", ev.Target)
	assert.Equal(t, 0.5, ev.Start)
	require.Len(t, ev.Params, 1)
	assert.Equal(t, event.P("freq", event.Number(333)), ev.Params[0])
}

func TestDecodeNewSynth_IntegerArguments(t *testing.T) {
	// sclang and other peers send 'i' where we expect 'f'.
	msg := osc.NewMessage(AddrNewSynth)
	msg.Append("uid-1")
	msg.Append("perc")
	msg.Append(int32(2))
	msg.Append("amp")
	msg.Append(int32(-7))

	ev, err := DecodeNewSynth(msg)
	require.NoError(t, err)
	assert.Equal(t, 2.0, ev.Start)
	assert.Equal(t, event.Number(-7), ev.Params[0].Value)
}

func TestDecodeSetSynth(t *testing.T) {
	msg := osc.NewMessage(AddrSetSynth)
	msg.Append("uid-1")
	msg.Append(float32(1.25))
	msg.Append("amp")
	msg.Append(float32(-3))

	ev, err := DecodeSetSynth(msg)
	require.NoError(t, err)
	assert.Equal(t, event.KindUpdate, ev.Kind)
	assert.Equal(t, "uid-1", ev.ID)
	assert.Equal(t, 1.25, ev.Start)
	assert.Empty(t, ev.Target)
}

func TestDecode_OddTrailingArguments(t *testing.T) {
	msg := osc.NewMessage(AddrNewSynth)
	msg.Append("uid-1")
	msg.Append("perc")
	msg.Append(float32(0.5))
	msg.Append("freq") // key with no value

	_, err := DecodeNewSynth(msg)
	require.Error(t, err)
	require.True(t, IsDecodeError(err))

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ErrCodeOddParams, de.Code)
}

func TestDecode_ShortPayload(t *testing.T) {
	msg := osc.NewMessage(AddrSetSynth)
	msg.Append("uid-1")

	_, err := DecodeSetSynth(msg)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ErrCodeShortPayload, de.Code)
}

func TestDecode_BadPositionalType(t *testing.T) {
	msg := osc.NewMessage(AddrNewSynth)
	msg.Append(float32(1)) // uid must be a string
	msg.Append("perc")
	msg.Append(float32(0.5))

	_, err := DecodeNewSynth(msg)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ErrCodeBadArgument, de.Code)
}

func TestEndOfTransmission(t *testing.T) {
	msg := EncodeEndOfTransmission()
	assert.True(t, IsEndOfTransmission(msg))

	_, err := DecodeStoreEvent(msg)
	assert.Error(t, err, "the sentinel is not a decodable event")

	ev := event.Event{ID: "x", Kind: event.KindCreate, Target: "kick", Start: 0}
	assert.False(t, IsEndOfTransmission(EncodeEvent(ev)))
}

func TestEncode_Golden(t *testing.T) {
	g := goldie.New(t)

	t.Run("create", func(t *testing.T) {
		ev := event.Event{
			ID:     "ev-1",
			Kind:   event.KindCreate,
			Target: "kick",
			Start:  1.5,
			Params: []event.Param{
				event.P("amp", event.Number(-7)),
				event.P("wave", event.String("saw")),
			},
		}
		g.Assert(t, "store_event_create", dumpMessage(EncodeEvent(ev)))
	})

	t.Run("update", func(t *testing.T) {
		ev := event.Event{
			ID:    "ev-1",
			Kind:  event.KindUpdate,
			Start: 2.25,
			Params: []event.Param{
				event.P("freq", event.Number(440)),
			},
		}
		g.Assert(t, "store_event_update", dumpMessage(EncodeEvent(ev)))
	})

	t.Run("end of transmission", func(t *testing.T) {
		g.Assert(t, "end_of_transmission", dumpMessage(EncodeEndOfTransmission()))
	})
}

// dumpMessage renders a message as stable text for golden comparison.
func dumpMessage(msg *osc.Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "address: %s\n", msg.Address)
	for i, arg := range msg.Arguments {
		fmt.Fprintf(&b, "%2d %-7T %s\n", i, arg, formatArg(arg))
	}
	return []byte(b.String())
}

func formatArg(arg any) string {
	switch v := arg.(type) {
	case string:
		return strconv.Quote(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}
