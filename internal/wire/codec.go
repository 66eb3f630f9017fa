package wire

import (
	"github.com/chabad360/go-osc/osc"

	"github.com/roach88/cadenza/internal/event"
)

// EncodeEvent builds the outbound /storeEvent message for one event.
//
// Payload order: [kind, uid, target-or-empty, start, k1, v1, k2, v2, ...].
// Numbers are sent as float32 - the synth engine reads 'f' typetags; string
// values pass through unchanged.
func EncodeEvent(ev event.Event) *osc.Message {
	msg := osc.NewMessage(AddrStoreEvent)
	msg.Append(ev.Kind.String())
	msg.Append(ev.ID)
	msg.Append(ev.Target)
	msg.Append(float32(ev.Start))
	for _, p := range ev.Params {
		msg.Append(p.Key)
		msg.Append(encodeValue(p.Value))
	}
	return msg
}

// EncodeEndOfTransmission builds the sentinel message that closes a drain pass.
func EncodeEndOfTransmission() *osc.Message {
	msg := osc.NewMessage(AddrStoreEvent)
	msg.Append(EndOfTransmission)
	return msg
}

// IsEndOfTransmission reports whether msg is the drain-pass sentinel.
func IsEndOfTransmission(msg *osc.Message) bool {
	if msg.Address != AddrStoreEvent || len(msg.Arguments) != 1 {
		return false
	}
	s, ok := msg.Arguments[0].(string)
	return ok && s == EndOfTransmission
}

// DecodeStoreEvent decodes an outbound-format /storeEvent message back into
// an event. It is the inverse of EncodeEvent and rejects the sentinel.
func DecodeStoreEvent(msg *osc.Message) (event.Event, error) {
	if msg.Address != AddrStoreEvent {
		return event.Event{}, newDecodeError(ErrCodeBadAddress, msg.Address, "expected %s", AddrStoreEvent)
	}
	if IsEndOfTransmission(msg) {
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "message is the end-of-transmission sentinel")
	}
	if len(msg.Arguments) < 4 {
		return event.Event{}, newDecodeError(ErrCodeShortPayload, msg.Address, "want at least 4 arguments, got %d", len(msg.Arguments))
	}

	kindStr, ok := msg.Arguments[0].(string)
	if !ok {
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "kind must be a string")
	}
	var kind event.Kind
	switch kindStr {
	case event.KindCreate.String():
		kind = event.KindCreate
	case event.KindUpdate.String():
		kind = event.KindUpdate
	default:
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "unknown kind %q", kindStr)
	}

	id, ok := msg.Arguments[1].(string)
	if !ok {
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "uid must be a string")
	}
	target, ok := msg.Arguments[2].(string)
	if !ok {
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "target must be a string")
	}
	start, ok := toNumber(msg.Arguments[3])
	if !ok {
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "start must be numeric")
	}

	params, err := decodeParams(msg.Address, msg.Arguments[4:])
	if err != nil {
		return event.Event{}, err
	}

	return event.Event{ID: id, Kind: kind, Target: target, Start: start, Params: params}, nil
}

// DecodeNewSynth decodes an inbound /new_synth submission.
//
// Payload order: [uid, target, start, k1, v1, ...].
func DecodeNewSynth(msg *osc.Message) (event.Event, error) {
	if len(msg.Arguments) < 3 {
		return event.Event{}, newDecodeError(ErrCodeShortPayload, msg.Address, "want at least 3 arguments, got %d", len(msg.Arguments))
	}
	id, ok := msg.Arguments[0].(string)
	if !ok {
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "uid must be a string")
	}
	target, ok := msg.Arguments[1].(string)
	if !ok {
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "target must be a string")
	}
	start, ok := toNumber(msg.Arguments[2])
	if !ok {
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "start must be numeric")
	}
	params, err := decodeParams(msg.Address, msg.Arguments[3:])
	if err != nil {
		return event.Event{}, err
	}
	return event.Event{ID: id, Kind: event.KindCreate, Target: target, Start: start, Params: params}, nil
}

// DecodeSetSynth decodes an inbound /set_synth submission.
//
// Payload order: [uid, start, k1, v1, ...]. Updates carry no target.
func DecodeSetSynth(msg *osc.Message) (event.Event, error) {
	if len(msg.Arguments) < 2 {
		return event.Event{}, newDecodeError(ErrCodeShortPayload, msg.Address, "want at least 2 arguments, got %d", len(msg.Arguments))
	}
	id, ok := msg.Arguments[0].(string)
	if !ok {
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "uid must be a string")
	}
	start, ok := toNumber(msg.Arguments[1])
	if !ok {
		return event.Event{}, newDecodeError(ErrCodeBadArgument, msg.Address, "start must be numeric")
	}
	params, err := decodeParams(msg.Address, msg.Arguments[2:])
	if err != nil {
		return event.Event{}, err
	}
	return event.Event{ID: id, Kind: event.KindUpdate, Start: start, Params: params}, nil
}

// decodeParams reconstructs the parameter list by pairing consecutive
// trailing arguments. An odd count is a malformed-message condition.
func decodeParams(address string, args []any) ([]event.Param, error) {
	if len(args)%2 != 0 {
		return nil, newDecodeError(ErrCodeOddParams, address, "%d trailing arguments cannot pair into key-value entries", len(args))
	}
	if len(args) == 0 {
		return nil, nil
	}
	params := make([]event.Param, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return nil, newDecodeError(ErrCodeBadArgument, address, "parameter key at position %d must be a string", i)
		}
		val, err := decodeValue(address, args[i+1])
		if err != nil {
			return nil, err
		}
		params = append(params, event.Param{Key: key, Value: val})
	}
	return params, nil
}

func encodeValue(v event.Value) any {
	switch v := v.(type) {
	case event.Number:
		return float32(v)
	case event.String:
		return string(v)
	default:
		// Value is sealed; unreachable.
		return nil
	}
}

func decodeValue(address string, arg any) (event.Value, error) {
	if s, ok := arg.(string); ok {
		return event.String(s), nil
	}
	if n, ok := toNumber(arg); ok {
		return event.Number(n), nil
	}
	return nil, newDecodeError(ErrCodeBadArgument, address, "parameter value of type %T is not numeric or string", arg)
}

// toNumber coerces any numeric OSC argument to float64.
// Senders vary: pythonosc emits 'f', sclang emits 'i' or 'f', other peers 'd'/'h'.
func toNumber(arg any) (float64, bool) {
	switch n := arg.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
