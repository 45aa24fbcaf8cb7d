package input

import (
	"encoding/binary"
	"math/big"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/host"
	"github.com/crytic/phink/selectors"
)

// selectorLen is the fixed width of an ink! message selector.
const selectorLen = 4

// ParseInput decodes raw fuzzer bytes into a OneInput, applying the per-frame decoding rules of the frame
// format: little-endian u32 transfer value, optional origin byte, selector-prefixed remainder, selector and
// payability lookup against db, and truncation at cfg.MaxMessagesPerExec.
func ParseInput(raw []byte, db *selectors.Database, cfg *config.FuzzingConfig) *OneInput {
	result := &OneInput{}

	for _, frame := range Frames(raw) {
		if len(result.Messages) >= cfg.MaxMessagesPerExec {
			break
		}

		msg, ok := parseFrame(frame, db, cfg.FuzzOrigin)
		if !ok {
			continue
		}
		result.Messages = append(result.Messages, msg)
	}

	return result
}

// parseFrame attempts to decode a single frame. It reports ok=false (silent discard, not fatal) when the
// frame is too short for the selected mode, or its selector is unknown to db.
func parseFrame(frame []byte, db *selectors.Database, fuzzOrigin bool) (Message, bool) {
	if len(frame) < MinFrameLen {
		return Message{}, false
	}

	value := new(big.Int).SetUint64(uint64(binary.LittleEndian.Uint32(frame[:4])))
	rest := frame[4:]

	origin := defaultOrigin
	if fuzzOrigin {
		if len(rest) < 1 {
			return Message{}, false
		}
		origin = rest[0]
		rest = rest[1:]
	}

	if len(rest) < selectorLen {
		return Message{}, false
	}

	var sel selectors.Selector
	copy(sel[:], rest[:selectorLen])

	if !db.Known(sel) {
		return Message{}, false
	}

	payload := make([]byte, len(rest))
	copy(payload, rest)

	if !db.IsPayable(sel) {
		value = big.NewInt(0)
	}

	return Message{
		Selector: sel,
		Payload:  payload,
		Value:    value,
		Origin:   host.AccountFromByte(origin),
	}, true
}
