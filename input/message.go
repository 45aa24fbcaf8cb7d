package input

import (
	"math/big"

	"github.com/crytic/phink/host"
	"github.com/crytic/phink/selectors"
)

// defaultOrigin is the caller account used when origin-fuzzing is disabled.
const defaultOrigin byte = 1

// Message is one successfully decoded call: a known selector, its full SCALE-encoded payload (selector
// included), the transfer value (zeroed at parse time if the selector is not payable), and the caller.
type Message struct {
	Selector selectors.Selector
	Payload  []byte
	Value    *big.Int
	Origin   host.AccountID
}

// Clone returns a deep copy of m, so a harness can hold a OneInput across a call sequence without aliasing
// the payload or value backing storage between messages or re-runs.
func (m Message) Clone() Message {
	payload := make([]byte, len(m.Payload))
	copy(payload, m.Payload)
	return Message{
		Selector: m.Selector,
		Payload:  payload,
		Value:    new(big.Int).Set(m.Value),
		Origin:   m.Origin,
	}
}

// OneInput is the full decoded sequence for one fuzzer-provided byte string, in frame order.
type OneInput struct {
	Messages []Message
}
