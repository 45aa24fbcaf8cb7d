package selectors

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// DefaultPhinkPrefix is the fixed label prefix that marks an ink! message as an invariant rather than a
// regular state-mutating entry point.
//
//	#[ink(message)]
//	pub fn phink_assert_abc_dot_com_cant_be_registered(&self) -> bool
const DefaultPhinkPrefix = "phink_"

// Selector is the 4-byte method selector ink! derives from a message or constructor's name.
type Selector [4]byte

// String renders the selector as a lowercase hex string, without a leading "0x".
func (s Selector) String() string {
	return hex.EncodeToString(s[:])
}

// decodeSelector parses a hex-encoded selector string (with or without a leading "0x") into a Selector.
// Returns SelectorMalformed if the decoded value isn't exactly 4 bytes.
func decodeSelector(encoded string) (Selector, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(encoded, "0x"), "0X")
	b, err := hex.DecodeString(trimmed)
	if err != nil {
		return Selector{}, errors.Wrapf(SelectorMalformed, "decoding %q: %v", encoded, err)
	}
	if len(b) != 4 {
		return Selector{}, errors.Wrapf(SelectorMalformed, "%q is %d bytes, want 4", encoded, len(b))
	}
	var sel Selector
	copy(sel[:], b)
	return sel, nil
}
