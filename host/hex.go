package host

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// decodeFixed32 hex-decodes s (with an optional 0x/0X prefix) into exactly 32 bytes.
func decodeFixed32(s string) ([32]byte, error) {
	var out [32]byte
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	raw, err := hex.DecodeString(trimmed)
	if err != nil {
		return out, errors.Wrapf(err, "decoding hex account %q", s)
	}
	if len(raw) != 32 {
		return out, errors.Errorf("account %q decodes to %d bytes, want 32", s, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}
