package scale

import "github.com/pkg/errors"

// EncodeBytes encodes b as a SCALE sequence: a compact-encoded length prefix followed by the raw bytes.
// This is the wire shape used for `Vec<u8>` fields such as contract call/instantiate data.
func EncodeBytes(b []byte) []byte {
	out := EncodeCompactUint64(uint64(len(b)))
	return append(out, b...)
}

// DecodeBytes decodes a SCALE byte sequence from the front of b. It returns the decoded bytes and the
// number of input bytes consumed (length prefix plus payload).
func DecodeBytes(b []byte) ([]byte, int, error) {
	length, prefixLen, err := DecodeCompactUint64(b)
	if err != nil {
		return nil, 0, errors.Wrap(err, "decoding byte sequence length prefix")
	}

	end := prefixLen + int(length)
	if end < prefixLen || len(b) < end {
		return nil, 0, errors.Wrap(ErrCompactTruncated, "byte sequence payload truncated")
	}

	out := make([]byte, length)
	copy(out, b[prefixLen:end])
	return out, end, nil
}
