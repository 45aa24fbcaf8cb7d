package scale

import (
	"math/big"

	"github.com/pkg/errors"
)

// ErrFixedWidthOverflow is returned when a value does not fit the requested fixed-width encoding.
var ErrFixedWidthOverflow = errors.New("scale: value overflows fixed-width encoding")

// EncodeUint128 encodes v as a fixed 16-byte little-endian unsigned integer, the wire representation the
// contract-execution pallet uses for balances and gas/storage-deposit amounts.
func EncodeUint128(v *big.Int) ([16]byte, error) {
	var out [16]byte
	if v.Sign() < 0 {
		return out, errors.Wrap(ErrFixedWidthOverflow, "negative value")
	}

	b := v.Bytes() // big-endian, no leading zeros
	if len(b) > 16 {
		return out, errors.Wrap(ErrFixedWidthOverflow, "value exceeds 128 bits")
	}

	// Reverse big-endian bytes into the little-endian output, low byte first.
	for i, j := 0, len(b)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = b[j]
	}
	return out, nil
}

// DecodeUint128 decodes a fixed 16-byte little-endian unsigned integer into a big.Int.
func DecodeUint128(b []byte) (*big.Int, error) {
	if len(b) != 16 {
		return nil, errors.Errorf("scale: DecodeUint128 wants 16 bytes, got %d", len(b))
	}

	be := make([]byte, 16)
	for i, j := 0, 15; j >= 0; i, j = i+1, j-1 {
		be[i] = b[j]
	}
	return new(big.Int).SetBytes(be), nil
}

// EncodeUint32 encodes v as a fixed 4-byte little-endian unsigned integer.
func EncodeUint32(v uint32) [4]byte {
	return [4]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// DecodeUint32 decodes a fixed 4-byte little-endian unsigned integer.
func DecodeUint32(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, errors.Errorf("scale: DecodeUint32 wants 4 bytes, got %d", len(b))
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}
