package scale

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactUintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 63, 64, 16383, 16384, 1073741823, 1073741824, 1 << 40, ^uint64(0)}

	for _, v := range cases {
		encoded := EncodeCompactUint64(v)
		decoded, n, err := DecodeCompactUint64(encoded)
		require.NoError(t, err)
		assert.Equal(t, v, decoded)
		assert.Equal(t, len(encoded), n)
	}
}

func TestCompactUintKnownEncodings(t *testing.T) {
	// 0 encodes as a single zero byte.
	assert.Equal(t, []byte{0x00}, EncodeCompactUint64(0))
	// 69 (> 63) needs the two-byte mode: (69 << 2) | 0b01 = 0x115, little-endian.
	assert.Equal(t, []byte{0x15, 0x01}, EncodeCompactUint64(69))
}

func TestDecodeCompactUintTruncated(t *testing.T) {
	_, _, err := DecodeCompactUint64(nil)
	assert.ErrorIs(t, err, ErrCompactTruncated)

	_, _, err = DecodeCompactUint64([]byte{0x01}) // two-byte mode tag, only one byte present
	assert.ErrorIs(t, err, ErrCompactTruncated)
}

func TestUint128RoundTrip(t *testing.T) {
	values := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(100_000_000_000),
		new(big.Int).Lsh(big.NewInt(1), 127),
	}

	for _, v := range values {
		encoded, err := EncodeUint128(v)
		require.NoError(t, err)
		decoded, err := DecodeUint128(encoded[:])
		require.NoError(t, err)
		assert.Equal(t, 0, v.Cmp(decoded))
	}
}

func TestUint128OverflowAndNegative(t *testing.T) {
	tooBig := new(big.Int).Lsh(big.NewInt(1), 129)
	_, err := EncodeUint128(tooBig)
	assert.ErrorIs(t, err, ErrFixedWidthOverflow)

	_, err = EncodeUint128(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrFixedWidthOverflow)
}

func TestBytesRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x01, 0x02, 0x03},
		make([]byte, 1000),
	}

	for _, payload := range payloads {
		encoded := EncodeBytes(payload)
		decoded, n, err := DecodeBytes(encoded)
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
		assert.Equal(t, len(encoded), n)
	}
}

func TestDecodeBytesTruncated(t *testing.T) {
	// Claims a 10-byte payload but only provides 2.
	malformed := append(EncodeCompactUint64(10), []byte{0x01, 0x02}...)
	_, _, err := DecodeBytes(malformed)
	assert.Error(t, err)
}
