// Package scale implements the subset of the Parity SCALE codec this fuzzer needs to speak the contract
// framework's wire format: compact ("CompactInt") variable-length unsigned integers and length-prefixed
// byte sequences. There is no SCALE library anywhere in the reference pack this module was built from, so
// this codec is hand-rolled directly against the public SCALE specification.
package scale

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Compact encoding mode tags, packed into the low 2 bits of the first byte.
const (
	compactModeSingleByte = 0b00
	compactModeTwoByte    = 0b01
	compactModeFourByte   = 0b10
	compactModeBigInt     = 0b11
)

// Compact mode value ranges.
const (
	compactSingleByteMax = 1<<6 - 1
	compactTwoByteMax    = 1<<14 - 1
	compactFourByteMax   = 1<<30 - 1
)

// ErrCompactTruncated is returned when a byte slice ends before a compact integer has been fully decoded.
var ErrCompactTruncated = errors.New("scale: compact integer truncated")

// EncodeCompactUint64 encodes v using the SCALE "compact" variable-length encoding.
func EncodeCompactUint64(v uint64) []byte {
	switch {
	case v <= compactSingleByteMax:
		return []byte{byte(v<<2) | compactModeSingleByte}
	case v <= compactTwoByteMax:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(v<<2)|compactModeTwoByte)
		return buf
	case v <= compactFourByteMax:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(v<<2)|compactModeFourByte)
		return buf
	default:
		body := minimalLittleEndianBytes(v)
		header := byte((len(body)-4)<<2) | compactModeBigInt
		return append([]byte{header}, body...)
	}
}

// DecodeCompactUint64 decodes a SCALE "compact" variable-length integer from the front of b. It returns the
// decoded value and the number of bytes consumed.
func DecodeCompactUint64(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, ErrCompactTruncated
	}

	mode := b[0] & 0b11
	switch mode {
	case compactModeSingleByte:
		return uint64(b[0] >> 2), 1, nil
	case compactModeTwoByte:
		if len(b) < 2 {
			return 0, 0, ErrCompactTruncated
		}
		return uint64(binary.LittleEndian.Uint16(b[:2]) >> 2), 2, nil
	case compactModeFourByte:
		if len(b) < 4 {
			return 0, 0, ErrCompactTruncated
		}
		return uint64(binary.LittleEndian.Uint32(b[:4]) >> 2), 4, nil
	default: // compactModeBigInt
		n := int(b[0]>>2) + 4
		if len(b) < 1+n {
			return 0, 0, ErrCompactTruncated
		}
		body := b[1 : 1+n]
		var v uint64
		for i := len(body) - 1; i >= 0; i-- {
			v = v<<8 | uint64(body[i])
		}
		return v, 1 + n, nil
	}
}

// minimalLittleEndianBytes returns the smallest little-endian byte representation of v whose length is at
// least 4 and at most 8, as required by the compact "big-integer" mode's header encoding.
func minimalLittleEndianBytes(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)

	n := 8
	for n > 4 && buf[n-1] == 0 {
		n--
	}
	return buf[:n]
}
