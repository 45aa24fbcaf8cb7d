package input

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/host/hosttest"
	"github.com/crytic/phink/selectors"
)

func mustDecodeSelector(s string) []byte {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		panic(err)
	}
	return raw
}

func testDatabase(t *testing.T) *selectors.Database {
	db, err := selectors.NewDatabase([]byte(hosttest.FlipperMetadata))
	require.NoError(t, err)
	return db
}

func frame(value uint32, selector string, payload []byte) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, value)
	buf = append(buf, mustDecodeSelector(selector)...)
	return append(buf, payload...)
}

func TestFramesSplitsOnDelimiterAndDropsShortFrames(t *testing.T) {
	raw := bytes.Join([][]byte{{1, 2, 3, 4}, {0x01}, {9, 9, 9, 9, 9}}, delimiter)
	frames := Frames(raw)
	require.Len(t, frames, 2)
	assert.Equal(t, []byte{1, 2, 3, 4}, frames[0])
	assert.Equal(t, []byte{9, 9, 9, 9, 9}, frames[1])
}

func TestParseInputDecodesKnownSelector(t *testing.T) {
	db := testDatabase(t)
	f := frame(42, "0xed4b9d1b", nil)

	result := ParseInput(f, db, defaultTestConfig())
	require.Len(t, result.Messages, 1)
	assert.Equal(t, uint64(0), result.Messages[0].Value.Uint64()) // flip is non-payable, so its value is zeroed
}

func TestParseInputDiscardsUnknownSelector(t *testing.T) {
	db := testDatabase(t)
	f := frame(42, "0xdeadbeef", nil)

	result := ParseInput(f, db, defaultTestConfig())
	assert.Empty(t, result.Messages)
}

func TestParseInputZeroesNonPayableValue(t *testing.T) {
	db := testDatabase(t)
	f := frame(99, "0xed4b9d1b", nil) // flip is non-payable

	result := ParseInput(f, db, defaultTestConfig())
	require.Len(t, result.Messages, 1)
	assert.Equal(t, uint64(0), result.Messages[0].Value.Uint64())
}

func TestParseInputRespectsOriginByte(t *testing.T) {
	db := testDatabase(t)
	buf := []byte{1, 0, 0, 0, 7} // value=1, origin=7
	buf = append(buf, mustDecodeSelector("0xed4b9d1b")...)

	cfg := defaultTestConfig()
	cfg.FuzzOrigin = true

	result := ParseInput(buf, db, cfg)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, byte(7), result.Messages[0].Origin[0])
}

func TestParseInputTruncatesAtMaxMessages(t *testing.T) {
	db := testDatabase(t)
	one := frame(1, "0xed4b9d1b", nil)
	raw := bytes.Join([][]byte{one, one, one}, delimiter)

	cfg := defaultTestConfig()
	cfg.MaxMessagesPerExec = 2

	result := ParseInput(raw, db, cfg)
	assert.Len(t, result.Messages, 2)
}

func TestMessageCloneDoesNotAliasPayload(t *testing.T) {
	db := testDatabase(t)
	f := frame(1, "0xed4b9d1b", []byte{0xAA})
	result := ParseInput(f, db, defaultTestConfig())
	require.Len(t, result.Messages, 1)

	clone := result.Messages[0].Clone()
	clone.Payload[0] = 0xFF
	assert.NotEqual(t, clone.Payload[0], result.Messages[0].Payload[0])
}

func defaultTestConfig() *config.FuzzingConfig {
	cfg := config.GetDefaultProjectConfig().Fuzzing
	return &cfg
}
