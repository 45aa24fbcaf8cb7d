package seedextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSeedsDecodesBareMarkers(t *testing.T) {
	output := "running 2 tests\n" +
		"ENCODED_SEED=fa80c2f60c616263\n" +
		"ENCODED_SEED=fa80c2f60c66757a\n" +
		"test result: ok\n"

	seeds := ExtractSeeds(output)
	assert.Len(t, seeds, 2)
	assert.Equal(t, []byte{0xfa, 0x80, 0xc2, 0xf6, 0x0c, 0x61, 0x62, 0x63}, seeds[0])
	assert.Equal(t, []byte{0xfa, 0x80, 0xc2, 0xf6, 0x0c, 0x66, 0x75, 0x7a}, seeds[1])
}

func TestExtractSeedsDecodesE2EWrappedMarkers(t *testing.T) {
	output := `DEBUG_MESSAGE_FROM_INK = "ENCODED_SEED=fa80c2f60c616263\n"`

	seeds := ExtractSeeds(output)
	assert.Len(t, seeds, 1)
	assert.Equal(t, []byte{0xfa, 0x80, 0xc2, 0xf6, 0x0c, 0x61, 0x62, 0x63}, seeds[0])
}

func TestExtractSeedsIgnoresUnrelatedLines(t *testing.T) {
	seeds := ExtractSeeds("test result: ok. 1 passed\n[==] Building cargo project\n")
	assert.Empty(t, seeds)
}

func TestDecodeHexTrimsOddTrailingNibble(t *testing.T) {
	decoded, ok := decodeHex("616263f")
	assert.True(t, ok)
	assert.Equal(t, []byte{0x61, 0x62, 0x63}, decoded)
}
