package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestNewSubLogger verifies that a sub-logger carries over the level of its parent and tags every record with the
// provided key/value pair.
func TestNewSubLogger(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel, false)
	sub := logger.NewSubLogger("module", "bugs")

	assert.Equal(t, logger.Level(), sub.Level())
}

// TestAddAndRemoveWriter verifies that Logger.AddWriter and Logger.RemoveWriter correctly track unstructured writers
// and that duplicate writers are not added twice.
func TestAddAndRemoveWriter(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel, false)

	var buf bytes.Buffer
	logger.AddWriter(&buf, UNSTRUCTURED)
	assert.Equal(t, 1, len(logger.writers))

	// Adding the same writer again should not duplicate it.
	logger.AddWriter(&buf, UNSTRUCTURED)
	assert.Equal(t, 1, len(logger.writers))

	logger.Info("hello")
	assert.Contains(t, buf.String(), "hello")

	logger.RemoveWriter(&buf)
	assert.Equal(t, 0, len(logger.writers))
}

// TestSetLevel verifies that SetLevel updates the level returned by Level.
func TestSetLevel(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel, false)
	logger.SetLevel(zerolog.DebugLevel)
	assert.Equal(t, zerolog.DebugLevel, logger.Level())
}
