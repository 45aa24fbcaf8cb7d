package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/coverage"
)

func TestConsiderInputSkipsNonNovel(t *testing.T) {
	files := config.NewPhinkFiles(t.TempDir())
	c, err := Open(files)
	require.NoError(t, err)
	defer c.Close()

	written, err := c.ConsiderInput([]byte("hello"), false)
	require.NoError(t, err)
	assert.False(t, written)

	entries, err := os.ReadDir(files.Path(config.CorpusPath))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConsiderInputWritesNovelInput(t *testing.T) {
	files := config.NewPhinkFiles(t.TempDir())
	c, err := Open(files)
	require.NoError(t, err)
	defer c.Close()

	written, err := c.ConsiderInput([]byte("hello"), true)
	require.NoError(t, err)
	assert.True(t, written)

	entries, err := os.ReadDir(files.Path(config.CorpusPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestConsiderInputDeduplicatesSameContent(t *testing.T) {
	files := config.NewPhinkFiles(t.TempDir())
	c, err := Open(files)
	require.NoError(t, err)
	defer c.Close()

	first, err := c.ConsiderInput([]byte("hello"), true)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := c.ConsiderInput([]byte("hello"), true)
	require.NoError(t, err)
	assert.False(t, second)

	entries, err := os.ReadDir(files.Path(config.CorpusPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestConsiderInputSurvivesRestart(t *testing.T) {
	output := t.TempDir()

	files := config.NewPhinkFiles(output)
	c, err := Open(files)
	require.NoError(t, err)
	_, err = c.ConsiderInput([]byte("hello"), true)
	require.NoError(t, err)
	require.NoError(t, c.Close())

	reopened, err := Open(files)
	require.NoError(t, err)
	defer reopened.Close()

	written, err := reopened.ConsiderInput([]byte("hello"), true)
	require.NoError(t, err)
	assert.False(t, written)
}

func TestAppendTraceWritesToCoverageLog(t *testing.T) {
	files := config.NewPhinkFiles(t.TempDir())
	c, err := Open(files)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.AppendTrace(coverage.Trace("COV=1 COV=2")))

	raw, err := os.ReadFile(files.Path(config.CoverageTracePath))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "COV=1")
}

func TestSaveCrashWritesReproducerFile(t *testing.T) {
	files := config.NewPhinkFiles(t.TempDir())

	path, err := SaveCrash(files, "trapped_contract", []byte{0x01, 0x02, 0x03})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path) || filepath.Dir(path) != "")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, raw)
}
