package environment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/host/hosttest"
	"github.com/crytic/phink/selectors"
)

func TestBuildEnvWritesAllFiles(t *testing.T) {
	db, err := selectors.NewDatabase([]byte(hosttest.FlipperMetadata))
	require.NoError(t, err)

	cfg := config.GetDefaultProjectConfig().Fuzzing
	cfg.MaxMessagesPerExec = 4

	output := t.TempDir()
	files := config.NewPhinkFiles(output)

	require.NoError(t, BuildEnv(db, &cfg, files))

	allowlist, err := os.ReadFile(files.Path(config.AllowlistPath))
	require.NoError(t, err)
	assert.Contains(t, string(allowlist), "fun: parse_input*")

	dict, err := os.ReadFile(files.Path(config.DictPath))
	require.NoError(t, err)
	assert.Contains(t, string(dict), `"ed4b9d1b"`)
	assert.Contains(t, string(dict), `delimiter=`)

	entries, err := os.ReadDir(files.Path(config.CorpusPath))
	require.NoError(t, err)
	assert.Len(t, entries, len(db.Messages()))

	seed, err := os.ReadFile(filepath.Join(files.Path(config.CorpusPath), "selector_0.bin"))
	require.NoError(t, err)
	assert.Len(t, seed, 6)
	assert.Equal(t, byte(0x00), seed[4])
	assert.Equal(t, byte(0x00), seed[5])
}

func TestBuildEnvOmitsDelimiterWhenMaxMessagesIsOne(t *testing.T) {
	db, err := selectors.NewDatabase([]byte(hosttest.FlipperMetadata))
	require.NoError(t, err)

	cfg := config.GetDefaultProjectConfig().Fuzzing
	cfg.MaxMessagesPerExec = 1

	files := config.NewPhinkFiles(t.TempDir())
	require.NoError(t, BuildEnv(db, &cfg, files))

	dict, err := os.ReadFile(files.Path(config.DictPath))
	require.NoError(t, err)
	assert.NotContains(t, string(dict), "delimiter=")
}
