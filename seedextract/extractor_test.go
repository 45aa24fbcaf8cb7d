package seedextract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crytic/phink/config"
)

func TestInjectTreeRewritesRustFilesOnly(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "lib.rs"), []byte(sampleContract), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Cargo.toml"), []byte("[package]\nname=\"dummy\"\n"), 0644))

	e := NewExtractor(src)
	changed, err := e.injectTree(src)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	rewritten, err := os.ReadFile(filepath.Join(src, "lib.rs"))
	require.NoError(t, err)
	assert.True(t, AlreadyInjected(string(rewritten)))

	manifest, err := os.ReadFile(filepath.Join(src, "Cargo.toml"))
	require.NoError(t, err)
	assert.NotContains(t, string(manifest), "ENCODED_SEED")
}

func TestEnsurePreludeFailsWithoutDependency(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "Cargo.toml"), []byte("[package]\nname=\"dummy\"\n"), 0644))

	e := NewExtractor(dest)
	assert.ErrorIs(t, e.ensurePrelude(dest), ManifestMissingPrelude)
}

func TestEnsurePreludeSucceedsWithDependency(t *testing.T) {
	dest := t.TempDir()
	manifest := "[dependencies]\nink_prelude = { version = \"5.0.0\" }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dest, "Cargo.toml"), []byte(manifest), 0644))

	e := NewExtractor(dest)
	assert.NoError(t, e.ensurePrelude(dest))
}

func TestWriteSeedsWritesOneFilePerSeed(t *testing.T) {
	output := t.TempDir()
	files := config.NewPhinkFiles(output)
	require.NoError(t, files.MakeAll())

	seeds := [][]byte{{0x01, 0x02}, {0x03, 0x04, 0x05}}
	require.NoError(t, writeSeeds(seeds, files))

	entries, err := os.ReadDir(files.Path(config.CorpusPath))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	seed0, err := os.ReadFile(filepath.Join(files.Path(config.CorpusPath), "seedgen_0.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, seed0)
}
