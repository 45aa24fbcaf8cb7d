package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultProjectConfigValidates(t *testing.T) {
	cfg := GetDefaultProjectConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Fuzzing.Cores)
	assert.Equal(t, 4, cfg.Fuzzing.MaxMessagesPerExec)
	assert.Equal(t, "/tmp/ink_fuzzed_1", cfg.Fuzzing.InstrumentedContractPath)
}

func TestValidateRejectsBadFields(t *testing.T) {
	t.Run("ZeroCores", func(t *testing.T) {
		cfg := GetDefaultProjectConfig()
		cfg.Fuzzing.Cores = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("ZeroMaxMessages", func(t *testing.T) {
		cfg := GetDefaultProjectConfig()
		cfg.Fuzzing.MaxMessagesPerExec = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("MalformedDeployerAddress", func(t *testing.T) {
		cfg := GetDefaultProjectConfig()
		cfg.Fuzzing.DeployerAddress = "not-hex"
		assert.Error(t, cfg.Validate())
	})

	t.Run("MalformedStorageDepositLimit", func(t *testing.T) {
		cfg := GetDefaultProjectConfig()
		cfg.Fuzzing.StorageDepositLimit = "not-a-number"
		assert.Error(t, cfg.Validate())
	})

	t.Run("MalformedConstructorPayload", func(t *testing.T) {
		cfg := GetDefaultProjectConfig()
		cfg.Fuzzing.ConstructorPayload = "zz"
		assert.Error(t, cfg.Validate())
	})

	t.Run("EmptyFuzzOutput", func(t *testing.T) {
		cfg := GetDefaultProjectConfig()
		cfg.Fuzzing.FuzzOutput = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestWriteAndReadProjectConfigRoundTrips(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "phink.config.json")

	original := GetDefaultProjectConfig()
	original.Fuzzing.Cores = 4
	original.Fuzzing.CatchTrappedContract = true

	require.NoError(t, original.WriteToFile(path))

	loaded, err := ReadProjectConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Fuzzing.Cores)
	assert.True(t, loaded.Fuzzing.CatchTrappedContract)
}

func TestDecimalHelpers(t *testing.T) {
	cfg := GetDefaultProjectConfig()

	deposit, err := cfg.Fuzzing.StorageDepositLimitDecimal()
	require.NoError(t, err)
	assert.Equal(t, "100000000000", deposit.String())

	value, err := cfg.Fuzzing.InstantiateInitialValueDecimal()
	require.NoError(t, err)
	assert.True(t, value.IsZero())

	payload, err := cfg.Fuzzing.ConstructorPayloadBytes()
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestPhinkFilesLayout(t *testing.T) {
	files := NewPhinkFiles("output")

	assert.Equal(t, filepath.Join("output", "phink", "traces.cov"), files.Path(CoverageTracePath))
	assert.Equal(t, filepath.Join("output", "phink", "allowlist.txt"), files.Path(AllowlistPath))
	assert.Equal(t, filepath.Join("output", "phink", "selectors.dict"), files.Path(DictPath))
	assert.Equal(t, filepath.Join("output", "phink", "corpus"), files.Path(CorpusPath))
	assert.Equal(t, filepath.Join("output", "phink", "logs", "afl.log"), files.Path(AFLLog))
	assert.Equal(t, filepath.Join("output", "phink", "logs", "last_seed.phink"), files.Path(LastSeed))
	assert.Equal(t, filepath.Join("output", "phink", "crashes"), files.Path(CrashesPath))
	assert.Equal(t, filepath.Join("output", "phink", "corpus.index.db"), files.Path(CorpusIndexPath))
}
