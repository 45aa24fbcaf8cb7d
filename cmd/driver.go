package cmd

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/fuzzer"
)

// minSeedLength is the shortest input AFL-family mutation is allowed to produce, mirroring the original's
// MIN_SEED_LEN: shorter than this, a frame header can't even be decoded.
const minSeedLength = 4

// aflForkserverInitTimeout and aflDebug are fixed values the environment-variable contract (§6) hands the
// AFL-family driver on every invocation.
const (
	aflForkserverInitTimeout = "10000000"
	aflDebug                 = "1"
)

// driverConfig is serialized verbatim into PHINK_START_FUZZING_WITH_CONFIG, the way the original passes its
// whole ZiggyConfig to the spawned driver process rather than re-deriving it from flags.
type driverConfig struct {
	Config       *config.ProjectConfig `json:"config"`
	ContractPath string                `json:"contract_path"`
}

// ziggyCommand builds one `cargo ziggy <subcommand> <extraArgs...>` invocation against contractPath, carrying
// the environment-variable contract every driver process expects: the whole project config under
// PHINK_START_FUZZING_WITH_CONFIG, PHINK_FROM_ZIGGY, the AFL forkserver timeout/debug pair, and an absolute
// AFL_LLVM_ALLOWLIST path.
func ziggyCommand(cfg *config.ProjectConfig, contractPath string, files config.PhinkFiles, subcommand string, extraArgs ...string) (*exec.Cmd, error) {
	serialized, err := json.Marshal(driverConfig{Config: cfg, ContractPath: contractPath})
	if err != nil {
		return nil, err
	}

	allowlistPath, err := filepath.Abs(files.Path(config.AllowlistPath))
	if err != nil {
		return nil, err
	}

	args := append([]string{"ziggy", subcommand}, extraArgs...)
	cmd := exec.Command("cargo", args...)
	cmd.Dir = contractPath
	cmd.Env = append(cmd.Environ(),
		"PHINK_START_FUZZING_WITH_CONFIG="+string(serialized),
		"PHINK_FROM_ZIGGY=1",
		"AFL_FORKSRV_INIT_TMOUT="+aflForkserverInitTimeout,
		"AFL_DEBUG="+aflDebug,
		"AFL_LLVM_ALLOWLIST="+allowlistPath,
	)
	return cmd, nil
}

// buildDriver returns a fuzzer.DriverCommand that launches one independent `cargo ziggy fuzz` process per
// worker, each confined to jobs=1 so that campaign.go's own cfg.Cores-many-processes model (not ziggy's
// built-in --jobs=N) is what provides the parallelism.
func buildDriver(cfg *config.ProjectConfig, contractPath string, files config.PhinkFiles) (fuzzer.DriverCommand, error) {
	dictPath := files.Path(config.DictPath)

	return func(runID uuid.UUID, workerIndex int) *exec.Cmd {
		fuzzArgs := []string{
			"--jobs=1",
			fmt.Sprintf("--dict=%s", dictPath),
			fmt.Sprintf("--minlength=%d", minSeedLength),
		}
		if !cfg.Fuzzing.UseHonggfuzz {
			fuzzArgs = append(fuzzArgs, "--no-honggfuzz")
		}
		cmd, err := ziggyCommand(cfg, contractPath, files, "fuzz", fuzzArgs...)
		if err != nil {
			return nil
		}
		return cmd
	}, nil
}
