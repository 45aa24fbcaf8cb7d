package seedextract

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/instrumenter"
	"github.com/crytic/phink/logging"
)

// inkPreludeMarker is what PatchManifest's counterpart here checks for before patching: the snippet it
// injects needs ink_prelude's String/format re-exports, which a no_std contract must already depend on.
const inkPreludeMarker = "ink_prelude"

// Extractor forks a contract, injects the seed-print snippet into its messages, builds and runs the
// contract's own test suite, and writes every harvested call sequence as a corpus seed.
type Extractor struct {
	contractPath string
	log          *logging.Logger
}

// NewExtractor creates an Extractor targeting the contract source tree at contractPath.
func NewExtractor(contractPath string) *Extractor {
	return &Extractor{
		contractPath: contractPath,
		log:          logging.GlobalLogger.NewSubLogger("module", "seedextract"),
	}
}

// Result summarizes one extraction run.
type Result struct {
	ForkPath   string
	SeedsWritten int
}

// Run forks the contract into dest, injects the seed snippet, patches the manifest, runs `cargo test`, and
// writes every harvested seed under files' corpus directory. It returns SeedRunnerFailed (without deleting
// anything already written) if the test command itself could not be run or exited non-zero; the caller is
// expected to log that and continue the campaign without the extra seeds.
func (e *Extractor) Run(dest string, files config.PhinkFiles) (*Result, error) {
	if err := instrumenter.Fork(e.contractPath, dest); err != nil {
		return nil, errors.Wrap(err, "forking contract for seed extraction")
	}

	filesChanged, err := e.injectTree(dest)
	if err != nil {
		return nil, errors.Wrap(err, "injecting seed snippets")
	}
	e.log.Debug("seed snippets injected", logging.StructuredLogInfo{"files_changed": filesChanged})

	if err := e.ensurePrelude(dest); err != nil {
		return nil, err
	}
	if _, err := instrumenter.PatchManifest(dest); err != nil {
		return nil, errors.Wrap(err, "patching manifest for seed extraction")
	}
	if err := instrumenter.PatchManifestForSeedExtraction(dest); err != nil {
		return nil, errors.Wrap(err, "rewriting ink! dependencies to the debug-print fork")
	}

	output, err := e.runTests(dest)
	if err != nil {
		return nil, errors.Wrap(SeedRunnerFailed, err.Error())
	}

	seeds := ExtractSeeds(output)
	if err := writeSeeds(seeds, files); err != nil {
		return nil, errors.Wrap(err, "writing harvested seeds")
	}

	e.log.Debug("seed extraction complete", logging.StructuredLogInfo{"seeds_written": len(seeds)})
	return &Result{ForkPath: dest, SeedsWritten: len(seeds)}, nil
}

// injectTree rewrites every .rs file under root in place, returning the number of files actually changed.
func (e *Extractor) injectTree(root string) (int, error) {
	injector := NewInjector()
	changed := 0

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".rs" {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}

		rewritten, fileChanged := injector.Inject(string(source))
		if !fileChanged {
			return nil
		}
		if err := os.WriteFile(path, []byte(rewritten), info.Mode()); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
		changed++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// ensurePrelude verifies the forked manifest already depends on ink_prelude, which the injected snippet's
// string formatting requires.
func (e *Extractor) ensurePrelude(dest string) error {
	raw, err := os.ReadFile(filepath.Join(dest, "Cargo.toml"))
	if err != nil {
		return errors.Wrap(err, "reading manifest for prelude check")
	}
	if !strings.Contains(string(raw), inkPreludeMarker) {
		return ManifestMissingPrelude
	}
	return nil
}

// runTests runs the forked contract's test suite, showing captured output so debug_println! markers land in
// stdout, and returns the combined output regardless of exit status.
func (e *Extractor) runTests(dest string) (string, error) {
	cmd := exec.Command("cargo", "test", "--features=phink", "--", "--show-output")
	cmd.Dir = dest

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, string(out))
	}
	return string(out), nil
}

// writeSeeds persists each harvested seed as its own corpus file, named seedgen_<n>.bin so it coexists in one
// directory with the environment package's initial selector_<n>.bin seeds.
func writeSeeds(seeds [][]byte, files config.PhinkFiles) error {
	dir := files.Path(config.CorpusPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating corpus directory")
	}

	for i, seed := range seeds {
		path := filepath.Join(dir, fmt.Sprintf("seedgen_%d.bin", i))
		if err := os.WriteFile(path, seed, 0644); err != nil {
			return errors.Wrapf(err, "writing seed %s", path)
		}
	}
	return nil
}
