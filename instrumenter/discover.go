package instrumenter

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// targetInkDir is the directory cargo-contract places build artefacts under, relative to a contract's root.
const targetInkDir = "target/ink"

// Discover locates the single .wasm artefact produced by Build under contractPath's target/ink directory,
// along with its sibling metadata .json file. It fails with ArtefactMissing if no .wasm is found, and
// ArtefactAmbiguous if more than one is found, since a fork is expected to hold exactly one contract.
func Discover(contractPath string) (wasmPath, jsonPath string, err error) {
	dir := filepath.Join(contractPath, targetInkDir)

	matches, err := filepath.Glob(filepath.Join(dir, "*.wasm"))
	if err != nil {
		return "", "", errors.Wrapf(err, "globbing for wasm artefacts under %s", dir)
	}

	switch len(matches) {
	case 0:
		return "", "", errors.Wrapf(ArtefactMissing, "under %s", dir)
	case 1:
		// fall through
	default:
		return "", "", errors.Wrapf(ArtefactAmbiguous, "found %v under %s", matches, dir)
	}

	wasmPath = matches[0]
	jsonPath = strings.TrimSuffix(wasmPath, ".wasm") + ".json"
	return wasmPath, jsonPath, nil
}
