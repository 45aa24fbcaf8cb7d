package instrumenter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// manifestFilename is the Cargo.toml-equivalent build manifest every ink! contract carries at its root.
const manifestFilename = "Cargo.toml"

// phinkFeatureBlock is appended to a manifest that has no phink feature yet, so the instrumented build can be
// compiled with --features=phink without requiring the contract author to have anticipated it.
const phinkFeatureBlock = "\n[features]\nphink = [\"ink/std\"]\n"

// minimumInkVersion is the oldest ink! release known to carry the debug_println!/selector_bytes! macros the
// injected coverage and seed snippets depend on.
var minimumInkVersion = mustParseVersion("4.2.0")

func mustParseVersion(v string) *semver.Version {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		panic(err)
	}
	return parsed
}

var featuresTablePattern = regexp.MustCompile(`(?m)^\[features\]`)
var phinkFeaturePattern = regexp.MustCompile(`(?m)^phink\s*=`)
var inkDependencyPattern = regexp.MustCompile(`(?m)^ink\s*=\s*\{[^}]*version\s*=\s*"([^"]+)"`)

// seedExtractionInkForkURL is the ink! fork the seed extractor's manifest patch points dependencies at. Its
// debug_println! output surfaces into cargo test's captured stdout, which is what ExtractSeeds scrapes —
// crates.io's ink! release does not print that way, so seed extraction does not work against it unpatched.
const seedExtractionInkForkURL = "https://github.com/kevin-valerio/ink"

// inkInlineTablePattern matches one `ink`/`ink_*` inline-table dependency declaration, e.g.
// `ink_prelude = { version = "5.0.0", default-features = false }`.
var inkInlineTablePattern = regexp.MustCompile(`(?m)^(ink(?:_[A-Za-z0-9_]+)?)\s*=\s*\{([^}]*)\}`)

// PatchManifest ensures the manifest at contractPath declares a phink feature, appending one if absent. It is
// a no-op (and reports no change) when the feature is already declared, so re-running it against an
// already-patched fork is idempotent.
func PatchManifest(contractPath string) (changed bool, err error) {
	path := filepath.Join(contractPath, manifestFilename)

	raw, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "reading manifest %s", path)
	}

	if phinkFeaturePattern.Match(raw) {
		return false, nil
	}

	var patched []byte
	if loc := featuresTablePattern.FindIndex(raw); loc != nil {
		// Declare the feature inside the existing [features] table rather than opening a second one.
		patched = append(append([]byte{}, raw[:loc[1]]...), []byte("\nphink = [\"ink/std\"]")...)
		patched = append(patched, raw[loc[1]:]...)
	} else {
		patched = append(append([]byte{}, raw...), []byte(phinkFeatureBlock)...)
	}
	if err := os.WriteFile(path, patched, 0644); err != nil {
		return false, errors.Wrapf(err, "writing patched manifest %s", path)
	}
	return true, nil
}

// RequireMinimumInkVersion reads the manifest at contractPath and verifies its declared ink! dependency
// version meets minimumInkVersion. A manifest that pins ink! by git/path rather than a crates.io version
// string is not checked and always passes.
func RequireMinimumInkVersion(contractPath string) error {
	path := filepath.Join(contractPath, manifestFilename)

	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading manifest %s", path)
	}

	match := inkDependencyPattern.FindSubmatch(raw)
	if match == nil {
		return nil
	}

	declared, err := semver.NewVersion(string(match[1]))
	if err != nil {
		return errors.Wrapf(err, "parsing declared ink! version %q", match[1])
	}

	if declared.LessThan(minimumInkVersion) {
		return errors.Errorf("contract declares ink! %s, but instrumentation requires at least %s", declared, minimumInkVersion)
	}
	return nil
}

// PatchManifestForSeedExtraction rewrites every versioned ink!/ink_* dependency in contractPath's manifest to
// pull from seedExtractionInkForkURL instead of crates.io, mirroring generator.rs's patch_toml: the fork's
// debug_println! output is what makes the injected ENCODED_SEED= markers reach cargo test's captured stdout
// at all. A dependency already pinned by git or lacking a version key (path dependencies) is left untouched.
func PatchManifestForSeedExtraction(contractPath string) error {
	path := filepath.Join(contractPath, manifestFilename)

	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading manifest %s", path)
	}

	patched := inkInlineTablePattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		sub := inkInlineTablePattern.FindSubmatch(match)
		name, body := string(sub[1]), string(sub[2])
		if !strings.Contains(body, "version") || strings.Contains(body, "git") {
			return match
		}
		return []byte(fmt.Sprintf(`%s = { git = %q, %s }`, name, seedExtractionInkForkURL, strings.TrimSpace(body)))
	})

	if err := os.WriteFile(path, patched, 0644); err != nil {
		return errors.Wrapf(err, "writing patched manifest %s", path)
	}
	return nil
}
