package instrumenter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/crytic/phink/logging"
)

// Instrumenter ties the fork, visit, manifest-patch, build and artefact-discovery steps into the single
// pipeline a caller invokes once per contract path: Fork the original tree aside, Instrument every Rust
// source file in the fork in place, Build the fork, then Discover its produced artefacts.
type Instrumenter struct {
	log *logging.Logger
}

// NewInstrumenter constructs an Instrumenter logging under the "instrumenter" module.
func NewInstrumenter() *Instrumenter {
	return &Instrumenter{log: logging.GlobalLogger.NewSubLogger("module", "instrumenter")}
}

// Result describes the outcome of a successful Run.
type Result struct {
	ForkPath         string
	WasmPath         string
	MetadataPath     string
	FilesChanged     int
	StatementsMarked uint64
}

// Run forks src into dest, instruments every .rs file found in the fork, patches its manifest, builds it, and
// discovers the resulting artefacts. Running Run again against an already-instrumented dest is a no-op at the
// instrumentation step (AlreadyInstrumented short-circuits every file), but always re-runs Build.
func (ins *Instrumenter) Run(src, dest string) (*Result, error) {
	if err := Fork(src, dest); err != nil {
		return nil, errors.Wrap(err, "forking contract tree")
	}

	if err := RequireMinimumInkVersion(dest); err != nil {
		return nil, errors.Wrap(err, "checking ink! dependency version")
	}

	visitor := NewVisitor()
	filesChanged, err := instrumentTree(dest, visitor)
	if err != nil {
		return nil, errors.Wrap(err, "instrumenting forked contract tree")
	}
	ins.log.Debug("instrumentation complete", logging.StructuredLogInfo{
		"files_changed":     filesChanged,
		"statements_marked": visitor.NextID(),
	})

	manifestChanged, err := PatchManifest(dest)
	if err != nil {
		return nil, errors.Wrap(err, "patching manifest")
	}
	if manifestChanged {
		ins.log.Debug("patched manifest with phink feature")
	}

	if err := Build(dest); err != nil {
		return nil, errors.Wrap(err, "building instrumented contract")
	}

	wasmPath, jsonPath, err := Discover(dest)
	if err != nil {
		return nil, errors.Wrap(err, "discovering build artefacts")
	}

	return &Result{
		ForkPath:         dest,
		WasmPath:         wasmPath,
		MetadataPath:     jsonPath,
		FilesChanged:     filesChanged,
		StatementsMarked: visitor.NextID(),
	}, nil
}

// instrumentTree walks root for Rust source files and rewrites each in place through visitor, sharing its
// counter across every file in source-tree-walk order so statement ids are assigned consistently with how a
// single AST visitor would traverse one compilation unit at a time.
func instrumentTree(root string, visitor *Visitor) (int, error) {
	filesChanged := 0

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %s", path)
		}
		if info.IsDir() || !strings.HasSuffix(path, ".rs") {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}

		rewritten, changed := visitor.Instrument(string(raw))
		if !changed {
			return nil
		}

		if err := os.WriteFile(path, []byte(rewritten), info.Mode()); err != nil {
			return errors.Wrapf(err, "writing instrumented %s", path)
		}
		filesChanged++
		return nil
	})
	if err != nil {
		return filesChanged, err
	}
	return filesChanged, nil
}
