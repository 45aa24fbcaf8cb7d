package cmd

import (
	"os"

	"github.com/pkg/errors"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/host"
	"github.com/crytic/phink/instrumenter"
	"github.com/crytic/phink/selectors"
)

// preparedContract bundles everything a diagnostic or campaign command needs once a contract has been
// instrumented and built: its selector database and a Host ready to Clone and Call against.
type preparedContract struct {
	db           *selectors.Database
	host         *host.Host
	wasmPath     string
	metadataPath string
}

// prepareContract instruments src into cfg's configured fork path (a no-op at the instrumentation step if
// dest is already instrumented), builds it, discovers its artefacts, and constructs the Host and selector
// database every fuzz/run/execute/harness-cover command needs.
func prepareContract(src string, cfg *config.FuzzingConfig) (*preparedContract, error) {
	ins := instrumenter.NewInstrumenter()
	result, err := ins.Run(src, cfg.InstrumentedContractPath)
	if err != nil {
		return nil, errors.Wrap(err, "instrumenting contract")
	}

	wasm, err := os.ReadFile(result.WasmPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading compiled wasm")
	}
	metadataJSON, err := os.ReadFile(result.MetadataPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading contract metadata")
	}

	db, err := selectors.NewDatabase(metadataJSON)
	if err != nil {
		return nil, errors.Wrap(err, "building selector database")
	}

	h, err := host.New(cfg, host.Options{
		MetadataPath: result.MetadataPath,
		SourcePath:   result.ForkPath,
		MetadataJSON: metadataJSON,
		Wasm:         wasm,
	})
	if err != nil {
		return nil, errors.Wrap(err, "initializing host")
	}

	return &preparedContract{db: db, host: h, wasmPath: result.WasmPath, metadataPath: result.MetadataPath}, nil
}
