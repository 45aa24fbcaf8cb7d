// Package hosttest provides a canned genesis and contract fixture for input/bugs/fuzzer unit tests, so those
// packages can exercise a Host without each test file re-deriving metadata and wiring a handler by hand.
package hosttest

import (
	"math/big"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/host"
)

// FlipperMetadata is a minimal but structurally valid ink! metadata document for a flip/get contract with one
// invariant message, reused across packages that need a real selector set without shipping a real .json file.
const FlipperMetadata = `{
	"spec": {
		"constructors": [
			{"label": "new", "selector": "0x9bae9d5e", "payable": false, "args": []}
		],
		"messages": [
			{"label": "flip", "selector": "0xed4b9d1b", "payable": false, "args": []},
			{"label": "get", "selector": "0x2f865bd9", "payable": false, "args": []},
			{"label": "phink_assert_always_true", "selector": "0x633aa551", "payable": false, "args": []}
		]
	}
}`

// Fixture bundles a constructed Host with the metadata and wasm it was built from, for tests that need to
// inspect both the live host and its inputs.
type Fixture struct {
	Host         *host.Host
	MetadataJSON []byte
	Wasm         []byte
}

// Handler is the host.MessageHandler a Fixture's Host dispatches every call to; tests supply one to drive
// specific coverage-trace or bug-manager scenarios.
type Handler = host.MessageHandler

// New builds a Fixture around the flipper-shaped metadata with the given handler, defaulting to
// host.NullHandler when handler is nil.
func New(handler Handler) (*Fixture, error) {
	if handler == nil {
		handler = host.NullHandler
	}

	cfg := config.GetDefaultProjectConfig().Fuzzing
	wasm := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	h, err := host.New(&cfg, host.Options{
		MetadataJSON: []byte(FlipperMetadata),
		Wasm:         wasm,
		Handler:      handler,
	})
	if err != nil {
		return nil, err
	}

	return &Fixture{Host: h, MetadataJSON: []byte(FlipperMetadata), Wasm: wasm}, nil
}

// TrappingHandler always returns a FullResponse reporting a contract trap, for bug-manager and harness tests
// that need to exercise the abort-on-trap path.
func TrappingHandler(state *host.State, contract, who host.AccountID, value *big.Int, payload []byte, gas host.Weight) (*host.FullResponse, error) {
	return &host.FullResponse{CallError: host.ContractTrapped}, nil
}
