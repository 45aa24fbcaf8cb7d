// Package bugs implements the post-condition invariant pass, contract-trap detection, and crash signalling
// the harness runs after executing one call sequence.
package bugs

import (
	"math/big"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/corpus"
	"github.com/crytic/phink/coverage"
	"github.com/crytic/phink/host"
	"github.com/crytic/phink/input"
	"github.com/crytic/phink/logging"
	"github.com/crytic/phink/selectors"
)

// Manager calls every invariant selector after a sequence executes, flags contract traps, and signals a
// crash to the external fuzz driver by aborting the process, the way the source's BugManager panics to make
// AFL register the input as a crash.
type Manager struct {
	db     *selectors.Database
	host   *host.Host
	config *config.FuzzingConfig
	files  config.PhinkFiles
	log    *logging.Logger
}

// NewManager builds a Manager over db's invariant selectors and h's live contract. Crash reproducers are
// saved under files' crashes directory; a zero-value PhinkFiles (Output() == "") disables that persistence.
func NewManager(db *selectors.Database, h *host.Host, cfg *config.FuzzingConfig, files config.PhinkFiles) *Manager {
	return &Manager{
		db:     db,
		host:   h,
		config: cfg,
		files:  files,
		log:    logging.GlobalLogger.NewSubLogger("module", "bugs"),
	}
}

// AreInvariantsPassing calls every invariant selector with zero value from origin against state, in
// registration order, stopping at the first one whose call errs. It reports the violated selector and true
// on failure.
func (m *Manager) AreInvariantsPassing(state *host.State, origin host.AccountID) (selectors.Selector, bool) {
	for _, inv := range m.db.Invariants() {
		resp, err := m.host.Call(state, origin, big.NewInt(0), inv[:])
		if err != nil || resp.CallError != nil {
			return inv, true
		}
	}
	return selectors.Selector{}, false
}

// IsContractTrapped reports whether resp represents a contract-level trap rather than a dispatch-level
// failure or success.
func IsContractTrapped(resp *host.FullResponse) bool {
	return resp.Trapped()
}

// CrashKind distinguishes the two ways a bug is detected, for logging and for the pretty-printed crash
// report.
type CrashKind string

const (
	// TrapCrash marks a crash caused by the contract under test trapping during a regular message call.
	TrapCrash CrashKind = "trapped_contract"
	// InvariantCrash marks a crash caused by a failed post-condition invariant call.
	InvariantCrash CrashKind = "invariant_violation"
)

// ReportAndAbort scrubs coverage markers out of resp's debug message, saves raw as a crash reproducer under
// kind, logs a crash report identifying kind, the offending message and selector, then aborts the process so
// the external AFL-family driver records the current input as a crash — mirroring the source's use of
// panic! to the same end.
func (m *Manager) ReportAndAbort(kind CrashKind, raw []byte, msg input.Message, resp *host.FullResponse) {
	scrubbed := coverage.Scrub(coverage.Trace(resp.DebugMessage))

	var crashPath string
	if m.files.Output() != "" {
		path, err := corpus.SaveCrash(m.files, string(kind), raw)
		if err != nil {
			m.log.Warn(logging.StructuredLogInfo{"error": err.Error()})
		} else {
			crashPath = path
		}
	}

	m.log.Error(logging.StructuredLogInfo{
		"kind":     string(kind),
		"selector": msg.Selector.String(),
		"trace":    string(scrubbed),
		"saved_to": crashPath,
	})

	panic(string(kind) + ": " + msg.Selector.String())
}
