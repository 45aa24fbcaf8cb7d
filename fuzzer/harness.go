// Package fuzzer composes the coverage, host, input and bug-manager packages into the per-iteration harness
// entry point the external fuzzer calls, plus the campaign orchestration that runs many harness instances in
// parallel.
package fuzzer

import (
	"bytes"
	"math/big"
	"time"

	"github.com/crytic/phink/bugs"
	"github.com/crytic/phink/config"
	"github.com/crytic/phink/corpus"
	"github.com/crytic/phink/coverage"
	"github.com/crytic/phink/host"
	"github.com/crytic/phink/input"
	"github.com/crytic/phink/logging"
	"github.com/crytic/phink/selectors"
)

// defaultInvariantOrigin is the account every post-sequence invariant probe is called from. The source's
// OneInput carries a single shared origin for this purpose; since this port's per-frame origin decoding
// (§4.E) means a sequence can mix origins across messages, the lowest-numbered default account is used
// instead of picking one message's origin arbitrarily.
var defaultInvariantOrigin = host.AccountFromByte(1)

// Harness runs one fuzzer-provided byte string against a Host, per the §4.G algorithm: parse, clone genesis,
// advance timestamp, execute messages in order, run the invariant pass, then redirect coverage.
type Harness struct {
	host        *host.Host
	db          *selectors.Database
	bugManager  *bugs.Manager
	config      *config.FuzzingConfig
	coverageMap *coverage.Map
	files       config.PhinkFiles
	corpus      *corpus.Corpus
	log         *logging.Logger
}

// NewHarness builds a Harness over an already-constructed Host and selector database. When files designates
// an output directory, it also opens the durable corpus index so Run can persist coverage-novel inputs and
// crash reproducers across restarts; a failure to open it is logged and degrades to in-memory-only operation
// rather than failing harness construction.
func NewHarness(h *host.Host, db *selectors.Database, cfg *config.FuzzingConfig, files config.PhinkFiles) *Harness {
	log := logging.GlobalLogger.NewSubLogger("module", "fuzzer")

	var c *corpus.Corpus
	if files.Output() != "" {
		var err error
		c, err = corpus.Open(files)
		if err != nil {
			log.Warn(logging.StructuredLogInfo{"error": err.Error()})
			c = nil
		}
	}

	return &Harness{
		host:        h,
		db:          db,
		bugManager:  bugs.NewManager(db, h, cfg, files),
		config:      cfg,
		coverageMap: coverage.NewMap(),
		files:       files,
		corpus:      c,
		log:         log,
	}
}

// Close releases the harness's durable corpus index, if one was opened.
func (h *Harness) Close() error {
	if h.corpus == nil {
		return nil
	}
	return h.corpus.Close()
}

// Result is what one Run call produces for the external driver: the executed responses and the coverage
// identifiers the input reached.
type Result struct {
	Responses  []*host.FullResponse
	CoverageID []uint64
	Crashed    bool
}

// Run implements the full per-input algorithm. It is deterministic given raw and the Host's fixed genesis:
// repeated calls with the same raw produce identical responses and coverage sets (P5).
func (h *Harness) Run(raw []byte) *Result {
	decoded := input.ParseInput(raw, h.db, h.config)
	if len(decoded.Messages) == 0 {
		return &Result{}
	}

	// Clone advances the block number by one and the timestamp to slot 1 once for the whole sequence (§4.D); a
	// per-sequence variant is a reserved design point, not implemented here.
	state := h.host.Clone()

	responses := make([]*host.FullResponse, 0, len(decoded.Messages))
	var debugMessages [][]byte
	crashed := false

	for _, msg := range decoded.Messages {
		resp, err := h.host.Call(state, msg.Origin, msg.Value, msg.Payload)
		if err != nil {
			continue
		}
		responses = append(responses, resp)
		debugMessages = append(debugMessages, resp.DebugMessage)

		if bugs.IsContractTrapped(resp) {
			if h.config.CatchTrappedContract {
				h.bugManager.ReportAndAbort(bugs.TrapCrash, raw, msg, resp)
				crashed = true
			}
			break
		}
	}

	if sel, violated := h.bugManager.AreInvariantsPassing(state, defaultInvariantOrigin); violated {
		h.bugManager.ReportAndAbort(bugs.InvariantCrash, raw, input.Message{Selector: sel, Value: big.NewInt(0)}, &host.FullResponse{})
		crashed = true
	}

	trace := coverage.Trace(bytes.Join(debugMessages, []byte(" ")))
	ids := coverage.Parse(trace)
	novel := h.coverageMap.Update(h.host.ContractAddress(), h.host.CodeHash(), ids)
	coverage.Redirect(ids, coverage.DefaultRedirectBound)

	if h.files.Output() != "" {
		if err := coverage.AppendTrace(h.files.Path(config.CoverageTracePath), trace); err != nil {
			h.log.Warn(logging.StructuredLogInfo{"error": err.Error()})
		}
		if h.corpus != nil {
			if _, err := h.corpus.ConsiderInput(raw, novel); err != nil {
				h.log.Warn(logging.StructuredLogInfo{"error": err.Error()})
			}
		}
		h.maybeLogLastSeed(raw, ids)
	}

	return &Result{Responses: responses, CoverageID: ids, Crashed: crashed}
}

// maybeLogLastSeed writes the input and its coverage set to last_seed.phink with probability 1/2, derived
// from wall-clock second parity, so a TUI consumer has a recent sample without every single input incurring
// the write cost.
func (h *Harness) maybeLogLastSeed(raw []byte, ids []uint64) {
	if time.Now().Second()%2 != 0 {
		return
	}
	if err := writeLastSeed(h.files.Path(config.LastSeed), raw, ids); err != nil {
		h.log.Warn(logging.StructuredLogInfo{"error": err.Error()})
	}
}
