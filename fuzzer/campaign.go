package fuzzer

import (
	"os/exec"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/logging"
)

// Fuzzer supervises a fuzzing campaign: cfg.Cores independent external-driver processes, each its own
// self-contained harness instance with its own genesis snapshot (§5 — no shared mutable state between
// processes; the only cross-process resources are on-disk: corpus, crash directory, traces.cov, last-seed).
type Fuzzer struct {
	config *config.FuzzingConfig
	driver DriverCommand
	log    *logging.Logger
}

// DriverCommand builds the external AFL-family (or honggfuzz) driver invocation for worker index i, given a
// unique run ID for correlating its logs. It is injectable so tests never shell out to a real fuzzer binary.
type DriverCommand func(runID uuid.UUID, workerIndex int) *exec.Cmd

// NewFuzzer builds a Fuzzer that will launch cfg.Cores parallel driver processes via driver.
func NewFuzzer(cfg *config.FuzzingConfig, driver DriverCommand) *Fuzzer {
	return &Fuzzer{
		config: cfg,
		driver: driver,
		log:    logging.GlobalLogger.NewSubLogger("module", "fuzzer"),
	}
}

// WorkerResult captures the outcome of one worker process.
type WorkerResult struct {
	WorkerIndex int
	RunID       uuid.UUID
	Err         error
}

// Run launches cfg.Cores worker processes concurrently and blocks until every one exits, returning one
// WorkerResult per worker in worker-index order. Processes share no mutable state; a failure in one worker
// does not cancel the others.
func (f *Fuzzer) Run() []WorkerResult {
	results := make([]WorkerResult, f.config.Cores)
	var wg sync.WaitGroup

	for i := 0; i < f.config.Cores; i++ {
		wg.Add(1)
		go func(workerIndex int) {
			defer wg.Done()

			runID := uuid.New()
			cmd := f.driver(runID, workerIndex)

			f.log.Info(logging.StructuredLogInfo{
				"worker_index": workerIndex,
				"run_id":       runID.String(),
			})

			var err error
			if cmd != nil {
				err = cmd.Run()
			}
			if err != nil {
				err = errors.Wrapf(err, "worker %d (run %s)", workerIndex, runID)
			}

			results[workerIndex] = WorkerResult{WorkerIndex: workerIndex, RunID: runID, Err: err}
		}(i)
	}

	wg.Wait()
	return results
}
