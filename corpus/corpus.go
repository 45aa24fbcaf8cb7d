// Package corpus tracks interesting fuzzer inputs durably across campaign restarts: a coverage-novel input
// is written once as its own corpus file and recorded in a bbolt index so a later run doesn't re-derive or
// re-write it, the same restart-survives-without-a-full-rescan role the teacher's chain/state/cache package
// plays for deployed contract state.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/coverage"
	"github.com/crytic/phink/logging"
)

// Corpus durably tracks which raw fuzzer inputs have already earned a place in the on-disk corpus, and
// appends every coverage trace produced during a campaign to a single running log.
type Corpus struct {
	files config.PhinkFiles
	idx   *index
	next  atomic.Int64
	log   *logging.Logger
}

// Open opens (creating if absent) the corpus index and crash directory under files' layout, and primes the
// new-entry counter from the number of files already on disk.
func Open(files config.PhinkFiles) (*Corpus, error) {
	if err := files.MakeAll(); err != nil {
		return nil, errors.Wrap(err, "creating phink output directories")
	}

	corpusDir := files.Path(config.CorpusPath)
	if err := os.MkdirAll(corpusDir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating corpus directory")
	}
	if err := os.MkdirAll(files.Path(config.CrashesPath), 0755); err != nil {
		return nil, errors.Wrap(err, "creating crashes directory")
	}

	idx, err := openIndex(files.Path(config.CorpusIndexPath))
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		idx.close()
		return nil, errors.Wrap(err, "listing corpus directory")
	}

	c := &Corpus{
		files: files,
		idx:   idx,
		log:   logging.GlobalLogger.NewSubLogger("module", "corpus"),
	}
	c.next.Store(int64(len(entries)))
	return c, nil
}

// Close releases the underlying index handle.
func (c *Corpus) Close() error {
	return c.idx.close()
}

// ConsiderInput writes raw as a new corpus entry if, and only if, novel is true (the harness reported new
// coverage for this input) and this exact content has not already been recorded, even across restarts. It
// reports whether a new file was written.
func (c *Corpus) ConsiderInput(raw []byte, novel bool) (bool, error) {
	if !novel {
		return false, nil
	}

	hash := ContentHash(raw)
	seen, err := c.idx.seen(hash)
	if err != nil {
		return false, err
	}
	if seen {
		return false, nil
	}

	path := filepath.Join(c.files.Path(config.CorpusPath), fmt.Sprintf("corpus_%d.bin", c.next.Add(1)-1))
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return false, errors.Wrapf(err, "writing corpus entry %s", path)
	}
	if err := c.idx.mark(hash); err != nil {
		return false, err
	}

	c.log.Debug("new corpus entry", logging.StructuredLogInfo{"path": path, "bytes": len(raw)})
	return true, nil
}

// AppendTrace appends t to the campaign's running coverage trace log.
func (c *Corpus) AppendTrace(t coverage.Trace) error {
	return coverage.AppendTrace(c.files.Path(config.CoverageTracePath), t)
}
