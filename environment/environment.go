// Package environment builds the on-disk inputs the external fuzzer consumes once before a campaign starts:
// an allow-list of instrumented functions to retain, a selector dictionary, and an initial corpus seed per
// message selector.
package environment

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/selectors"
)

// allowlistPatterns names the functions whose instrumentation the external fuzzer should retain, reducing
// the compiled fuzzer's coverage map size.
var allowlistPatterns = []string{"parse_input*", "redirect_coverage*"}

// delimiterDictToken is the named dictionary entry for the frame delimiter, written only when more than one
// message may appear per input.
const delimiterDictToken = `delimiter="********"`

// BuildEnv writes the allow-list, dictionary and initial corpus seeds for db's messages under files' layout.
func BuildEnv(db *selectors.Database, cfg *config.FuzzingConfig, files config.PhinkFiles) error {
	if err := files.MakeAll(); err != nil {
		return errors.Wrap(err, "creating phink output directories")
	}

	if err := writeAllowlist(files); err != nil {
		return err
	}
	if err := writeDictionary(db, cfg, files); err != nil {
		return err
	}
	if err := writeCorpus(db, files); err != nil {
		return err
	}
	return nil
}

func writeAllowlist(files config.PhinkFiles) error {
	var lines string
	for _, pattern := range allowlistPatterns {
		lines += fmt.Sprintf("fun: %s\n", pattern)
	}
	if err := os.WriteFile(files.Path(config.AllowlistPath), []byte(lines), 0644); err != nil {
		return errors.Wrap(err, "writing allow-list file")
	}
	return nil
}

func writeDictionary(db *selectors.Database, cfg *config.FuzzingConfig, files config.PhinkFiles) error {
	var lines string
	for _, sel := range db.Messages() {
		lines += fmt.Sprintf("%q\n", sel.String())
	}
	if cfg.MaxMessagesPerExec > 1 {
		lines += delimiterDictToken + "\n"
	}
	if err := os.WriteFile(files.Path(config.DictPath), []byte(lines), 0644); err != nil {
		return errors.Wrap(err, "writing dictionary file")
	}
	return nil
}

func writeCorpus(db *selectors.Database, files config.PhinkFiles) error {
	corpusDir := files.Path(config.CorpusPath)
	if err := os.MkdirAll(corpusDir, 0755); err != nil {
		return errors.Wrap(err, "creating corpus directory")
	}

	for i, sel := range db.Messages() {
		data := append(append([]byte{}, sel[:]...), 0x00, 0x00)
		path := corpusSeedPath(corpusDir, i)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return errors.Wrapf(err, "writing corpus seed %s", path)
		}
	}
	return nil
}

func corpusSeedPath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("selector_%d.bin", index))
}
