package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/crytic/phink/config"
)

// SaveCrash writes raw, the input that produced a crash, under files' crashes directory, named after kind
// and the content hash so re-running the same crashing input never overwrites a different one. It returns
// the path written.
func SaveCrash(files config.PhinkFiles, kind string, raw []byte) (string, error) {
	dir := files.Path(config.CrashesPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "creating crashes directory")
	}

	hash := ContentHash(raw)
	name := fmt.Sprintf("%s_%x.bin", kind, hash[:8])
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", errors.Wrapf(err, "writing crash reproducer %s", path)
	}
	return path, nil
}
