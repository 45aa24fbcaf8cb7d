package fuzzer

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// writeLastSeed overwrites path with a human-readable record of raw and the coverage ids it produced, for
// TUI consumption. Truncate-on-write matches the shared-resource policy: the file holds only the most recent
// sample, never an append-only history.
func writeLastSeed(path string, raw []byte, ids []uint64) error {
	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = fmt.Sprintf("%d", id)
	}

	content := fmt.Sprintf("input=%s\ncoverage=[%s]\n", hex.EncodeToString(raw), strings.Join(idStrs, ","))

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, "writing last seed to %s", path)
	}
	return nil
}
