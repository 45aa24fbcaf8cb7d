package coverage

import (
	"encoding/hex"
	"os"

	"github.com/pkg/errors"
)

// AppendTrace hex-encodes t and appends it as a newline-terminated record to the trace file at path. The
// trace file is append-only across the whole campaign and shared by every harness process.
func AppendTrace(path string, t Trace) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "opening trace file")
	}
	defer f.Close()

	if _, err := f.WriteString(hex.EncodeToString(t) + "\n"); err != nil {
		return errors.Wrap(err, "appending trace record")
	}
	return nil
}

// ReadTraces reads every hex-encoded trace record from the trace file at path, in file order.
func ReadTraces(path string) ([]Trace, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading trace file")
	}

	lines := splitNonEmptyLines(string(b))
	traces := make([]Trace, 0, len(lines))
	for _, line := range lines {
		decoded, err := hex.DecodeString(line)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding trace record %q", line)
		}
		traces = append(traces, Trace(decoded))
	}
	return traces, nil
}

// splitNonEmptyLines splits s on newlines and drops empty trailing/interior lines.
func splitNonEmptyLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			if i > start {
				lines = append(lines, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
