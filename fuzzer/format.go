package fuzzer

import (
	"fmt"
	"strings"

	"github.com/crytic/phink/coverage"
	"github.com/crytic/phink/host"
	"github.com/crytic/phink/input"
)

// FormatSequence renders a decoded call sequence and its responses as a human-readable report, the Go
// analogue of the teacher's executiontracer output for an EVM call trace: one block per message, gas/storage
// accounting, scrubbed debug output, and the caller account.
func FormatSequence(messages []input.Message, responses []*host.FullResponse) string {
	var b strings.Builder
	b.WriteString("Executing call sequence\n")

	for i, msg := range messages {
		fmt.Fprintf(&b, "\nmessage %d: selector=%s origin=%x value=%s\n", i, msg.Selector.String(), msg.Origin[:1], msg.Value.String())

		if i >= len(responses) {
			b.WriteString("  (not executed — sequence aborted earlier)\n")
			continue
		}
		resp := responses[i]

		fmt.Fprintf(&b, "  gas required: ref_time=%d proof_size=%d\n", resp.GasRequired.RefTime, resp.GasRequired.ProofSize)
		fmt.Fprintf(&b, "  gas consumed: ref_time=%d proof_size=%d\n", resp.GasConsumed.RefTime, resp.GasConsumed.ProofSize)
		if resp.StorageDeposit != nil {
			fmt.Fprintf(&b, "  storage deposit: %s\n", resp.StorageDeposit.String())
		}
		if resp.CallError != nil {
			fmt.Fprintf(&b, "  error: %s\n", resp.CallError)
		}

		scrubbed := coverage.Scrub(coverage.Trace(resp.DebugMessage))
		if len(scrubbed) > 0 {
			fmt.Fprintf(&b, "  debug: %s\n", string(scrubbed))
		}
	}

	return b.String()
}
