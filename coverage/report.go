package coverage

import "fmt"

// Report is a minimal, human-readable text summary of accumulated coverage. Rendering a full HTML report is
// explicitly out of scope; this exists only so `coverage <contract>` has something to print while that
// renderer lives outside this module.
func Report(cm *ContractCoverageMap, bound int) string {
	if cm == nil {
		return "no coverage recorded"
	}

	hit := cm.Count()
	pct := 0.0
	if bound > 0 {
		pct = float64(hit) / float64(bound+1) * 100
	}

	return fmt.Sprintf("%d/%d coverage identifiers hit (%.1f%% of [0, %d])", hit, bound+1, pct, bound)
}
