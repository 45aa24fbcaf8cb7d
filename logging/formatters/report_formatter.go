package formatters

import (
	"regexp"
	"strings"

	"github.com/crytic/phink/logging/colors"
)

// ReportFormatter colorizes the tagged sections of a call sequence / crash report (produced by fuzzer.FormatSequence
// and bugs.Manager) for console output.
func ReportFormatter(fields map[string]any, msg string) string {
	replacements := []struct {
		re    *regexp.Regexp
		color colors.Color
	}{
		{regexp.MustCompile(callSequenceRegex), colors.BOLD},
		{regexp.MustCompile(traceRegex), colors.BOLD},
		{regexp.MustCompile(passedRegex), passedColor},
		{regexp.MustCompile(failedRegex), failedColor},
		{regexp.MustCompile(messageRegex), messageColor},
		{regexp.MustCompile(invariantRegex), invariantColor},
		{regexp.MustCompile(trappedRegex), trappedColor},
		{regexp.MustCompile(returnRegex), returnColor},
		{regexp.MustCompile(revertRegex), revertColor},
	}

	for _, r := range replacements {
		msg = r.re.ReplaceAllStringFunc(msg, func(match string) string {
			return colors.Colorize(colors.Colorize(match, r.color), colors.BOLD)
		})
	}

	return msg
}

// TestSummaryFormatter colorizes the passed/failed counters of a test summary line for console output.
func TestSummaryFormatter(fields map[string]any, msg string) string {
	re := regexp.MustCompile(testSummaryRegex)
	matches := re.FindAllString(msg, -1)
	if len(matches) < 4 {
		return msg
	}

	matches[1] = colors.Colorize(colors.Colorize(matches[1], passedColor), colors.BOLD)
	matches[3] = colors.Colorize(colors.Colorize(matches[3], failedColor), colors.BOLD)

	return strings.Join(matches, "")
}
