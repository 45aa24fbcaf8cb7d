package formatters

import "github.com/crytic/phink/logging/colors"

// The regexes below are used to find and colorize tagged sections of a call sequence or crash report for console
// output.
const (
	// callSequenceRegex finds [Call Sequence] in a crash report
	callSequenceRegex = `(\[Call Sequence\])`
	// traceRegex finds [Trace] in a crash report
	traceRegex = `(\[Trace\])`
	// passedRegex finds [PASSED] in a report
	passedRegex = `(\[PASSED\])`
	// failedRegex finds [FAILED] in a report
	failedRegex = `(\[FAILED\])`
	// messageRegex finds [message] in a trace
	messageRegex = `(\[message\])`
	// invariantRegex finds [invariant] in a trace
	invariantRegex = `(\[invariant\])`
	// trappedRegex finds [trapped] in a trace
	trappedRegex = `(\[trapped\])`
	// returnRegex finds [return (...)] in a trace
	returnRegex = `(\[return \(.*\)\])`
	// revertRegex finds [revert (...)] in a trace
	revertRegex = `(\[revert \(.*\)\])`
	// testSummaryRegex splits a test summary string into its integer and non-integer runs
	testSummaryRegex = `([-+]?\d+|\D+)`
)

// The constants below map a tagged section to the color it should be rendered in for console output.
const (
	passedColor    = colors.GREEN
	returnColor    = colors.GREEN
	failedColor    = colors.RED
	revertColor    = colors.RED
	trappedColor   = colors.RED
	invariantColor = colors.MAGENTA
	messageColor   = colors.BLUE
)
