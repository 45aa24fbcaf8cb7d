package logging

// These constants are used to identify the various services that may do some logging, and are passed as the
// "module" key to Logger.NewSubLogger so that log lines are grep-able by subsystem.
const (
	// InstrumenterService is the constant used to identify the instrumenter package
	InstrumenterService = "instrumenter"
	// HostService is the constant used to identify the host package
	HostService = "host"
	// InputService is the constant used to identify the input package
	InputService = "input"
	// BugsService is the constant used to identify the bugs package
	BugsService = "bugs"
	// FuzzerService is the constant used to identify the fuzzer package
	FuzzerService = "fuzzer"
	// CorpusService is the constant used to identify the corpus package
	CorpusService = "corpus"
	// CliService is the constant used to identify the cmd package
	CliService = "cli"
)
