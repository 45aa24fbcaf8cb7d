package seedextract

import "github.com/pkg/errors"

// SeedRunnerFailed is returned when the forked contract's own test suite could not be built or run to
// harvest seeds from it. The campaign that triggered extraction is expected to log this and continue
// without seeds rather than abort, since seed extraction is an optional enrichment step.
var SeedRunnerFailed = errors.New("seedextract: running the contract's test suite failed")

// ManifestMissingPrelude is returned when the forked manifest has no ink_prelude dependency, which the
// injected snippet's string formatting requires.
var ManifestMissingPrelude = errors.New("seedextract: contract manifest has no ink_prelude dependency")
