package instrumenter

import "github.com/pkg/errors"

// InstrumentationBuildFailed is returned when the external `cargo contract build` invocation exits non-zero.
// The wrapped error carries the subprocess's combined stdout and stderr verbatim.
var InstrumentationBuildFailed = errors.New("instrumenter: contract build failed")

// ArtefactMissing is returned when no .wasm artefact is found after a successful build.
var ArtefactMissing = errors.New("instrumenter: no .wasm artefact found in build output")

// ArtefactAmbiguous is returned when more than one .wasm artefact is found after a successful build.
var ArtefactAmbiguous = errors.New("instrumenter: more than one .wasm artefact found in build output")
