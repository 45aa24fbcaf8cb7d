package selectors

import "github.com/pkg/errors"

// MetadataInvalid is returned when the metadata JSON does not have the expected `spec.constructors`/
// `spec.messages` shape.
var MetadataInvalid = errors.New("metadata: invalid contract metadata JSON")

// SelectorMalformed is returned when a selector string in the metadata JSON is not exactly 4 hex bytes.
var SelectorMalformed = errors.New("metadata: selector is not a valid 4-byte hex string")
