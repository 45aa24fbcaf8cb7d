package selectors

import (
	"strings"

	"github.com/pkg/errors"
)

// ExtractAll parses a metadata JSON document and returns the ordered union of constructor and message
// selectors.
func ExtractAll(metadataJSON []byte) ([]Selector, error) {
	meta, err := parseMetadata(metadataJSON)
	if err != nil {
		return nil, err
	}

	all := make([]Selector, 0, len(meta.Spec.Constructors)+len(meta.Spec.Messages))
	for _, entry := range meta.Spec.Constructors {
		sel, err := decodeSelector(entry.Selector)
		if err != nil {
			return nil, err
		}
		all = append(all, sel)
	}
	for _, entry := range meta.Spec.Messages {
		sel, err := decodeSelector(entry.Selector)
		if err != nil {
			return nil, err
		}
		all = append(all, sel)
	}
	return all, nil
}

// ExtractInvariants parses a metadata JSON document and returns the ordered sequence of message selectors
// whose label begins with DefaultPhinkPrefix.
func ExtractInvariants(metadataJSON []byte) ([]Selector, error) {
	meta, err := parseMetadata(metadataJSON)
	if err != nil {
		return nil, err
	}

	invariants := make([]Selector, 0)
	for _, entry := range meta.Spec.Messages {
		if !strings.HasPrefix(entry.Label, DefaultPhinkPrefix) {
			continue
		}
		sel, err := decodeSelector(entry.Selector)
		if err != nil {
			return nil, err
		}
		invariants = append(invariants, sel)
	}
	return invariants, nil
}

// GetConstructor chooses the constructor to use for instantiation: the no-argument constructor if present,
// else the sole constructor if exactly one exists. Fails if neither condition is met.
func GetConstructor(metadataJSON []byte) (Selector, error) {
	meta, err := parseMetadata(metadataJSON)
	if err != nil {
		return Selector{}, err
	}

	constructors := meta.Spec.Constructors
	if len(constructors) == 0 {
		return Selector{}, errors.Wrap(MetadataInvalid, "metadata has no constructors")
	}

	if len(constructors) == 1 {
		return decodeSelector(constructors[0].Selector)
	}

	for _, ctor := range constructors {
		if len(ctor.Args) == 0 {
			return decodeSelector(ctor.Selector)
		}
	}

	return Selector{}, errors.Wrap(MetadataInvalid, "no no-argument constructor found among multiple constructors")
}

// IsPayable looks up the message whose selector equals sel and reports whether it is marked payable.
// Returns false if no message with that selector exists.
func IsPayable(metadataJSON []byte, sel Selector) (bool, error) {
	meta, err := parseMetadata(metadataJSON)
	if err != nil {
		return false, err
	}

	for _, entry := range meta.Spec.Messages {
		candidate, err := decodeSelector(entry.Selector)
		if err != nil {
			return false, err
		}
		if candidate == sel {
			return entry.Payable, nil
		}
	}
	return false, nil
}
