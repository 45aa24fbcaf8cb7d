package selectors

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// rawMetadata mirrors the subset of an ink! metadata JSON document this package needs: the contract's
// spec section, carrying constructors and messages.
type rawMetadata struct {
	Spec struct {
		Constructors []rawSelectorEntry `json:"constructors"`
		Messages     []rawSelectorEntry `json:"messages"`
	} `json:"spec"`
}

// rawSelectorEntry is one constructor or message entry in the metadata spec.
type rawSelectorEntry struct {
	Label    string            `json:"label"`
	Selector string            `json:"selector"`
	Payable  bool              `json:"payable"`
	Args     []json.RawMessage `json:"args"`
}

// parseMetadata unmarshals a metadata JSON document into rawMetadata.
func parseMetadata(metadataJSON []byte) (*rawMetadata, error) {
	var meta rawMetadata
	if err := json.Unmarshal(metadataJSON, &meta); err != nil {
		return nil, errors.Wrapf(MetadataInvalid, "unmarshaling metadata: %v", err)
	}
	if meta.Spec.Constructors == nil && meta.Spec.Messages == nil {
		return nil, errors.Wrap(MetadataInvalid, "metadata is missing spec.constructors/spec.messages")
	}
	return &meta, nil
}
