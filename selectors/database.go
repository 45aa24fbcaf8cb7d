package selectors

// Database holds the three ordered sequences of Selector that drive a campaign: every callable message
// (including constructors), the subset flagged as invariants by naming convention, and the subset of
// messages that accept a non-zero value. It is built once from the contract's metadata JSON at campaign
// start and is immutable thereafter.
type Database struct {
	messages        []Selector
	invariants      []Selector
	payableMessages []Selector
	payable         map[Selector]bool
}

// NewDatabase builds a Database from a metadata JSON document.
func NewDatabase(metadataJSON []byte) (*Database, error) {
	messages, err := ExtractAll(metadataJSON)
	if err != nil {
		return nil, err
	}

	invariants, err := ExtractInvariants(metadataJSON)
	if err != nil {
		return nil, err
	}

	payable := make(map[Selector]bool, len(messages))
	payableMessages := make([]Selector, 0)
	for _, sel := range messages {
		isPayable, err := IsPayable(metadataJSON, sel)
		if err != nil {
			return nil, err
		}
		payable[sel] = isPayable
		if isPayable {
			payableMessages = append(payableMessages, sel)
		}
	}

	return &Database{
		messages:        messages,
		invariants:      invariants,
		payableMessages: payableMessages,
		payable:         payable,
	}, nil
}

// Messages returns every callable selector (constructors and messages) in declaration order.
func (d *Database) Messages() []Selector {
	return d.messages
}

// Invariants returns the subset of message selectors flagged as invariants, in declaration order.
func (d *Database) Invariants() []Selector {
	return d.invariants
}

// PayableMessages returns the subset of message selectors that accept a non-zero value, in declaration order.
func (d *Database) PayableMessages() []Selector {
	return d.payableMessages
}

// IsPayable reports whether sel is a known, payable message. Unknown selectors are treated as non-payable.
func (d *Database) IsPayable(sel Selector) bool {
	return d.payable[sel]
}

// Known reports whether sel appears anywhere in the database's messages.
func (d *Database) Known(sel Selector) bool {
	_, ok := d.payable[sel]
	return ok
}

// IsInvariant reports whether sel is one of the database's invariant selectors.
func (d *Database) IsInvariant(sel Selector) bool {
	for _, inv := range d.invariants {
		if inv == sel {
			return true
		}
	}
	return false
}
