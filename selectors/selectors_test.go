package selectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flipperMetadata is a minimal hand-written ink! metadata fixture shaped like the well-known "flipper"
// example contract: one no-argument constructor and three messages, one of them an invariant.
const flipperMetadata = `{
  "spec": {
    "constructors": [
      {"label": "new", "selector": "0x9bae9d5e", "payable": false, "args": []}
    ],
    "messages": [
      {"label": "flip", "selector": "0xed4b9d1b", "payable": false, "args": []},
      {"label": "get", "selector": "0x2f865bd9", "payable": false, "args": []},
      {"label": "phink_assert_always_true", "selector": "0x633aa551", "payable": false, "args": []}
    ]
  }
}`

// multiConstructorMetadata has more than one constructor, none of which take no arguments, to exercise the
// GetConstructor failure path.
const multiConstructorMetadata = `{
  "spec": {
    "constructors": [
      {"label": "new_with_a", "selector": "0x11111111", "payable": false, "args": [{"label": "a"}]},
      {"label": "new_with_b", "selector": "0x22222222", "payable": false, "args": [{"label": "b"}]}
    ],
    "messages": [
      {"label": "deposit", "selector": "0x33333333", "payable": true, "args": []}
    ]
  }
}`

func TestExtractAll(t *testing.T) {
	sels, err := ExtractAll([]byte(flipperMetadata))
	require.NoError(t, err)
	require.Len(t, sels, 4)
	assert.Equal(t, "9bae9d5e", sels[0].String())
	assert.Equal(t, "ed4b9d1b", sels[1].String())
	assert.Equal(t, "2f865bd9", sels[2].String())
	assert.Equal(t, "633aa551", sels[3].String())
}

func TestExtractInvariants(t *testing.T) {
	sels, err := ExtractInvariants([]byte(flipperMetadata))
	require.NoError(t, err)
	require.Len(t, sels, 1)
	assert.Equal(t, "633aa551", sels[0].String())
}

func TestGetConstructorSingle(t *testing.T) {
	sel, err := GetConstructor([]byte(flipperMetadata))
	require.NoError(t, err)
	assert.Equal(t, "9bae9d5e", sel.String())
}

func TestGetConstructorPicksNoArgConstructor(t *testing.T) {
	metadata := `{
  "spec": {
    "constructors": [
      {"label": "new_with_a", "selector": "0x11111111", "payable": false, "args": [{"label": "a"}]},
      {"label": "new", "selector": "0x44444444", "payable": false, "args": []}
    ],
    "messages": []
  }
}`
	sel, err := GetConstructor([]byte(metadata))
	require.NoError(t, err)
	assert.Equal(t, "44444444", sel.String())
}

func TestGetConstructorFailsWithoutNoArgOption(t *testing.T) {
	_, err := GetConstructor([]byte(multiConstructorMetadata))
	assert.Error(t, err)
}

func TestIsPayable(t *testing.T) {
	sel, err := decodeSelector("0x33333333")
	require.NoError(t, err)

	payable, err := IsPayable([]byte(multiConstructorMetadata), sel)
	require.NoError(t, err)
	assert.True(t, payable)

	nonPayable, err := decodeSelector("0x11111111")
	require.NoError(t, err)
	payable, err = IsPayable([]byte(multiConstructorMetadata), nonPayable)
	require.NoError(t, err)
	assert.False(t, payable)
}

func TestMalformedSelectorRejected(t *testing.T) {
	bad := `{"spec": {"constructors": [{"label": "new", "selector": "0xzz", "payable": false, "args": []}], "messages": []}}`
	_, err := ExtractAll([]byte(bad))
	assert.ErrorIs(t, err, SelectorMalformed)
}

func TestInvalidMetadataRejected(t *testing.T) {
	_, err := ExtractAll([]byte(`{"not": "metadata"}`))
	assert.ErrorIs(t, err, MetadataInvalid)
}

func TestNewDatabase(t *testing.T) {
	db, err := NewDatabase([]byte(flipperMetadata))
	require.NoError(t, err)

	assert.Len(t, db.Messages(), 4)
	assert.Len(t, db.Invariants(), 1)
	assert.Empty(t, db.PayableMessages())

	invariantSel, err := decodeSelector("0x633aa551")
	require.NoError(t, err)
	assert.True(t, db.IsInvariant(invariantSel))
	assert.True(t, db.Known(invariantSel))

	unknown, err := decodeSelector("0xdeadbeef")
	require.NoError(t, err)
	assert.False(t, db.Known(unknown))
	assert.False(t, db.IsPayable(unknown))
}
