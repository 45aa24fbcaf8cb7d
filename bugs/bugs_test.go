package bugs

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/host"
	"github.com/crytic/phink/host/hosttest"
	"github.com/crytic/phink/input"
	"github.com/crytic/phink/selectors"
)

func testManager(t *testing.T, handler host.MessageHandler) (*Manager, *hosttest.Fixture) {
	fx, err := hosttest.New(handler)
	require.NoError(t, err)

	db, err := selectors.NewDatabase(fx.MetadataJSON)
	require.NoError(t, err)

	cfg := config.GetDefaultProjectConfig().Fuzzing
	return NewManager(db, fx.Host, &cfg, config.PhinkFiles{}), fx
}

func TestAreInvariantsPassingSucceeds(t *testing.T) {
	m, fx := testManager(t, host.NullHandler)
	_, violated := m.AreInvariantsPassing(fx.Host.Clone(), host.AccountFromByte(1))
	assert.False(t, violated)
}

func TestAreInvariantsPassingReportsViolation(t *testing.T) {
	m, fx := testManager(t, hosttest.TrappingHandler)
	sel, violated := m.AreInvariantsPassing(fx.Host.Clone(), host.AccountFromByte(1))
	assert.True(t, violated)
	assert.NotEqual(t, selectors.Selector{}, sel)
}

func TestIsContractTrapped(t *testing.T) {
	assert.True(t, IsContractTrapped(&host.FullResponse{CallError: host.ContractTrapped}))
	assert.False(t, IsContractTrapped(&host.FullResponse{}))
}

func TestReportAndAbortPanics(t *testing.T) {
	m, _ := testManager(t, host.NullHandler)
	msg := input.Message{Selector: selectors.Selector{0xed, 0x4b, 0x9d, 0x1b}, Value: big.NewInt(0)}

	assert.Panics(t, func() {
		m.ReportAndAbort(TrapCrash, []byte("raw-seed"), msg, &host.FullResponse{DebugMessage: []byte("COV=1 trapped")})
	})
}
