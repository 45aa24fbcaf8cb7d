package hostext

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crytic/phink/host"
)

func TestWarpOverwritesTimestamp(t *testing.T) {
	state := host.NewGenesisState(host.AccountFromByte(1), big.NewInt(1), big.NewInt(1))
	Warp(state, 12345)
	assert.Equal(t, uint64(12345), state.Timestamp())
}

func TestRollOverwritesBlockNumber(t *testing.T) {
	state := host.NewGenesisState(host.AccountFromByte(1), big.NewInt(1), big.NewInt(1))
	Roll(state, 99)
	assert.Equal(t, uint64(99), state.BlockNumber())
}

func TestDealOverwritesBalance(t *testing.T) {
	state := host.NewGenesisState(host.AccountFromByte(1), big.NewInt(1), big.NewInt(1))
	who := host.AccountFromByte(7)
	Deal(state, who, big.NewInt(500))
	assert.Equal(t, big.NewInt(500), state.Balance(who))
}

func TestBuilderAppliesBlockNumberAndBalance(t *testing.T) {
	state := host.NewGenesisState(host.AccountFromByte(1), big.NewInt(1), big.NewInt(1))
	who := host.AccountFromByte(2)

	built := NewBuilder(state).
		WithBlockNumber(42).
		WithBalance(who, big.NewInt(777)).
		Build()

	assert.Equal(t, uint64(42), built.BlockNumber())
	assert.Equal(t, big.NewInt(777), built.Balance(who))
}
