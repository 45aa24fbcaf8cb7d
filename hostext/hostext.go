// Package hostext exposes direct, out-of-band manipulation of a host.State's block time and account
// balances, the Go analogue of the teacher's chain/cheat_code_contract.go cheat codes (warp/roll/deal)
// exposed to Solidity test contracts as a pseudo-precompile. Here there is no on-chain dispatch table to
// build: these are plain functions a caller applies directly to a state it already holds, rather than
// something the contract under test invokes itself. No CLI command in this module calls them.
package hostext

import (
	"math/big"

	"github.com/crytic/phink/host"
)

// Warp overwrites state's block timestamp, mirroring the teacher's "warp" cheat code.
func Warp(state *host.State, timestamp uint64) {
	state.SetTimestamp(timestamp)
}

// Roll overwrites state's block number, mirroring the teacher's "roll" cheat code.
func Roll(state *host.State, blockNumber uint64) {
	state.SetBlockNumber(blockNumber)
}

// Deal overwrites who's balance, mirroring the teacher's "deal" cheat code.
func Deal(state *host.State, who host.AccountID, amount *big.Int) {
	state.SetBalance(who, amount)
}

// Builder configures a host.State before a diagnostic run, mirroring the original's ExtBuilder: a small
// fluent wrapper that applies per-account balance overrides and an optional starting block number over a
// state built by host.NewGenesisState.
type Builder struct {
	state       *host.State
	blockNumber uint64
}

// NewBuilder wraps an already-constructed genesis state for further diagnostic configuration.
func NewBuilder(state *host.State) *Builder {
	return &Builder{state: state, blockNumber: state.BlockNumber()}
}

// WithBlockNumber overrides the block number the built state starts from.
func (b *Builder) WithBlockNumber(n uint64) *Builder {
	b.blockNumber = n
	return b
}

// WithBalance overrides one account's balance in the state under construction.
func (b *Builder) WithBalance(who host.AccountID, amount *big.Int) *Builder {
	Deal(b.state, who, amount)
	return b
}

// Build applies the configured block number and returns the state, ready for a diagnostic call.
func (b *Builder) Build() *host.State {
	Roll(b.state, b.blockNumber)
	return b.state
}
