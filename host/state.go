package host

import "math/big"

// genesisAccountCount is the fixed number of synthesised accounts endowed at genesis (account i = 32 bytes
// all equal to i), matching the origin byte's full 0..255 range 1:1.
const genesisAccountCount = 256

// contractRecord is the pallet's view of one instantiated contract: which code it runs and its private
// key/value storage.
type contractRecord struct {
	codeHash [32]byte
	storage  map[string][]byte
}

// codeRecord is the pallet's view of one uploaded code blob, content-addressed by its hash.
type codeRecord struct {
	wasm []byte
}

// State is a mutable execution environment: account balances, uploaded code, instantiated contracts, and the
// pallet's notion of the current block. A State is produced either fresh (genesis construction) or by
// cloning an existing one; cloning never shares backing maps, so mutations in one clone never leak into
// another.
type State struct {
	balances    map[AccountID]*big.Int
	code        map[[32]byte]*codeRecord
	contracts   map[AccountID]*contractRecord
	blockNumber uint64
	timestamp   uint64
}

func newState() *State {
	return &State{
		balances:    make(map[AccountID]*big.Int),
		code:        make(map[[32]byte]*codeRecord),
		contracts:   make(map[AccountID]*contractRecord),
		blockNumber: 1,
	}
}

// NewGenesisState endows the 256 synthesised accounts plus the named deployer with balance, producing the
// genesis snapshot that every harness invocation clones from before touching the contract. Block number
// starts at 1, mirroring the original's ExtBuilder setting System::set_block_number(1) during genesis.
func NewGenesisState(deployer AccountID, accountBalance, deployerBalance *big.Int) *State {
	s := newState()
	for i := 0; i < genesisAccountCount; i++ {
		s.balances[AccountFromByte(byte(i))] = new(big.Int).Set(accountBalance)
	}
	if _, exists := s.balances[deployer]; !exists || deployerBalance.Cmp(accountBalance) != 0 {
		s.balances[deployer] = new(big.Int).Set(deployerBalance)
	}
	return s
}

// BlockNumber returns the state's current block number.
func (s *State) BlockNumber() uint64 {
	return s.blockNumber
}

// Timestamp returns the state's current block timestamp.
func (s *State) Timestamp() uint64 {
	return s.timestamp
}

// SetBlockNumber overwrites the state's block number directly, the Go analogue of the teacher's "roll"
// cheat code.
func (s *State) SetBlockNumber(n uint64) {
	s.blockNumber = n
}

// SetTimestamp overwrites the state's block timestamp directly, the Go analogue of the teacher's "warp"
// cheat code.
func (s *State) SetTimestamp(ts uint64) {
	s.timestamp = ts
}

// SetBalance overwrites id's balance directly, the Go analogue of the teacher's "deal" cheat code.
func (s *State) SetBalance(id AccountID, amount *big.Int) {
	s.balances[id] = new(big.Int).Set(amount)
}

// Clone deep-copies the state: a fresh map per field and fresh big.Int/slice values, so no byte of the
// original is shared with the result.
func (s *State) Clone() *State {
	clone := newState()

	for id, bal := range s.balances {
		clone.balances[id] = new(big.Int).Set(bal)
	}
	for hash, rec := range s.code {
		wasm := make([]byte, len(rec.wasm))
		copy(wasm, rec.wasm)
		clone.code[hash] = &codeRecord{wasm: wasm}
	}
	for id, rec := range s.contracts {
		storage := make(map[string][]byte, len(rec.storage))
		for k, v := range rec.storage {
			buf := make([]byte, len(v))
			copy(buf, v)
			storage[k] = buf
		}
		clone.contracts[id] = &contractRecord{codeHash: rec.codeHash, storage: storage}
	}
	clone.blockNumber = s.blockNumber
	clone.timestamp = s.timestamp
	return clone
}

// Balance returns the balance of id, or zero if the account is unknown.
func (s *State) Balance(id AccountID) *big.Int {
	if bal, ok := s.balances[id]; ok {
		return new(big.Int).Set(bal)
	}
	return big.NewInt(0)
}

// HasContract reports whether addr is present in the contract-info map, the check Verify performs.
func (s *State) HasContract(addr AccountID) bool {
	_, ok := s.contracts[addr]
	return ok
}
