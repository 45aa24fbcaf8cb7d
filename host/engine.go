package host

import (
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// CodeHash content-addresses a code blob the same way the pallet does: blake2b-256 over the raw bytes.
func CodeHash(wasm []byte) [32]byte {
	return blake2b.Sum256(wasm)
}

// contractAddress derives a deterministic pseudo-address for an instantiation, keyed off the code hash and
// the caller, so repeated instantiations of the same code by the same caller in a fresh clone are stable.
func contractAddress(codeHash [32]byte, caller AccountID) AccountID {
	var addr AccountID
	for i := range addr {
		addr[i] = codeHash[i] ^ caller[i]
	}
	return addr
}

// Upload stores wasm under its content hash in state, failing UploadFailed only if wasm is empty — a real
// pallet would additionally reject malformed WASM modules, which is out of reach without a WASM validator in
// this dependency set.
func Upload(state *State, wasm []byte, caller AccountID) ([32]byte, error) {
	if len(wasm) == 0 {
		return [32]byte{}, UploadFailed
	}
	hash := CodeHash(wasm)
	if _, exists := state.code[hash]; !exists {
		buf := make([]byte, len(wasm))
		copy(buf, wasm)
		state.code[hash] = &codeRecord{wasm: buf}
	}
	return hash, nil
}

// Instantiate creates a contract record bound to codeHash, failing InstantiationFailed if the code was never
// uploaded. The constructor payload is accepted but not interpreted further here: real constructor-logic
// execution requires a WASM execution backend, which this module exposes as the pluggable MessageHandler
// seam (see Call) rather than attempting to emulate inside pure Go.
func Instantiate(state *State, codeHash [32]byte, constructorPayload []byte, caller AccountID, value *big.Int) (AccountID, error) {
	if _, exists := state.code[codeHash]; !exists {
		return AccountID{}, InstantiationFailed
	}
	addr := contractAddress(codeHash, caller)
	state.contracts[addr] = &contractRecord{
		codeHash: codeHash,
		storage:  make(map[string][]byte),
	}
	return addr, nil
}

// Verify asserts addr is present in state's contract-info map, the check performed once right after
// instantiation.
func Verify(state *State, addr AccountID) error {
	if !state.HasContract(addr) {
		return InstantiationSilentFailure
	}
	return nil
}

// MessageHandler executes one already-decoded message against a contract's logic, producing the pallet-level
// response. It is the seam a real ink!/WASM execution backend plugs in at: none of this corpus's dependency
// surface includes a WASM runtime, so Host is parameterised over this interface rather than attempting to
// emulate contract bytecode execution in pure Go.
type MessageHandler func(state *State, contract, who AccountID, value *big.Int, payload []byte, gas Weight) (*FullResponse, error)

// NullHandler is the default MessageHandler: it records the call as succeeding with an empty return value and
// no debug output, consuming no gas beyond a fixed base cost. It exists so Host is usable end-to-end (upload,
// instantiate, verify, call, clone) without a real execution backend wired in, which is what every unit test
// in this module and in input/bugs/fuzzer exercises against.
func NullHandler(state *State, contract, who AccountID, value *big.Int, payload []byte, gas Weight) (*FullResponse, error) {
	return &FullResponse{
		ReturnValue:    nil,
		GasRequired:    gas,
		GasConsumed:    Weight{RefTime: 1, ProofSize: 1},
		StorageDeposit: big.NewInt(0),
		DebugMessage:   nil,
		Events:         nil,
	}, nil
}
