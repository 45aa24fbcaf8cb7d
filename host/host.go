package host

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/selectors"
)

// slotDuration is the fixed block slot duration (ms) the timestamp is advanced by once per cloned state (see
// Clone), the Go analogue of a Substrate block's slot advancing between extrinsics.
const slotDuration = 3000

// defaultAccountBalance is the balance every one of the 256 synthesised genesis accounts is endowed with.
var defaultAccountBalance, _ = new(big.Int).SetString("10000000000000000000000", 10)

// Host initialises once per campaign: it builds the genesis snapshot, uploads and instantiates the contract
// under test, and exposes Call against a caller-supplied clone of that snapshot. Shared read-only by every
// harness invocation in one process.
type Host struct {
	genesis             *State
	contract            AccountID
	codeHash            [32]byte
	deployer            AccountID
	metadataPath        string
	sourcePath          string
	gas                 Weight
	storageDepositLimit *big.Int
	handler             MessageHandler
}

// Options configures Host construction beyond what *config.FuzzingConfig already carries.
type Options struct {
	MetadataPath string
	SourcePath   string
	MetadataJSON []byte
	Wasm         []byte
	Handler      MessageHandler
}

// New builds a Host: genesis accounts, code upload, constructor instantiation (verbatim payload or
// metadata-derived no-arg constructor) and verification, per §4.D's six-step contract.
func New(cfg *config.FuzzingConfig, opts Options) (*Host, error) {
	deployerBytes, err := deployerAccountID(cfg.DeployerAddress)
	if err != nil {
		return nil, errors.Wrap(err, "parsing deployer address")
	}

	storageDepositLimit, err := cfg.StorageDepositLimitDecimal()
	if err != nil {
		return nil, errors.Wrap(err, "parsing storage deposit limit")
	}

	gas := Weight{
		RefTime:   cfg.DefaultGasLimitRefTime,
		ProofSize: cfg.DefaultGasLimitProofSize,
	}

	handler := opts.Handler
	if handler == nil {
		handler = NullHandler
	}

	genesis := NewGenesisState(deployerBytes, defaultAccountBalance, storageDepositLimit.BigInt())

	codeHash, err := Upload(genesis, opts.Wasm, deployerBytes)
	if err != nil {
		return nil, errors.Wrap(err, "uploading contract code")
	}

	constructorPayload, err := resolveConstructorPayload(cfg, opts.MetadataJSON)
	if err != nil {
		return nil, errors.Wrap(err, "resolving constructor payload")
	}

	initialValueDecimal, err := cfg.InstantiateInitialValueDecimal()
	if err != nil {
		return nil, errors.Wrap(err, "parsing instantiate initial value")
	}
	contractAddr, err := Instantiate(genesis, codeHash, constructorPayload, deployerBytes, initialValueDecimal.BigInt())
	if err != nil {
		return nil, errors.Wrap(err, "instantiating contract")
	}

	if err := Verify(genesis, contractAddr); err != nil {
		return nil, err
	}

	return &Host{
		genesis:             genesis,
		contract:            contractAddr,
		codeHash:            codeHash,
		deployer:            deployerBytes,
		metadataPath:        opts.MetadataPath,
		sourcePath:          opts.SourcePath,
		gas:                 gas,
		storageDepositLimit: storageDepositLimit.BigInt(),
		handler:             handler,
	}, nil
}

// resolveConstructorPayload returns cfg's verbatim hex-decoded constructor_payload if set, otherwise derives
// a no-argument constructor selector from the contract's metadata.
func resolveConstructorPayload(cfg *config.FuzzingConfig, metadataJSON []byte) ([]byte, error) {
	payload, err := cfg.ConstructorPayloadBytes()
	if err != nil {
		return nil, errors.Wrap(err, "decoding configured constructor payload")
	}
	if payload != nil {
		return payload, nil
	}
	sel, err := selectors.GetConstructor(metadataJSON)
	if err != nil {
		return nil, errors.Wrap(err, "deriving default constructor selector")
	}
	return sel[:], nil
}

func deployerAccountID(hexAddr string) (AccountID, error) {
	raw, err := decodeFixed32(hexAddr)
	if err != nil {
		return AccountID{}, err
	}
	return AccountID(raw), nil
}

// ContractAddress returns the instantiated contract's address.
func (h *Host) ContractAddress() AccountID {
	return h.contract
}

// CodeHash returns the content hash of the uploaded contract code, used as the coverage map's per-contract
// key.
func (h *Host) CodeHash() [32]byte {
	return h.codeHash
}

// Genesis returns the immutable genesis snapshot; callers must Clone it before mutating.
func (h *Host) Genesis() *State {
	return h.genesis
}

// Clone produces a fresh execution environment for one harness invocation, advancing its block number by one
// (genesis block 1 becomes block 2) and its timestamp by one slotDuration (genesis timestamp 0 becomes slot 1)
// once (§4.D's timestamp-progression hook, currently always a constant advance). Every
// message in the sequence run against the returned state shares this single advance — Call itself never
// mutates the block/timestamp.
func (h *Host) Clone() *State {
	state := h.genesis.Clone()
	state.SetBlockNumber(state.BlockNumber() + 1)
	state.SetTimestamp(state.Timestamp() + slotDuration)
	return state
}

// Call invokes the contract under test with payload from who, carrying value, against the given state clone.
// It is a pure dispatch: block number and timestamp are advanced once by Clone, not per call.
func (h *Host) Call(state *State, who AccountID, value *big.Int, payload []byte) (*FullResponse, error) {
	return h.handler(state, h.contract, who, value, payload, h.gas)
}
