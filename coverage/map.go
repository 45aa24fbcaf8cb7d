package coverage

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Map tracks, across a whole campaign, which coverage identifiers have ever been hit for a given contract,
// keyed by contract address and code hash (so that redeployments of the same contract under a different
// address still share coverage, while genuinely different contracts do not).
type Map struct {
	maps map[[32]byte]map[[32]byte]*ContractCoverageMap

	cachedCodeAddress [32]byte
	cachedCodeHash    [32]byte
	cachedMap         *ContractCoverageMap

	updateLock sync.Mutex
}

// NewMap initializes an empty Map.
func NewMap() *Map {
	m := &Map{}
	m.Reset()
	return m
}

// Reset clears all tracked coverage.
func (m *Map) Reset() {
	m.maps = make(map[[32]byte]map[[32]byte]*ContractCoverageMap)
	m.cachedMap = nil
}

// Update records ids as hit for the contract identified by (codeAddress, codeHash). Returns whether any
// previously-unseen identifier was recorded.
func (m *Map) Update(codeAddress [32]byte, codeHash [32]byte, ids []uint64) bool {
	m.updateLock.Lock()
	defer m.updateLock.Unlock()

	var contractMap *ContractCoverageMap
	if m.cachedMap != nil && m.cachedCodeAddress == codeAddress && m.cachedCodeHash == codeHash {
		contractMap = m.cachedMap
	} else {
		byAddress, ok := m.maps[codeHash]
		if !ok {
			byAddress = make(map[[32]byte]*ContractCoverageMap)
			m.maps[codeHash] = byAddress
		}
		contractMap, ok = byAddress[codeAddress]
		if !ok {
			contractMap = newContractCoverageMap()
			byAddress[codeAddress] = contractMap
		}
		m.cachedMap = contractMap
		m.cachedCodeAddress = codeAddress
		m.cachedCodeHash = codeHash
	}

	return contractMap.update(ids)
}

// GetContractCoverageMap returns the accumulated coverage map for a contract identified by codeHash, merging
// across every address it has been deployed at. Returns nil if no coverage has been recorded for codeHash.
func (m *Map) GetContractCoverageMap(codeHash [32]byte) *ContractCoverageMap {
	m.updateLock.Lock()
	defer m.updateLock.Unlock()

	byAddress, ok := m.maps[codeHash]
	if !ok {
		return nil
	}

	total := newContractCoverageMap()
	for _, contractMap := range byAddress {
		total.merge(contractMap)
	}
	return total
}

// ContractCoverageMap represents the set of coverage identifiers ever hit for a single deployed contract.
type ContractCoverageMap struct {
	hit map[uint64]bool
}

// newContractCoverageMap creates an empty ContractCoverageMap.
func newContractCoverageMap() *ContractCoverageMap {
	return &ContractCoverageMap{hit: make(map[uint64]bool)}
}

// update records ids as hit. Returns whether any previously-unseen identifier was recorded.
func (cm *ContractCoverageMap) update(ids []uint64) bool {
	changed := false
	for _, id := range ids {
		if !cm.hit[id] {
			cm.hit[id] = true
			changed = true
		}
	}
	return changed
}

// merge folds other's hit set into cm.
func (cm *ContractCoverageMap) merge(other *ContractCoverageMap) {
	for id := range other.hit {
		cm.hit[id] = true
	}
}

// Count returns the number of distinct coverage identifiers hit.
func (cm *ContractCoverageMap) Count() int {
	return len(cm.hit)
}

// Ids returns the set of hit identifiers, sorted ascending so report output is stable across runs.
func (cm *ContractCoverageMap) Ids() []uint64 {
	ids := maps.Keys(cm.hit)
	slices.Sort(ids)
	return ids
}

// Equal reports whether cm and other track exactly the same set of identifiers.
func (cm *ContractCoverageMap) Equal(other *ContractCoverageMap) bool {
	if len(cm.hit) != len(other.hit) {
		return false
	}
	for id := range cm.hit {
		if !other.hit[id] {
			return false
		}
	}
	return true
}
