package coverage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreservesDuplicatesAndOrder(t *testing.T) {
	trace := Trace("before COV=12 middle COV=7 COV=12 after")
	ids := Parse(trace)
	assert.Equal(t, []uint64{12, 7, 12}, ids)
}

func TestParseIgnoresMalformedTokens(t *testing.T) {
	trace := Trace("COV=abc COV= COV=12x COV=7")
	ids := Parse(trace)
	assert.Equal(t, []uint64{7}, ids)
}

func TestScrubPreservesSpacing(t *testing.T) {
	trace := Trace("value=1 COV=12 trapped=false COV=7")
	scrubbed := Scrub(trace)
	assert.Equal(t, "value=1 trapped=false", string(scrubbed))
}

func TestRedirectDoesNotPanicOnOutOfBoundIds(t *testing.T) {
	assert.NotPanics(t, func() {
		Redirect([]uint64{5, 5, DefaultRedirectBound + 1000}, DefaultRedirectBound)
	})
}

func TestMapUpdateReportsNewCoverage(t *testing.T) {
	m := NewMap()
	var addr, hash [32]byte
	addr[0] = 1
	hash[0] = 2

	changed := m.Update(addr, hash, []uint64{1, 2, 3})
	assert.True(t, changed)

	changed = m.Update(addr, hash, []uint64{1, 2, 3})
	assert.False(t, changed)

	changed = m.Update(addr, hash, []uint64{4})
	assert.True(t, changed)

	cm := m.GetContractCoverageMap(hash)
	require.NotNil(t, cm)
	assert.Equal(t, 4, cm.Count())
}

func TestMapMergesAcrossAddressesForSameCodeHash(t *testing.T) {
	m := NewMap()
	var addrA, addrB, hash [32]byte
	addrA[0] = 1
	addrB[0] = 2
	hash[0] = 9

	m.Update(addrA, hash, []uint64{1})
	m.Update(addrB, hash, []uint64{2})

	cm := m.GetContractCoverageMap(hash)
	require.NotNil(t, cm)
	assert.Equal(t, 2, cm.Count())
}

func TestAppendAndReadTraces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.cov")

	require.NoError(t, AppendTrace(path, Trace("COV=1 COV=2")))
	require.NoError(t, AppendTrace(path, Trace("COV=3")))

	traces, err := ReadTraces(path)
	require.NoError(t, err)
	require.Len(t, traces, 2)
	assert.Equal(t, []uint64{1, 2}, Parse(traces[0]))
	assert.Equal(t, []uint64{3}, Parse(traces[1]))
}

func TestReadTracesMissingFile(t *testing.T) {
	traces, err := ReadTraces(filepath.Join(t.TempDir(), "missing.cov"))
	require.NoError(t, err)
	assert.Nil(t, traces)
}

func TestReportFormatsSummary(t *testing.T) {
	cm := newContractCoverageMap()
	cm.update([]uint64{1, 2})
	report := Report(cm, DefaultRedirectBound)
	assert.Contains(t, report, "2/2001")
}
