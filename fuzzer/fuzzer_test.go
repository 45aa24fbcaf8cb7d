package fuzzer

import (
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"os/exec"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crytic/phink/config"
	"github.com/crytic/phink/host"
	"github.com/crytic/phink/host/hosttest"
	"github.com/crytic/phink/input"
	"github.com/crytic/phink/selectors"
)

var flipSelectorBytes, _ = hex.DecodeString("ed4b9d1b")

func frame(value uint32, selector []byte) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, value)
	return append(buf, selector...)
}

func testHarness(t *testing.T, handler host.MessageHandler) *Harness {
	fx, err := hosttest.New(handler)
	require.NoError(t, err)

	db, err := selectors.NewDatabase(fx.MetadataJSON)
	require.NoError(t, err)

	cfg := config.GetDefaultProjectConfig().Fuzzing
	cfg.FuzzOutput = t.TempDir()
	files := config.NewPhinkFiles(cfg.FuzzOutput)
	require.NoError(t, files.MakeAll())

	h := NewHarness(fx.Host, db, &cfg, files)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func tracingHandler(trace string) host.MessageHandler {
	return func(state *host.State, contract, who host.AccountID, value *big.Int, payload []byte, gas host.Weight) (*host.FullResponse, error) {
		return &host.FullResponse{DebugMessage: []byte(trace)}, nil
	}
}

func TestRunWithNoDecodedMessagesProducesEmptyResult(t *testing.T) {
	h := testHarness(t, host.NullHandler)
	result := h.Run([]byte{0x00})
	assert.Empty(t, result.Responses)
	assert.Empty(t, result.CoverageID)
}

func TestRunExecutesDecodedMessagesInOrder(t *testing.T) {
	h := testHarness(t, tracingHandler("COV=1 COV=2"))

	raw := frame(1, flipSelectorBytes)
	result := h.Run(raw)
	require.Len(t, result.Responses, 1)
	assert.Equal(t, []uint64{1, 2}, result.CoverageID)
}

func TestRunIsDeterministicGivenSameInput(t *testing.T) {
	h := testHarness(t, tracingHandler("COV=5"))

	raw := frame(7, flipSelectorBytes)
	first := h.Run(raw)
	second := h.Run(raw)
	assert.Equal(t, first.CoverageID, second.CoverageID)
}

func TestRunAbortsOnTrapWhenCatchTrappedContractEnabled(t *testing.T) {
	fx, err := hosttest.New(hosttest.TrappingHandler)
	require.NoError(t, err)
	db, err := selectors.NewDatabase(fx.MetadataJSON)
	require.NoError(t, err)

	cfg := config.GetDefaultProjectConfig().Fuzzing
	cfg.CatchTrappedContract = true
	cfg.FuzzOutput = ""
	files := config.NewPhinkFiles("")

	h := NewHarness(fx.Host, db, &cfg, files)
	raw := frame(1, flipSelectorBytes)

	assert.Panics(t, func() { h.Run(raw) })
}

func TestFormatSequenceRendersMessagesAndResponses(t *testing.T) {
	fx, err := hosttest.New(tracingHandler("flipped COV=1"))
	require.NoError(t, err)

	var sel selectors.Selector
	copy(sel[:], flipSelectorBytes)
	msg := input.Message{Selector: sel, Value: big.NewInt(0), Payload: flipSelectorBytes, Origin: host.AccountFromByte(1)}

	resp, err := fx.Host.Call(fx.Host.Clone(), msg.Origin, msg.Value, msg.Payload)
	require.NoError(t, err)

	out := FormatSequence([]input.Message{msg}, []*host.FullResponse{resp})
	assert.True(t, strings.Contains(out, "message 0"))
	assert.True(t, strings.Contains(out, "debug: flipped\n"))
}

func TestNewFuzzerRunsDriverPerCore(t *testing.T) {
	cfg := config.GetDefaultProjectConfig().Fuzzing
	cfg.Cores = 3

	seen := make(chan int, cfg.Cores)
	driver := func(runID uuid.UUID, workerIndex int) *exec.Cmd {
		seen <- workerIndex
		return exec.Command("true")
	}

	f := NewFuzzer(&cfg, driver)
	results := f.Run()
	assert.Len(t, results, 3)
	close(seen)

	count := 0
	for range seen {
		count++
	}
	assert.Equal(t, 3, count)
}
