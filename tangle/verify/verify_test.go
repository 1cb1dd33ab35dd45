package verify_test

import (
	"testing"

	"github.com/iotaledger/tangle-engine/adapters"
	"github.com/iotaledger/tangle-engine/ids"
	"github.com/iotaledger/tangle-engine/tangle"
	"github.com/iotaledger/tangle-engine/tangle/verify"
	"github.com/stretchr/testify/require"
)

func idN(n int) ids.MessageId {
	return ids.MessageIdFromBytes([]byte{byte(n >> 8), byte(n)})
}

// buildScenarioA reproduces spec Scenario A far enough to exercise
// scan_confirmed_root_transactions against ids 12 and 22.
func buildScenarioA(t *testing.T) *tangle.Engine {
	t.Helper()
	e := tangle.New(tangle.DefaultConfig(), tangle.WithRandomSource(adapters.NewMathRandSource(1)))
	e.AddSolidEntrypoint(idN(0), ids.GenesisMilestoneIndex)

	type edge struct{ id, ma, pa, ms int }
	edges := []edge{
		{1, 0, 0, 0}, {2, 0, 0, 0}, {3, 0, 0, 0},
		{4, 1, 2, 0}, {5, 1, 2, 0}, {6, 2, 3, 0},
		{7, 4, 5, 0}, {8, 5, 6, 0}, {9, 6, 3, 0},
		{10, 7, 8, 0}, {11, 8, 9, 0}, {12, 8, 11, 1},
		{13, 7, 10, 0}, {14, 10, 8, 0}, {15, 11, 9, 0}, {16, 11, 9, 0},
		{17, 13, 14, 0}, {18, 13, 14, 0}, {19, 12, 15, 0}, {20, 15, 16, 0},
		{21, 17, 18, 0}, {22, 18, 19, 0}, {23, 17, 21, 0},
		{24, 21, 22, 0}, {25, 22, 18, 0}, {26, 19, 20, 0},
	}
	for _, ed := range edges {
		payload := ids.DataPayload(nil)
		if ed.ms != 0 {
			payload = ids.MilestonePayload(ids.MilestoneIndex(ed.ms))
		}
		require.NoError(t, e.InsertGossip(idN(ed.id), payload, idN(ed.ma), idN(ed.pa)))
	}
	return e
}

func TestScanConfirmedRootTransactionsMatchesOwnIndices(t *testing.T) {
	e := buildScenarioA(t)

	minIdx, maxIdx, ok := verify.ScanConfirmedRootTransactions(e, idN(12))
	require.True(t, ok)
	require.Equal(t, ids.MilestoneIndex(1), minIdx)
	require.Equal(t, ids.MilestoneIndex(1), maxIdx)

	minIdx, maxIdx, ok = verify.ScanConfirmedRootTransactions(e, idN(22))
	require.True(t, ok)
	require.Equal(t, ids.MilestoneIndex(1), minIdx)
	require.Equal(t, ids.MilestoneIndex(1), maxIdx)
}
