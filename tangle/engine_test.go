package tangle_test

import (
	"testing"

	"github.com/iotaledger/tangle-engine/adapters"
	"github.com/iotaledger/tangle-engine/ids"
	"github.com/iotaledger/tangle-engine/tangle"
	"github.com/stretchr/testify/require"
)

// idN interns a deterministic MessageId for small test fixture numbers,
// the Go counterpart of the original source's plain integer ids.
func idN(n int) ids.MessageId {
	return ids.MessageIdFromBytes([]byte{byte(n >> 8), byte(n)})
}

type edge struct {
	id, ma, pa int
	ms         int // 0 = not a milestone
}

// fixtureA is spec §8 Scenario A's graph, with id 12 as the sole milestone.
func fixtureA() []edge {
	return []edge{
		{1, 0, 0, 0}, {2, 0, 0, 0}, {3, 0, 0, 0},
		{4, 1, 2, 0}, {5, 1, 2, 0}, {6, 2, 3, 0},
		{7, 4, 5, 0}, {8, 5, 6, 0}, {9, 6, 3, 0},
		{10, 7, 8, 0}, {11, 8, 9, 0}, {12, 8, 11, 1},
		{13, 7, 10, 0}, {14, 10, 8, 0}, {15, 11, 9, 0}, {16, 11, 9, 0},
		{17, 13, 14, 0}, {18, 13, 14, 0}, {19, 12, 15, 0}, {20, 15, 16, 0},
		{21, 17, 18, 0}, {22, 18, 19, 0}, {23, 17, 21, 0},
		{24, 21, 22, 0}, {25, 22, 18, 0}, {26, 19, 20, 0},
	}
}

// fixtureB is the same graph with two milestones: id 8 as MS(1), id 15 as
// MS(2), and id 12 demoted to an ordinary data message.
func fixtureB() []edge {
	edges := fixtureA()
	for i := range edges {
		switch edges[i].id {
		case 8:
			edges[i].ms = 1
		case 12:
			edges[i].ms = 0
		case 15:
			edges[i].ms = 2
		}
	}
	return edges
}

func newTestEngine(t *testing.T) *tangle.Engine {
	t.Helper()
	e := tangle.New(tangle.DefaultConfig(), tangle.WithRandomSource(adapters.NewMathRandSource(42)))
	e.AddSolidEntrypoint(idN(0), ids.GenesisMilestoneIndex)
	return e
}

func insertFixture(t *testing.T, e *tangle.Engine, edges []edge) {
	t.Helper()
	for _, ed := range edges {
		payload := ids.DataPayload(nil)
		if ed.ms != 0 {
			payload = ids.MilestonePayload(ids.MilestoneIndex(ed.ms))
		}
		err := e.InsertGossip(idN(ed.id), payload, idN(ed.ma), idN(ed.pa))
		require.NoError(t, err, "insert %d", ed.id)
	}
}

func TestScenarioA_OneMilestone(t *testing.T) {
	e := newTestEngine(t)
	insertFixture(t, e, fixtureA())

	for i := 1; i <= 26; i++ {
		require.True(t, e.IsSolid(idN(i)), "id %d should be solid", i)
	}

	confirmedExpected := map[int]bool{1: true, 2: true, 3: true, 5: true, 6: true, 8: true, 9: true, 11: true, 12: true}
	for i := 1; i <= 26; i++ {
		_, isConfirmed := e.Confirmed(idN(i))
		require.Equal(t, confirmedExpected[i], isConfirmed, "id %d confirmed mismatch", i)
	}

	require.Equal(t, 4, e.NumTips())
	require.Equal(t, 0, e.NumMissing())
	require.Equal(t, 1, e.NumSEPs())
}

func TestScenarioB_TwoMilestones(t *testing.T) {
	e := newTestEngine(t)
	insertFixture(t, e, fixtureB())

	confirmedExpected := map[int]bool{1: true, 2: true, 3: true, 5: true, 6: true, 8: true, 9: true, 11: true, 15: true}
	for i := 1; i <= 26; i++ {
		_, isConfirmed := e.Confirmed(idN(i))
		require.Equal(t, confirmedExpected[i], isConfirmed, "id %d confirmed mismatch", i)
	}
}

func TestScenarioC_ReversedArrival(t *testing.T) {
	e := newTestEngine(t)
	edges := fixtureB()

	// swap the insertion order of ids 11 and 12 to exercise out-of-order
	// arrival: 12 references 11 as a parent but arrives first.
	var idx11, idx12 int
	for i, ed := range edges {
		if ed.id == 11 {
			idx11 = i
		}
		if ed.id == 12 {
			idx12 = i
		}
	}
	edges[idx11], edges[idx12] = edges[idx12], edges[idx11]

	insertFixture(t, e, edges)

	for i := 1; i <= 26; i++ {
		require.True(t, e.IsSolid(idN(i)), "id %d should be solid", i)
	}
	require.Equal(t, 0, e.NumMissing())

	confirmedExpected := map[int]bool{1: true, 2: true, 3: true, 5: true, 6: true, 8: true, 9: true, 11: true, 15: true}
	for i := 1; i <= 26; i++ {
		_, isConfirmed := e.Confirmed(idN(i))
		require.Equal(t, confirmedExpected[i], isConfirmed, "id %d confirmed mismatch", i)
	}
}

func TestScenarioD_TipCount(t *testing.T) {
	e := newTestEngine(t)
	insertFixture(t, e, fixtureA())
	require.Equal(t, 4, e.NumTips())
}

func TestScenarioE_TipSelectionBounds(t *testing.T) {
	e := newTestEngine(t)
	insertFixture(t, e, fixtureA())
	require.Equal(t, ids.MilestoneIndex(1), e.LSMI())

	seen := map[ids.MessageId]int{}
	for i := 0; i < 20; i++ {
		id, ok := e.SelectTip()
		if !ok {
			continue
		}
		seen[id]++
		require.LessOrEqual(t, seen[id], 3, "tip %s selected too many times", id)
	}
}

func TestScenarioF_EmptyPool(t *testing.T) {
	e := newTestEngine(t)
	_, ok := e.SelectTip()
	require.False(t, ok)
}

func TestInsertDuplicateIDIsFatal(t *testing.T) {
	e := newTestEngine(t)
	insertFixture(t, e, fixtureA()[:1])
	require.Panics(t, func() {
		_ = e.InsertGossip(idN(1), ids.DataPayload(nil), idN(0), idN(0))
	})
}

func TestMissingAncestorRefusesMilestone(t *testing.T) {
	e := newTestEngine(t)
	// id 100 references an unknown, unseeded parent and claims to be a
	// milestone: the confirmer must refuse it rather than panic.
	unknown := idN(999)
	err := e.InsertGossip(idN(100), ids.MilestonePayload(1), unknown, idN(0))
	require.ErrorIs(t, err, tangle.ErrMilestoneAncestorMissing)
	require.False(t, e.IsSolid(idN(100)))
}
