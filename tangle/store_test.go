package tangle

import (
	"sync"
	"testing"

	"github.com/iotaledger/tangle-engine/ids"
	"github.com/stretchr/testify/require"
)

func TestVertexStoreInsertRejectsDuplicate(t *testing.T) {
	s := newVertexStore()
	id := ids.MessageIdFromBytes([]byte("a"))
	v := newVertex(id, ids.NullID, ids.NullID, ids.DataPayload(nil), nil)

	require.False(t, s.insert(id, v))
	require.True(t, s.insert(id, v))
	require.True(t, s.has(id))
}

func TestVertexStoreConcurrentDisjointKeys(t *testing.T) {
	s := newVertexStore()
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := ids.MessageIdFromBytes([]byte{byte(i), byte(i >> 8)})
			v := newVertex(id, ids.NullID, ids.NullID, ids.DataPayload(nil), nil)
			s.insert(id, v)
		}()
	}
	wg.Wait()
	require.Equal(t, 200, s.len())
}

func TestTipSetAddRemove(t *testing.T) {
	ts := newTipSet()
	id := ids.MessageIdFromBytes([]byte("tip"))
	ts.add(id)
	require.True(t, ts.contains(id))
	require.Equal(t, 1, ts.len())
	ts.remove(id)
	require.False(t, ts.contains(id))
}

func TestMissingIndexRecordAndTake(t *testing.T) {
	mi := newMissingIndex()
	parent := ids.MessageIdFromBytes([]byte("p"))
	child := ids.MessageIdFromBytes([]byte("c"))
	mi.record(parent, child)
	require.Equal(t, 1, mi.len())

	waiters, ok := mi.takeWaiters(parent)
	require.True(t, ok)
	require.Contains(t, waiters, child)
	require.Equal(t, 0, mi.len())

	_, ok = mi.takeWaiters(parent)
	require.False(t, ok)
}

func TestSepTable(t *testing.T) {
	st := newSepTable()
	id := ids.MessageIdFromBytes([]byte("sep"))
	st.add(id, 5)
	idx, ok := st.get(id)
	require.True(t, ok)
	require.Equal(t, ids.MilestoneIndex(5), idx)
	require.Equal(t, 1, st.len())
}
