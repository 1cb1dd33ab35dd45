package ids_test

import (
	"testing"

	"github.com/iotaledger/tangle-engine/ids"
	"github.com/stretchr/testify/require"
)

func idOf(b byte) ids.MessageId {
	var id ids.MessageId
	id[0] = b
	return id
}

func TestIndexKeyOrdersByIndexFirst(t *testing.T) {
	lo := ids.NewIndexKey(1, idOf(0xff))
	hi := ids.NewIndexKey(2, idOf(0x00))
	require.True(t, lo.Less(hi))
	require.False(t, hi.Less(lo))
}

func TestIndexKeyTiesBreakByID(t *testing.T) {
	a := ids.NewIndexKey(5, idOf(0x01))
	b := ids.NewIndexKey(5, idOf(0x02))
	require.True(t, a.Less(b))
	require.Equal(t, a, ids.MinIndexKey(a, b))
	require.Equal(t, b, ids.MaxIndexKey(a, b))
}

func TestMinMaxIndexKey(t *testing.T) {
	a := ids.NewIndexKey(3, idOf(0x01))
	b := ids.NewIndexKey(7, idOf(0x01))
	require.Equal(t, a, ids.MinIndexKey(a, b))
	require.Equal(t, b, ids.MaxIndexKey(a, b))
}

func TestMessageIdFromBytesDeterministic(t *testing.T) {
	a := ids.MessageIdFromBytes([]byte("hello"))
	b := ids.MessageIdFromBytes([]byte("hello"))
	c := ids.MessageIdFromBytes([]byte("world"))
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.False(t, a.IsNull())
	require.True(t, ids.NullID.IsNull())
}
