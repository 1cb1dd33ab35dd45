package set_test

import (
	"testing"

	"github.com/iotaledger/tangle-engine/util/set"
	"github.com/stretchr/testify/require"
)

func TestSetInsertContainsRemove(t *testing.T) {
	s := set.New[string]()
	require.False(t, s.Contains("a"))

	s.Insert("a")
	require.True(t, s.Contains("a"))
	require.Len(t, s, 1)

	s.Remove("a")
	require.False(t, s.Contains("a"))
}

func TestSetNewWithElements(t *testing.T) {
	s := set.New("a", "b", "a")
	require.Len(t, s, 2)
}
