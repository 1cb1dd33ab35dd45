package lines_test

import (
	"testing"

	"github.com/iotaledger/tangle-engine/util/lines"
	"github.com/stretchr/testify/require"
)

func TestLinesJoin(t *testing.T) {
	l := lines.New().Add("a").Add("b=%d", 2)
	require.Equal(t, "a,b=2", l.Join(","))
	require.Equal(t, "a\nb=2", l.String())
}
