package util_test

import (
	"errors"
	"testing"

	"github.com/iotaledger/tangle-engine/util"
	"github.com/stretchr/testify/require"
)

func TestAssertfPanicsOnFalse(t *testing.T) {
	require.Panics(t, func() { util.Assertf(false, "boom %d", 1) })
	require.NotPanics(t, func() { util.Assertf(true, "fine") })
}

func TestAssertNoErrorPanicsOnError(t *testing.T) {
	require.Panics(t, func() { util.AssertNoError(errors.New("bad")) })
	require.NotPanics(t, func() { util.AssertNoError(nil) })
}

func TestEvalLazyArgsResolvesFuncs(t *testing.T) {
	args := util.EvalLazyArgs(1, func() any { return 2 }, "three")
	require.Equal(t, []any{1, 2, "three"}, args)
}
