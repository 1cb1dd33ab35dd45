// Package util holds small assertion and formatting helpers shared across
// the engine, carried over from the teacher's own util package idiom.
package util

import (
	"fmt"
)

// Assertf aborts the process with a formatted message if cond is false.
// Reserved for precondition violations: invariants the caller is expected
// to have already checked, not recoverable runtime conditions.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, EvalLazyArgs(args...)...))
	}
}

// AssertNoError panics if err is non-nil, prefixing the message when given.
func AssertNoError(err error, prefix ...string) {
	if err == nil {
		return
	}
	pref := "error: "
	if len(prefix) > 0 {
		pref = fmt.Sprint(prefix) + ": "
	}
	panic(pref + err.Error())
}

// EvalLazyArgs resolves any func() any argument into its result, so callers
// can pass expensive-to-compute trace arguments without paying for them
// unless the log line actually fires.
func EvalLazyArgs(args ...any) []any {
	ret := make([]any, len(args))
	for i, a := range args {
		if fn, ok := a.(func() any); ok {
			ret[i] = fn()
		} else {
			ret[i] = a
		}
	}
	return ret
}
