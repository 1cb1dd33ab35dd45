package tangle

import "github.com/iotaledger/tangle-engine/global"

// Trace tag vocabulary for the engine's subsystems, per §7: "logs name the
// subsystem... and report durations and counts". Exported so callers (sim,
// cmd/tangle-sim) can enable tracing for the same names the engine logs
// under via Global.EnableTraceTags.
const (
	TraceTagInsert    = "insert"
	TraceTagPropState = "prop_state"
	TraceTagConfirm   = "confirm"
	TraceTagUpdateRSI = "update rsi"
	TraceTagGetScore  = "get_score"
	TraceTagSelectTip = "select_tip"
	TraceTagAddSEP    = "add_sep"
)

func (e *Engine) stopwatch() global.Stopwatch {
	return global.StartStopwatch()
}
