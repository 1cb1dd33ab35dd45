package global

import "time"

// Stopwatch reports elapsed wall-clock time for an engine operation,
// the Go counterpart of the original Tangle's Instant::now()/elapsed()
// timing around insert/propagate_state/confirm_recent_cone/select_tip.
type Stopwatch struct {
	start time.Time
}

func StartStopwatch() Stopwatch {
	return Stopwatch{start: time.Now()}
}

func (s Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}
