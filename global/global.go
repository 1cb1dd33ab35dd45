package global

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iotaledger/tangle-engine/util"
	"github.com/iotaledger/tangle-engine/util/lines"
	"github.com/iotaledger/tangle-engine/util/set"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global is the engine's process-wide logger plus the lifecycle bookkeeping
// the sim producers use to report which of them are running and to wait
// for all of them to stop. Trimmed from the teacher's global.Global down to
// what tangle/sim/cmd actually call: no shutdown context (the sim driver
// already owns one via context.Context) and no duplicate Assertf/AssertError
// wrappers (callers use the package-level util.Assertf/AssertNoError
// instead, so the engine's fatal faults all go through one place).
type Global struct {
	*zap.SugaredLogger
	logStopOnce    *sync.Once
	mutex          sync.RWMutex
	components     set.Set[string]
	enabledTrace   atomic.Bool
	traceTagsMutex sync.RWMutex
	traceTags      set.Set[string]
}

// LifecycleTraceTag is the trace tag for Global's own work-process
// bookkeeping, alongside the tangle engine's own subsystem tags
// (tangle.TraceTagInsert et al.) in the same trace-tag vocabulary.
const LifecycleTraceTag = "lifecycle"

func NewFromConfig() *Global {
	lvlStr := viper.GetString("logger.level")
	lvl := zapcore.InfoLevel
	if lvlStr != "" {
		var err error
		lvl, err = zapcore.ParseLevel(lvlStr)
		util.AssertNoError(err)
	}

	output := []string{"stderr"}
	out := viper.GetString("logger.output")
	if out != "" {
		output = append(output, out)
	}
	g := _new(lvl, output)
	if tags := viper.GetString("logger.trace_tags"); tags != "" {
		g.EnableTraceTags(tags)
	}
	return g
}

func NewDefault() *Global {
	return _new(zapcore.DebugLevel, []string{"stderr"})
}

func _new(logLevel zapcore.Level, outputs []string) *Global {
	return &Global{
		SugaredLogger: NewLogger("", logLevel, outputs, ""),
		traceTags:     set.New[string](),
		logStopOnce:   &sync.Once{},
		components:    set.New[string](),
	}
}

func (l *Global) MarkWorkProcessStarted(name string) {
	l.Tracef(LifecycleTraceTag, "MarkWorkProcessStarted: %s", name)
	l.mutex.Lock()
	defer l.mutex.Unlock()

	util.Assertf(!l.components.Contains(name), "global: repeating work-process %s", name)
	l.components.Insert(name)
}

func (l *Global) MarkWorkProcessStopped(name string) {
	l.Tracef(LifecycleTraceTag, "MarkWorkProcessStopped: %s", name)
	l.mutex.Lock()
	defer l.mutex.Unlock()

	util.Assertf(l.components.Contains(name), "global: unknown component %s", name)
	l.components.Remove(name)
}

func (l *Global) _withRLock(fun func()) {
	l.mutex.RLock()
	fun()
	l.mutex.RUnlock()
}

func (l *Global) MustWaitAllWorkProcessesStop(timeout ...time.Duration) {
	l.Tracef(LifecycleTraceTag, "MustWaitAllWorkProcessesStop")

	deadline := time.Now().Add(time.Hour)
	if len(timeout) > 0 {
		deadline = time.Now().Add(timeout[0])
	}
	exit := false
	for {
		l._withRLock(func() {
			if len(l.components) == 0 {
				l.logStopOnce.Do(func() {
					l.Log().Info("all work processes stopped")
				})
				exit = true
			}
		})
		if exit {
			return
		}
		time.Sleep(5 * time.Millisecond)
		if time.Now().After(deadline) {
			l._withRLock(func() {
				ln := lines.New()
				for s := range l.components {
					ln.Add(s)
				}
				l.Log().Errorf("MustWaitAllWorkProcessesStop: exceeded timeout. Still running components: %s", ln.Join(","))
			})
			return
		}
	}
}

func (l *Global) TraceLog(log *zap.SugaredLogger, tag string, format string, args ...any) {
	if !l.enabledTrace.Load() {
		return
	}

	l.traceTagsMutex.RLock()
	defer l.traceTagsMutex.RUnlock()

	for _, t := range strings.Split(tag, ",") {
		if l.traceTags.Contains(t) {
			log.Infof("TRACE(%s) %s", t, fmt.Sprintf(format, util.EvalLazyArgs(args...)...))
			return
		}
	}
}

func (l *Global) Log() *zap.SugaredLogger {
	return l.SugaredLogger
}

func (l *Global) Tracef(tag string, format string, args ...any) {
	l.TraceLog(l.Log(), tag, format, args...)
}

// EnableTraceTags turns on Tracef output for the given comma-separated
// subsystem tags (the tangle engine's own §7 names: insert, prop_state,
// confirm, update rsi, get_score, select_tip, or LifecycleTraceTag).
func (l *Global) EnableTraceTags(tags ...string) {
	func() {
		l.traceTagsMutex.Lock()
		defer l.traceTagsMutex.Unlock()

		for _, t := range tags {
			st := strings.Split(t, ",")
			for _, t1 := range st {
				l.traceTags.Insert(strings.TrimSpace(t1))
			}
			l.enabledTrace.Store(true)
		}
	}()

	for _, tag := range tags {
		l.Tracef(tag, "trace tag enabled")
	}
}
