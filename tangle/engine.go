package tangle

import (
	"sync"

	"github.com/iotaledger/tangle-engine/adapters"
	"github.com/iotaledger/tangle-engine/global"
	"github.com/iotaledger/tangle-engine/ids"
	"github.com/iotaledger/tangle-engine/util"
	"go.uber.org/atomic"
)

// Engine is the process-wide Tangle core: vertex store, tip set,
// missing-parents index, SEP table and the lmi/lsmi counters, plus the
// adapters it depends on. The reference design calls for "one owned
// engine handle threaded through the entry points, or one lazily
// initialized process-global guarded against re-initialization"; this
// module offers both: Engine is a plain, independently constructible
// value for tests, and Init/Get/Teardown manage the singleton for
// callers that want the global.
type Engine struct {
	log *global.Global
	cfg Config

	store   *vertexStore
	tips    *tipSet
	missing *missingIndex
	seps    *sepTable

	lmi  atomic.Uint32
	lsmi atomic.Uint32

	db      adapters.DBProbe
	random  adapters.RandomSource
	clock   adapters.Clock
	metrics *Metrics
}

// Option configures an Engine at construction time.
type Option func(*Engine)

func WithDBProbe(db adapters.DBProbe) Option {
	return func(e *Engine) { e.db = db }
}

func WithRandomSource(r adapters.RandomSource) Option {
	return func(e *Engine) { e.random = r }
}

func WithClock(c adapters.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func WithLogger(l *global.Global) Option {
	return func(e *Engine) { e.log = l }
}

// New builds a standalone Engine, not registered as the process singleton.
// Tests that need a fresh engine per case should use this instead of
// Init/Teardown.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		store:   newVertexStore(),
		tips:    newTipSet(),
		missing: newMissingIndex(),
		seps:    newSepTable(),
		db:      adapters.NoopDBProbe{},
		random:  adapters.NewMathRandSource(1),
		clock:   adapters.SystemClock,
		log:     global.NewDefault(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

var (
	singletonMu sync.Mutex
	singleton   *Engine
)

// Init creates the process-wide singleton engine. Re-initialization is a
// fatal fault per §5 ("Process-wide singleton... Re-initialization is a
// fatal fault").
func Init(cfg Config, opts ...Option) *Engine {
	singletonMu.Lock()
	defer singletonMu.Unlock()
	util.Assertf(singleton == nil, "tangle: engine already initialized")
	singleton = New(cfg, opts...)
	return singleton
}

// Get returns the process-wide singleton engine. Calling it before Init is
// a fatal fault.
func Get() *Engine {
	singletonMu.Lock()
	defer singletonMu.Unlock()
	util.Assertf(singleton != nil, "tangle: engine not initialized")
	return singleton
}

// Teardown releases the process-wide singleton so a later Init can succeed.
func Teardown() {
	singletonMu.Lock()
	defer singletonMu.Unlock()
	singleton = nil
}

// AddSolidEntrypoint pre-seeds a solid entry point. Must be called before
// any insert that might transitively depend on id.
func (e *Engine) AddSolidEntrypoint(id ids.MessageId, index ids.MilestoneIndex) {
	e.seps.add(id, index)
	e.log.Tracef(TraceTagAddSEP, "seeded SEP %s at index %d", id, index)
}

// otrsiKeyOf and ytrsiKeyOf resolve the IndexKey an already-solid id
// (store or SEP) should contribute to a min/max aggregation: its own
// (otrsi or ytrsi index, id) if stored, or (sepIndex, id) if it is a solid
// entry point.
func (e *Engine) otrsiKeyOf(id ids.MessageId) (ids.IndexKey, bool) {
	if idx, ok := e.seps.get(id); ok {
		return ids.NewIndexKey(idx, id), true
	}
	v, ok := e.store.get(id)
	if !ok {
		return ids.IndexKey{}, false
	}
	var key ids.IndexKey
	var present bool
	v.RUnwrap(func(vd *vertexData) {
		if vd.hasRSI {
			key, present = ids.NewIndexKey(vd.otrsi.Index, id), true
		}
	})
	return key, present
}

func (e *Engine) ytrsiKeyOf(id ids.MessageId) (ids.IndexKey, bool) {
	if idx, ok := e.seps.get(id); ok {
		return ids.NewIndexKey(idx, id), true
	}
	v, ok := e.store.get(id)
	if !ok {
		return ids.IndexKey{}, false
	}
	var key ids.IndexKey
	var present bool
	v.RUnwrap(func(vd *vertexData) {
		if vd.hasRSI {
			key, present = ids.NewIndexKey(vd.ytrsi.Index, id), true
		}
	})
	return key, present
}

// isSolidOrSEP reports whether id is usable as a solid parent: either a
// seeded SEP, or a stored vertex whose solid flag is set.
func (e *Engine) isSolidOrSEP(id ids.MessageId) bool {
	if _, ok := e.seps.get(id); ok {
		return true
	}
	v, ok := e.store.get(id)
	if !ok {
		return false
	}
	solid := false
	v.RUnwrap(func(vd *vertexData) { solid = vd.IsSolid() })
	return solid
}

// --- inspection / testing surface (§6) ---

func (e *Engine) IsSolid(id ids.MessageId) bool {
	if _, ok := e.seps.get(id); ok {
		return true
	}
	v, ok := e.store.get(id)
	if !ok {
		return false
	}
	solid := false
	v.RUnwrap(func(vd *vertexData) { solid = vd.IsSolid() })
	return solid
}

func (e *Engine) IsMilestone(id ids.MessageId) bool {
	v, ok := e.store.get(id)
	if !ok {
		return false
	}
	isMs := false
	v.RUnwrap(func(vd *vertexData) { isMs = vd.payload.IsMilestone() })
	return isMs
}

func (e *Engine) Confirmed(id ids.MessageId) (ids.MilestoneIndex, bool) {
	if idx, ok := e.seps.get(id); ok {
		return idx, true
	}
	v, ok := e.store.get(id)
	if !ok {
		return 0, false
	}
	var m ids.MilestoneIndex
	var has bool
	v.RUnwrap(func(vd *vertexData) { m, has = vd.Confirmed() })
	return m, has
}

func (e *Engine) GetOTRSI(id ids.MessageId) (ids.IndexKey, bool) {
	return e.otrsiKeyOf(id)
}

func (e *Engine) GetYTRSI(id ids.MessageId) (ids.IndexKey, bool) {
	return e.ytrsiKeyOf(id)
}

func (e *Engine) NumTips() int {
	return e.tips.len()
}

func (e *Engine) Get(id ids.MessageId) (*Vertex, bool) {
	return e.store.get(id)
}

func (e *Engine) LMI() ids.MilestoneIndex {
	return ids.MilestoneIndex(e.lmi.Load())
}

func (e *Engine) LSMI() ids.MilestoneIndex {
	return ids.MilestoneIndex(e.lsmi.Load())
}

func (e *Engine) NumMissing() int {
	return e.missing.len()
}

func (e *Engine) NumSEPs() int {
	return e.seps.len()
}
