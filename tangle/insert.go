package tangle

import (
	"github.com/iotaledger/tangle-engine/ids"
	"github.com/iotaledger/tangle-engine/util"
)

// InsertGossip and InsertOwn share the insert path (§4.1/§4.6); the two
// names exist so a caller can distinguish a vertex whose parents an
// upstream peer already chose from one being issued locally after tip
// selection. The core itself only ever inspects the payload variant.
func (e *Engine) InsertGossip(id ids.MessageId, payload ids.Payload, ma, pa ids.MessageId) error {
	return e.insert(id, payload, ma, pa)
}

func (e *Engine) InsertOwn(id ids.MessageId, payload ids.Payload, ma, pa ids.MessageId) error {
	return e.insert(id, payload, ma, pa)
}

func (e *Engine) insert(id ids.MessageId, payload ids.Payload, ma, pa ids.MessageId) error {
	sw := e.stopwatch()
	defer func() { e.log.Tracef(TraceTagInsert, "id=%s took=%s", id, sw.Elapsed()) }()

	util.Assertf(!e.store.has(id), "tangle: duplicate id %s", id)

	// If this is a milestone, run the confirmer over its parents first, so
	// a missing ancestor is refused before any tip/children bookkeeping is
	// mutated — the redesign resolving §4.3/§9's "missing ancestor below
	// milestone" flag as a refusal rather than a crash, done without
	// leaving partial state behind when the refusal happens.
	var newlyConfirmed []ids.MessageId
	var confirmedAt ids.MilestoneIndex
	var isMilestone bool
	if payload.IsMilestone() {
		isMilestone = true
		m := payload.MilestoneIndex
		var err error
		newlyConfirmed, err = e.confirmRecentCone(ma, pa, m)
		if err != nil {
			return err
		}
		confirmedAt = m
	}

	// Step 1: remove ma, pa from the tip set (they now have a child).
	e.tips.remove(ma)
	e.tips.remove(pa)

	// Step 2: determine id's initial children set.
	children, hadWaiters := e.missing.takeWaiters(id)
	if !hadWaiters {
		e.tips.add(id)
	}

	// Step 3: wire up parent links / missing-parents bookkeeping.
	for _, p := range [2]ids.MessageId{ma, pa} {
		if p.IsNull() {
			continue
		}
		if v, ok := e.store.get(p); ok {
			v.Unwrap(func(vd *vertexData) { vd.addChild(id) })
			continue
		}
		if _, isSEP := e.seps.get(p); isSEP {
			continue
		}
		if e.db.CheckDB(p) {
			continue
		}
		e.missing.record(p, id)
	}

	// Step 4 (continued): apply the confirmer's result and run the
	// refresher before the new vertex is materialized — the refresher
	// walks the stored future cone of the newly confirmed ids; id is not
	// stored yet, so it is never reached.
	if isMilestone {
		e.bumpLMI(confirmedAt)
		if len(newlyConfirmed) > 0 {
			e.updateSnapshotIndices(newlyConfirmed, confirmedAt)
		}
	}

	// Step 5: materialize and store the vertex.
	v := newVertex(id, ma, pa, payload, children)
	if isMilestone {
		v.Unwrap(func(vd *vertexData) {
			vd.hasConfirmed = true
			vd.confirmedAt = confirmedAt
		})
	}
	alreadyPresent := e.store.insert(id, v)
	util.Assertf(!alreadyPresent, "tangle: duplicate id %s", id)

	if e.metrics != nil {
		e.metrics.inserts.Inc()
		e.metrics.tipsGauge.Set(float64(e.tips.len()))
		e.metrics.lmiGauge.Set(float64(e.LMI()))
		e.metrics.lsmiGauge.Set(float64(e.LSMI()))
	}

	// Step 6: solidifier.
	e.propagateState(id)

	return nil
}

func (e *Engine) bumpLMI(m ids.MilestoneIndex) {
	for {
		cur := e.lmi.Load()
		if uint32(m) <= cur {
			return
		}
		if e.lmi.CAS(cur, uint32(m)) {
			return
		}
	}
}

// SelectTwoTips returns a pair obtained by two independent select_tip
// calls; if either fails, the operation fails.
func (e *Engine) SelectTwoTips() (ids.MessageId, ids.MessageId, bool) {
	return e.selectTwoTips()
}

// SelectTip implements §4.5's select_tip: weighted sampling over the
// non-lazy tip candidates, or false if the pool is empty or has no
// non-lazy candidates.
func (e *Engine) SelectTip() (ids.MessageId, bool) {
	return e.selectTip()
}
