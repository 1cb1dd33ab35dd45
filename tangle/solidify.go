package tangle

import (
	"github.com/gammazero/deque"
	"github.com/iotaledger/tangle-engine/ids"
)

// propagateState is the solidifier: a bounded downward traversal that
// marks descendants solid and assigns OTRSI/YTRSI as soon as both parents
// are solid. Grounded in the teacher ecosystem's cone_root_indexes.go
// future-cone walk (UpdateConeRootIndexes), generalized from UTXO balances
// to the two-parent min/max aggregation this spec defines.
func (e *Engine) propagateState(root ids.MessageId) {
	sw := e.stopwatch()
	defer func() { e.log.Tracef(TraceTagPropState, "root=%s took=%s", root, sw.Elapsed()) }()

	worklist := deque.New[ids.MessageId]()
	worklist.PushBack(root)

	for worklist.Len() > 0 {
		id := worklist.PopFront()

		v, ok := e.store.get(id)
		if !ok {
			continue
		}

		var alreadySolid bool
		v.RUnwrap(func(vd *vertexData) { alreadySolid = vd.solid })
		if alreadySolid {
			continue
		}

		var ma, pa ids.MessageId
		v.RUnwrap(func(vd *vertexData) { ma, pa = vd.Parents() })

		if !e.isSolidOrSEP(ma) || !e.isSolidOrSEP(pa) {
			continue
		}

		maO, _ := e.otrsiKeyOf(ma)
		paO, _ := e.otrsiKeyOf(pa)
		maY, _ := e.ytrsiKeyOf(ma)
		paY, _ := e.ytrsiKeyOf(pa)

		otrsi := ids.MinIndexKey(maO, paO)
		ytrsi := ids.MaxIndexKey(maY, paY)

		var children []ids.MessageId
		v.Unwrap(func(vd *vertexData) {
			vd.solid = true
			vd.otrsi = otrsi
			vd.ytrsi = ytrsi
			vd.hasRSI = true
			children = vd.ChildrenSnapshot()
		})

		if e.metrics != nil {
			e.metrics.solidified.Inc()
		}

		var isMilestone bool
		var msIndex ids.MilestoneIndex
		v.RUnwrap(func(vd *vertexData) {
			isMilestone = vd.payload.IsMilestone()
			msIndex = vd.payload.MilestoneIndex
		})
		if isMilestone {
			e.bumpLSMI(msIndex)
		}

		for _, c := range children {
			worklist.PushBack(c)
		}
	}
}

func (e *Engine) bumpLSMI(m ids.MilestoneIndex) {
	for {
		cur := e.lsmi.Load()
		if uint32(m) <= cur {
			return
		}
		if e.lsmi.CAS(cur, uint32(m)) {
			return
		}
	}
}
