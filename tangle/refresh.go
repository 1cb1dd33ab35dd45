package tangle

import (
	"github.com/gammazero/deque"
	"github.com/iotaledger/tangle-engine/ids"
)

// updateSnapshotIndices is the refresher: a future-cone walk over the ids
// the confirmer just finalized, rewriting any descendant's OTRSI/YTRSI that
// was still tracking one of those ids as its dominating tail. Grounded on
// the hornet lineage's UpdateConeRootIndexes future-cone walk, which uses
// the same "traversed set, worklist of children" shape to avoid revisiting
// a vertex reachable through more than one path.
func (e *Engine) updateSnapshotIndices(newlyConfirmed []ids.MessageId, m ids.MilestoneIndex) {
	sw := e.stopwatch()
	defer func() { e.log.Tracef(TraceTagUpdateRSI, "m=%d took=%s", m, sw.Elapsed()) }()

	worklist := deque.New[ids.MessageId]()
	for i := len(newlyConfirmed) - 1; i >= 0; i-- {
		worklist.PushBack(newlyConfirmed[i])
	}
	processed := make(map[ids.MessageId]struct{}, len(newlyConfirmed))

	for worklist.Len() > 0 {
		id := worklist.PopBack()
		if _, ok := processed[id]; ok {
			continue
		}
		processed[id] = struct{}{}

		v, ok := e.store.get(id)
		if !ok {
			continue
		}

		var otrsiM, ytrsiM ids.IndexKey
		var children []ids.MessageId
		v.RUnwrap(func(vd *vertexData) {
			otrsiM, ytrsiM = vd.otrsi, vd.ytrsi
			children = vd.ChildrenSnapshot()
		})

		for _, c := range children {
			cv, ok := e.store.get(c)
			if !ok {
				continue
			}

			var alreadyConfirmed, needsEnqueue bool
			cv.Unwrap(func(vd *vertexData) {
				if _, confirmed := vd.Confirmed(); confirmed {
					alreadyConfirmed = true
					return
				}
				if vd.hasRSI && vd.otrsi.Tail == id {
					vd.otrsi = ids.NewIndexKey(otrsiM.Index, id)
				}
				if vd.hasRSI && vd.ytrsi.Tail == id {
					vd.ytrsi = ids.NewIndexKey(ytrsiM.Index, id)
				}
				if _, done := processed[c]; !done {
					needsEnqueue = true
				}
			})
			if alreadyConfirmed {
				continue
			}
			if needsEnqueue {
				worklist.PushBack(c)
			}
		}
	}
}
