package tangle

import (
	"github.com/gammazero/deque"
	"github.com/iotaledger/tangle-engine/ids"
)

// confirmRecentCone walks the past cone of an arriving milestone's two
// parents, finalizing every unconfirmed ancestor. Grounded on the hornet
// lineage's past-cone traversal (pkg/dag/cone_root_indexes.go's
// GetConeRootIndexes / TraverseParents), generalized from the UTXO
// "outdated cone root index" check to this spec's confirm/otrsi=ytrsi=(m,id)
// semantics.
func (e *Engine) confirmRecentCone(ma, pa ids.MessageId, m ids.MilestoneIndex) ([]ids.MessageId, error) {
	sw := e.stopwatch()
	defer func() { e.log.Tracef(TraceTagConfirm, "m=%d took=%s", m, sw.Elapsed()) }()

	stack := deque.New[ids.MessageId]()
	stack.PushBack(ma)
	stack.PushBack(pa)

	var newlyConfirmed []ids.MessageId

	for stack.Len() > 0 {
		id := stack.PopBack()

		if _, isSEP := e.seps.get(id); isSEP {
			continue
		}

		v, ok := e.store.get(id)
		if !ok {
			return nil, ErrMilestoneAncestorMissing
		}

		var alreadyConfirmed bool
		v.RUnwrap(func(vd *vertexData) {
			_, alreadyConfirmed = vd.Confirmed()
		})
		if alreadyConfirmed {
			continue
		}

		var parentMA, parentPA ids.MessageId
		v.Unwrap(func(vd *vertexData) {
			vd.hasConfirmed = true
			vd.confirmedAt = m
			vd.otrsi = ids.NewIndexKey(m, id)
			vd.ytrsi = ids.NewIndexKey(m, id)
			vd.hasRSI = true
			parentMA, parentPA = vd.ma, vd.pa
		})

		if e.metrics != nil {
			e.metrics.confirmed.Inc()
		}

		newlyConfirmed = append(newlyConfirmed, id)
		stack.PushBack(parentMA)
		stack.PushBack(parentPA)
	}

	return newlyConfirmed, nil
}
