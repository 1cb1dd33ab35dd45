package tangle

import (
	"github.com/iotaledger/tangle-engine/ids"
)

type tipCandidate struct {
	id    ids.MessageId
	score ids.Score
}

// tipScore computes tip_score(id, otrsi, ytrsi) against lsmi, per §4.5's
// YTRSI_DELTA/OTRSI_DELTA/BELOW_MAX_DEPTH thresholds.
func (e *Engine) tipScore(id ids.MessageId, otrsi, ytrsi ids.IndexKey) ids.Score {
	sw := e.stopwatch()
	var score ids.Score
	defer func() { e.log.Tracef(TraceTagGetScore, "id=%s score=%s took=%s", id, score, sw.Elapsed()) }()

	lsmi := e.LSMI()

	if diff(lsmi, ytrsi.Index) > e.cfg.YTRSIDelta {
		score = ids.Lazy
		return score
	}
	if diff(lsmi, otrsi.Index) > e.cfg.BelowMaxDepth {
		score = ids.Lazy
		return score
	}

	counter := 2
	v, ok := e.store.get(id)
	if ok {
		var ma, pa ids.MessageId
		v.RUnwrap(func(vd *vertexData) { ma, pa = vd.Parents() })
		for _, p := range []ids.MessageId{ma, pa} {
			pOtrsi, present := e.otrsiKeyOf(p)
			if !present {
				continue
			}
			if diff(lsmi, pOtrsi.Index) > e.cfg.OTRSIDelta {
				counter--
			}
		}
	}

	switch counter {
	case 0:
		score = ids.Lazy
	case 1:
		score = ids.SemiLazy
	default:
		score = ids.NonLazy
	}
	return score
}

// diff returns lsmi - idx, saturating at 0 when idx > lsmi (milestone
// indices are unsigned; a parent's index can never legitimately exceed
// lsmi, but defensive saturation keeps this from wrapping).
func diff(lsmi, idx ids.MilestoneIndex) ids.MilestoneIndex {
	if idx >= lsmi {
		return 0
	}
	return lsmi - idx
}

// selectTip implements §4.5: enumerate tips, score them, weighted-sample
// over the non-lazy candidates, and excise disqualified tips from the pool
// (the redesign resolving the source's unimplemented "remove invalid
// tips" TODO).
func (e *Engine) selectTip() (ids.MessageId, bool) {
	if e.metrics != nil {
		e.metrics.selectCalls.Inc()
	}
	sw := e.stopwatch()
	defer func() { e.log.Tracef(TraceTagSelectTip, "took=%s", sw.Elapsed()) }()

	snapshot := e.tips.snapshot()
	if len(snapshot) == 0 {
		return ids.MessageId{}, false
	}

	candidates := make([]tipCandidate, 0, len(snapshot))
	sum := 0

	for _, id := range snapshot {
		v, ok := e.store.get(id)
		if !ok {
			continue
		}

		var solid, valid bool
		var selected int
		var otrsi, ytrsi ids.IndexKey
		var hasRSI bool
		v.RUnwrap(func(vd *vertexData) {
			solid = vd.solid
			valid = vd.valid
			selected = vd.selected
			otrsi, ytrsi = vd.otrsi, vd.ytrsi
			hasRSI = vd.hasRSI
		})

		disqualified := !solid || !valid || selected > e.cfg.MaxSelected
		var score ids.Score
		if !disqualified {
			if !hasRSI {
				disqualified = true
			} else {
				score = e.tipScore(id, otrsi, ytrsi)
				if score == ids.Lazy {
					disqualified = true
				}
			}
		}

		if disqualified {
			e.tips.remove(id)
			continue
		}

		candidates = append(candidates, tipCandidate{id: id, score: score})
		sum += int(score)
	}

	if len(candidates) == 0 || sum == 0 {
		return ids.MessageId{}, false
	}

	r := e.random.UniformInt(sum)
	for _, c := range candidates {
		r -= int(c.score)
		if r <= 0 {
			v, ok := e.store.get(c.id)
			if ok {
				v.Unwrap(func(vd *vertexData) { vd.selected++ })
			}
			return c.id, true
		}
	}

	// Unreachable unless the weighted walk above has an off-by-one; fall
	// back to the last candidate rather than report no result.
	last := candidates[len(candidates)-1]
	v, ok := e.store.get(last.id)
	if ok {
		v.Unwrap(func(vd *vertexData) { vd.selected++ })
	}
	return last.id, true
}

// selectTwoTips performs two independent selectTip draws. Per the
// redesign's resolved open question, the source's behavior is kept: the
// same tip may be returned twice, since a no-repeat policy would need a
// shared exclusion set threaded between the two draws that the spec's
// concurrency model does not provide for free.
func (e *Engine) selectTwoTips() (ids.MessageId, ids.MessageId, bool) {
	a, ok := e.selectTip()
	if !ok {
		return ids.MessageId{}, ids.MessageId{}, false
	}
	b, ok := e.selectTip()
	if !ok {
		return ids.MessageId{}, ids.MessageId{}, false
	}
	return a, b, true
}
