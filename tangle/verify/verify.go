// Package verify implements scan_confirmed_root_transactions: a ground-truth
// check, independent of the engine's own incremental OTRSI/YTRSI
// bookkeeping, that a vertex's snapshot indices really do equal the min/max
// confirmation indices reachable in its past cone. It is for tests and
// diagnostics, never called from the insert path.
package verify

import (
	"github.com/dominikbraun/graph"
	"github.com/iotaledger/tangle-engine/ids"
	"github.com/iotaledger/tangle-engine/tangle"
)

// ScanConfirmedRootTransactions walks the past cone of id, stopping each
// branch at the first confirmed vertex or solid entry point it meets, and
// returns the min/max milestone index among those stopping points.
func ScanConfirmedRootTransactions(e *tangle.Engine, id ids.MessageId) (minIdx, maxIdx ids.MilestoneIndex, ok bool) {
	g := graph.New(func(id ids.MessageId) ids.MessageId { return id }, graph.Directed(), graph.PreventCycles())

	var indices []ids.MilestoneIndex
	visited := make(map[ids.MessageId]bool)

	var walk func(cur ids.MessageId)
	walk = func(cur ids.MessageId) {
		if visited[cur] {
			return
		}
		visited[cur] = true
		_ = g.AddVertex(cur)

		if idx, isConfirmed := e.Confirmed(cur); isConfirmed {
			indices = append(indices, idx)
			return
		}

		v, found := e.Get(cur)
		if !found {
			return
		}
		ma, pa := v.ParentsSnapshot()
		for _, p := range [2]ids.MessageId{ma, pa} {
			if p.IsNull() {
				continue
			}
			_ = g.AddVertex(p)
			_ = g.AddEdge(cur, p)
			walk(p)
		}
	}
	walk(id)

	// Exercise the graph library's own traversal to double-check every
	// vertex added during the walk is actually reachable from id, i.e.
	// the past cone we scored really is connected to the root.
	reachable := make(map[ids.MessageId]bool)
	_ = graph.BFS(g, id, func(v ids.MessageId) bool {
		reachable[v] = true
		return false
	})
	for v := range visited {
		if !reachable[v] {
			return 0, 0, false
		}
	}

	if len(indices) == 0 {
		return 0, 0, false
	}
	minIdx, maxIdx = indices[0], indices[0]
	for _, idx := range indices[1:] {
		if idx < minIdx {
			minIdx = idx
		}
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	return minIdx, maxIdx, true
}
