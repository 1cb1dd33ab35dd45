package tangle

import (
	"sync"

	"github.com/iotaledger/tangle-engine/ids"
)

// vertexData is the mutable record behind a Vertex. All reads/writes to it
// must go through Vertex.Unwrap/RUnwrap so the per-vertex lock is always
// held, the same discipline the teacher applies to WrappedTx's payload.
type vertexData struct {
	id       ids.MessageId
	ma, pa   ids.MessageId
	children map[ids.MessageId]struct{}
	payload  ids.Payload

	solid bool

	hasConfirmed bool
	confirmedAt  ids.MilestoneIndex

	hasRSI bool
	otrsi  ids.IndexKey
	ytrsi  ids.IndexKey

	selected int
	valid    bool
}

// Vertex is the concurrency-safe store record for one message: parents,
// children, solidity, confirmation and snapshot-index state, guarded by its
// own lock so readers/writers against disjoint vertices never contend.
type Vertex struct {
	mu sync.RWMutex
	vertexData
}

func newVertex(id, ma, pa ids.MessageId, payload ids.Payload, children map[ids.MessageId]struct{}) *Vertex {
	if children == nil {
		children = make(map[ids.MessageId]struct{})
	}
	return &Vertex{
		vertexData: vertexData{
			id:       id,
			ma:       ma,
			pa:       pa,
			children: children,
			payload:  payload,
			valid:    true,
		},
	}
}

// Unwrap runs fun with the vertex locked for writing.
func (v *Vertex) Unwrap(fun func(vd *vertexData)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fun(&v.vertexData)
}

// RUnwrap runs fun with the vertex locked for reading.
func (v *Vertex) RUnwrap(fun func(vd *vertexData)) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	fun(&v.vertexData)
}

func (vd *vertexData) Parents() (ma, pa ids.MessageId) {
	return vd.ma, vd.pa
}

// ParentsSnapshot is the exported, lock-safe counterpart of Parents for
// callers outside the package (e.g. tangle/verify).
func (v *Vertex) ParentsSnapshot() (ma, pa ids.MessageId) {
	v.RUnwrap(func(vd *vertexData) { ma, pa = vd.Parents() })
	return
}

func (vd *vertexData) IsSolid() bool {
	return vd.solid
}

func (vd *vertexData) Confirmed() (ids.MilestoneIndex, bool) {
	return vd.confirmedAt, vd.hasConfirmed
}

func (vd *vertexData) OTRSI() (ids.IndexKey, bool) {
	return vd.otrsi, vd.hasRSI
}

func (vd *vertexData) YTRSI() (ids.IndexKey, bool) {
	return vd.ytrsi, vd.hasRSI
}

func (vd *vertexData) NumChildren() int {
	return len(vd.children)
}

func (vd *vertexData) ChildrenSnapshot() []ids.MessageId {
	out := make([]ids.MessageId, 0, len(vd.children))
	for c := range vd.children {
		out = append(out, c)
	}
	return out
}

func (vd *vertexData) addChild(id ids.MessageId) {
	vd.children[id] = struct{}{}
}
