package ids

import "bytes"

// IndexKey is the composite (MilestoneIndex, MessageId) pair used to carry
// OTRSI/YTRSI. Ordered lexicographically: index first, ties broken by id,
// so min/max aggregation over two parents' keys stays deterministic even
// when both parents carry the same index but a different originating id.
type IndexKey struct {
	Index MilestoneIndex
	Tail  MessageId
}

func NewIndexKey(index MilestoneIndex, tail MessageId) IndexKey {
	return IndexKey{Index: index, Tail: tail}
}

// Less reports whether k sorts strictly before other.
func (k IndexKey) Less(other IndexKey) bool {
	if k.Index != other.Index {
		return k.Index < other.Index
	}
	return bytes.Compare(k.Tail[:], other.Tail[:]) < 0
}

// MinIndexKey returns the lexicographically smaller of a and b.
func MinIndexKey(a, b IndexKey) IndexKey {
	if a.Less(b) {
		return a
	}
	return b
}

// MaxIndexKey returns the lexicographically larger of a and b.
func MaxIndexKey(a, b IndexKey) IndexKey {
	if b.Less(a) {
		return a
	}
	return b
}
