package ids

// PayloadKind tags the variant carried by a Payload.
type PayloadKind int

const (
	PayloadData PayloadKind = iota
	PayloadMilestone
)

// Payload is a tagged variant of {Data, Milestone(MilestoneIndex)}.
// Implementers may stack further tags (value, checkpoint) as opaque
// passthrough; the core only ever distinguishes "is this a milestone"
// and, if so, which index it carries.
type Payload struct {
	Kind           PayloadKind
	MilestoneIndex MilestoneIndex
	Opaque         []byte
}

func DataPayload(opaque []byte) Payload {
	return Payload{Kind: PayloadData, Opaque: opaque}
}

func MilestonePayload(index MilestoneIndex) Payload {
	return Payload{Kind: PayloadMilestone, MilestoneIndex: index}
}

func (p Payload) IsMilestone() bool {
	return p.Kind == PayloadMilestone
}
