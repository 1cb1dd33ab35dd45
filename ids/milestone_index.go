package ids

// MilestoneIndex is a monotonically increasing index assigned by the
// coordinator. Index 0 is reserved for genesis.
type MilestoneIndex uint32

const GenesisMilestoneIndex MilestoneIndex = 0
