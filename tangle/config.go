package tangle

import "github.com/iotaledger/tangle-engine/ids"

// Config holds the tip-scoring thresholds and other tunables the spec
// marks as "configurable", defaulted to the reference implementation's
// values.
type Config struct {
	YTRSIDelta    ids.MilestoneIndex
	OTRSIDelta    ids.MilestoneIndex
	BelowMaxDepth ids.MilestoneIndex
	// MaxSelected is the selection-counter ceiling: a tip whose selected
	// counter already exceeds this value is skipped and scheduled for
	// pool removal.
	MaxSelected int
}

func DefaultConfig() Config {
	return Config{
		YTRSIDelta:    2,
		OTRSIDelta:    7,
		BelowMaxDepth: 15,
		MaxSelected:   2,
	}
}
