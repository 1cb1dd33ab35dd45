package tangle

import "errors"

// ErrMilestoneAncestorMissing is returned when a milestone's past-cone walk
// reaches an id that is neither stored nor a solid entry point. Per the
// redesign resolving §4.3/§9's open question, this refuses the milestone's
// confirmation rather than crashing the process: it is a precondition
// violation of the milestone's solidity, surfaced to the caller of insert
// so the milestone can be held back until its past cone actually is solid.
var ErrMilestoneAncestorMissing = errors.New("tangle: milestone ancestor missing below milestone index")
