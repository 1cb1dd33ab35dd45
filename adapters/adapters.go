// Package adapters defines the contracts the core depends upon or drives:
// the DB probe, the random source used for weighted tip sampling, the
// clock used for instrumentation, and the producer-side callbacks the
// gossip and milestone layers invoke into the engine. None of these
// dial, listen, or persist anything themselves — they are the narrow
// seams spec'd so the core never imports a network or storage stack
// directly.
package adapters

import (
	"math/rand"
	"sync"
	"time"

	"github.com/iotaledger/tangle-engine/ids"
	"github.com/libp2p/go-libp2p/core/peer"
)

// DBProbe answers "is this id persisted outside the live map?" so the
// vertex store does not record a missing-parents waiter for an id the
// persistent block store can already satisfy.
type DBProbe interface {
	CheckDB(id ids.MessageId) bool
}

// NoopDBProbe always answers false, matching the reference implementation.
type NoopDBProbe struct{}

func (NoopDBProbe) CheckDB(ids.MessageId) bool { return false }

// RandomSource is a thread-safe uniform integer generator used by the tip
// selector's weighted draw.
type RandomSource interface {
	// UniformInt returns a uniform value in [1, n]. n is always >= 1.
	UniformInt(n int) int
}

// MathRandSource is the default RandomSource: a mutex-guarded math/rand
// generator. Sufficient for tests and for a node that does not need the
// VRF-derived unpredictability adapters/vrfrand provides.
type MathRandSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMathRandSource(seed int64) *MathRandSource {
	return &MathRandSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *MathRandSource) UniformInt(n int) int {
	if n <= 1 {
		return 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n) + 1
}

// Clock is a monotonic clock used only for instrumentation, never for
// correctness decisions.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default Clock backed by time.Now.
var SystemClock Clock = systemClock{}

// GossipMessage is what a remote peer handed the gossip layer, ready to be
// fed into the engine's ingestion facade.
type GossipMessage struct {
	ID      ids.MessageId
	Payload ids.Payload
	MA, PA  ids.MessageId
	From    peer.ID
}

// GossipConsumer is implemented by the engine-facing side of the gossip
// adapter: it receives messages the gossip layer has already deserialized.
type GossipConsumer interface {
	ConsumeGossip(GossipMessage) error
}

// MilestoneProducer is polled (or pushed to) by the ingestion facade to
// learn whether the next ingested message should carry a Milestone payload
// and, if so, which index.
type MilestoneProducer interface {
	// NextMilestoneIndex returns the index to stamp the next arrival with
	// and true, or false if the next arrival is an ordinary message.
	NextMilestoneIndex() (ids.MilestoneIndex, bool)
}
