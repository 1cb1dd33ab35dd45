// Package sim is the simulation/gossip harness driver contract of §6: an
// ingestion producer, a local-issuance producer and a milestone producer,
// each running at a configurable rate against one Engine. It is external
// to the core by design — the core never imports this package.
package sim

import (
	"sync"

	"github.com/iotaledger/tangle-engine/ids"
)

// Config holds the driver's rates, defaulted to the spec's reference
// values.
type Config struct {
	// TPSIn is the ingestion producer's rate, messages/s.
	TPSIn float64
	// TPSOut is the local-issuance producer's rate, messages/s.
	TPSOut float64
	// MilestoneIntervalSeconds is how often, in seconds, the milestone
	// producer flips the "next arrival is a milestone" flag.
	MilestoneIntervalSeconds float64
}

func DefaultConfig() Config {
	return Config{TPSIn: 2, TPSOut: 1, MilestoneIntervalSeconds: 10}
}

// recentPairPool tracks recently-seen ids so the ingestion producer can
// pick a random pair of parents the way a real gossip peer would: from
// whatever has arrived recently, not from the whole history.
type recentPairPool struct {
	mu   sync.Mutex
	ids  []ids.MessageId
	next int
	cap  int
}

func newRecentPairPool(capacity int) *recentPairPool {
	return &recentPairPool{cap: capacity}
}

func (p *recentPairPool) observe(id ids.MessageId) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.ids) < p.cap {
		p.ids = append(p.ids, id)
		return
	}
	p.ids[p.next] = id
	p.next = (p.next + 1) % p.cap
}

func (p *recentPairPool) randomPair(draw func(n int) int) (ids.MessageId, ids.MessageId, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.ids) == 0 {
		return ids.MessageId{}, ids.MessageId{}, false
	}
	ma := p.ids[draw(len(p.ids))-1]
	pa := p.ids[draw(len(p.ids))-1]
	return ma, pa, true
}

// milestoneFlag is the shared "next arrival is a milestone" state flipped
// by the milestone producer and consumed by the ingestion producer.
type milestoneFlag struct {
	mu    sync.Mutex
	index ids.MilestoneIndex
	armed bool
}

func (f *milestoneFlag) arm(index ids.MilestoneIndex) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.index = index
	f.armed = true
}

func (f *milestoneFlag) takeIfArmed() (ids.MilestoneIndex, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.armed {
		return 0, false
	}
	f.armed = false
	return f.index, true
}
