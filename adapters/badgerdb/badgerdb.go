// Package badgerdb backs the DBProbe contract with a real embedded store,
// standing in for "the persistent block store" the spec places out of
// scope for the core itself. Badger is the teacher's own persistence
// engine (multistate/genesis depend on it transitively through unitrie),
// so a bare id-existence index over it is the natural concrete DBProbe.
package badgerdb

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/iotaledger/tangle-engine/ids"
)

// Probe answers adapters.DBProbe.CheckDB by looking up the id as a badger
// key. The reference engine never writes through this path; it exists so a
// real node can pre-populate the index from persisted blocks and have
// insert skip recording a missing-parents waiter for ids already on disk.
type Probe struct {
	db *badger.DB
}

func Open(dir string) (*Probe, error) {
	opts := badger.DefaultOptions(dir)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Probe{db: db}, nil
}

func (p *Probe) Close() error {
	return p.db.Close()
}

func (p *Probe) CheckDB(id ids.MessageId) bool {
	found := false
	_ = p.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(id[:])
		found = err == nil
		return nil
	})
	return found
}

// Mark records id as persisted so future CheckDB calls for it return true.
func (p *Probe) Mark(id ids.MessageId) error {
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set(id[:], []byte{1})
	})
}
