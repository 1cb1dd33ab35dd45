package ids

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// MessageId is an interned, cheap-to-copy handle to a message. It is the
// blake2b-256 hash of the message's raw bytes, matching the hash family
// the teacher uses for transaction identifiers.
type MessageId [blake2b.Size256]byte

// NullID is the sentinel meaning "no parent" / genesis link.
var NullID MessageId

func (id MessageId) IsNull() bool {
	return id == NullID
}

func (id MessageId) String() string {
	return hex.EncodeToString(id[:])
}

// MessageIdFromBytes interns raw message bytes into a MessageId by hashing
// them with blake2b-256.
func MessageIdFromBytes(data []byte) MessageId {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	h.Write(data)
	var id MessageId
	copy(id[:], h.Sum(nil))
	return id
}
