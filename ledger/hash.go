// Package ledger implements the transaction-level consensus rules of the
// engine: digests, the transaction and output model, the UTXO set, and the
// validator (TxHandler) that checks and applies transactions against it.
package ledger

import (
	"bytes"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// HashSize is the fixed width of a digest H (§3).
const HashSize = 32

// Hash is the opaque, collision-resistant digest used as identity for
// transactions and blocks. Being a plain byte array, equality and use as a
// map key fall out of Go's built-in comparison, which is exactly byte
// equality (§3's requirement).
type Hash [HashSize]byte

// HashBytes is the hash oracle (§6): a deterministic, total function from a
// byte string to a fixed-width digest. Collisions are treated as adversarial
// and are not handled anywhere above this function.
func HashBytes(data []byte) Hash {
	return Hash(blake2b.Sum256(data))
}

// Less gives Hash a total order, used to make validation and mempool
// snapshots deterministic (§4.2).
func (h Hash) Less(other Hash) bool {
	return bytes.Compare(h[:], other[:]) < 0
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
