package chain

import "github.com/scroogecoin/core/ledger"

// Node N (§3): one accepted block, its parent (nil for genesis), its height,
// its cached post-application UTXO snapshot, and its insertion age. Parents
// are held as direct pointers within the arena owned by BlockChain rather
// than looked up by hash on every traversal, but the authoritative index for
// "does this block id exist" remains BlockChain.nodesByID (Design Notes:
// "represent the tree as an arena of block nodes ... store parents as arena
// indices, not owning references" — a pointer into the same process's arena
// plays that role here without introducing reference cycles, since a Node
// only ever points at its parent, never at children).
type Node struct {
	Block     *ledger.Block
	Parent    *Node
	Height    uint64
	UTXOAfter *ledger.UTXOSet
	Age       uint64
}
