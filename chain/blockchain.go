package chain

import (
	"sync"

	"github.com/lunfardo314/easyfl"
	"github.com/scroogecoin/core/ledger"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// BlockChain is the forest of accepted blocks rooted at a single genesis
// node (§4.3). It owns every node's UTXO snapshot and the current best-tip
// selection. The tree never mutates a node's snapshot in place: accepting a
// block always clones the parent's snapshot and applies to the clone
// (§4.6), so an in-flight validation of a competing branch never disturbs
// the best tip's state.
type BlockChain struct {
	mu       sync.RWMutex
	params   Params
	verifier ledger.Verifier
	log      *zap.SugaredLogger

	nodesByID map[ledger.Hash]*Node
	bestTip   *Node
	counter   atomic.Uint64 // insertion_counter, the monotonic age source
}

// NewBlockChain constructs the tree with a single pre-formed genesis node
// (§4.3 "Genesis handling"): height 1, age 0, no parent, and a UTXO
// snapshot containing only the genesis block's coinbase output. genesis
// must already be sealed via ledger.Block.Seal.
func NewBlockChain(genesis *ledger.Block, params Params, verifier ledger.Verifier, log *zap.SugaredLogger) *BlockChain {
	easyfl.Assert(genesis.IsGenesis, "NewBlockChain: block is not marked as genesis")
	easyfl.Assert(genesis.Sealed(), "NewBlockChain: genesis block is not sealed")
	if verifier == nil {
		verifier = ledger.DefaultVerifier()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	utxo := ledger.NewUTXOSet()
	utxo.Put(ledger.OutPoint{TxID: genesis.Coinbase.ID(), Index: 0}, genesis.Coinbase.Output(0))

	root := &Node{
		Block:     genesis,
		Parent:    nil,
		Height:    1,
		UTXOAfter: utxo,
		Age:       0,
	}
	return &BlockChain{
		params:    params,
		verifier:  verifier,
		log:       log.Named("chain"),
		nodesByID: map[ledger.Hash]*Node{genesis.ID(): root},
		bestTip:   root,
	}
}

func (bc *BlockChain) Params() Params            { return bc.params }
func (bc *BlockChain) Verifier() ledger.Verifier { return bc.verifier }

// AddBlock implements the seven-step algorithm of §4.3. It returns true iff
// the block was accepted; on any rejection the tree is left completely
// unchanged.
func (bc *BlockChain) AddBlock(b *ledger.Block) bool {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	if b.IsGenesis {
		bc.log.Debugw("reject block: genesis blocks are only accepted via NewBlockChain")
		return false
	}
	if _, exists := bc.nodesByID[b.ID()]; exists {
		bc.log.Debugw("reject block: already accepted", "id", b.ID())
		return false
	}
	parent, ok := bc.nodesByID[b.Prev]
	if !ok {
		bc.log.Debugw("reject block: unknown parent", "id", b.ID(), "prev", b.Prev)
		return false
	}
	newHeight := parent.Height + 1
	if newHeight+bc.params.CutOffAge <= bc.bestTip.Height {
		bc.log.Debugw("reject block: parent too deep below best tip", "id", b.ID(), "parentHeight", parent.Height)
		return false
	}

	pool := bc.spendablePoolFor(parent)

	handler := ledger.NewTxHandler(pool, bc.verifier)
	accepted := handler.HandleTxs(b.Txs)
	if len(accepted) != len(b.Txs) {
		bc.log.Debugw("reject block: not every transaction validated together", "id", b.ID(),
			"proposed", len(b.Txs), "accepted", len(accepted))
		return false
	}

	if bc.params.CoinbaseMaturity > 0 && newHeight > bc.params.CoinbaseMaturity {
		// The ancestor coinbase now CoinbaseMaturity blocks deep was stripped
		// above while immature; it rejoins the pool from this node on.
		matured := parent
		for matured.Height > newHeight-bc.params.CoinbaseMaturity {
			matured = matured.Parent
		}
		pool.Put(ledger.OutPoint{TxID: matured.Block.Coinbase.ID(), Index: 0}, matured.Block.Coinbase.Output(0))
	}
	pool.Put(ledger.OutPoint{TxID: b.Coinbase.ID(), Index: 0}, b.Coinbase.Output(0))

	node := &Node{
		Block:     b,
		Parent:    parent,
		Height:    newHeight,
		UTXOAfter: pool,
		Age:       bc.counter.Inc(),
	}
	bc.nodesByID[b.ID()] = node

	if node.Height > bc.bestTip.Height {
		bc.bestTip = node
		bc.log.Infow("new best tip", "id", b.ID(), "height", node.Height)
	}
	bc.pruneLocked()
	return true
}

// spendablePoolFor clones parent's UTXO snapshot and strips immature
// coinbase outputs from it per §4.4. Callers must hold bc.mu.
func (bc *BlockChain) spendablePoolFor(parent *Node) *ledger.UTXOSet {
	pool := parent.UTXOAfter.Clone()
	if bc.params.CoinbaseMaturity == 0 {
		return pool
	}
	// Strip coinbase UTXOs of ancestors at or above height
	// parent.Height - CoinbaseMaturity + 1 (§4.4).
	cutoff := int64(parent.Height) - int64(bc.params.CoinbaseMaturity) + 1
	for n := parent; n != nil && int64(n.Height) >= cutoff; n = n.Parent {
		pool.Remove(ledger.OutPoint{TxID: n.Block.Coinbase.ID(), Index: 0})
	}
	return pool
}

// SpendablePoolFor is the exported counterpart of spendablePoolFor, used by
// BlockHandler.CreateBlock to assemble a candidate against exactly the view
// a subsequent AddBlock call would validate it against.
func (bc *BlockChain) SpendablePoolFor(parent *Node) *ledger.UTXOSet {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.spendablePoolFor(parent)
}

// pruneLocked reclaims nodes more than CutOffAge below the best tip
// (Invariant 3, §3), by removing them from the id index; the caller must
// hold bc.mu for writing. A node's own Parent pointer remains valid for any
// descendant still referencing it directly, so pruning here is strictly
// about what add_block can look up as a valid attachment point going
// forward, not about severing height bookkeeping for the surviving chain.
func (bc *BlockChain) pruneLocked() {
	if bc.bestTip.Height <= bc.params.CutOffAge {
		return
	}
	floor := bc.bestTip.Height - bc.params.CutOffAge
	for id, n := range bc.nodesByID {
		if n.Height < floor {
			delete(bc.nodesByID, id)
		}
	}
}

// MaxHeightBlock returns the block at the current best tip.
func (bc *BlockChain) MaxHeightBlock() *ledger.Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.bestTip.Block
}

// MaxHeightUTXOPool returns a snapshot of the best tip's UTXO set. It is a
// clone: mutating the result never affects the tree.
func (bc *BlockChain) MaxHeightUTXOPool() *ledger.UTXOSet {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.bestTip.UTXOAfter.Clone()
}

// BestTip returns the current best-tip node.
func (bc *BlockChain) BestTip() *Node {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.bestTip
}

// Node looks up a live node by block id. Pruned or never-accepted ids
// report false.
func (bc *BlockChain) Node(id ledger.Hash) (*Node, bool) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	n, ok := bc.nodesByID[id]
	return n, ok
}

// Contains reports whether id names a live node.
func (bc *BlockChain) Contains(id ledger.Hash) bool {
	_, ok := bc.Node(id)
	return ok
}

// Len reports how many live nodes the forest currently retains.
func (bc *BlockChain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.nodesByID)
}
