package chain

import (
	"crypto/ed25519"

	"github.com/scroogecoin/core/ledger"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// BlockHandler is the accept-block entry point of §4.5: it owns the bounded
// mempool and assembles candidate blocks against the chain's current best
// tip on request.
type BlockHandler struct {
	chain *BlockChain
	pool  *mempool
	log   *zap.SugaredLogger
	nonce atomic.Uint64 // disambiguates coinbases minted by CreateBlock
}

// NewBlockHandler wraps bc with a mempool sized by bc's Params.
func NewBlockHandler(bc *BlockChain, log *zap.SugaredLogger) *BlockHandler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &BlockHandler{
		chain: bc,
		pool:  newMempool(bc.Params().MempoolCapacity),
		log:   log.Named("blockHandler"),
	}
}

func (h *BlockHandler) Chain() *BlockChain { return h.chain }

// AddTransaction inserts tx into the mempool without validation (§4.5); the
// validator only filters candidates at block-assembly time.
func (h *BlockHandler) AddTransaction(tx *ledger.Transaction) {
	h.pool.add(tx)
}

// TransactionPool returns a deterministic, id-ascending snapshot of the
// pending mempool.
func (h *BlockHandler) TransactionPool() []*ledger.Transaction {
	return h.pool.snapshot()
}

// ProcessBlock delegates to BlockChain.AddBlock; on success it removes the
// block's non-coinbase transactions from the mempool (§4.5).
func (h *BlockHandler) ProcessBlock(b *ledger.Block) bool {
	if !h.chain.AddBlock(b) {
		return false
	}
	ids := make([]ledger.Hash, len(b.Txs))
	for i, tx := range b.Txs {
		ids[i] = tx.ID()
	}
	h.pool.remove(ids)
	h.log.Infow("processed block", "id", b.ID(), "txs", len(b.Txs))
	return true
}

// CreateBlock assembles a candidate block on top of the current best tip
// (§4.5): it clones the tip's spendable UTXO view, snapshots the mempool
// deterministically, runs HandleTxs for a maximal mutually-consistent
// subset, mints a fresh coinbase paying myAddress, and seals the result.
// The caller is responsible for subsequently submitting the block via
// ProcessBlock; CreateBlock never mutates the chain itself.
func (h *BlockHandler) CreateBlock(myAddress ed25519.PublicKey) *ledger.Block {
	tip := h.chain.BestTip()
	pool := h.chain.SpendablePoolFor(tip)

	candidates := h.pool.snapshot()
	handler := ledger.NewTxHandler(pool, h.chain.Verifier())
	accepted := handler.HandleTxs(candidates)

	coinbase := ledger.NewCoinbaseTransaction(h.chain.Params().CoinbaseValue, myAddress, h.nonce.Inc())
	block := ledger.NewBlock(tip.Block.ID(), coinbase, accepted)
	block.Seal()
	return block
}
