package chain

import (
	"crypto/ed25519"
	"testing"

	"github.com/scroogecoin/core/ledger"
	"github.com/stretchr/testify/require"
)

func signSplit(t *testing.T, scrooge chainKeypair, prevTx ledger.Hash, outIdx uint32, alice, bob chainKeypair, aliceAmount, bobAmount int64) *ledger.Transaction {
	t.Helper()
	tx := ledger.NewTransaction()
	in := tx.AddInput(prevTx, outIdx)
	tx.AddOutput(aliceAmount, alice.pub)
	tx.AddOutput(bobAmount, bob.pub)
	tx.AddSignature(in, ed25519.Sign(scrooge.priv, tx.RawDataToSign(in)))
	tx.Seal()
	return tx
}

func TestCreateBlockAssemblesPendingTransactions(t *testing.T) {
	scrooge := newChainKeypair(t)
	alice := newChainKeypair(t)
	bob := newChainKeypair(t)

	params := DefaultParams()
	bc := newTestChain(t, params, scrooge.pub)
	h := NewBlockHandler(bc, nil)

	genesisCoinbaseID := bc.MaxHeightBlock().Coinbase.ID()
	tx := signSplit(t, scrooge, genesisCoinbaseID, 0, alice, bob, 10, 15)
	h.AddTransaction(tx)

	require.Len(t, h.TransactionPool(), 1)

	block := h.CreateBlock(scrooge.pub)
	require.Len(t, block.Txs, 1)
	require.Equal(t, tx.ID(), block.Txs[0].ID())

	require.True(t, h.ProcessBlock(block))
	require.Empty(t, h.TransactionPool())
	require.Equal(t, block.ID(), bc.MaxHeightBlock().ID())

	pool := bc.MaxHeightUTXOPool()
	aliceOut, ok := pool.Get(ledger.OutPoint{TxID: tx.ID(), Index: 0})
	require.True(t, ok)
	require.EqualValues(t, 10, aliceOut.Value)
	bobOut, ok := pool.Get(ledger.OutPoint{TxID: tx.ID(), Index: 1})
	require.True(t, ok)
	require.EqualValues(t, 15, bobOut.Value)
}

func TestCreateBlockDropsTransactionsThatDoNotValidateTogether(t *testing.T) {
	scrooge := newChainKeypair(t)
	alice := newChainKeypair(t)
	bob := newChainKeypair(t)

	params := DefaultParams()
	bc := newTestChain(t, params, scrooge.pub)
	h := NewBlockHandler(bc, nil)

	genesisCoinbaseID := bc.MaxHeightBlock().Coinbase.ID()
	// two transactions double-spending the same coinbase output: only one
	// can be admitted, the other must be silently dropped from assembly
	// rather than making CreateBlock fail outright.
	tx1 := signSplit(t, scrooge, genesisCoinbaseID, 0, alice, bob, 10, 15)
	tx2 := signSplit(t, scrooge, genesisCoinbaseID, 0, bob, alice, 20, 5)
	h.AddTransaction(tx1)
	h.AddTransaction(tx2)

	block := h.CreateBlock(scrooge.pub)
	require.Len(t, block.Txs, 1)
	require.True(t, h.ProcessBlock(block))

	// the loser stays in the pool for a future block to (fail to) pick up.
	remaining := h.TransactionPool()
	require.Len(t, remaining, 1)
}

func TestProcessBlockRejectsUnknownParentWithoutTouchingMempool(t *testing.T) {
	scrooge := newChainKeypair(t)
	alice := newChainKeypair(t)
	bc := newTestChain(t, DefaultParams(), scrooge.pub)
	h := NewBlockHandler(bc, nil)

	orphanCB := ledger.NewCoinbaseTransaction(DefaultParams().CoinbaseValue, alice.pub, 1)
	orphan := ledger.NewBlock(ledger.HashBytes([]byte("nowhere")), orphanCB, nil)
	orphan.Seal()

	require.False(t, h.ProcessBlock(orphan))
	require.Empty(t, h.TransactionPool())
}

func TestMempoolEvictsOldestOnceOverCapacity(t *testing.T) {
	scrooge := newChainKeypair(t)
	alice := newChainKeypair(t)
	bob := newChainKeypair(t)

	params := DefaultParams()
	params.MempoolCapacity = 2
	bc := newTestChain(t, params, scrooge.pub)
	h := NewBlockHandler(bc, nil)

	genesisCoinbaseID := bc.MaxHeightBlock().Coinbase.ID()
	first := signSplit(t, scrooge, genesisCoinbaseID, 0, alice, bob, 1, 2)
	h.AddTransaction(first)

	for i := 0; i < 5; i++ {
		tx := ledger.NewTransaction()
		tx.AddInput(ledger.HashBytes([]byte{byte(i)}), 0)
		tx.AddOutput(int64(i+1), alice.pub)
		tx.AddSignature(0, []byte("not even checked by the mempool"))
		tx.Seal()
		h.AddTransaction(tx)
	}

	require.LessOrEqual(t, len(h.TransactionPool()), params.MempoolCapacity)
	for _, tx := range h.TransactionPool() {
		require.NotEqual(t, first.ID(), tx.ID())
	}
}
