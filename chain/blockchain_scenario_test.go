package chain

import (
	"crypto/ed25519"
	"testing"

	"github.com/scroogecoin/core/ledger"
	"github.com/stretchr/testify/require"
)

// TestAssignment3Scenario replays assignment3/Main.java end to end: a fork at
// height 2 (block1 scrooge->alice vs. block2 scrooge->scrooge), then a chain
// continuing on block1 whose transactions repeatedly spend multi-input
// outputs signed input-by-input in the order the original built them —
// including tx3's two same-owner inputs signed at separate indices and tx5's
// input spending a coinbase output alongside a regular one.
func TestAssignment3Scenario(t *testing.T) {
	scrooge := newChainKeypair(t)
	alice := newChainKeypair(t)
	bob := newChainKeypair(t)

	params := DefaultParams()
	genesisCoinbase := ledger.NewCoinbaseTransaction(params.CoinbaseValue, scrooge.pub, 0)
	genesis := ledger.NewGenesisBlock(genesisCoinbase)
	genesis.Seal()
	bc := NewBlockChain(genesis, params, nil, nil)

	// block1: scrooge -> alice (5, 10, 10), mined by alice.
	tx1 := ledger.NewTransaction()
	tx1.AddOutput(5, alice.pub)
	tx1.AddOutput(10, alice.pub)
	tx1.AddOutput(10, alice.pub)
	in0 := tx1.AddInput(genesisCoinbase.ID(), 0)
	tx1.AddSignature(in0, ed25519.Sign(scrooge.priv, tx1.RawDataToSign(in0)))
	tx1.Seal()

	block1CB := ledger.NewCoinbaseTransaction(params.CoinbaseValue, alice.pub, 1)
	block1 := ledger.NewBlock(genesis.ID(), block1CB, []*ledger.Transaction{tx1})
	block1.Seal()
	require.True(t, bc.AddBlock(block1))

	// block2: an alternative branch off genesis, scrooge -> scrooge.
	tx2 := ledger.NewTransaction()
	tx2.AddOutput(5, scrooge.pub)
	tx2.AddOutput(10, scrooge.pub)
	tx2.AddOutput(10, scrooge.pub)
	in0b := tx2.AddInput(genesisCoinbase.ID(), 0)
	tx2.AddSignature(in0b, ed25519.Sign(scrooge.priv, tx2.RawDataToSign(in0b)))
	tx2.Seal()

	block2CB := ledger.NewCoinbaseTransaction(params.CoinbaseValue, scrooge.pub, 2)
	block2 := ledger.NewBlock(genesis.ID(), block2CB, []*ledger.Transaction{tx2})
	block2.Seal()
	require.True(t, bc.AddBlock(block2))

	// tie at height 2: the older block1 stays the tip.
	require.Equal(t, block1.ID(), bc.MaxHeightBlock().ID())

	// block3, chained to block1: alice spends tx1's two 10-coin outputs,
	// each signed separately after being added, to pay bob 20 (fee 0).
	tx3 := ledger.NewTransaction()
	tx3.AddOutput(20, bob.pub)
	in3a := tx3.AddInput(tx1.ID(), 1)
	tx3.AddSignature(in3a, ed25519.Sign(alice.priv, tx3.RawDataToSign(in3a)))
	in3b := tx3.AddInput(tx1.ID(), 2)
	tx3.AddSignature(in3b, ed25519.Sign(alice.priv, tx3.RawDataToSign(in3b)))
	tx3.Seal()

	block3CB := ledger.NewCoinbaseTransaction(params.CoinbaseValue, scrooge.pub, 3)
	block3 := ledger.NewBlock(block1.ID(), block3CB, []*ledger.Transaction{tx3})
	block3.Seal()
	require.True(t, bc.AddBlock(block3))
	require.Equal(t, block3.ID(), bc.MaxHeightBlock().ID())

	// block4, chained to block3: bob splits his new 20 coins into 10+5,
	// discarding 5 as an implicit fee.
	tx4 := ledger.NewTransaction()
	tx4.AddOutput(10, bob.pub)
	tx4.AddOutput(5, bob.pub)
	in4 := tx4.AddInput(tx3.ID(), 0)
	tx4.AddSignature(in4, ed25519.Sign(bob.priv, tx4.RawDataToSign(in4)))
	tx4.Seal()

	block4CB := ledger.NewCoinbaseTransaction(params.CoinbaseValue, scrooge.pub, 4)
	block4 := ledger.NewBlock(block3.ID(), block4CB, []*ledger.Transaction{tx4})
	block4.Seal()
	require.True(t, bc.AddBlock(block4))

	// block5, chained to block4: alice spends tx1's 5-coin output together
	// with block1's own coinbase output (25, paid to alice as its miner),
	// to pay bob 25 total.
	tx5 := ledger.NewTransaction()
	tx5.AddOutput(25, bob.pub)
	in5a := tx5.AddInput(tx1.ID(), 0)
	tx5.AddSignature(in5a, ed25519.Sign(alice.priv, tx5.RawDataToSign(in5a)))
	in5b := tx5.AddInput(block1CB.ID(), 0)
	tx5.AddSignature(in5b, ed25519.Sign(alice.priv, tx5.RawDataToSign(in5b)))
	tx5.Seal()

	block5CB := ledger.NewCoinbaseTransaction(params.CoinbaseValue, alice.pub, 5)
	block5 := ledger.NewBlock(block4.ID(), block5CB, []*ledger.Transaction{tx5})
	block5.Seal()
	require.True(t, bc.AddBlock(block5))

	require.EqualValues(t, 5, bc.BestTip().Height)
	pool := bc.MaxHeightUTXOPool()
	out, ok := pool.Get(ledger.OutPoint{TxID: tx5.ID(), Index: 0})
	require.True(t, ok)
	require.EqualValues(t, 25, out.Value)
	require.EqualValues(t, bob.pub, out.Recipient)
}
