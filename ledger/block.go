package ledger

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/lunfardo314/easyfl"
)

// Block B (§3): a previous-block hash (absent for genesis), a single-output
// coinbase transaction paying the proposer, and an ordered list of
// non-coinbase transactions.
type Block struct {
	Prev      Hash
	IsGenesis bool
	Coinbase  *Transaction
	Txs       []*Transaction

	id     Hash
	sealed bool
}

// NewBlock builds a non-genesis block extending prev.
func NewBlock(prev Hash, coinbase *Transaction, txs []*Transaction) *Block {
	return &Block{Prev: prev, Coinbase: coinbase, Txs: txs}
}

// NewGenesisBlock builds the single pre-formed genesis block (§4.3): no
// parent, just a coinbase.
func NewGenesisBlock(coinbase *Transaction) *Block {
	return &Block{IsGenesis: true, Coinbase: coinbase}
}

// NewCoinbaseTransaction builds and seals the single-output coinbase
// transaction of a block (§3): a conventional zero-valued sentinel input and
// one output paying value to recipient. nonce disambiguates the coinbases of
// distinct blocks minted by the same proposer, since the sentinel input
// alone would otherwise make every coinbase paying the same address at the
// same value collide on id.
func NewCoinbaseTransaction(value int64, recipient ed25519.PublicKey, nonce uint64) *Transaction {
	tx := NewTransaction()
	tx.AddInput(CoinbaseOutPoint.TxID, CoinbaseOutPoint.Index)
	var nb [8]byte
	binary.BigEndian.PutUint64(nb[:], nonce)
	tx.AddSignature(0, nb[:])
	tx.AddOutput(value, recipient)
	tx.Seal()
	return tx
}

// Seal computes and fixes the block's id (§4.1): hash of
// prev_or_empty || coinbase_serialized || for each tx in order: id(tx).
// The coinbase must already be sealed; Seal does not validate the block,
// only identifies it.
func (b *Block) Seal() Hash {
	if b.sealed {
		return b.id
	}
	easyfl.Assert(b.Coinbase != nil && b.Coinbase.Sealed(), "Block.Seal: coinbase must be sealed first")

	buf := make([]byte, 0, HashSize*(len(b.Txs)+2))
	if !b.IsGenesis {
		buf = append(buf, b.Prev[:]...)
	}
	buf = append(buf, b.Coinbase.serialize()...)
	for _, tx := range b.Txs {
		id := tx.ID()
		buf = append(buf, id[:]...)
	}
	b.id = HashBytes(buf)
	b.sealed = true
	return b.id
}

// ID returns the sealed id. Calling it before Seal is a programmer error.
func (b *Block) ID() Hash {
	easyfl.Assert(b.sealed, "Block.ID: block is not sealed")
	return b.id
}

func (b *Block) Sealed() bool { return b.sealed }
