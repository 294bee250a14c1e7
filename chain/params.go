// Package chain implements the chain-level consensus rules: a forest of
// candidate chains rooted at a genesis block (BlockChain), longest-chain tip
// selection with an age-biased tie-break, fixed-depth pruning, coinbase
// maturity, and a mempool-backed BlockHandler that assembles candidate
// blocks on request.
package chain

// Params holds the tunables of §6: compile-time or constructor constants
// that are never inferred from wire data.
type Params struct {
	// CutOffAge is the maximum depth below the best tip at which a new
	// block may attach, and below which retained nodes may be pruned.
	CutOffAge uint64
	// CoinbaseValue is the fixed reward every coinbase transaction pays.
	CoinbaseValue int64
	// CoinbaseMaturity is the number of blocks a coinbase output must be
	// buried under before it becomes spendable. Zero disables the rule
	// (§4.4 / DESIGN.md's resolution of the corresponding Open Question).
	CoinbaseMaturity uint64
	// MempoolCapacity bounds the mempool; once exceeded, the
	// oldest-inserted pending transaction is evicted (§2.2).
	MempoolCapacity int
}

// DefaultParams returns the constants used across the test suite and the
// demo command: CutOffAge 10, CoinbaseValue 25 (§6's example value),
// CoinbaseMaturity disabled, MempoolCapacity 5000.
func DefaultParams() Params {
	return Params{
		CutOffAge:        10,
		CoinbaseValue:    25,
		CoinbaseMaturity: 0,
		MempoolCapacity:  5000,
	}
}
