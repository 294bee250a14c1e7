package ledger

import "sort"

// TxHandler validates and applies transactions against an owned UTXOSet
// (§4.2). A TxHandler is meant to be used for the lifetime of a single
// HandleTxs call (or a sequence of IsValid probes); the tree constructs a
// fresh one per block against a cloned pool (§4.6).
type TxHandler struct {
	pool     *UTXOSet
	verifier Verifier
}

// NewTxHandler wires a TxHandler to pool, using verifier as the signature
// oracle. A nil verifier falls back to DefaultVerifier (ed25519).
func NewTxHandler(pool *UTXOSet, verifier Verifier) *TxHandler {
	if verifier == nil {
		verifier = DefaultVerifier()
	}
	return &TxHandler{pool: pool, verifier: verifier}
}

func (h *TxHandler) UTXOPool() *UTXOSet { return h.pool }

// IsValid implements the five checks of §4.2. It never mutates pool; a
// failing check yields false and nothing is changed.
func (h *TxHandler) IsValid(tx *Transaction) bool {
	claimed := make(map[OutPoint]struct{}, tx.NumInputs())
	var inSum int64
	for i, in := range tx.Inputs() {
		op := in.OutPoint()
		if _, dup := claimed[op]; dup {
			return false // rule 3: no two inputs may claim the same UTXO
		}
		claimed[op] = struct{}{}

		out, ok := h.pool.Get(op)
		if !ok {
			return false // rule 1: claimed UTXO must exist in the pool
		}
		if !h.verifier.Verify(out.Recipient, tx.RawDataToSign(i), in.Signature) {
			return false // rule 2: signature must verify against the claimed recipient
		}
		inSum += out.Value
	}

	var outSum int64
	for _, out := range tx.Outputs() {
		if out.Value < 0 {
			return false // rule 4: every output must have value >= 0
		}
		outSum += out.Value
	}
	// rule 5: outputs may not exceed inputs; the difference is an implicit,
	// discarded fee (§4.2 - it is never redirected anywhere by this core).
	return outSum <= inSum
}

// HandleTxs implements the fixed-point sweep of §4.2: it repeatedly scans
// the remaining candidates (tried in tx.ID ascending order within each
// round) applying every transaction that is currently valid, until a full
// pass makes no progress. This admits dependency-ordered acceptance (a
// transaction that spends another candidate's output in the same batch)
// without an explicit topological sort, while staying deterministic: ties
// for a contested UTXO are won by whichever transaction is tried first in
// id order. The accepted sequence is applied to pool as it is built; no
// other caller should touch pool concurrently with this call.
func (h *TxHandler) HandleTxs(candidates []*Transaction) []*Transaction {
	remaining := make([]*Transaction, len(candidates))
	copy(remaining, candidates)
	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].ID().Less(remaining[j].ID())
	})

	accepted := make([]*Transaction, 0, len(remaining))
	for {
		progress := false
		leftover := remaining[:0]
		for _, tx := range remaining {
			if h.IsValid(tx) {
				h.apply(tx)
				accepted = append(accepted, tx)
				progress = true
				continue
			}
			leftover = append(leftover, tx)
		}
		remaining = leftover
		if !progress {
			break
		}
	}
	return accepted
}

// apply removes tx's claimed UTXOs and installs its outputs, keyed by
// (tx.ID(), output index).
func (h *TxHandler) apply(tx *Transaction) {
	for _, in := range tx.Inputs() {
		h.pool.Remove(in.OutPoint())
	}
	id := tx.ID()
	for j, out := range tx.Outputs() {
		h.pool.Put(OutPoint{TxID: id, Index: uint32(j)}, out)
	}
}
