package ledger

// Input I (§3): a claim on a previously produced output, with a signature
// that may be empty prior to signing.
type Input struct {
	PrevTx    Hash
	OutIndex  uint32
	Signature []byte
}

// OutPoint is the UTXO key this input claims.
func (i Input) OutPoint() OutPoint {
	return OutPoint{TxID: i.PrevTx, Index: i.OutIndex}
}
