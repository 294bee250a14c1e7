package ledger

import "crypto/ed25519"

// Output O (§3): a value in integer smallest-units paid to a recipient
// public key. Accepted outputs must have Value >= 0; this is enforced by
// TxHandler.IsValid, not by the type itself, so that partially-built,
// not-yet-valid transactions can still be constructed and inspected.
type Output struct {
	Value     int64
	Recipient ed25519.PublicKey
}
