package ledger

import "crypto/ed25519"

// Verifier is the external signature oracle consumed by the core (§6):
// given a public key, message bytes and signature bytes, it reports whether
// the signature is authentic. It must be deterministic and side-effect-free.
// Internal faults of the underlying primitive (malformed key, bad signature
// encoding) are reported as false, never as a panic (§7).
type Verifier interface {
	Verify(pubKey ed25519.PublicKey, message, signature []byte) bool
}

type ed25519Verifier struct{}

// DefaultVerifier wraps crypto/ed25519 behind the Verifier oracle interface,
// the same primitive the teacher uses for its own address locks.
func DefaultVerifier() Verifier {
	return ed25519Verifier{}
}

func (ed25519Verifier) Verify(pubKey ed25519.PublicKey, message, signature []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if len(pubKey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pubKey, message, signature)
}
