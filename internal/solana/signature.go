package solana

import (
	"crypto/ed25519"

	"github.com/gagliardetto/solana-go"
)

// VerifySignature verifies a detached ed25519 signature over message. It
// never panics: malformed key or signature lengths simply return false.
func VerifySignature(pubkey, message, signature []byte) bool {
	if len(pubkey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubkey), message, signature)
}

// VerifyWalletSignature verifies a base58-encoded wallet signature over
// message. Decode failures of either the wallet address or the signature
// return false rather than an error.
func VerifyWalletSignature(wallet string, message []byte, signatureBase58 string) bool {
	pub, err := solana.PublicKeyFromBase58(wallet)
	if err != nil {
		return false
	}
	sig, err := solana.SignatureFromBase58(signatureBase58)
	if err != nil {
		return false
	}
	return VerifySignature(pub.Bytes(), message, sig[:])
}
