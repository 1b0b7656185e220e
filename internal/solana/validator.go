// Package solana wraps chain RPC access, payment transaction construction
// and on-chain asset creation behind small interfaces.
package solana

import (
	"github.com/gagliardetto/solana-go"
)

// ValidateAddress reports whether s is a well-formed account address. It is a
// format-only check applied to every externally-supplied address before any
// cryptographic object is built from it.
func ValidateAddress(s string) bool {
	if len(s) < 32 || len(s) > 44 {
		return false
	}
	_, err := solana.PublicKeyFromBase58(s)
	return err == nil
}
