package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrPostNotFound is returned when a post does not exist
	ErrPostNotFound = errors.New("post not found")

	// ErrPurchaseNotFound is returned when a purchase does not exist
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrNotAnEdition is returned when buying a post that is not sold as an edition
	ErrNotAnEdition = errors.New("post is not an edition")

	// ErrSoldOut is returned when an edition has no remaining supply
	ErrSoldOut = errors.New("edition sold out")

	// ErrForbidden is returned when the caller does not own the purchase
	ErrForbidden = errors.New("purchase belongs to another user")

	// ErrInvalidAddress is returned when an externally-supplied address fails validation
	ErrInvalidAddress = errors.New("invalid address")

	// ErrBlockhashExpired is returned when a signature is submitted after the
	// reservation's blockhash validity window. The client must start a fresh buy.
	ErrBlockhashExpired = errors.New("blockhash expired")

	// ErrSignatureConflict is returned when a submission carries a different
	// signature than the one already on record for the purchase
	ErrSignatureConflict = errors.New("purchase already has a different signature")

	// ErrUpstreamUnavailable is returned when the chain RPC stays unreachable
	// after bounded retries
	ErrUpstreamUnavailable = errors.New("chain rpc unavailable")

	// ErrCollectionUnresolved is returned when a freshly created collection
	// never becomes visible through the RPC within the retry budget
	ErrCollectionUnresolved = errors.New("collection not resolvable")

	// ErrChallengeInvalid is returned when an unlock nonce is unknown, expired,
	// or already consumed
	ErrChallengeInvalid = errors.New("unlock challenge invalid or expired")

	// ErrSignatureInvalid is returned when a wallet signature does not verify
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrNoConfirmedPurchase is returned when a wallet redeems an unlock for a
	// post it never purchased
	ErrNoConfirmedPurchase = errors.New("no confirmed purchase for wallet")
)

// InsufficientFundsError carries the shortfall so the client can show the
// exact amount missing for the chosen currency.
type InsufficientFundsError struct {
	Currency  Currency
	Required  uint64
	Available uint64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %d, have %d (%s)", e.Required, e.Available, e.Currency)
}

// Shortfall returns the missing amount.
func (e *InsufficientFundsError) Shortfall() uint64 {
	if e.Available >= e.Required {
		return 0
	}
	return e.Required - e.Available
}
