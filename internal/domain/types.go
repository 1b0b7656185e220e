package domain

// Currency identifies the settlement currency of a purchase.
type Currency string

const (
	// CurrencySOL settles in the native coin (lamports).
	CurrencySOL Currency = "sol"
	// CurrencyUSDC settles in the USDC SPL token (base units).
	CurrencyUSDC Currency = "usdc"
)

// Valid reports whether the currency is one of the supported values.
func (c Currency) Valid() bool {
	return c == CurrencySOL || c == CurrencyUSDC
}

// PurchaseStatus tracks a purchase through the reserve → sign → confirm → mint pipeline.
type PurchaseStatus string

const (
	// PurchaseReserved means the unsigned payment transaction has been built
	// and the row inserted; the client has not yet returned a signature.
	PurchaseReserved PurchaseStatus = "reserved"
	// PurchaseSubmitted means the client reported the signed transaction's
	// signature; the confirmation poller is tracking it on-chain.
	PurchaseSubmitted PurchaseStatus = "submitted"
	// PurchaseAwaitingFulfillment means payment is confirmed on-chain and the
	// purchase is eligible to be claimed by a fulfillment worker.
	PurchaseAwaitingFulfillment PurchaseStatus = "awaiting_fulfillment"
	// PurchaseMinting means a fulfillment worker holds the claim and is
	// creating the on-chain asset.
	PurchaseMinting PurchaseStatus = "minting"
	// PurchaseConfirmed is the terminal success state: edition minted,
	// supply incremented, nft_mint recorded.
	PurchaseConfirmed PurchaseStatus = "confirmed"
	// PurchaseFailed means the payment transaction failed on-chain.
	PurchaseFailed PurchaseStatus = "failed"
	// PurchaseAbandoned means the reservation or confirmation wait budget
	// expired before the purchase progressed.
	PurchaseAbandoned PurchaseStatus = "abandoned"
	// PurchaseBlockedMissingMaster means payment succeeded but collection
	// creation failed. Requires manual reconciliation; never auto-retried.
	PurchaseBlockedMissingMaster PurchaseStatus = "blocked_missing_master"
)

// Terminal reports whether the status is final: polling clients can stop
// once they observe a terminal status.
func (s PurchaseStatus) Terminal() bool {
	switch s {
	case PurchaseConfirmed, PurchaseFailed, PurchaseAbandoned, PurchaseBlockedMissingMaster:
		return true
	}
	return false
}
