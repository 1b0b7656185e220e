// Package pricing computes the payment split for an edition sale.
package pricing

// MintingFeeLamports is the flat fee collected by the platform to cover
// on-chain account creation for the minted edition. It is always charged in
// lamports, even when the purchase itself is paid in a token, because asset
// creation costs native coin.
const MintingFeeLamports uint64 = 10_000_000

// Quote is the amount split for one purchase.
type Quote struct {
	// CreatorAmount is paid to the post creator, in the purchase currency
	CreatorAmount uint64
	// PlatformFee is the platform cut, in the purchase currency
	PlatformFee uint64
	// MintingFee is always denominated in lamports
	MintingFee uint64
}

// Total returns the amount the buyer must hold in the purchase currency, not
// counting the native minting fee.
func (q Quote) Total() uint64 {
	return q.CreatorAmount + q.PlatformFee
}

// Calculate splits price between the creator and the platform. The platform
// fee is floored so the creator amount absorbs the rounding remainder. A zero
// price still carries the minting fee.
func Calculate(price uint64, platformFeeBps uint16) Quote {
	fee := price * uint64(platformFeeBps) / 10_000
	return Quote{
		CreatorAmount: price - fee,
		PlatformFee:   fee,
		MintingFee:    MintingFeeLamports,
	}
}
