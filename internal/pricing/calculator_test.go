package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cdecaire/desperse-public-sub004/internal/pricing"
)

func TestCalculate(t *testing.T) {
	t.Run("standard split", func(t *testing.T) {
		q := pricing.Calculate(100_000_000, 250)
		assert.Equal(t, uint64(2_500_000), q.PlatformFee)
		assert.Equal(t, uint64(97_500_000), q.CreatorAmount)
		assert.Equal(t, pricing.MintingFeeLamports, q.MintingFee)
	})

	t.Run("fee floors toward the creator", func(t *testing.T) {
		// 333 * 250 / 10000 = 8.325, floored to 8
		q := pricing.Calculate(333, 250)
		assert.Equal(t, uint64(8), q.PlatformFee)
		assert.Equal(t, uint64(325), q.CreatorAmount)
		assert.Equal(t, uint64(333), q.Total())
	})

	t.Run("free edition still charges minting fee", func(t *testing.T) {
		q := pricing.Calculate(0, 250)
		assert.Equal(t, uint64(0), q.PlatformFee)
		assert.Equal(t, uint64(0), q.CreatorAmount)
		assert.Equal(t, uint64(0), q.Total())
		assert.Equal(t, pricing.MintingFeeLamports, q.MintingFee)
	})

	t.Run("zero bps gives the creator everything", func(t *testing.T) {
		q := pricing.Calculate(1_000_000, 0)
		assert.Equal(t, uint64(0), q.PlatformFee)
		assert.Equal(t, uint64(1_000_000), q.CreatorAmount)
	})

	t.Run("full fee", func(t *testing.T) {
		q := pricing.Calculate(1_000_000, 10_000)
		assert.Equal(t, uint64(1_000_000), q.PlatformFee)
		assert.Equal(t, uint64(0), q.CreatorAmount)
	})
}
