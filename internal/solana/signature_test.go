package solana_test

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdecaire/desperse-public-sub004/internal/solana"
)

func TestVerifyWalletSignature(t *testing.T) {
	wallet := solanago.NewWallet()
	message := []byte(`{"domain":"desperse.unlock","nonce":"abc"}`)

	sig, err := wallet.PrivateKey.Sign(message)
	require.NoError(t, err)

	t.Run("valid signature", func(t *testing.T) {
		assert.True(t, solana.VerifyWalletSignature(wallet.PublicKey().String(), message, sig.String()))
	})

	t.Run("different message", func(t *testing.T) {
		assert.False(t, solana.VerifyWalletSignature(wallet.PublicKey().String(), []byte("something else"), sig.String()))
	})

	t.Run("different key", func(t *testing.T) {
		other := solanago.NewWallet()
		assert.False(t, solana.VerifyWalletSignature(other.PublicKey().String(), message, sig.String()))
	})

	t.Run("corrupted signature", func(t *testing.T) {
		corrupted := sig
		corrupted[0] ^= 0xff
		assert.False(t, solana.VerifyWalletSignature(wallet.PublicKey().String(), message, corrupted.String()))
	})

	t.Run("malformed inputs never panic", func(t *testing.T) {
		assert.False(t, solana.VerifyWalletSignature("not-an-address", message, sig.String()))
		assert.False(t, solana.VerifyWalletSignature(wallet.PublicKey().String(), message, "not-a-signature"))
		assert.False(t, solana.VerifyWalletSignature("", nil, ""))
	})
}

func TestVerifySignature(t *testing.T) {
	t.Run("wrong lengths return false", func(t *testing.T) {
		assert.False(t, solana.VerifySignature(nil, []byte("msg"), nil))
		assert.False(t, solana.VerifySignature(make([]byte, 31), []byte("msg"), make([]byte, 64)))
		assert.False(t, solana.VerifySignature(make([]byte, 32), []byte("msg"), make([]byte, 63)))
	})
}

func TestValidateAddress(t *testing.T) {
	t.Run("valid address", func(t *testing.T) {
		assert.True(t, solana.ValidateAddress(solanago.NewWallet().PublicKey().String()))
	})

	t.Run("system program id", func(t *testing.T) {
		assert.True(t, solana.ValidateAddress("11111111111111111111111111111111"))
	})

	t.Run("invalid inputs", func(t *testing.T) {
		assert.False(t, solana.ValidateAddress(""))
		assert.False(t, solana.ValidateAddress("too-short"))
		assert.False(t, solana.ValidateAddress("0OIl+/ not base58 characters here -----"))
	})
}
