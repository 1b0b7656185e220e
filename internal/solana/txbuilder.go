package solana

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/pricing"
)

const (
	blockhashRetryAttempts = 3
	blockhashRetryBase     = 1 * time.Second
)

// BuildParams describes one payment transaction to construct.
type BuildParams struct {
	Buyer    string
	Creator  string
	Platform string
	Price    uint64
	Currency domain.Currency
	// TokenMint is required when Currency is the token
	TokenMint string
}

// UnsignedTx is a serialized payment transaction awaiting the buyer's signature.
type UnsignedTx struct {
	// Base64 is the wire-format transaction, unsigned. The buyer's wallet
	// signs and broadcasts it; the server never holds buyer key material.
	Base64    string
	Blockhash string
	// LastValidBlockHeight is a hard expiry. Submissions after this height
	// must be rejected and the purchase flow restarted.
	LastValidBlockHeight uint64
	Quote                pricing.Quote
}

// TransactionBuilder builds unsigned payment transactions.
//
//go:generate mockgen -source=txbuilder.go -destination=../mocks/txbuilder.go -package=mocks -mock_names=TransactionBuilder=MockTransactionBuilder
type TransactionBuilder interface {
	Build(ctx context.Context, params BuildParams) (*UnsignedTx, error)
}

type txBuilder struct {
	chain          ChainClient
	platformFeeBps uint16
}

// NewTransactionBuilder creates a TransactionBuilder that fetches blockhashes
// from chain and splits prices at platformFeeBps.
func NewTransactionBuilder(chain ChainClient, platformFeeBps uint16) TransactionBuilder {
	return &txBuilder{chain: chain, platformFeeBps: platformFeeBps}
}

func (b *txBuilder) Build(ctx context.Context, params BuildParams) (*UnsignedTx, error) {
	for _, addr := range []string{params.Buyer, params.Creator, params.Platform} {
		if !ValidateAddress(addr) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, addr)
		}
	}
	if params.Currency == domain.CurrencyUSDC && !ValidateAddress(params.TokenMint) {
		return nil, fmt.Errorf("%w: token mint %q", domain.ErrInvalidAddress, params.TokenMint)
	}

	buyer := solana.MustPublicKeyFromBase58(params.Buyer)
	creator := solana.MustPublicKeyFromBase58(params.Creator)
	platform := solana.MustPublicKeyFromBase58(params.Platform)

	quote := pricing.Calculate(params.Price, b.platformFeeBps)

	blockhash, lastValid, err := b.fetchBlockhash(ctx)
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction
	switch params.Currency {
	case domain.CurrencySOL:
		instructions = nativeInstructions(buyer, creator, platform, quote)
	case domain.CurrencyUSDC:
		mint := solana.MustPublicKeyFromBase58(params.TokenMint)
		instructions, err = b.tokenInstructions(ctx, buyer, creator, platform, mint, quote)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported currency %q", params.Currency)
	}

	tx, err := solana.NewTransaction(
		instructions,
		solana.MustHashFromBase58(blockhash),
		solana.TransactionPayer(buyer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize transaction: %w", err)
	}

	return &UnsignedTx{
		Base64:               base64.StdEncoding.EncodeToString(raw),
		Blockhash:            blockhash,
		LastValidBlockHeight: lastValid,
		Quote:                quote,
	}, nil
}

// fetchBlockhash retries transient RPC failures with exponential backoff
// before giving up with ErrUpstreamUnavailable.
func (b *txBuilder) fetchBlockhash(ctx context.Context) (string, uint64, error) {
	var (
		blockhash string
		lastValid uint64
	)

	operation := func() error {
		var err error
		blockhash, lastValid, err = b.chain.GetLatestBlockhash(ctx)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = blockhashRetryBase
	bo.Multiplier = 2.0
	bo.RandomizationFactor = 0

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, blockhashRetryAttempts-1), ctx)); err != nil {
		return "", 0, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return blockhash, lastValid, nil
}

// nativeInstructions pays the creator and the platform in lamports. Zero
// amounts are omitted; the minting fee is always present.
func nativeInstructions(buyer, creator, platform solana.PublicKey, quote pricing.Quote) []solana.Instruction {
	var instructions []solana.Instruction
	if quote.CreatorAmount > 0 {
		instructions = append(instructions,
			system.NewTransferInstruction(quote.CreatorAmount, buyer, creator).Build())
	}
	if quote.PlatformFee > 0 {
		instructions = append(instructions,
			system.NewTransferInstruction(quote.PlatformFee, buyer, platform).Build())
	}
	instructions = append(instructions,
		system.NewTransferInstruction(quote.MintingFee, buyer, platform).Build())
	return instructions
}

// tokenInstructions pays the creator and the platform in token units, creating
// any missing associated token accounts first. The minting fee stays native
// because asset creation is never paid for in the token.
func (b *txBuilder) tokenInstructions(ctx context.Context, buyer, creator, platform, mint solana.PublicKey, quote pricing.Quote) ([]solana.Instruction, error) {
	buyerATA, _, err := solana.FindAssociatedTokenAddress(buyer, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive buyer token account: %w", err)
	}
	creatorATA, _, err := solana.FindAssociatedTokenAddress(creator, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive creator token account: %w", err)
	}
	platformATA, _, err := solana.FindAssociatedTokenAddress(platform, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive platform token account: %w", err)
	}

	var instructions []solana.Instruction

	// Create missing token accounts, funded by the buyer. Checking existence
	// first keeps the instruction list minimal for the common case.
	type ataTarget struct {
		owner solana.PublicKey
		ata   solana.PublicKey
	}
	for _, target := range []ataTarget{
		{owner: buyer, ata: buyerATA},
		{owner: creator, ata: creatorATA},
		{owner: platform, ata: platformATA},
	} {
		exists, err := b.chain.AccountExists(ctx, target.ata.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
		}
		if !exists {
			instructions = append(instructions,
				associatedtokenaccount.NewCreateInstruction(buyer, target.owner, mint).Build())
		}
	}

	if quote.CreatorAmount > 0 {
		instructions = append(instructions,
			token.NewTransferInstruction(quote.CreatorAmount, buyerATA, creatorATA, buyer, nil).Build())
	}
	if quote.PlatformFee > 0 {
		instructions = append(instructions,
			token.NewTransferInstruction(quote.PlatformFee, buyerATA, platformATA, buyer, nil).Build())
	}
	instructions = append(instructions,
		system.NewTransferInstruction(quote.MintingFee, buyer, platform).Build())

	return instructions, nil
}
