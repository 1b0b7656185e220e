package solana

import (
	"context"
	"fmt"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/associated_token_account"
	"github.com/blocto/solana-go-sdk/program/metaplex/token_metadata"
	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/cenkalti/backoff/v4"

	"github.com/cdecaire/desperse-public-sub004/internal/domain"
)

const (
	collectionResolveAttempts = 10
	collectionResolveBase     = 1 * time.Second
	collectionResolveCap      = 8 * time.Second
)

// CollectionParams describes the on-chain master created on a post's first sale.
type CollectionParams struct {
	Name                 string
	Symbol               string
	MetadataURI          string
	CreatorAddress       string
	SellerFeeBasisPoints uint16
}

// EditionParams describes one numbered edition asset.
type EditionParams struct {
	Name                 string
	Symbol               string
	MetadataURI          string
	OwnerWallet          string
	CollectionAddress    string
	SellerFeeBasisPoints uint16
	EditionNumber        uint64
}

// Minter creates on-chain assets. The platform's mint authority signs and
// pays for every transaction here; buyer keys are never involved.
//
//go:generate mockgen -source=minter.go -destination=../mocks/minter.go -package=mocks -mock_names=Minter=MockMinter
type Minter interface {
	// CreateCollection creates the master grouping asset for a post
	CreateCollection(ctx context.Context, params CollectionParams) (address string, txSignature string, err error)

	// ResolveCollection waits until a freshly created collection is visible
	// through the RPC node. Indexing can lag creation by several seconds.
	ResolveCollection(ctx context.Context, address string) error

	// CreateEditionAsset mints one numbered edition owned by the buyer
	CreateEditionAsset(ctx context.Context, params EditionParams) (mintAddress string, txSignature string, err error)
}

type metaplexMinter struct {
	client    *client.Client
	authority types.Account
}

// NewMinter creates a Minter signing with the base58-encoded authority secret.
func NewMinter(rpcURL string, authoritySecret string) (Minter, error) {
	if rpcURL == "" {
		rpcURL = rpc.MainnetRPCEndpoint
	}
	authority, err := types.AccountFromBase58(authoritySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mint authority secret: %w", err)
	}
	return &metaplexMinter{
		client:    client.NewClient(rpcURL),
		authority: authority,
	}, nil
}

func (m *metaplexMinter) CreateCollection(ctx context.Context, params CollectionParams) (string, string, error) {
	creator := common.PublicKeyFromString(params.CreatorAddress)
	authorityPub := m.authority.PublicKey

	mint := types.NewAccount()

	ata, _, err := common.FindAssociatedTokenAddress(authorityPub, mint.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive token account: %w", err)
	}
	metadataPubkey, err := token_metadata.GetTokenMetaPubkey(mint.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive metadata account: %w", err)
	}
	masterEditionPubkey, err := token_metadata.GetMasterEdition(mint.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive master edition account: %w", err)
	}

	mintRent, err := m.client.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
	if err != nil {
		return "", "", fmt.Errorf("failed to get rent exemption: %w", err)
	}
	recent, err := m.client.GetLatestBlockhash(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	// The collection itself is a 1/1: a single master asset the editions
	// reference. No prints are ever made from it.
	collectionMaxSupply := uint64(0)

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: []types.Account{mint, m.authority},
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        authorityPub,
			RecentBlockhash: recent.Blockhash,
			Instructions: []types.Instruction{
				system.CreateAccount(system.CreateAccountParam{
					From:     authorityPub,
					New:      mint.PublicKey,
					Owner:    common.TokenProgramID,
					Lamports: mintRent,
					Space:    token.MintAccountSize,
				}),
				token.InitializeMint(token.InitializeMintParam{
					Decimals:   0,
					Mint:       mint.PublicKey,
					MintAuth:   authorityPub,
					FreezeAuth: &authorityPub,
				}),
				token_metadata.CreateMetadataAccountV3(token_metadata.CreateMetadataAccountV3Param{
					Metadata:                metadataPubkey,
					Mint:                    mint.PublicKey,
					MintAuthority:           authorityPub,
					UpdateAuthority:         authorityPub,
					Payer:                   authorityPub,
					UpdateAuthorityIsSigner: true,
					IsMutable:               true,
					Data: token_metadata.DataV2{
						Name:                 params.Name,
						Symbol:               params.Symbol,
						Uri:                  params.MetadataURI,
						SellerFeeBasisPoints: params.SellerFeeBasisPoints,
						Creators: &[]token_metadata.Creator{
							{Address: authorityPub, Verified: true, Share: 0},
							{Address: creator, Verified: false, Share: 100},
						},
					},
					CollectionDetails: nil,
				}),
				associated_token_account.CreateAssociatedTokenAccount(associated_token_account.CreateAssociatedTokenAccountParam{
					Funder:                 authorityPub,
					Owner:                  authorityPub,
					Mint:                   mint.PublicKey,
					AssociatedTokenAccount: ata,
				}),
				token.MintTo(token.MintToParam{
					Mint:   mint.PublicKey,
					To:     ata,
					Auth:   authorityPub,
					Amount: 1,
				}),
				token_metadata.CreateMasterEditionV3(token_metadata.CreateMasterEditionParam{
					Edition:         masterEditionPubkey,
					Mint:            mint.PublicKey,
					UpdateAuthority: authorityPub,
					MintAuthority:   authorityPub,
					Metadata:        metadataPubkey,
					Payer:           authorityPub,
					MaxSupply:       &collectionMaxSupply,
				}),
			},
		}),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to build collection transaction: %w", err)
	}

	sig, err := m.client.SendTransaction(ctx, tx)
	if err != nil {
		return "", "", fmt.Errorf("failed to send collection transaction: %w", err)
	}

	return mint.PublicKey.ToBase58(), sig, nil
}

// ResolveCollection polls until the collection account is visible. RPC
// indexing of a freshly created account can lag, so transient misses are
// retried with capped backoff; exhausting the attempts is a hard error.
func (m *metaplexMinter) ResolveCollection(ctx context.Context, address string) error {
	operation := func() error {
		info, err := m.client.GetAccountInfo(ctx, address)
		if err != nil {
			return fmt.Errorf("failed to get collection account: %w", err)
		}
		if info.Owner == (common.PublicKey{}) {
			return fmt.Errorf("collection %s not indexed yet", address)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = collectionResolveBase
	bo.MaxInterval = collectionResolveCap
	bo.Multiplier = 2.0
	bo.RandomizationFactor = 0

	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, collectionResolveAttempts-1), ctx)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCollectionUnresolved, err)
	}
	return nil
}

func (m *metaplexMinter) CreateEditionAsset(ctx context.Context, params EditionParams) (string, string, error) {
	owner := common.PublicKeyFromString(params.OwnerWallet)
	collection := common.PublicKeyFromString(params.CollectionAddress)
	authorityPub := m.authority.PublicKey

	mint := types.NewAccount()

	ata, _, err := common.FindAssociatedTokenAddress(owner, mint.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive token account: %w", err)
	}
	metadataPubkey, err := token_metadata.GetTokenMetaPubkey(mint.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive metadata account: %w", err)
	}
	masterEditionPubkey, err := token_metadata.GetMasterEdition(mint.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("failed to derive master edition account: %w", err)
	}

	mintRent, err := m.client.GetMinimumBalanceForRentExemption(ctx, token.MintAccountSize)
	if err != nil {
		return "", "", fmt.Errorf("failed to get rent exemption: %w", err)
	}
	recent, err := m.client.GetLatestBlockhash(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	// Each numbered edition is itself a 1/1 linked to the collection
	editionMaxSupply := uint64(0)
	name := fmt.Sprintf("%s #%d", params.Name, params.EditionNumber)

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: []types.Account{mint, m.authority},
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        authorityPub,
			RecentBlockhash: recent.Blockhash,
			Instructions: []types.Instruction{
				system.CreateAccount(system.CreateAccountParam{
					From:     authorityPub,
					New:      mint.PublicKey,
					Owner:    common.TokenProgramID,
					Lamports: mintRent,
					Space:    token.MintAccountSize,
				}),
				token.InitializeMint(token.InitializeMintParam{
					Decimals:   0,
					Mint:       mint.PublicKey,
					MintAuth:   authorityPub,
					FreezeAuth: &authorityPub,
				}),
				token_metadata.CreateMetadataAccountV3(token_metadata.CreateMetadataAccountV3Param{
					Metadata:                metadataPubkey,
					Mint:                    mint.PublicKey,
					MintAuthority:           authorityPub,
					UpdateAuthority:         authorityPub,
					Payer:                   authorityPub,
					UpdateAuthorityIsSigner: true,
					IsMutable:               true,
					Data: token_metadata.DataV2{
						Name:                 name,
						Symbol:               params.Symbol,
						Uri:                  params.MetadataURI,
						SellerFeeBasisPoints: params.SellerFeeBasisPoints,
						Creators: &[]token_metadata.Creator{
							{Address: authorityPub, Verified: true, Share: 100},
						},
						Collection: &token_metadata.Collection{
							Verified: false,
							Key:      collection,
						},
					},
					CollectionDetails: nil,
				}),
				associated_token_account.CreateAssociatedTokenAccount(associated_token_account.CreateAssociatedTokenAccountParam{
					Funder:                 authorityPub,
					Owner:                  owner,
					Mint:                   mint.PublicKey,
					AssociatedTokenAccount: ata,
				}),
				token.MintTo(token.MintToParam{
					Mint:   mint.PublicKey,
					To:     ata,
					Auth:   authorityPub,
					Amount: 1,
				}),
				token_metadata.CreateMasterEditionV3(token_metadata.CreateMasterEditionParam{
					Edition:         masterEditionPubkey,
					Mint:            mint.PublicKey,
					UpdateAuthority: authorityPub,
					MintAuthority:   authorityPub,
					Metadata:        metadataPubkey,
					Payer:           authorityPub,
					MaxSupply:       &editionMaxSupply,
				}),
			},
		}),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to build edition transaction: %w", err)
	}

	sig, err := m.client.SendTransaction(ctx, tx)
	if err != nil {
		return "", "", fmt.Errorf("failed to send edition transaction: %w", err)
	}

	return mint.PublicKey.ToBase58(), sig, nil
}
