package solana

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// rpcErrInvalidParam is the node's code for getTokenAccountBalance against an
// address with no initialized account. Unlike getAccountInfo, the method
// reports a missing account as a request error rather than a null result.
const rpcErrInvalidParam = -32602

// TxStatus is the chain-side state of a submitted transaction.
type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// ChainClient exposes the subset of chain RPC operations the pipeline needs.
//
//go:generate mockgen -source=client.go -destination=../mocks/chain_client.go -package=mocks -mock_names=ChainClient=MockChainClient
type ChainClient interface {
	// GetBalance returns the native balance of address in lamports
	GetBalance(ctx context.Context, address string) (uint64, error)

	// GetTokenBalance returns the token balance held by wallet for mint, in
	// the token's smallest unit. A wallet with no token account has balance 0.
	GetTokenBalance(ctx context.Context, wallet string, mint string) (uint64, error)

	// GetLatestBlockhash returns a fresh blockhash and the last block height
	// at which a transaction built on it is still valid
	GetLatestBlockhash(ctx context.Context) (blockhash string, lastValidBlockHeight uint64, err error)

	// GetBlockHeight returns the cluster's current block height, used to
	// detect expired blockhashes
	GetBlockHeight(ctx context.Context) (uint64, error)

	// GetSignatureStatus reports the chain-side state of a transaction signature
	GetSignatureStatus(ctx context.Context, signature string) (TxStatus, error)

	// AccountExists reports whether address is an initialized on-chain account
	AccountExists(ctx context.Context, address string) (bool, error)
}

type rpcChainClient struct {
	client *rpc.Client
}

// NewChainClient creates a ChainClient backed by the JSON-RPC endpoint at rpcURL.
func NewChainClient(rpcURL string) ChainClient {
	return &rpcChainClient{client: rpc.New(rpcURL)}
}

func (c *rpcChainClient) GetBalance(ctx context.Context, address string) (uint64, error) {
	pub, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", address, err)
	}

	out, err := c.client.GetBalance(ctx, pub, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return out.Value, nil
}

func (c *rpcChainClient) GetTokenBalance(ctx context.Context, wallet string, mint string) (uint64, error) {
	walletPub, err := solana.PublicKeyFromBase58(wallet)
	if err != nil {
		return 0, fmt.Errorf("invalid wallet %q: %w", wallet, err)
	}
	mintPub, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return 0, fmt.Errorf("invalid mint %q: %w", mint, err)
	}

	ata, _, err := solana.FindAssociatedTokenAddress(walletPub, mintPub)
	if err != nil {
		return 0, fmt.Errorf("failed to derive token account: %w", err)
	}

	out, err := c.client.GetTokenAccountBalance(ctx, ata, rpc.CommitmentConfirmed)
	if err != nil {
		// A wallet that never received the token has no token account
		var rpcErr *jsonrpc.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == rpcErrInvalidParam {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get token balance: %w", err)
	}
	if out.Value == nil {
		return 0, nil
	}

	amount, err := strconv.ParseUint(out.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable token amount %q: %w", out.Value.Amount, err)
	}
	return amount, nil
}

func (c *rpcChainClient) GetLatestBlockhash(ctx context.Context) (string, uint64, error) {
	out, err := c.client.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return "", 0, fmt.Errorf("failed to get latest blockhash: %w", err)
	}
	return out.Value.Blockhash.String(), out.Value.LastValidBlockHeight, nil
}

func (c *rpcChainClient) GetBlockHeight(ctx context.Context) (uint64, error) {
	height, err := c.client.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get block height: %w", err)
	}
	return height, nil
}

func (c *rpcChainClient) GetSignatureStatus(ctx context.Context, signature string) (TxStatus, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return TxFailed, fmt.Errorf("invalid signature %q: %w", signature, err)
	}

	out, err := c.client.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return TxPending, fmt.Errorf("failed to get signature status: %w", err)
	}
	if len(out.Value) == 0 || out.Value[0] == nil {
		// Unknown to the cluster yet
		return TxPending, nil
	}

	status := out.Value[0]
	if status.Err != nil {
		return TxFailed, nil
	}
	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return TxConfirmed, nil
	default:
		return TxPending, nil
	}
}

func (c *rpcChainClient) AccountExists(ctx context.Context, address string) (bool, error) {
	pub, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return false, fmt.Errorf("invalid address %q: %w", address, err)
	}

	_, err = c.client.GetAccountInfo(ctx, pub)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get account info: %w", err)
	}
	return true, nil
}
