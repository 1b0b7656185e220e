package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cdecaire/desperse-public-sub004/internal/api/middleware"
	"github.com/cdecaire/desperse-public-sub004/internal/purchase"
	"github.com/cdecaire/desperse-public-sub004/internal/unlock"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// Buy reserves an edition and returns the unsigned payment transaction
	// POST /api/v1/purchases
	Buy(c *gin.Context)

	// SubmitSignature records the wallet's transaction signature
	// POST /api/v1/purchases/:id/signature
	SubmitSignature(c *gin.Context)

	// Status returns the purchase state for polling
	// GET /api/v1/purchases/:id/status
	Status(c *gin.Context)

	// CreateUnlockChallenge issues a single-use nonce for the gated-download flow
	// POST /api/v1/unlock/challenge
	CreateUnlockChallenge(c *gin.Context)

	// RedeemUnlockChallenge verifies the signed nonce and grants the unlock
	// POST /api/v1/unlock/redeem
	RedeemUnlockChallenge(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	purchases *purchase.Service
	unlocks   *unlock.Service
}

// NewHandler creates a new REST API handler
func NewHandler(purchases *purchase.Service, unlocks *unlock.Service) Handler {
	return &handler{
		purchases: purchases,
		unlocks:   unlocks,
	}
}

type buyRequest struct {
	PostID        string `json:"post_id" binding:"required"`
	WalletAddress string `json:"wallet_address" binding:"required"`
}

type buyResponse struct {
	PurchaseID           string    `json:"purchase_id"`
	Status               string    `json:"status"`
	UnsignedTxBase64     string    `json:"unsigned_tx_base64"`
	Blockhash            string    `json:"blockhash"`
	LastValidBlockHeight uint64    `json:"last_valid_block_height"`
	ExpiresAt            time.Time `json:"expires_at"`
	Price                uint64    `json:"price"`
	Currency             string    `json:"currency"`
}

// Buy reserves an edition and returns the unsigned payment transaction
func (h *handler) Buy(c *gin.Context) {
	var req buyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	userID := middleware.AuthSubject(c)
	result, err := h.purchases.Buy(c.Request.Context(), userID, req.PostID, req.WalletAddress)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, buyResponse{
		PurchaseID:           result.PurchaseID,
		Status:               string(result.Status),
		UnsignedTxBase64:     result.UnsignedTxBase64,
		Blockhash:            result.Blockhash,
		LastValidBlockHeight: result.LastValidBlockHeight,
		ExpiresAt:            result.ExpiresAt,
		Price:                result.Price,
		Currency:             string(result.Currency),
	})
}

type submitSignatureRequest struct {
	TxSignature string `json:"tx_signature" binding:"required"`
}

type statusResponse struct {
	PurchaseID    string  `json:"purchase_id"`
	Status        string  `json:"status"`
	TxSignature   *string `json:"tx_signature,omitempty"`
	NftMint       *string `json:"nft_mint,omitempty"`
	EditionNumber *uint64 `json:"edition_number,omitempty"`
}

// SubmitSignature records the wallet's transaction signature
func (h *handler) SubmitSignature(c *gin.Context) {
	purchaseID := c.Param("id")

	var req submitSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	userID := middleware.AuthSubject(c)
	result, err := h.purchases.SubmitSignature(c.Request.Context(), userID, purchaseID, req.TxSignature)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStatusResponse(result))
}

// Status returns the purchase state for polling. The purchase ID itself is
// the capability; no auth required.
func (h *handler) Status(c *gin.Context) {
	result, err := h.purchases.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStatusResponse(result))
}

func toStatusResponse(result *purchase.StatusResult) statusResponse {
	return statusResponse{
		PurchaseID:    result.PurchaseID,
		Status:        string(result.Status),
		TxSignature:   result.TxSignature,
		NftMint:       result.NftMint,
		EditionNumber: result.EditionNumber,
	}
}

type unlockChallengeRequest struct {
	PostID        string `json:"post_id" binding:"required"`
	WalletAddress string `json:"wallet_address" binding:"required"`
}

type unlockChallengeResponse struct {
	Nonce     string    `json:"nonce"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateUnlockChallenge issues a single-use nonce for the gated-download flow
func (h *handler) CreateUnlockChallenge(c *gin.Context) {
	var req unlockChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	challenge, err := h.unlocks.CreateChallenge(c.Request.Context(), req.PostID, req.WalletAddress)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, unlockChallengeResponse{
		Nonce:     challenge.Nonce,
		Message:   challenge.Message,
		ExpiresAt: challenge.ExpiresAt,
	})
}

type unlockRedeemRequest struct {
	Nonce     string `json:"nonce" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type unlockRedeemResponse struct {
	PostID   string `json:"post_id"`
	Wallet   string `json:"wallet"`
	Unlocked bool   `json:"unlocked"`
}

// RedeemUnlockChallenge verifies the signed nonce and grants the unlock
func (h *handler) RedeemUnlockChallenge(c *gin.Context) {
	var req unlockRedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	challenge, err := h.unlocks.Redeem(c.Request.Context(), req.Nonce, req.Signature)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, unlockRedeemResponse{
		PostID:   challenge.PostID,
		Wallet:   challenge.Wallet,
		Unlocked: true,
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
