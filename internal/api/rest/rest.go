package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/cdecaire/desperse-public-sub004/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Purchase endpoints (reservation and submission require authentication)
		v1.POST("/purchases", middleware.Auth(authCfg), handler.Buy)
		v1.POST("/purchases/:id/signature", middleware.Auth(authCfg), handler.SubmitSignature)

		// Status polling (the purchase ID is the capability, no auth)
		v1.GET("/purchases/:id/status", handler.Status)

		// Gated-download unlock flow (wallet signature is the proof, no auth)
		v1.POST("/unlock/challenge", handler.CreateUnlockChallenge)
		v1.POST("/unlock/redeem", handler.RedeemUnlockChallenge)
	}
}
