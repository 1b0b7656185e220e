package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeSoldOut            ErrorCode = "SOLD_OUT"
	errCodeInsufficientFunds  ErrorCode = "INSUFFICIENT_FUNDS"
	errCodeAuthRequired       ErrorCode = "AUTH_REQUIRED"
	errCodeForbidden          ErrorCode = "FORBIDDEN"
	errCodeNotFound           ErrorCode = "NOT_FOUND"
	errCodeConflict           ErrorCode = "CONFLICT"
	errCodeTxExpiredBlockhash ErrorCode = "TX_EXPIRED_BLOCKHASH"
	errCodeValidationError    ErrorCode = "VALIDATION_ERROR"

	// Server errors (5xx)
	errCodeServerError ErrorCode = "SERVER_ERROR"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationError, "Validation failed", details)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeServerError, message)
}

// respondDomainError maps a domain error to its stable machine-readable code.
// Polling clients rely on these codes to tell restart-the-flow failures apart
// from retry-later failures.
func respondDomainError(c *gin.Context, err error) {
	var insufficientFunds *domain.InsufficientFundsError

	switch {
	case errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrPurchaseNotFound):
		respondWithError(c, http.StatusNotFound, errCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrSoldOut):
		respondWithError(c, http.StatusConflict, errCodeSoldOut, "Edition is sold out")
	case errors.As(err, &insufficientFunds):
		respondWithError(c, http.StatusPaymentRequired, errCodeInsufficientFunds, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "You do not own this purchase")
	case errors.Is(err, domain.ErrBlockhashExpired):
		respondWithError(c, http.StatusConflict, errCodeTxExpiredBlockhash, "Transaction blockhash expired, start a new purchase")
	case errors.Is(err, domain.ErrSignatureConflict):
		respondWithError(c, http.StatusConflict, errCodeConflict, err.Error())
	// A failed unlock proof is a denied access, not malformed input
	case errors.Is(err, domain.ErrChallengeInvalid),
		errors.Is(err, domain.ErrSignatureInvalid),
		errors.Is(err, domain.ErrNoConfirmedPurchase):
		respondWithError(c, http.StatusForbidden, errCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrNotAnEdition):
		respondWithError(c, http.StatusBadRequest, errCodeValidationError, err.Error())
	default:
		respondInternalError(c, err, "Internal server error")
	}
}
