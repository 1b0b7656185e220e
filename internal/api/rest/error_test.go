package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdecaire/desperse-public-sub004/internal/domain"
	"github.com/cdecaire/desperse-public-sub004/internal/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{
			name:       "unknown post",
			err:        domain.ErrPostNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   errCodeNotFound,
		},
		{
			name:       "sold out",
			err:        domain.ErrSoldOut,
			wantStatus: http.StatusConflict,
			wantCode:   errCodeSoldOut,
		},
		{
			name:       "insufficient funds",
			err:        &domain.InsufficientFundsError{Currency: domain.CurrencySOL, Required: 100, Available: 40},
			wantStatus: http.StatusPaymentRequired,
			wantCode:   errCodeInsufficientFunds,
		},
		{
			name:       "purchase owned by someone else",
			err:        domain.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantCode:   errCodeForbidden,
		},
		{
			name:       "expired blockhash",
			err:        domain.ErrBlockhashExpired,
			wantStatus: http.StatusConflict,
			wantCode:   errCodeTxExpiredBlockhash,
		},
		{
			name:       "conflicting resubmitted signature",
			err:        domain.ErrSignatureConflict,
			wantStatus: http.StatusConflict,
			wantCode:   errCodeConflict,
		},
		{
			name:       "stale unlock nonce",
			err:        domain.ErrChallengeInvalid,
			wantStatus: http.StatusForbidden,
			wantCode:   errCodeForbidden,
		},
		{
			name:       "unverifiable unlock signature",
			err:        domain.ErrSignatureInvalid,
			wantStatus: http.StatusForbidden,
			wantCode:   errCodeForbidden,
		},
		{
			name:       "unlock without a confirmed purchase",
			err:        domain.ErrNoConfirmedPurchase,
			wantStatus: http.StatusForbidden,
			wantCode:   errCodeForbidden,
		},
		{
			name:       "malformed wallet address",
			err:        domain.ErrInvalidAddress,
			wantStatus: http.StatusBadRequest,
			wantCode:   errCodeValidationError,
		},
		{
			name:       "post is not an edition",
			err:        domain.ErrNotAnEdition,
			wantStatus: http.StatusBadRequest,
			wantCode:   errCodeValidationError,
		},
		{
			name:       "unexpected error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   errCodeServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}
