package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/cdecaire/desperse-public-sub004/internal/api/middleware"
)

func TestSetupCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.SetupCORS())
	router.POST("/api/v1/purchases", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	t.Run("preflight allows any origin but only the served methods", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/purchases", nil)
		req.Header.Set("Origin", "https://some-dapp.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		methods := w.Header().Get("Access-Control-Allow-Methods")
		assert.Contains(t, methods, http.MethodPost)
		assert.NotContains(t, methods, http.MethodDelete)
	})

	t.Run("simple request carries the origin header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/purchases", nil)
		req.Header.Set("Origin", "https://some-dapp.example")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
