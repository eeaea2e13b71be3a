package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := NewTokenManager("test-secret", time.Hour)
	middleware := NewMiddleware(tokens)

	router := gin.New()
	router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return router, tokens
}

func TestRequireAuth(t *testing.T) {
	router, tokens := setupAuthRouter(t)

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		token, err := tokens.Issue(7)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("accepts lowercase scheme", func(t *testing.T) {
		token, _ := tokens.Issue(7)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("rejects a non-bearer scheme", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		token, _ := tokens.Issue(7)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestGetUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns 0 without auth", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if id := GetUserID(c); id != 0 {
			t.Errorf("GetUserID() = %d, want 0", id)
		}
	})

	t.Run("returns the stored ID", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(ContextKeyUserID, uint(9))
		if id := GetUserID(c); id != 9 {
			t.Errorf("GetUserID() = %d, want 9", id)
		}
	})
}
