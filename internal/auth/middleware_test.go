package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_GenerateAndValidate(t *testing.T) {
	tokens := NewTokens("test-secret")

	token, err := tokens.Generate("u1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
}

func TestTokens_ValidateWrongSecret(t *testing.T) {
	token, err := NewTokens("test-secret").Generate("u1", "alice")
	require.NoError(t, err)

	_, err = NewTokens("different-secret").Validate(token)
	assert.Error(t, err)
}

func setupProtectedRouter(tokens *Tokens) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(tokens.RequireAuth())
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func TestRequireAuth_MissingCookie(t *testing.T) {
	router := setupProtectedRouter(NewTokens("test-secret"))

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	router := setupProtectedRouter(NewTokens("test-secret"))

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_TokenFromOtherSecret(t *testing.T) {
	router := setupProtectedRouter(NewTokens("test-secret"))

	token, err := NewTokens("different-secret").Generate("u1", "alice")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := NewTokens("test-secret")
	router := setupProtectedRouter(tokens)

	token, err := tokens.Generate("u1", "alice")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}
