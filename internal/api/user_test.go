package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatify/internal/config"
	ws "chatify/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupFullRouter wires the complete route table so tests cover route
// registration, not just handler behavior.
func setupFullRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	cfg := &config.Config{
		AppSecret:    "test-secret",
		ClientOrigin: "http://localhost:5173",
		UploadDir:    t.TempDir(),
	}

	r := gin.New()
	NewRouter(db, ws.NewHub(), cfg).RegisterRoutes(r)
	return r, db
}

func TestGetUserHandler_LooksUpChatPartner(t *testing.T) {
	router, db := setupFullRouter(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	// alice fetches bob, who is not in her sidebar history yet
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, alice, "GET", "/api/users/"+bob.ID, nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, bob.ID, body["id"])
	assert.Equal(t, "bob", body["username"])
}

func TestGetUserHandler_UnknownUser(t *testing.T) {
	router, db := setupFullRouter(t)
	alice := createTestUser(t, db, "alice")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, alice, "GET", "/api/users/ghost", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserHandler_RequiresAuth(t *testing.T) {
	router, db := setupFullRouter(t)
	bob := createTestUser(t, db, "bob")

	req, _ := http.NewRequest("GET", "/api/users/"+bob.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
