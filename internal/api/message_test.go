package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	a "chatify/internal/auth"
	"chatify/pkg/chat"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testTokens = a.NewTokens("test-secret")

func setupMessageRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	handlers := NewMessageHandlers(db, t.TempDir())

	r := gin.New()
	api := r.Group("/api")
	api.Use(testTokens.RequireAuth())
	api.GET("/messages/users", handlers.GetSidebarUsersHandler)
	api.GET("/messages/:userId", handlers.GetConversationHandler)
	api.POST("/messages/send/:userId", handlers.SendMessageHandler)

	return r, db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) chat.User {
	t.Helper()
	user := chat.User{Username: username, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func authedRequest(t *testing.T, user chat.User, method, path string, body []byte) *http.Request {
	t.Helper()

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, path, bytes.NewBuffer(body))
	} else {
		req, err = http.NewRequest(method, path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	token, err := testTokens.Generate(user.ID, user.Username)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	return req
}

func TestGetSidebarUsersHandler(t *testing.T) {
	router, db := setupMessageRouter(t)
	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")
	createTestUser(t, db, "carol")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, alice, "GET", "/api/messages/users", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var users []SidebarUserInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)
}

func TestSendMessageAndGetConversation(t *testing.T) {
	router, db := setupMessageRouter(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	body, _ := json.Marshal(SendMessageInput{Text: "hi bob"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, alice, "POST", "/api/messages/send/"+bob.ID, body))
	require.Equal(t, http.StatusCreated, w.Code)

	var sent MessageInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	assert.Equal(t, alice.ID, sent.SenderID)
	assert.Equal(t, bob.ID, sent.ReceiverID)
	assert.Equal(t, "hi bob", sent.Text)

	body, _ = json.Marshal(SendMessageInput{Text: "hi alice"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, bob, "POST", "/api/messages/send/"+alice.ID, body))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, alice, "GET", "/api/messages/"+bob.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var conversation []MessageInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conversation))
	require.Len(t, conversation, 2)
	assert.Equal(t, "hi bob", conversation[0].Text)
	assert.Equal(t, "hi alice", conversation[1].Text)
}

func TestSendMessage_UnknownReceiver(t *testing.T) {
	router, db := setupMessageRouter(t)
	alice := createTestUser(t, db, "alice")

	body, _ := json.Marshal(SendMessageInput{Text: "hello?"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, alice, "POST", "/api/messages/send/ghost", body))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendMessage_EmptyBodyRejected(t *testing.T) {
	router, db := setupMessageRouter(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	body, _ := json.Marshal(SendMessageInput{})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, alice, "POST", "/api/messages/send/"+bob.ID, body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageEndpointsRequireAuth(t *testing.T) {
	router, _ := setupMessageRouter(t)

	req, _ := http.NewRequest("GET", "/api/messages/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
