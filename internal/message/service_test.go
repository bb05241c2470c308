package message

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chatify/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*MessageService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(&chat.User{}, &chat.Message{})
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return NewMessageService(db, t.TempDir()), db
}

func createUser(t *testing.T, db *gorm.DB, username string) chat.User {
	t.Helper()
	user := chat.User{Username: username, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestSendMessageAndGetConversation(t *testing.T) {
	s, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	_, err := s.SendMessage(alice.ID, bob.ID, "hey bob", "")
	require.NoError(t, err)
	_, err = s.SendMessage(bob.ID, alice.ID, "hey alice", "")
	require.NoError(t, err)
	_, err = s.SendMessage(alice.ID, carol.ID, "hey carol", "")
	require.NoError(t, err)

	conversation, err := s.GetConversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, conversation, 2)

	// chronological, both directions, no leakage from the carol thread
	assert.Equal(t, "hey bob", conversation[0].Text)
	assert.Equal(t, "hey alice", conversation[1].Text)
	assert.NotEmpty(t, conversation[0].ID)
}

func TestSendMessage_ReceiverMustExist(t *testing.T) {
	s, db := setupService(t)
	alice := createUser(t, db, "alice")

	_, err := s.SendMessage(alice.ID, "ghost", "hello?", "")
	assert.EqualError(t, err, "receiver not found")
}

func TestSendMessage_EmptyMessageRejected(t *testing.T) {
	s, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := s.SendMessage(alice.ID, bob.ID, "", "")
	assert.EqualError(t, err, "message cannot be empty")
}

func TestSendMessage_SavesImageAttachment(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&chat.User{}, &chat.Message{}))

	uploadDir := t.TempDir()
	s := NewMessageService(db, uploadDir)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	pixel := base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4e, 0x47})
	dataURL := "data:image/png;base64," + pixel

	msg, err := s.SendMessage(alice.ID, bob.ID, "", dataURL)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(msg.Image, "/uploads/"))
	assert.True(t, strings.HasSuffix(msg.Image, ".png"))

	stored, err := os.ReadFile(filepath.Join(uploadDir, filepath.Base(msg.Image)))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, stored)
}

func TestSendMessage_MalformedImageRejected(t *testing.T) {
	s, db := setupService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := s.SendMessage(alice.ID, bob.ID, "", "data:image/png;base64")
	assert.Error(t, err)

	_, err = s.SendMessage(alice.ID, bob.ID, "", "data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err)
}
