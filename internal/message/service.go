package message

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"chatify/pkg/chat"
	nanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

type MessageService struct {
	db        *gorm.DB
	uploadDir string
}

func NewMessageService(db *gorm.DB, uploadDir string) *MessageService {
	return &MessageService{db: db, uploadDir: uploadDir}
}

// GetConversation returns all messages between two users, oldest first.
func (s *MessageService) GetConversation(userID, otherID string) ([]chat.Message, error) {
	var messages []chat.Message
	err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage persists a direct message. imageData, when present, is an inline
// base64 data URL that gets written to the upload dir; the stored message
// carries the served path instead of the raw bytes. Live delivery is not this
// service's job, the websocket hub relays independently.
func (s *MessageService) SendMessage(senderID, receiverID, text, imageData string) (*chat.Message, error) {
	if text == "" && imageData == "" {
		return nil, errors.New("message cannot be empty")
	}

	var receiver chat.User
	if err := s.db.First(&receiver, "id = ?", receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("receiver not found")
		}
		return nil, err
	}

	imagePath := ""
	if imageData != "" {
		path, err := s.saveImage(imageData)
		if err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		imagePath = path
	}

	message := chat.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Image:      imagePath,
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	return &message, nil
}

// saveImage decodes a "data:image/<ext>;base64,..." payload to a file under
// the upload dir and returns its served path.
func (s *MessageService) saveImage(dataURL string) (string, error) {
	ext := "png"
	encoded := dataURL

	if strings.HasPrefix(dataURL, "data:") {
		meta, rest, found := strings.Cut(dataURL, ",")
		if !found {
			return "", errors.New("malformed data URL")
		}
		encoded = rest

		if mime, ok := strings.CutPrefix(meta, "data:image/"); ok {
			if e, _, found := strings.Cut(mime, ";"); found && e != "" {
				ext = e
			}
		}
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	name, err := nanoid.New(16)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s.%s", name, ext)
	if err := os.WriteFile(filepath.Join(s.uploadDir, filename), raw, 0o644); err != nil {
		return "", err
	}

	return "/uploads/" + filename, nil
}
