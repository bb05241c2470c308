package chat

import (
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

type User struct {
	ID         string `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Username   string `gorm:"uniqueIndex;not null"`
	Password   string `gorm:"not null"`
	ProfilePic string

	RefreshTokens []RefreshToken `gorm:"constraint:OnDelete:CASCADE"`
}

type RefreshToken struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    string `gorm:"not null;index"`
	TokenHash string `gorm:"not null"`
	ExpiresAt int64  `gorm:"not null"`
}

// Message is one direct message between two users. The realtime layer never
// touches this table; it only relays, persistence goes through MessageService.
type Message struct {
	ID         string `gorm:"primaryKey"`
	CreatedAt  time.Time
	SenderID   string `gorm:"not null;index:idx_msg_sender"`
	ReceiverID string `gorm:"not null;index:idx_msg_receiver"`
	Text       string
	Image      string

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID, err = nanoid.New(8)
	}
	return
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID, err = nanoid.New(12)
	}
	return
}
