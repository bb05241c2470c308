package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"chatify/pkg/chat"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// HashSecret bcrypt-hashes a password or refresh token for storage.
func HashSecret(value string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(value), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckSecret reports whether value matches a stored bcrypt hash.
func CheckSecret(value, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(value)) == nil
}

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

func (s *AuthService) Register(username, password string) (*chat.User, error) {
	if username == "" {
		return nil, errors.New("username cannot be empty")
	}
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}

	var existing chat.User
	err := s.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, errors.New("username already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := HashSecret(password)
	if err != nil {
		return nil, err
	}

	user := chat.User{
		Username: username,
		Password: hashedPassword,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New("username already taken")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *AuthService) Login(username, password string) (*chat.User, error) {
	var user chat.User

	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !CheckSecret(password, user.Password) {
		return nil, errors.New("invalid credentials")
	}

	return &user, nil
}

func (s *AuthService) CreateRefreshToken(userID string) (string, error) {
	tokenBytes := make([]byte, 32)

	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)
	hash, err := HashSecret(token)
	if err != nil {
		return "", err
	}

	refreshToken := chat.RefreshToken{
		UserID:    userID,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(time.Hour * 24 * 7).Unix(),
	}

	if err := s.db.Create(&refreshToken).Error; err != nil {
		return "", err
	}

	return token, nil
}

func (s *AuthService) ValidateRefreshToken(token string) (*chat.User, error) {
	var refreshTokens []chat.RefreshToken
	if err := s.db.Where("expires_at > ?", time.Now().Unix()).Find(&refreshTokens).Error; err != nil {
		return nil, err
	}

	for _, rt := range refreshTokens {
		if !CheckSecret(token, rt.TokenHash) {
			continue
		}

		var user chat.User
		if err := s.db.Where("id = ?", rt.UserID).First(&user).Error; err != nil {
			return nil, err
		}

		// opportunistic cleanup of this user's expired tokens
		go s.db.Delete(&chat.RefreshToken{}, "user_id = ? AND expires_at < ?", rt.UserID, time.Now().Unix())

		return &user, nil
	}

	return nil, errors.New("invalid refresh token")
}

func (s *AuthService) RevokeRefreshToken(token string) error {
	var refreshTokens []chat.RefreshToken
	s.db.Where("expires_at > ?", time.Now().Unix()).Find(&refreshTokens)

	for _, rt := range refreshTokens {
		if CheckSecret(token, rt.TokenHash) {
			return s.db.Delete(&rt).Error
		}
	}
	return nil
}
