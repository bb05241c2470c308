package user

import (
	"errors"
	"fmt"

	"chatify/internal/auth"
	"chatify/pkg/chat"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ListOthers returns every user except the given one, for the contact sidebar.
func (s *UserService) ListOthers(userID string) ([]chat.User, error) {
	var users []chat.User
	err := s.db.Where("id != ?", userID).Order("username ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUser(userID string) (*chat.User, error) {
	var user chat.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

type UpdateUserRequest struct {
	Username   *string `json:"username,omitempty"`
	Password   *string `json:"password,omitempty"`
	ProfilePic *string `json:"profile_pic,omitempty"`
}

func (s *UserService) UpdateUser(userID string, req UpdateUserRequest) (*chat.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Username != nil {
		var existing chat.User
		result := s.db.First(&existing, "username = ? AND id != ?", *req.Username, userID)
		if result.Error == nil {
			return nil, errors.New("username already exists")
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check username uniqueness: %w", result.Error)
		}
		updates["username"] = *req.Username
	}

	if req.Password != nil {
		hashed, err := auth.HashSecret(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password"] = hashed
	}

	if req.ProfilePic != nil {
		updates["profile_pic"] = *req.ProfilePic
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.GetUser(userID)
}
