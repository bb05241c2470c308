package api

import (
	"net/http"

	m "chatify/internal/message"
	u "chatify/internal/user"
	"chatify/pkg/chat"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandlers struct {
	messageService *m.MessageService
	userService    *u.UserService
}

func NewMessageHandlers(db *gorm.DB, uploadDir string) *MessageHandlers {
	return &MessageHandlers{
		messageService: m.NewMessageService(db, uploadDir),
		userService:    u.NewUserService(db),
	}
}

type SidebarUserInfo struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profile_pic,omitempty"`
}

type MessageInfo struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Text       string `json:"text,omitempty"`
	Image      string `json:"image,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type SendMessageInput struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

func messageInfo(msg chat.Message) MessageInfo {
	return MessageInfo{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Text:       msg.Text,
		Image:      msg.Image,
		CreatedAt:  msg.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GetSidebarUsersHandler lists every other user, for the contact sidebar.
func (h *MessageHandlers) GetSidebarUsersHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	users, err := h.userService.ListOthers(userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	response := make([]SidebarUserInfo, 0, len(users))
	for _, user := range users {
		response = append(response, SidebarUserInfo{
			ID:         user.ID,
			Username:   user.Username,
			ProfilePic: user.ProfilePic,
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetConversationHandler returns the message history between the
// authenticated user and the user in the path, oldest first.
func (h *MessageHandlers) GetConversationHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	otherID := c.Param("userId")
	if otherID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	messages, err := h.messageService.GetConversation(userID.(string), otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	response := make([]MessageInfo, 0, len(messages))
	for _, msg := range messages {
		response = append(response, messageInfo(msg))
	}

	c.JSON(http.StatusOK, response)
}

// SendMessageHandler persists a direct message to the user in the path.
// Delivery to a live connection happens over the websocket relay, which the
// client drives separately; this path only makes the message durable.
func (h *MessageHandlers) SendMessageHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	receiverID := c.Param("userId")
	if receiverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageService.SendMessage(userID.(string), receiverID, input.Text, input.Image)
	if err != nil {
		switch err.Error() {
		case "receiver not found":
			c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		case "message cannot be empty":
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, messageInfo(*msg))
}
