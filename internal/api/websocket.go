package api

import (
	"net/http"

	ws "chatify/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	handler  *ws.MessageHandler
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, clientOrigin string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:     hub,
		handler: ws.NewMessageHandler(hub),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// non-browser clients send no Origin header
				return origin == "" || origin == clientOrigin
			},
		},
	}
}

// HandleWebSocket upgrades the request to a websocket connection. The
// optional userId query parameter ties the connection to a user identity for
// presence tracking; without it the connection stays anonymous but can still
// use canvas rooms.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID := c.Query("userId")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	h.hub.RegisterClient(client)

	go client.WritePump()
	go client.ReadPump(h.handler)
}

type WebSocketInfoResponse struct {
	TotalConnections int            `json:"total_connections"`
	OnlineUsers      []string       `json:"online_users"`
	RoomStats        map[string]int `json:"room_stats"`
}

// GetConnectionInfo reports live connection, presence and room counts.
func (h *WebSocketHandler) GetConnectionInfo(c *gin.Context) {
	c.JSON(http.StatusOK, WebSocketInfoResponse{
		TotalConnections: h.hub.ClientCount(),
		OnlineUsers:      h.hub.OnlineUsers(),
		RoomStats:        h.hub.RoomCounts(),
	})
}
