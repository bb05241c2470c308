package client

import (
	"log"
	"net/url"

	"chatify/pkg/chat"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
)

type eventReceivedMsg chat.WSEvent

type WSClient struct {
	conn *websocket.Conn
	ch   chan tea.Msg
}

// NewWSClient dials the hub, announcing the given user identity through the
// handshake query parameter.
func NewWSClient(host, userID string, ch chan tea.Msg) (*WSClient, error) {
	u := url.URL{Scheme: "ws", Host: host, Path: "/ws"}
	if userID != "" {
		u.RawQuery = url.Values{"userId": {userID}}.Encode()
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}

	return &WSClient{conn: conn, ch: ch}, nil
}

// Start pumps incoming hub events onto the tea message channel.
func (c *WSClient) Start() {
	go func() {
		for {
			var ev chat.WSEvent
			if err := c.conn.ReadJSON(&ev); err != nil {
				log.Println("WS read error:", err)
				return
			}
			c.ch <- eventReceivedMsg(ev)
		}
	}()
}

// SendMessage emits a send-message event for the given recipient.
func (c *WSClient) SendMessage(senderID, receiverID, text string) error {
	payload, err := chat.NewEvent(chat.EventSendMessage, chat.SendMessagePayload{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
	})
	if err != nil {
		return err
	}

	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *WSClient) Close() error {
	return c.conn.Close()
}
