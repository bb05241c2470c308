package chat

import "encoding/json"

// Event names on the websocket wire, client to hub and hub to client.
const (
	EventSendMessage    = "send-message"
	EventReceiveMessage = "receive-message"
	EventOnlineUsers    = "getOnlineUsers"
	EventJoinCanvasRoom = "join-canvas-room"
	EventCanvasDraw     = "canvas-draw"
	EventClearCanvas    = "clear-canvas"
	EventCanvasCleared  = "canvas-cleared"
	EventTyping         = "typing"
)

// WSEvent is the envelope for every websocket frame. Data stays raw until the
// handler for the named event decodes it.
type WSEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type SendMessagePayload struct {
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
	SenderID   string `json:"senderId"`
}

type ReceiveMessagePayload struct {
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

type TypingPayload struct {
	ReceiverID string `json:"receiverId"`
	SenderID   string `json:"senderId"`
	IsTyping   bool   `json:"isTyping"`
}

// NewEvent marshals an envelope with the given event name and payload.
// A nil payload produces an envelope with no data field.
func NewEvent(event string, payload any) ([]byte, error) {
	ev := WSEvent{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		ev.Data = data
	}
	return json.Marshal(ev)
}
