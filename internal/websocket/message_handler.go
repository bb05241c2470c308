package websocket

import (
	"encoding/json"
	"log"

	"chatify/pkg/chat"
)

// MessageHandler decodes incoming event envelopes and dispatches them to the
// hub. These events are fire-and-forget: there is no error channel back to
// the sender, so malformed payloads are logged and dropped.
type MessageHandler struct {
	hub *Hub
}

func NewMessageHandler(hub *Hub) *MessageHandler {
	return &MessageHandler{hub: hub}
}

func (mh *MessageHandler) HandleMessage(client *Client, raw []byte) {
	var ev chat.WSEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		log.Printf("dropping malformed frame (user=%q): %v", client.userID, err)
		return
	}

	switch ev.Event {
	case chat.EventSendMessage:
		mh.handleSendMessage(client, ev.Data)
	case chat.EventJoinCanvasRoom:
		mh.handleJoinCanvasRoom(client, ev.Data)
	case chat.EventCanvasDraw:
		mh.handleCanvasDraw(client, ev.Data)
	case chat.EventClearCanvas:
		mh.handleClearCanvas(client, ev.Data)
	case chat.EventTyping:
		mh.handleTyping(client, ev.Data)
	default:
		log.Printf("dropping unknown event %q (user=%q)", ev.Event, client.userID)
	}
}

func (mh *MessageHandler) handleSendMessage(client *Client, data json.RawMessage) {
	var payload chat.SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("dropping malformed send-message payload: %v", err)
		return
	}

	if payload.SenderID == "" {
		payload.SenderID = client.userID
	}
	if payload.ReceiverID == "" || payload.Message == "" || payload.SenderID == "" {
		return
	}

	mh.hub.RelayChatMessage(payload.SenderID, payload.ReceiverID, payload.Message)
}

func (mh *MessageHandler) handleJoinCanvasRoom(client *Client, data json.RawMessage) {
	roomID, ok := decodeRoomID(data)
	if !ok {
		log.Printf("dropping malformed join-canvas-room payload")
		return
	}

	mh.hub.JoinRoom(client, roomID)
	log.Printf("client (user=%q) joined canvas room %s", client.userID, roomID)
}

func (mh *MessageHandler) handleCanvasDraw(client *Client, data json.RawMessage) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		log.Printf("dropping malformed canvas-draw payload: %v", err)
		return
	}

	roomID, ok := fields["roomId"].(string)
	if !ok || roomID == "" {
		return
	}

	// room id is routing information, the other members don't need it
	delete(fields, "roomId")

	drawing, err := json.Marshal(fields)
	if err != nil {
		log.Printf("failed to re-encode canvas-draw payload: %v", err)
		return
	}

	mh.hub.BroadcastDraw(client, roomID, drawing)
}

func (mh *MessageHandler) handleClearCanvas(client *Client, data json.RawMessage) {
	roomID, ok := decodeRoomID(data)
	if !ok {
		log.Printf("dropping malformed clear-canvas payload")
		return
	}

	mh.hub.BroadcastClear(roomID)
}

func (mh *MessageHandler) handleTyping(client *Client, data json.RawMessage) {
	var payload chat.TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("dropping malformed typing payload: %v", err)
		return
	}

	if payload.SenderID == "" {
		payload.SenderID = client.userID
	}
	if payload.ReceiverID == "" || payload.SenderID == "" {
		return
	}

	mh.hub.RelayTyping(payload)
}

// decodeRoomID accepts either a bare JSON string or a {"roomId": ...} object.
func decodeRoomID(data json.RawMessage) (string, bool) {
	var roomID string
	if err := json.Unmarshal(data, &roomID); err == nil && roomID != "" {
		return roomID, true
	}

	var obj struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.RoomID != "" {
		return obj.RoomID, true
	}

	return "", false
}
