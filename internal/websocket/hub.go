// Package websocket implements the realtime layer: presence tracking for
// logged-in users, direct-message relay, and room-scoped broadcast for
// collaborative canvas sessions.
package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"chatify/pkg/chat"
)

// Hub owns the connection table, the presence registry and the room
// membership tables. All access goes through its methods; the mutex
// serializes mutations coming from per-connection reader goroutines.
type Hub struct {
	mu sync.RWMutex

	clients map[*Client]bool

	// presence registry: one entry per user identity, last connection wins
	userClients map[string]*Client
	// online user ids in registration order, so broadcasts are stable
	online []string

	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[string]*Client),
		rooms:       make(map[string]map[*Client]bool),
	}
}

// RegisterClient adds a connection to the hub. If the client carries a user
// identity it takes over that identity's presence slot, and the full online
// set is broadcast to every connected client.
func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true

	hasIdentity := client.userID != ""
	if hasIdentity {
		if _, ok := h.userClients[client.userID]; !ok {
			h.online = append(h.online, client.userID)
		}
		h.userClients[client.userID] = client
	}
	h.mu.Unlock()

	log.Printf("client connected (user=%q), total: %d", client.userID, h.ClientCount())

	if hasIdentity {
		h.broadcastOnlineUsers()
	}
}

// UnregisterClient removes a connection from the hub, from its presence slot
// and from every room it joined, then broadcasts the updated online set.
// The presence entry is removed only if it still points at this client, so a
// stale disconnect cannot evict a fresher session for the same identity.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)

	if client.userID != "" {
		if current, ok := h.userClients[client.userID]; ok && current == client {
			delete(h.userClients, client.userID)
			h.removeOnline(client.userID)
		}
	}

	for roomID, members := range h.rooms {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}

	client.closed = true
	close(client.send)
	h.mu.Unlock()

	log.Printf("client disconnected (user=%q), total: %d", client.userID, h.ClientCount())

	h.broadcastOnlineUsers()
}

// removeOnline drops one id from the ordered online list. Caller holds mu.
func (h *Hub) removeOnline(userID string) {
	for i, id := range h.online {
		if id == userID {
			h.online = append(h.online[:i], h.online[i+1:]...)
			return
		}
	}
}

// OnlineUsers returns the ids of users with a live connection, in
// registration order.
func (h *Hub) OnlineUsers() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.online...)
}

// ClientForUser returns the current connection for a user identity, or nil.
func (h *Hub) ClientForUser(userID string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.userClients[userID]
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RelayChatMessage forwards a chat message to the receiver's connection if
// one is registered. Receivers without a live connection are skipped
// silently; durability is the REST message store's concern, not the hub's.
func (h *Hub) RelayChatMessage(senderID, receiverID, message string) {
	target := h.ClientForUser(receiverID)
	if target == nil {
		return
	}

	payload, err := chat.NewEvent(chat.EventReceiveMessage, chat.ReceiveMessagePayload{
		SenderID: senderID,
		Message:  message,
	})
	if err != nil {
		log.Printf("failed to encode receive-message event: %v", err)
		return
	}

	h.safeSend(target, payload)
}

// RelayTyping forwards a typing indicator to the receiver's connection if
// one is registered.
func (h *Hub) RelayTyping(p chat.TypingPayload) {
	target := h.ClientForUser(p.ReceiverID)
	if target == nil {
		return
	}

	payload, err := chat.NewEvent(chat.EventTyping, p)
	if err != nil {
		log.Printf("failed to encode typing event: %v", err)
		return
	}

	h.safeSend(target, payload)
}

// JoinRoom adds a connection to a room, creating the room on first join.
// Joining a room twice is a no-op.
func (h *Hub) JoinRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[*Client]bool)
		h.rooms[roomID] = members
	}
	members[client] = true
}

// RoomMemberCount returns the number of connections in a room.
func (h *Hub) RoomMemberCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// RoomCounts returns the member count per active room.
func (h *Hub) RoomCounts() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	counts := make(map[string]int, len(h.rooms))
	for roomID, members := range h.rooms {
		counts[roomID] = len(members)
	}
	return counts
}

// BroadcastDraw relays a drawing payload to every member of the room except
// the sender. The payload is opaque; shapes and coordinates pass through
// untouched.
func (h *Hub) BroadcastDraw(sender *Client, roomID string, drawing json.RawMessage) {
	payload, err := json.Marshal(chat.WSEvent{Event: chat.EventCanvasDraw, Data: drawing})
	if err != nil {
		log.Printf("failed to encode canvas-draw event: %v", err)
		return
	}

	for _, member := range h.roomMembers(roomID) {
		if member == sender {
			continue
		}
		h.safeSend(member, payload)
	}
}

// BroadcastClear signals every member of the room, sender included, to clear
// its canvas. Clients clear on receipt of this event only, never
// optimistically before emitting.
func (h *Hub) BroadcastClear(roomID string) {
	payload, err := chat.NewEvent(chat.EventCanvasCleared, nil)
	if err != nil {
		log.Printf("failed to encode canvas-cleared event: %v", err)
		return
	}

	for _, member := range h.roomMembers(roomID) {
		h.safeSend(member, payload)
	}
}

func (h *Hub) roomMembers(roomID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]*Client, 0, len(h.rooms[roomID]))
	for member := range h.rooms[roomID] {
		members = append(members, member)
	}
	return members
}

// broadcastOnlineUsers pushes the current online set to every connection,
// anonymous ones included.
func (h *Hub) broadcastOnlineUsers() {
	h.mu.RLock()
	online := append([]string(nil), h.online...)
	targets := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	payload, err := chat.NewEvent(chat.EventOnlineUsers, online)
	if err != nil {
		log.Printf("failed to encode getOnlineUsers event: %v", err)
		return
	}

	for _, client := range targets {
		h.safeSend(client, payload)
	}
}

// safeSend queues a message on a client's send channel without blocking.
// Holding the read lock for the whole send keeps it ordered against
// UnregisterClient closing the channel.
func (h *Hub) safeSend(client *Client, message []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.clients[client] || client.closed {
		return false
	}

	select {
	case client.send <- message:
		return true
	default:
		return false
	}
}
