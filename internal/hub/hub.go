// internal/hub/hub.go
package hub

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"monopoly-bank-backend/internal/models"
)

const writeWait = 10 * time.Second

// Client is one websocket connection. The write mutex serializes frames;
// gorilla connections do not allow concurrent writers.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// Send marshals an envelope and writes it under the client's write lock.
func (c *Client) Send(event string, payload any) error {
	if c == nil || c.conn == nil {
		return errors.New("client closed")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(models.Envelope{Event: event, Data: data})
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}

// Hub tracks which client is subscribed to which room, keyed by the user id
// the client announced on join. It is pure transport: it never touches room
// state.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[string]*Client
}

func New() *Hub {
	return &Hub{rooms: make(map[string]map[string]*Client)}
}

// Subscribe registers the client under its user id. A second connection for
// the same user id in the same room replaces the first.
func (h *Hub) Subscribe(roomID, userID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.rooms[roomID]
	if !ok {
		subs = make(map[string]*Client)
		h.rooms[roomID] = subs
	}
	subs[userID] = c
}

// Unsubscribe removes the client if it is still the registered connection for
// that user id. Membership bookkeeping only; room state is untouched.
func (h *Hub) Unsubscribe(roomID, userID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.rooms[roomID]
	if !ok {
		return
	}
	if cur, ok := subs[userID]; ok && cur == c {
		delete(subs, userID)
	}
	if len(subs) == 0 {
		delete(h.rooms, roomID)
	}
}

// SubscriberCount reports the number of live subscribers in a room.
func (h *Hub) SubscriberCount(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}

// BroadcastRoom sends one event to every subscriber of the room. The
// subscriber set is copied under the hub lock and writes happen outside it;
// a failed write only logs, the read loop owns connection teardown.
func (h *Hub) BroadcastRoom(roomID, event string, payload any) {
	h.mu.Lock()
	subs := make(map[string]*Client, len(h.rooms[roomID]))
	for id, c := range h.rooms[roomID] {
		subs[id] = c
	}
	h.mu.Unlock()

	for id, c := range subs {
		if err := c.Send(event, payload); err != nil {
			log.Printf("broadcast to %s in room %s failed: %v", id, roomID, err)
		}
	}
}

// SendToUser delivers an event to a single subscriber of the room, if
// connected. Unknown targets are dropped silently.
func (h *Hub) SendToUser(roomID, userID, event string, payload any) {
	h.mu.Lock()
	c := h.rooms[roomID][userID]
	h.mu.Unlock()
	if c == nil {
		return
	}
	if err := c.Send(event, payload); err != nil {
		log.Printf("send to %s in room %s failed: %v", userID, roomID, err)
	}
}
