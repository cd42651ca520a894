// Package stream broadcasts JSON messages to websocket viewers.
package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Subscriber is one viewer connection. Writes are serialised.
type Subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *Subscriber) write(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

// Hub fans messages out to its subscribers. A subscriber whose write fails
// is dropped.
type Hub struct {
	mu     sync.Mutex
	subs   map[*Subscriber]struct{}
	closed bool
	logger *log.Logger
}

// NewHub creates an empty hub
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{subs: make(map[*Subscriber]struct{}), logger: logger}
}

// Subscribe adds conn. It returns false once the hub is closed.
func (h *Hub) Subscribe(conn *websocket.Conn) (*Subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	sub := &Subscriber{conn: conn}
	h.subs[sub] = struct{}{}
	return sub, true
}

// Unsubscribe removes sub and closes its connection
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()
	if ok {
		_ = sub.conn.Close()
	}
}

// Len returns the number of subscribers
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Broadcast marshals v once and sends it to every Subscriber. It returns
// how many subscribers received it.
func (h *Hub) Broadcast(v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal message: %w", err)
	}

	h.mu.Lock()
	subs := make([]*Subscriber, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	sent := 0
	for _, sub := range subs {
		if err := sub.write(websocket.TextMessage, data); err != nil {
			h.logger.Printf("dropping viewer %s: %v", sub.conn.RemoteAddr(), err)
			h.Unsubscribe(sub)
			continue
		}
		sent++
	}
	return sent, nil
}

// Close sends a normal close frame to every Subscriber and refuses new ones
func (h *Hub) Close(reason string) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := h.subs
	h.subs = make(map[*Subscriber]struct{})
	h.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	for sub := range subs {
		_ = sub.write(websocket.CloseMessage, msg)
		_ = sub.conn.Close()
	}
}
