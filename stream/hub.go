// Package stream fans out entry events to the websocket subscribers of the
// owning user.
package stream

import (
	"encoding/json"
	"sync"
	"time"
)

const EventEntryCreated = "entry.created"

type Event struct {
	Type string          `json:"type"`
	At   string          `json:"at"`
	Data json.RawMessage `json:"data,omitempty"`
}

func NewEvent(eventType string, data interface{}) Event {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	return Event{Type: eventType, At: time.Now().UTC().Format(time.RFC3339Nano), Data: raw}
}

type Hub struct {
	mu   sync.RWMutex
	subs map[uint]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: map[uint]map[chan Event]struct{}{}}
}

// Subscribe registers a channel receiving the events of userID.
func (h *Hub) Subscribe(userID uint, buffer int) chan Event {
	if buffer <= 0 {
		buffer = 32
	}
	ch := make(chan Event, buffer)
	h.mu.Lock()
	set, ok := h.subs[userID]
	if !ok {
		set = map[chan Event]struct{}{}
		h.subs[userID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(userID uint, ch chan Event) {
	h.mu.Lock()
	set := h.subs[userID]
	_, exists := set[ch]
	if exists {
		delete(set, ch)
		if len(set) == 0 {
			delete(h.subs, userID)
		}
	}
	h.mu.Unlock()
	if exists {
		close(ch)
	}
}

// Publish delivers evt to every subscriber of userID. Slow subscribers whose
// buffer is full miss the event.
func (h *Hub) Publish(userID uint, evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[userID] {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (h *Hub) Subscribers(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
