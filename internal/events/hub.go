package events

import (
	"sync"
	"time"
)

const (
	DefaultBacklogSize      = 50
	DefaultSubscriberBuffer = 16
)

// Hub fans out events to every subscriber on a single shared stream and
// keeps a bounded backlog so a fresh subscriber sees recent history.
type Hub struct {
	mu               sync.Mutex
	backlog          []Event
	subs             map[uint64]chan Event
	nextID           uint64
	backlogSize      int
	subscriberBuffer int
}

type Subscription struct {
	hub  *Hub
	id   uint64
	ch   chan Event
	once sync.Once
}

func NewHub() *Hub {
	return &Hub{
		subs:             make(map[uint64]chan Event),
		backlogSize:      DefaultBacklogSize,
		subscriberBuffer: DefaultSubscriberBuffer,
	}
}

// Broadcast delivers the event to all live subscribers. Slow subscribers
// with a full buffer are skipped rather than blocked on.
func (h *Hub) Broadcast(event string, payload any) {
	if h == nil {
		return
	}
	ev := Event{Name: event, Payload: payload, At: time.Now().UTC()}

	h.mu.Lock()
	h.backlog = append(h.backlog, ev)
	if len(h.backlog) > h.backlogSize {
		h.backlog = h.backlog[len(h.backlog)-h.backlogSize:]
	}
	subs := make([]chan Event, 0, len(h.subs))
	for _, ch := range h.subs {
		subs = append(subs, ch)
	}
	h.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a new listener and returns the buffered backlog so the
// caller can replay it before switching to live delivery.
func (h *Hub) Subscribe() (*Subscription, []Event) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan Event, h.subscriberBuffer)
	h.subs[id] = ch
	backlog := append([]Event(nil), h.backlog...)
	h.mu.Unlock()

	return &Subscription{hub: h, id: id, ch: ch}, backlog
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	delete(h.subs, id)
	h.mu.Unlock()
}

func (s *Subscription) Events() <-chan Event {
	if s == nil {
		return nil
	}
	return s.ch
}

func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() {
		s.hub.unsubscribe(s.id)
	})
}
