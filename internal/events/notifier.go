// Package events broadcasts mutation events to connected real-time clients.
package events

import "time"

// Event is a named payload broadcast to subscribers.
type Event struct {
	Name    string    `json:"event"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Notifier is the capability injected into entity services. Broadcast is
// fire-and-forget: it never blocks and never fails the originating request.
type Notifier interface {
	Broadcast(event string, payload any)
}

// NopNotifier discards every event; used in tests.
type NopNotifier struct{}

func (NopNotifier) Broadcast(string, any) {}
