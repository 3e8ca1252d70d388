package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHubBroadcastAndBacklog(t *testing.T) {
	hub := NewHub()
	hub.Broadcast("categoryCreated", map[string]string{"name": "Drinks"})

	sub, backlog := hub.Subscribe()
	defer sub.Close()

	require.Len(t, backlog, 1)
	require.Equal(t, "categoryCreated", backlog[0].Name)

	hub.Broadcast("categoryDeleted", nil)
	ev := <-sub.Events()
	require.Equal(t, "categoryDeleted", ev.Name)
}

func TestHubBacklogBounded(t *testing.T) {
	hub := NewHub()
	for i := 0; i < DefaultBacklogSize*2; i++ {
		hub.Broadcast("itemUpdated", i)
	}

	sub, backlog := hub.Subscribe()
	defer sub.Close()

	require.Len(t, backlog, DefaultBacklogSize)
	require.Equal(t, DefaultBacklogSize, backlog[0].Payload)
}

func TestHubSlowSubscriberSkipped(t *testing.T) {
	hub := NewHub()
	sub, _ := hub.Subscribe()
	defer sub.Close()

	// Fill the subscriber buffer and keep broadcasting; delivery must not block.
	for i := 0; i < DefaultSubscriberBuffer*3; i++ {
		hub.Broadcast("orderCreated", i)
	}
	require.Len(t, sub.Events(), DefaultSubscriberBuffer)
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	sub, _ := hub.Subscribe()
	sub.Close()
	sub.Close()

	hub.Broadcast("businessUpdated", nil)
	select {
	case ev, ok := <-sub.Events():
		if ok {
			t.Fatalf("unexpected event after close: %v", ev)
		}
	default:
	}
}
