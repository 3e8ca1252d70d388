package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/menuku/menuku/internal/events"
)

const realtimeHeartbeat = 25 * time.Second

// RealtimeEvents streams hub events to the client over SSE. The backlog is
// replayed first so late joiners see recent history.
func (s *Server) RealtimeEvents(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	sub, backlog := s.hub.Subscribe()
	defer sub.Close()

	for _, ev := range backlog {
		c.SSEvent(ev.Name, ev)
	}
	c.Writer.Flush()

	heartbeat := time.NewTicker(realtimeHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			c.SSEvent(ev.Name, ev)
			c.Writer.Flush()
		case <-heartbeat.C:
			c.SSEvent("heartbeat", events.Event{Name: "heartbeat", At: time.Now().UTC()})
			c.Writer.Flush()
		}
	}
}

// RealtimeMessage broadcasts an arbitrary payload to every connected
// subscriber.
func (s *Server) RealtimeMessage(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	s.notifier.Broadcast("message", payload)

	respondOK(c, "message broadcast", nil)
}
