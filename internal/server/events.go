package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storefront/internal/buyerctx"
	"github.com/smallbiznis/storefront/internal/realtime"
)

const eventsHeartbeatInterval = 15 * time.Second

// StreamEvents holds an SSE stream open for the buyer and forwards hub
// events to it. Registering the connection makes the buyer reachable for
// order notifications; disconnecting unregisters it.
func (s *Server) StreamEvents(c *gin.Context) {
	email, ok := buyerctx.EmailFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		AbortWithError(c, ErrInternal)
		return
	}

	conn, err := s.hub.Connect()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer conn.Close()

	s.directory.Register(email, conn.ID())
	defer s.directory.Unregister(conn.ID())

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(eventsHeartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(c.Writer, ": heartbeat\n\n")
			flusher.Flush()
		case event := <-conn.Events():
			if err := writeSSEEvent(c, event); err != nil {
				s.log.Debug("dropping event stream, write failed")
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSEEvent(c *gin.Context, event realtime.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event.Name, data)
	return err
}
