package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Event is a single profile change notification delivered over the
// event stream.
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	FieldKey   string    `json:"field_key,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventStream represents a live stream of profile change events.
// Events are delivered on the Events channel. The Err channel receives
// any non-nil error that terminates the stream. Both channels are
// closed when the stream ends.
type EventStream struct {
	Events <-chan Event
	Err    <-chan error
	close  func()
}

// Close terminates the stream and releases resources.
func (s *EventStream) Close() error {
	if s.close != nil {
		s.close()
	}
	return nil
}

// Watch connects to the profile event websocket for an entity and
// returns an EventStream that emits events as they arrive. The stream
// ends when the context is cancelled, Close is called, or the server
// closes the connection.
func (c *Client) Watch(ctx context.Context, entityID string) (*EventStream, error) {
	// Build websocket URL (http→ws, https→wss)
	wsURL := strings.Replace(c.baseURL, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL = fmt.Sprintf("%s%s/events", wsURL, c.profilePath(entityID))

	header := make(map[string][]string)
	if c.token != "" {
		header["Authorization"] = []string{"Bearer " + c.token}
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to profile event stream: %w", err)
	}

	events := make(chan Event, 16)
	errs := make(chan error, 1)

	// Read loop in a goroutine
	go func() {
		defer close(events)
		defer close(errs)
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					return
				}
				if ctx.Err() != nil {
					return
				}
				errs <- fmt.Errorf("profile event stream read error: %w", err)
				return
			}

			var event Event
			if err := json.Unmarshal(msg, &event); err != nil {
				errs <- fmt.Errorf("failed to decode profile event: %w", err)
				return
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	closer := func() {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	}

	return &EventStream{Events: events, Err: errs, close: closer}, nil
}
