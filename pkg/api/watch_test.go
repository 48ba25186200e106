package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWatch_StreamsEvents(t *testing.T) {
	upgrader := websocket.Upgrader{}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/entities/ent-1/profile/events" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{
			"type": "override_saved",
			"entity_id": "ent-1",
			"field_key": "phone",
			"actor": "case-manager@example.com",
			"occurred_at": "2026-08-28T10:00:00Z"
		}`))
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}))
	defer ts.Close()

	c, _ := NewClient(ts.URL, "")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := c.Watch(ctx, "ent-1")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer stream.Close()

	select {
	case event, ok := <-stream.Events:
		if !ok {
			t.Fatal("event channel closed before delivering an event")
		}
		if event.Type != "override_saved" {
			t.Errorf("unexpected event type: %s", event.Type)
		}
		if event.FieldKey != "phone" {
			t.Errorf("unexpected field key: %s", event.FieldKey)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}

	// Normal close ends the stream without an error
	select {
	case err, ok := <-stream.Err:
		if ok && err != nil {
			t.Errorf("unexpected stream error: %v", err)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for stream end")
	}
}

func TestWatch_DialFailure(t *testing.T) {
	c, _ := NewClient("http://127.0.0.1:1", "")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := c.Watch(ctx, "ent-1"); err == nil {
		t.Error("expected dial error")
	}
}
