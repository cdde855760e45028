package realtime

import "testing"

func TestHubSendDeliversToConnection(t *testing.T) {
	h := NewHub()
	conn, err := h.Connect()
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close()

	if !h.Send(conn.ID(), Event{Name: "order_complete", Data: "payload"}) {
		t.Fatal("expected delivery to succeed")
	}

	select {
	case event := <-conn.Events():
		if event.Name != "order_complete" {
			t.Fatalf("unexpected event: %+v", event)
		}
	default:
		t.Fatal("expected buffered event")
	}
}

func TestHubSendToUnknownConnection(t *testing.T) {
	h := NewHub()
	if h.Send("missing", Event{Name: "order_complete"}) {
		t.Fatal("expected delivery to fail")
	}
}

func TestHubSendDropsWhenBufferFull(t *testing.T) {
	h := NewHub()
	conn, err := h.Connect()
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer conn.Close()

	for i := 0; i < DefaultConnectionBuffer; i++ {
		if !h.Send(conn.ID(), Event{Name: "order_complete"}) {
			t.Fatalf("send %d should fit in the buffer", i)
		}
	}
	if h.Send(conn.ID(), Event{Name: "order_complete"}) {
		t.Fatal("a full buffer must drop, not block")
	}
}

func TestHubCloseDisconnects(t *testing.T) {
	h := NewHub()
	conn, err := h.Connect()
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	conn.Close()
	conn.Close() // double close is safe

	if h.Send(conn.ID(), Event{Name: "order_complete"}) {
		t.Fatal("expected delivery to a closed connection to fail")
	}
}
