package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// echoBridge upgrades the connection and echoes every binary frame
// back, mimicking a gateway that relays device notifications.
func echoBridge(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/ws/") {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if msgType != websocket.BinaryMessage {
				continue
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		}
	}))
}

// bridgeFor points a Bridge at the test server.
func bridgeFor(server *httptest.Server, address string) *Bridge {
	b := NewBridge("ignored", 0, address)
	b.URL = "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + address
	return b
}

func TestBridgeRoundTrip(t *testing.T) {
	server := echoBridge(t)
	defer server.Close()

	b := bridgeFor(server, "AA:BB:CC:DD:EE:FF")
	if err := b.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer b.Disconnect()

	frame := []byte{5, 0, 7, 1, 1}
	if err := b.Write(context.Background(), frame); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	select {
	case got := <-b.Notifications():
		if string(got) != string(frame) {
			t.Errorf("notification = %v, want %v", got, frame)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func TestBridgeConnectIsIdempotent(t *testing.T) {
	server := echoBridge(t)
	defer server.Close()

	b := bridgeFor(server, "AA:BB:CC:DD:EE:FF")
	if err := b.Connect(context.Background()); err != nil {
		t.Fatalf("first Connect() error = %v", err)
	}
	defer b.Disconnect()

	if err := b.Connect(context.Background()); err != nil {
		t.Errorf("second Connect() error = %v, want nil", err)
	}
}

func TestBridgeDisconnectClosesNotifications(t *testing.T) {
	server := echoBridge(t)
	defer server.Close()

	b := bridgeFor(server, "AA:BB:CC:DD:EE:FF")
	if err := b.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	notify := b.Notifications()
	if err := b.Disconnect(); err != nil {
		t.Fatalf("Disconnect() error = %v", err)
	}

	select {
	case _, ok := <-notify:
		if ok {
			t.Error("expected closed channel after Disconnect")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification channel not closed after Disconnect")
	}

	// Disconnect again is a no-op.
	if err := b.Disconnect(); err != nil {
		t.Errorf("second Disconnect() error = %v, want nil", err)
	}
}

func TestBridgeWriteNotConnected(t *testing.T) {
	b := NewBridge("localhost", 8765, "AA:BB:CC:DD:EE:FF")
	if err := b.Write(context.Background(), []byte{1}); err == nil {
		t.Error("Write() before Connect should fail")
	}
}

func TestBridgeConnectRefused(t *testing.T) {
	b := NewBridge("127.0.0.1", 1, "AA:BB:CC:DD:EE:FF")
	b.ConnectTimeout = time.Second

	if err := b.Connect(context.Background()); err == nil {
		b.Disconnect()
		t.Error("Connect() to closed port should fail")
	}
}

func TestNewBridgeURL(t *testing.T) {
	b := NewBridge("bridge.local", 8765, "11:22:33:44:E2:F1")
	want := "ws://bridge.local:8765/ws/11:22:33:44:E2:F1"
	if b.URL != want {
		t.Errorf("URL = %q, want %q", b.URL, want)
	}
}
