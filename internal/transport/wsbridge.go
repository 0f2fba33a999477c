package transport

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ipxl/pixelctl/internal/logging"
)

const (
	// DefaultConnectTimeout bounds the WebSocket dial to the bridge.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds a single frame write.
	DefaultWriteTimeout = 5 * time.Second

	// notificationBuffer is the inbound channel depth. The device sends
	// at most one notification per command, so a small buffer absorbs
	// stragglers without blocking the read pump.
	notificationBuffer = 16
)

// Bridge is a Transport that reaches a display through a BLE bridge
// gateway speaking binary WebSocket frames. Outbound messages become
// GATT writes to the device's command characteristic; notify events
// come back as binary messages.
type Bridge struct {
	// URL is the bridge endpoint, e.g. "ws://gateway.local:8080/ws/AA:BB:CC:DD:EE:FF".
	URL string

	// ConnectTimeout bounds Connect when the caller's context has no
	// earlier deadline.
	ConnectTimeout time.Duration

	// WriteTimeout bounds each Write.
	WriteTimeout time.Duration

	mu     sync.Mutex
	conn   *websocket.Conn
	notify chan []byte
	done   chan struct{}
}

// NewBridge creates a Bridge for one device behind a gateway host.
func NewBridge(host string, port int, address string) *Bridge {
	u := url.URL{
		Scheme: "ws",
		Host:   fmt.Sprintf("%s:%d", host, port),
		Path:   "/ws/" + address,
	}
	return &Bridge{
		URL:            u.String(),
		ConnectTimeout: DefaultConnectTimeout,
		WriteTimeout:   DefaultWriteTimeout,
	}
}

// Connect dials the bridge and starts the notification read pump.
func (b *Bridge) Connect(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != nil {
		return nil
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.ConnectTimeout)
		defer cancel()
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, b.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial bridge %s: %w", b.URL, err)
	}

	b.conn = conn
	b.notify = make(chan []byte, notificationBuffer)
	b.done = make(chan struct{})
	go b.readPump(conn, b.notify, b.done)

	logging.LogConnection(b.URL, "connected")
	return nil
}

// Disconnect closes the link. The notification channel is closed once
// the read pump drains.
func (b *Bridge) Disconnect() error {
	b.mu.Lock()
	conn := b.conn
	done := b.done
	b.conn = nil
	b.mu.Unlock()

	if conn == nil {
		return nil
	}

	// Best effort close frame; the device side often just drops the link.
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	err := conn.Close()
	<-done

	logging.LogConnection(b.URL, "disconnected")
	return err
}

// Write sends one command frame as a binary message.
func (b *Bridge) Write(ctx context.Context, data []byte) error {
	b.mu.Lock()
	conn := b.conn
	b.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("bridge not connected")
	}

	deadline := time.Now().Add(b.WriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// Notifications returns the inbound notification stream. Returns nil
// before Connect.
func (b *Bridge) Notifications() <-chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.notify
}

// readPump forwards inbound binary messages until the link drops.
func (b *Bridge) readPump(conn *websocket.Conn, notify chan []byte, done chan struct{}) {
	defer close(done)
	defer close(notify)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			logging.Debug("Read pump stopped", zap.Error(err))
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		logging.LogNotification(b.URL, data)
		select {
		case notify <- data:
		default:
			// Nobody is waiting; drop rather than stall the pump.
			logging.Warn("Dropping unconsumed notification",
				zap.Int("length", len(data)),
			)
		}
	}
}
