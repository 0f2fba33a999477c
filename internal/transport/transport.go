package transport

import "context"

// Transport is the wireless link to one display device. Implementations
// own all timeouts at the link boundary; callers serialize use (one
// in-flight request at a time).
type Transport interface {
	// Connect establishes the link. It must be called before Write and
	// may be called again after Disconnect.
	Connect(ctx context.Context) error

	// Disconnect tears the link down. Safe to call when not connected.
	Disconnect() error

	// Write sends one complete command frame to the device.
	Write(ctx context.Context, data []byte) error

	// Notifications returns the stream of inbound notification events.
	// The channel is closed when the link drops.
	Notifications() <-chan []byte
}
