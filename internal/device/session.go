package device

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ipxl/pixelctl/internal/logging"
	"github.com/ipxl/pixelctl/internal/protocol"
	"github.com/ipxl/pixelctl/internal/render"
	"github.com/ipxl/pixelctl/internal/transport"
)

const (
	// DefaultResponseTimeout is how long a command waits for its
	// notification. Most commands are not acknowledged by the device,
	// so expiry is usually not an error.
	DefaultResponseTimeout = 2 * time.Second

	// DefaultInfoTimeout is the longer wait for the device-info query,
	// the one command whose response matters.
	DefaultInfoTimeout = 5 * time.Second

	// modeSettleDelay gives the device time to switch modes between
	// consecutive commands of a display update.
	modeSettleDelay = 100 * time.Millisecond
)

// Session drives one display device over a transport. A session owns
// its device address for its lifetime and caches the device geometry
// after the first successful info query; the cache is invalidated on
// Disconnect.
//
// Commands are serialized: one in-flight request awaits at most one
// notification before the next request is issued. All exported methods
// are safe for concurrent use.
type Session struct {
	address string
	tr      transport.Transport

	// ResponseTimeout bounds the notification wait after ordinary
	// commands.
	ResponseTimeout time.Duration

	// InfoTimeout bounds the notification wait after the device-info
	// query.
	InfoTimeout time.Duration

	mu        sync.Mutex // serializes command issuance
	stateMu   sync.RWMutex
	info      *protocol.DeviceInfo
	connected bool
	power     bool
}

// NewSession creates a session for the device at address.
func NewSession(address string, tr transport.Transport) *Session {
	return &Session{
		address:         address,
		tr:              tr,
		ResponseTimeout: DefaultResponseTimeout,
		InfoTimeout:     DefaultInfoTimeout,
	}
}

// Address returns the device address this session is bound to.
func (s *Session) Address() string {
	return s.address
}

// Connected reports whether the session holds a live link.
func (s *Session) Connected() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.connected
}

// Connect establishes the transport link. Connect failures are typed:
// deadline expiry maps to a timeout error, everything else to a
// connection error.
func (s *Session) Connect(ctx context.Context) error {
	if err := s.tr.Connect(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return NewTimeoutError(s.address, "connection timed out")
		}
		return NewConnectionError(s.address, "connection failed", err)
	}

	s.stateMu.Lock()
	s.connected = true
	s.stateMu.Unlock()

	logging.LogConnection(s.address, "session_connected")
	return nil
}

// Disconnect drops the link and invalidates the cached device info.
func (s *Session) Disconnect() error {
	s.stateMu.Lock()
	s.connected = false
	s.info = nil
	s.stateMu.Unlock()

	err := s.tr.Disconnect()
	logging.LogConnection(s.address, "session_disconnected")
	return err
}

// SetPower turns the display on or off. The device does not acknowledge
// power commands, so a response timeout is not an error.
func (s *Session) SetPower(ctx context.Context, on bool) error {
	_, err := s.sendCommand(ctx, "power", protocol.EncodePower(on), s.ResponseTimeout)
	if err != nil && !IsTimeoutError(err) {
		return err
	}

	s.stateMu.Lock()
	s.power = on
	s.stateMu.Unlock()
	return nil
}

// Power returns the last power state set through this session.
func (s *Session) Power() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.power
}

// DeviceInfo returns the panel geometry and firmware versions, querying
// the device on first use. Absence of a response or an unparseable one
// degrades to DefaultDeviceInfo rather than failing: display updates
// must remain possible with unknown geometry. The result, degraded or
// not, is cached until Disconnect.
func (s *Session) DeviceInfo(ctx context.Context) protocol.DeviceInfo {
	s.stateMu.RLock()
	if s.info != nil {
		info := *s.info
		s.stateMu.RUnlock()
		return info
	}
	s.stateMu.RUnlock()

	now := time.Now()
	query := protocol.EncodeDeviceInfoQuery(
		byte(now.Hour()), byte(now.Minute()), byte(now.Second()), 0)

	var info protocol.DeviceInfo
	resp, err := s.sendCommand(ctx, "device_info_query", query, s.InfoTimeout)
	if err != nil {
		logging.Warn("Device info query failed, using defaults",
			zap.String("address", s.address),
			zap.Error(err),
		)
		info = protocol.DefaultDeviceInfo()
	} else {
		info, err = protocol.ParseDeviceInfo(resp)
		if err != nil {
			logging.Warn("Device info response unparseable, using defaults",
				zap.String("address", s.address),
				zap.Error(err),
			)
			info = protocol.DefaultDeviceInfo()
		}
	}

	logging.Info("Device info resolved",
		zap.String("address", s.address),
		zap.String("info", info.String()),
	)

	s.stateMu.Lock()
	s.info = &info
	s.stateMu.Unlock()
	return info
}

// DisplayText renders text to the panel's geometry and delivers it.
// The device is first returned to its default mode and switched into
// DIY mode so the delivered image replaces any running program. screen
// 0 targets the visible screen buffer (1).
func (s *Session) DisplayText(ctx context.Context, text string, screen byte, opts render.Options) error {
	if screen == 0 {
		screen = 1
	}

	info := s.DeviceInfo(ctx)

	image, err := render.Render(text, info.Width, info.Height, opts)
	if err != nil {
		return NewRenderError("failed to render text", err)
	}

	if err := s.sendUnacked(ctx, "exit_to_default_mode", protocol.EncodeExitToDefaultMode()); err != nil {
		return err
	}
	time.Sleep(modeSettleDelay)

	if err := s.sendUnacked(ctx, "diy_mode", protocol.EncodeDIYMode(protocol.DIYModeShowNew)); err != nil {
		return err
	}
	time.Sleep(modeSettleDelay)

	if err := s.sendUnacked(ctx, "image_delivery", protocol.EncodeImageDelivery(screen, image)); err != nil {
		return err
	}

	logging.Info("Display updated",
		zap.String("address", s.address),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.Int("image_bytes", len(image)),
	)
	return nil
}

// SetClockMode switches the display to a built-in clock face.
func (s *Session) SetClockMode(ctx context.Context, style byte, format24, showDate bool) error {
	return s.sendUnacked(ctx, "clock_mode", protocol.EncodeClockMode(style, format24, showDate))
}

// sendUnacked issues a command whose response, if any, is informational
// only: a timeout waiting for it is not a failure.
func (s *Session) sendUnacked(ctx context.Context, label string, frame []byte) error {
	_, err := s.sendCommand(ctx, label, frame, s.ResponseTimeout)
	if err != nil && !IsTimeoutError(err) {
		return err
	}
	return nil
}

// sendCommand writes one frame and waits for the next notification.
// The command mutex enforces the one-in-flight-request discipline.
func (s *Session) sendCommand(ctx context.Context, label string, frame []byte, timeout time.Duration) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stateMu.RLock()
	connected := s.connected
	s.stateMu.RUnlock()
	if !connected {
		return nil, NewConnectionError(s.address, "device not connected", nil)
	}

	notify := s.tr.Notifications()
	logging.LogCommand(s.address, label, frame)

	if err := s.tr.Write(ctx, frame); err != nil {
		return nil, NewConnectionError(s.address, "write failed", err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case data, ok := <-notify:
		if !ok {
			s.stateMu.Lock()
			s.connected = false
			s.stateMu.Unlock()
			return nil, NewConnectionError(s.address, "link closed while waiting for response", nil)
		}
		return data, nil
	case <-timer.C:
		return nil, NewTimeoutError(s.address, "no response within "+timeout.String())
	case <-ctx.Done():
		return nil, NewTimeoutError(s.address, "canceled while waiting for response")
	}
}
