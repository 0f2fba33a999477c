package device

import (
	"errors"
	"fmt"

	"github.com/ipxl/pixelctl/internal/protocol"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeConnection indicates the transport is unreachable or the
	// link was lost
	ErrTypeConnection ErrorType = iota
	// ErrTypeTimeout indicates no response arrived within the deadline
	ErrTypeTimeout
	// ErrTypeProtocol indicates a response was too short or unparseable
	ErrTypeProtocol
	// ErrTypeUnsupportedMode indicates a stub display mode was invoked
	ErrTypeUnsupportedMode
	// ErrTypeRender indicates text rendering failed
	ErrTypeRender
	// ErrTypeUnknown indicates an unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeConnection:
		return "Connection Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeProtocol:
		return "Protocol Error"
	case ErrTypeUnsupportedMode:
		return "Unsupported Mode"
	case ErrTypeRender:
		return "Render Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents an error that occurred during device communication
type DeviceError struct {
	Type      ErrorType // Category of error
	Message   string    // Human-readable error message
	Err       error     // Underlying error (if any)
	Address   string    // Device address (for context)
	Retryable bool      // Whether the error is retryable
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// NewConnectionError creates a connection-level error
func NewConnectionError(address, message string, err error) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeConnection,
		Message:   message,
		Err:       err,
		Address:   address,
		Retryable: true,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(address, message string) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeTimeout,
		Message:   message,
		Address:   address,
		Retryable: true,
	}
}

// NewProtocolError wraps a decode failure from the protocol layer
func NewProtocolError(address, message string, err error) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeProtocol,
		Message:   message,
		Err:       err,
		Address:   address,
		Retryable: false,
	}
}

// NewUnsupportedModeError creates the typed failure returned by stub
// display modes
func NewUnsupportedModeError(mode Mode) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeUnsupportedMode,
		Message:   fmt.Sprintf("display mode %q is not implemented", mode),
		Retryable: false,
	}
}

// NewRenderError creates a rendering error
func NewRenderError(message string, err error) *DeviceError {
	return &DeviceError{
		Type:      ErrTypeRender,
		Message:   message,
		Err:       err,
		Retryable: false,
	}
}

// IsConnectionError checks if an error is a connection error
func IsConnectionError(err error) bool {
	var devErr *DeviceError
	return errors.As(err, &devErr) && devErr.Type == ErrTypeConnection
}

// IsTimeoutError checks if an error is a timeout error
func IsTimeoutError(err error) bool {
	var devErr *DeviceError
	return errors.As(err, &devErr) && devErr.Type == ErrTypeTimeout
}

// IsProtocolError checks if an error is a protocol decode error,
// either the typed wrapper or a raw decode error from the codec
func IsProtocolError(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) && devErr.Type == ErrTypeProtocol {
		return true
	}
	var decodeErr *protocol.DecodeError
	return errors.As(err, &decodeErr)
}

// IsUnsupportedModeError checks if an error reports a stub display mode
func IsUnsupportedModeError(err error) bool {
	var devErr *DeviceError
	return errors.As(err, &devErr) && devErr.Type == ErrTypeUnsupportedMode
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}
