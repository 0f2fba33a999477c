// Package logging provides structured logging for pixelctl.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the tool. CLI output stays clean by default:
// unless PIXELCTL_LOG_LEVEL is set, the logger is a no-op.
//
// # Log Levels
//
//   - Debug: protocol detail (frame hex dumps, font sizing, bounds)
//   - Info: normal operations (connections, display updates)
//   - Warn: degraded behavior (fallback fonts, default device info)
//   - Error: failures surfaced to the caller
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Info("Display updated",
//	    zap.String("address", "AA:BB:CC:DD:EE:FF"),
//	    zap.Int("width", 64),
//	    zap.Int("height", 16),
//	)
//
// Protocol traffic has dedicated helpers that attach truncated hex
// dumps: LogCommand, LogNotification, LogConnection.
//
// # Configuration
//
// Initialize at startup and flush on exit:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
