// Package config provides user configuration management for pixelctl.
//
// This package manages a YAML-based configuration file that stores
// user-defined metadata for iPIXEL panels (nicknames, the bridge each
// panel was last reachable through) and default text rendering
// settings. The configuration follows OS-specific conventions for
// storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/pixelctl/config.yaml or $HOME/.config/pixelctl/config.yaml
//   - macOS: $HOME/.config/pixelctl/config.yaml
//   - Windows: %LOCALAPPDATA%\pixelctl\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a discovery result and a nickname
//	registry.UpdateDeviceLastSeen("11:22:33:44:E2:F1", "bridge.local", 8765, -58)
//	registry.SetDeviceNickname("11:22:33:44:E2:F1", "Kitchen Panel")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
