package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for panels and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device hardware address
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single panel.
// This is keyed by the panel's hardware address in the Registry.
type Device struct {
	Nickname string      `yaml:"nickname,omitempty"`  // User-friendly name
	Bridge   *BridgeMeta `yaml:"bridge,omitempty"`    // Bridge this panel was last reachable through
	LastSeen time.Time   `yaml:"last_seen,omitempty"` // Last discovery/connection time
	LastRSSI int         `yaml:"last_rssi,omitempty"` // Last observed signal strength in dBm
}

// BridgeMeta records how to reach a panel's bridge.
type BridgeMeta struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool         `yaml:"auto_discover"`    // Enable automatic mDNS discovery on startup
	DiscoverTimeout int          `yaml:"discover_timeout"` // mDNS discovery timeout in seconds
	Render          *RenderPrefs `yaml:"render,omitempty"` // Default text rendering settings
}

// RenderPrefs represents default text rendering settings. Zero values
// mean "let the renderer decide": auto-sized font, built-in face.
type RenderPrefs struct {
	FontName    string  `yaml:"font,omitempty"`         // TrueType font name under FontsDir
	FontSize    float64 `yaml:"font_size,omitempty"`    // Fixed size in points; 0 auto-sizes
	Antialias   bool    `yaml:"antialias"`              // Grayscale edges vs 1-bit
	LineSpacing int     `yaml:"line_spacing,omitempty"` // Extra pixels between lines
	FontsDir    string  `yaml:"fonts_dir,omitempty"`    // Directory searched for fonts
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
			Render: &RenderPrefs{
				Antialias: true,
			},
		},
	}
}

// GetDevice retrieves device metadata by hardware address.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(address string) *Device {
	return r.Devices[address]
}

// EnsureDevice ensures a device entry exists in the registry.
// If the device doesn't exist, creates a new entry with default values.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(address string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[address]; exists {
		return device
	}

	device := &Device{}
	r.Devices[address] = device
	return device
}

// UpdateDeviceLastSeen records a discovery result for a device: when it
// was seen, through which bridge, and at what signal strength.
func (r *Registry) UpdateDeviceLastSeen(address, bridgeHost string, bridgePort, rssi int) {
	device := r.EnsureDevice(address)
	device.LastSeen = time.Now()
	device.LastRSSI = rssi
	device.Bridge = &BridgeMeta{
		Host: bridgeHost,
		Port: bridgePort,
	}
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(address, nickname string) {
	device := r.EnsureDevice(address)
	device.Nickname = nickname
}

// RenderPreferences returns the configured render defaults, falling
// back to the built-in defaults when the section is absent.
func (r *Registry) RenderPreferences() RenderPrefs {
	if r.Preferences == nil || r.Preferences.Render == nil {
		return RenderPrefs{Antialias: true}
	}
	return *r.Preferences.Render
}
