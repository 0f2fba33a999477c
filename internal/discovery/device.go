package discovery

import (
	"fmt"
	"strings"
	"time"
)

// Device represents a discovered iPIXEL panel on the network
type Device struct {
	// Name is the advertised instance name (e.g., "IPIXEL-E2F1")
	Name string

	// Address is the panel's hardware address, taken from the "mac"
	// TXT record (e.g., "11:22:33:44:E2:F1")
	Address string

	// Host is the hostname of the bridge serving this panel
	Host string

	// Port is the bridge's WebSocket port
	Port int

	// RSSI is the signal strength reported by the bridge, in dBm.
	// Zero when the bridge does not report one.
	RSSI int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	if d.RSSI != 0 {
		return fmt.Sprintf("%s (%s) via %s:%d, %d dBm", d.Name, d.Address, d.Host, d.Port, d.RSSI)
	}
	return fmt.Sprintf("%s (%s) via %s:%d", d.Name, d.Address, d.Host, d.Port)
}

// BridgeHost returns the bridge hostname without a trailing mDNS dot,
// suitable for dialing.
func (d *Device) BridgeHost() string {
	return strings.TrimSuffix(d.Host, ".")
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
