package discovery

import (
	"testing"
	"time"
)

func TestDevice_String(t *testing.T) {
	tests := []struct {
		name     string
		device   *Device
		expected string
	}{
		{
			name: "with RSSI",
			device: &Device{
				Name:    "IPIXEL-E2F1",
				Address: "11:22:33:44:E2:F1",
				Host:    "bridge.local.",
				Port:    8765,
				RSSI:    -58,
			},
			expected: "IPIXEL-E2F1 (11:22:33:44:E2:F1) via bridge.local.:8765, -58 dBm",
		},
		{
			name: "without RSSI",
			device: &Device{
				Name:    "IPIXEL-0001",
				Address: "AA:BB:CC:DD:00:01",
				Host:    "192.168.1.50",
				Port:    8765,
			},
			expected: "IPIXEL-0001 (AA:BB:CC:DD:00:01) via 192.168.1.50:8765",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.String(); got != tt.expected {
				t.Errorf("Device.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDevice_GetMetadata(t *testing.T) {
	device := &Device{
		Metadata: map[string]string{
			"mac":  "11:22:33:44:E2:F1",
			"rssi": "-58",
		},
	}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "existing key",
			key:      "mac",
			expected: "11:22:33:44:E2:F1",
		},
		{
			name:     "another existing key",
			key:      "rssi",
			expected: "-58",
		},
		{
			name:     "non-existent key",
			key:      "missing",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := device.GetMetadata(tt.key); got != tt.expected {
				t.Errorf("Device.GetMetadata(%v) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestDevice_GetMetadata_NilMap(t *testing.T) {
	device := &Device{
		Metadata: nil,
	}

	if got := device.GetMetadata("anything"); got != "" {
		t.Errorf("Device.GetMetadata() with nil map = %v, want empty string", got)
	}
}

func TestDevice_DiscoveredAt(t *testing.T) {
	now := time.Now()
	device := &Device{
		Name:         "IPIXEL-E2F1",
		DiscoveredAt: now,
	}

	if device.DiscoveredAt != now {
		t.Errorf("Device.DiscoveredAt = %v, want %v", device.DiscoveredAt, now)
	}
}
