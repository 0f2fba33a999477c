package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name        string
		entry       *zeroconf.ServiceEntry
		wantNil     bool
		wantAddress string
		wantHost    string
		wantPort    int
		wantRSSI    int
	}{
		{
			name: "valid panel with full TXT data",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "IPIXEL-E2F1"},
				HostName:      "bridge.local.",
				Port:          8765,
				Text:          []string{"mac=11:22:33:44:E2:F1", "rssi=-58"},
			},
			wantNil:     false,
			wantAddress: "11:22:33:44:E2:F1",
			wantHost:    "bridge.local.",
			wantPort:    8765,
			wantRSSI:    -58,
		},
		{
			name: "panel without rssi record",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "IPIXEL-0001"},
				HostName:      "bridge.local.",
				Port:          8765,
				Text:          []string{"mac=AA:BB:CC:DD:00:01"},
			},
			wantNil:     false,
			wantAddress: "AA:BB:CC:DD:00:01",
			wantHost:    "bridge.local.",
			wantPort:    8765,
			wantRSSI:    0,
		},
		{
			name: "no port specified (should default)",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "IPIXEL-0002"},
				HostName:      "bridge.local.",
				Port:          0,
				Text:          []string{"mac=AA:BB:CC:DD:00:02"},
			},
			wantNil:     false,
			wantAddress: "AA:BB:CC:DD:00:02",
			wantHost:    "bridge.local.",
			wantPort:    DefaultPort,
		},
		{
			name: "no hostname falls back to IPv4 address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "IPIXEL-0003"},
				Port:          8765,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
				Text:          []string{"mac=AA:BB:CC:DD:00:03"},
			},
			wantNil:     false,
			wantAddress: "AA:BB:CC:DD:00:03",
			wantHost:    "192.168.1.50",
			wantPort:    8765,
		},
		{
			name: "other vendor's hardware (wrong name prefix)",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "LEDBLE-1234"},
				HostName:      "bridge.local.",
				Port:          8765,
				Text:          []string{"mac=AA:BB:CC:DD:12:34"},
			},
			wantNil: true,
		},
		{
			name: "empty instance name",
			entry: &zeroconf.ServiceEntry{
				HostName: "bridge.local.",
				Port:     8765,
				Text:     []string{"mac=AA:BB:CC:DD:12:34"},
			},
			wantNil: true,
		},
		{
			name: "missing mac record",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "IPIXEL-0004"},
				HostName:      "bridge.local.",
				Port:          8765,
				Text:          []string{"rssi=-40"},
			},
			wantNil: true,
		},
		{
			name: "no host and no addresses",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "IPIXEL-0005"},
				Port:          8765,
				Text:          []string{"mac=AA:BB:CC:DD:00:05"},
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if device != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", device)
				}
				return
			}

			if device == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil device")
			}

			if device.Address != tt.wantAddress {
				t.Errorf("device.Address = %v, want %v", device.Address, tt.wantAddress)
			}

			if device.Host != tt.wantHost {
				t.Errorf("device.Host = %v, want %v", device.Host, tt.wantHost)
			}

			if device.Port != tt.wantPort {
				t.Errorf("device.Port = %v, want %v", device.Port, tt.wantPort)
			}

			if device.RSSI != tt.wantRSSI {
				t.Errorf("device.RSSI = %v, want %v", device.RSSI, tt.wantRSSI)
			}

			if device.Name != tt.entry.Instance {
				t.Errorf("device.Name = %v, want %v", device.Name, tt.entry.Instance)
			}

			// Check that DiscoveredAt is recent (within last second)
			if time.Since(device.DiscoveredAt) > time.Second {
				t.Errorf("device.DiscoveredAt is not recent: %v", device.DiscoveredAt)
			}
		})
	}
}

func TestScanner_parseServiceEntry_Metadata(t *testing.T) {
	scanner := NewScanner()

	entry := &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "IPIXEL-E2F1"},
		HostName:      "bridge.local.",
		Port:          8765,
		Text:          []string{"mac=11:22:33:44:E2:F1", "rssi=-58", "flag", "fw=1.0"},
	}

	device := scanner.parseServiceEntry(entry)
	if device == nil {
		t.Fatal("parseServiceEntry() = nil, want device")
	}

	expectedMetadata := map[string]string{
		"mac":  "11:22:33:44:E2:F1",
		"rssi": "-58",
		"flag": "", // Key without value
		"fw":   "1.0",
	}

	if len(device.Metadata) != len(expectedMetadata) {
		t.Errorf("device.Metadata has %d entries, want %d", len(device.Metadata), len(expectedMetadata))
	}

	for key, expectedValue := range expectedMetadata {
		if actualValue, ok := device.Metadata[key]; !ok {
			t.Errorf("device.Metadata missing key %q", key)
		} else if actualValue != expectedValue {
			t.Errorf("device.Metadata[%q] = %q, want %q", key, actualValue, expectedValue)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner == nil {
		t.Fatal("NewScanner() = nil, want scanner")
	}

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestDeviceBridgeHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"bridge.local.", "bridge.local"},
		{"bridge.local", "bridge.local"},
		{"192.168.1.50", "192.168.1.50"},
	}

	for _, tt := range tests {
		d := &Device{Host: tt.host}
		if got := d.BridgeHost(); got != tt.want {
			t.Errorf("BridgeHost(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}
