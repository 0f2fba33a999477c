package discovery

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type advertised by the bridge
	// for each reachable panel
	ServiceType = "_ipixel._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// NamePrefix identifies iPIXEL panels; instances without it are
	// other vendors' hardware and are skipped
	NamePrefix = "IPIXEL-"

	// DefaultScanTimeout is the default timeout for device discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is the default bridge WebSocket port
	DefaultPort = 8765
)

// Scanner handles mDNS device discovery
type Scanner struct {
	// Timeout is the maximum time to wait for device discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForDevices discovers all iPIXEL panels reachable through bridges
// on the local network. Returns a list of discovered devices or an error.
func (s *Scanner) ScanForDevices() ([]*Device, error) {
	return s.ScanForDevicesWithContext(context.Background())
}

// ScanForDevicesWithContext discovers devices with a custom context
func (s *Scanner) ScanForDevicesWithContext(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	devices := make([]*Device, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			device := s.parseServiceEntry(entry)
			if device != nil {
				devices = append(devices, device)
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation)
	<-ctx.Done()

	return devices, nil
}

// WaitForDevice waits for a specific device by hardware address.
// Returns the device or an error if not found within timeout.
func (s *Scanner) WaitForDevice(address string) (*Device, error) {
	return s.WaitForDeviceWithContext(context.Background(), address)
}

// WaitForDeviceWithContext waits for a specific device with a custom context
func (s *Scanner) WaitForDeviceWithContext(ctx context.Context, address string) (*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	deviceChan := make(chan *Device, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			device := s.parseServiceEntry(entry)
			if device != nil && strings.EqualFold(device.Address, address) {
				deviceChan <- device
				cancel()
				return
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case device := <-deviceChan:
		return device, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("device %s not found within timeout", address)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Device.
// Returns nil if the entry is not an iPIXEL panel.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Device {
	name := entry.Instance
	if !strings.HasPrefix(name, NamePrefix) {
		return nil
	}

	// Parse TXT records into metadata
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	// The bridge publishes the panel's hardware address in TXT; an
	// entry without it is unusable since sessions are keyed by address.
	address := metadata["mac"]
	if address == "" {
		return nil
	}

	host := entry.HostName
	if host == "" && len(entry.AddrIPv4) > 0 {
		host = entry.AddrIPv4[0].String()
	}
	if host == "" && len(entry.AddrIPv6) > 0 {
		host = entry.AddrIPv6[0].String()
	}
	if host == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	rssi := 0
	if v, err := strconv.Atoi(metadata["rssi"]); err == nil {
		rssi = v
	}

	return &Device{
		Name:         name,
		Address:      address,
		Host:         host,
		Port:         port,
		RSSI:         rssi,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForDevices is a convenience function to scan for devices with a custom timeout
func ScanForDevices(timeout time.Duration) ([]*Device, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForDevices()
}

// QuickScan performs a fast scan with a 3-second timeout
func QuickScan() ([]*Device, error) {
	scanner := NewScanner()
	scanner.Timeout = 3 * time.Second
	return scanner.ScanForDevices()
}

// FindDevice searches for a specific device by hardware address with default timeout
func FindDevice(address string) (*Device, error) {
	scanner := NewScanner()
	return scanner.WaitForDevice(address)
}
