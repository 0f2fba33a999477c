// Package discovery provides mDNS-based discovery of iPIXEL panels.
//
// Panels themselves speak only over a short-range wireless link, so a
// bridge on the local network advertises one mDNS instance per panel it
// can reach, using the "_ipixel._tcp" service type. Instances carry the
// panel's hardware address and last observed signal strength in TXT
// records ("mac" and "rssi").
//
// # Discovery Process
//
//  1. Broadcasts mDNS queries on the local network
//  2. Listens for service advertisements from bridges
//  3. Keeps only instances named with the "IPIXEL-" prefix
//  4. Collects device information (address, bridge host/port, RSSI)
//  5. Returns the list after the timeout period
//
// # Usage Example
//
//	devices, err := discovery.ScanForDevices(10 * time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, device := range devices {
//	    fmt.Println(device)
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - The bridge must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// This package is safe for concurrent use. Multiple discovery sessions can run
// simultaneously without interference.
package discovery
