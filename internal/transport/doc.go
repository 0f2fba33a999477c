// Package transport carries command frames between a session and a
// display device.
//
// The Transport interface is the session's only view of the wireless
// link: connect, disconnect, write one frame, and a stream of inbound
// notification events. Request/response pairing is the caller's job;
// the transport neither inspects nor matches frames.
//
// Bridge is the shipped implementation. It talks to a BLE gateway over
// binary WebSocket: each outbound message is written to the device's
// command characteristic by the gateway, and notify events from the
// device arrive as binary messages. Connect and write deadlines live
// here, at the link boundary, not in the protocol or session layers.
package transport
