// Package protocol implements the iPIXEL Color device binary protocol.
//
// This package handles construction of command frames sent to iPIXEL
// LED-matrix displays and parsing of the notification responses they
// return. It is a pure byte-transform layer: no I/O, no state. All
// integer fields are little-endian.
//
// # Frame Format
//
// Every command is a single binary frame:
//
//	[2B] total length = len(payload) + 4 (little-endian)
//	[2B] opcode (little-endian)
//	[NB] payload
//
// A handful of short commands (power, DIY mode, device-info query) are
// fixed byte sequences that follow the same length-prefix convention.
//
// # Image Delivery
//
// Rendered bitmaps are shipped as a PNG container inside an image
// delivery frame (opcode 0x0002). The payload embeds the image size and
// a zlib CRC32 of the image bytes so the device can verify the transfer:
//
//	0x00 ‖ size u32 ‖ crc32 u32 ‖ 0x00 ‖ screen u8 ‖ image bytes
//
// # Device Info
//
// The device-info query carries the current wall-clock time and a
// language byte. The response encodes the panel geometry as a raw type
// byte which resolves through two lookup tables (raw byte -> logical
// type -> width/height); several raw bytes alias to the same panel size
// family, which is why the indirection exists.
//
// # Error Handling
//
// Malformed or truncated responses return a typed decode error. Callers
// are expected to substitute DefaultDeviceInfo rather than surface the
// failure to the user, so display updates stay possible with unknown
// geometry.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use.
package protocol
