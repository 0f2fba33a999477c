package protocol

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

// Command opcodes (little-endian on the wire).
const (
	OpcodeImageDelivery uint16 = 0x0002
	OpcodeDefaultMode   uint16 = 0x8003
)

// Header sizes for the two frame kinds.
const (
	// FrameHeaderSize is the length+opcode prefix of a generic frame.
	FrameHeaderSize = 4

	// imageSubHeaderSize is the fixed part of an image delivery payload
	// that precedes the raw image bytes:
	// reserved(1) + size(4) + crc32(4) + reserved(1) + screen(1).
	imageSubHeaderSize = 11
)

// DIY mode selectors for EncodeDIYMode.
const (
	// DIYModeShowNew enters DIY mode, clears the current screen, and
	// shows newly delivered content.
	DIYModeShowNew byte = 1
)

// EncodeCommand builds a generic opcode frame: length ‖ opcode ‖ payload.
// The length field covers the payload plus the 4-byte header.
func EncodeCommand(opcode uint16, payload []byte) []byte {
	frame := make([]byte, FrameHeaderSize+len(payload))
	binary.LittleEndian.PutUint16(frame[0:2], uint16(len(payload)+FrameHeaderSize))
	binary.LittleEndian.PutUint16(frame[2:4], opcode)
	copy(frame[4:], payload)
	return frame
}

// EncodePower builds the power on/off command.
//
// Frame: [5, 0, 7, 1, on]
func EncodePower(on bool) []byte {
	var b byte
	if on {
		b = 1
	}
	return []byte{5, 0, 7, 1, b}
}

// EncodeDIYMode builds the DIY (direct image) mode command. Mode 1
// enters DIY mode, clears the current content, and displays whatever is
// delivered next.
//
// Frame: [5, 0, 4, 1, mode]
func EncodeDIYMode(mode byte) []byte {
	return []byte{5, 0, 4, 1, mode}
}

// EncodeExitToDefaultMode builds the command that returns the device to
// its default display mode. Sent before entering DIY mode so a running
// slideshow or program does not overwrite delivered images.
func EncodeExitToDefaultMode() []byte {
	return EncodeCommand(OpcodeDefaultMode, nil)
}

// EncodeDeviceInfoQuery builds the device-info query. The query doubles
// as a clock sync: it carries the current wall-clock time. lang selects
// the device menu language (0 = default).
//
// Frame: [8, 0, 1, 0x80, hour, minute, second, lang]
func EncodeDeviceInfoQuery(hour, minute, second, lang byte) []byte {
	return []byte{8, 0, 1, 0x80, hour, minute, second, lang}
}

// EncodeClockMode builds the clock display mode command. style selects
// one of the built-in clock faces (0-8).
//
// Frame: [8, 0, 6, 1, style, format24, showDate, 0]
func EncodeClockMode(style byte, format24, showDate bool) []byte {
	var f24, fdate byte
	if format24 {
		f24 = 1
	}
	if showDate {
		fdate = 1
	}
	return []byte{8, 0, 6, 1, style, f24, fdate, 0}
}

// EncodeImageDelivery builds the image delivery frame (opcode 0x0002).
// The payload embeds the image size and the zlib CRC32 of the raw image
// bytes, computed before the frame header is attached. screen selects
// the target screen buffer on the device (1 for the visible screen).
//
// Payload: 0x00 ‖ size u32 ‖ crc32 u32 ‖ 0x00 ‖ screen ‖ image
func EncodeImageDelivery(screen byte, image []byte) []byte {
	payload := make([]byte, imageSubHeaderSize+len(image))
	payload[0] = 0x00
	binary.LittleEndian.PutUint32(payload[1:5], uint32(len(image)))
	binary.LittleEndian.PutUint32(payload[5:9], crc32.ChecksumIEEE(image))
	payload[9] = 0x00
	payload[10] = screen
	copy(payload[11:], image)
	return EncodeCommand(OpcodeImageDelivery, payload)
}

// OpcodeName returns a human-readable name for an opcode.
func OpcodeName(opcode uint16) string {
	switch opcode {
	case OpcodeImageDelivery:
		return "ImageDelivery"
	case OpcodeDefaultMode:
		return "DefaultMode"
	default:
		return fmt.Sprintf("Unknown(0x%04x)", opcode)
	}
}
