package protocol

import (
	"fmt"
)

// minInfoResponseSize is the shortest device-info response that still
// carries the type byte at offset 4.
const minInfoResponseSize = 5

// DeviceInfo describes the geometry and firmware of a connected panel.
type DeviceInfo struct {
	Width       int
	Height      int
	DeviceType  string
	MCUVersion  string
	WiFiVersion string
}

// DefaultDeviceInfo returns the degraded-mode fallback used when the
// device-info query times out or its response cannot be parsed. The
// 64x16 geometry is the most common panel, not a protocol constant;
// display updates remain possible but may be mis-sized.
func DefaultDeviceInfo() DeviceInfo {
	return DeviceInfo{
		Width:       64,
		Height:      16,
		DeviceType:  "Unknown",
		MCUVersion:  "Unknown",
		WiFiVersion: "Unknown",
	}
}

func (i DeviceInfo) String() string {
	return fmt.Sprintf("DeviceInfo{%dx%d, type=%s, mcu=%s, wifi=%s}",
		i.Width, i.Height, i.DeviceType, i.MCUVersion, i.WiFiVersion)
}

// deviceTypeMap resolves the raw type byte from a device-info response
// to a logical panel type. Several raw bytes alias to the same panel
// size family. Unknown bytes fall back to logical type 0; keep this
// table in lockstep with ledSizeMap when adding device types.
var deviceTypeMap = map[byte]int{
	128: 0,  // 64x64
	129: 2,  // 32x32
	130: 4,  // 32x16
	131: 3,  // 64x16
	132: 1,  // 96x16
	133: 5,  // 64x20
	134: 6,  // 128x32
	135: 7,  // 144x16
	136: 8,  // 192x16
	137: 9,  // 48x24
	138: 10, // 64x32
	139: 11, // 96x32
	140: 12, // 128x32
	141: 13, // 96x32
	142: 14, // 160x32
	143: 15, // 192x32
	144: 16, // 256x32
	145: 17, // 320x32
	146: 18, // 384x32
	147: 19, // 448x32
}

// ledSizeMap resolves a logical panel type to its width and height.
var ledSizeMap = map[int][2]int{
	0:  {64, 64},
	1:  {96, 16},
	2:  {32, 32},
	3:  {64, 16},
	4:  {32, 16},
	5:  {64, 20},
	6:  {128, 32},
	7:  {144, 16},
	8:  {192, 16},
	9:  {48, 24},
	10: {64, 32},
	11: {96, 32},
	12: {128, 32},
	13: {96, 32},
	14: {160, 32},
	15: {192, 32},
	16: {256, 32},
	17: {320, 32},
	18: {384, 32},
	19: {448, 32},
}

// ResolvePanelSize maps a raw device-type byte to panel dimensions via
// the two-stage lookup. Unknown bytes resolve to logical type 0 (64x64).
func ResolvePanelSize(typeByte byte) (width, height int) {
	logical, ok := deviceTypeMap[typeByte]
	if !ok {
		logical = 0
	}
	size, ok := ledSizeMap[logical]
	if !ok {
		return 64, 64
	}
	return size[0], size[1]
}

// ParseDeviceInfo decodes a device-info response notification.
//
// The type byte sits at offset 4. Responses of at least 8 bytes also
// carry firmware versions: bytes 4-5 are the MCU major/minor and bytes
// 6-7 the WiFi major/minor, formatted as "major.minor" with a
// zero-padded minor. Shorter responses report "Unknown" versions.
func ParseDeviceInfo(data []byte) (DeviceInfo, error) {
	if len(data) < minInfoResponseSize {
		return DeviceInfo{}, &DecodeError{
			Got:  len(data),
			Need: minInfoResponseSize,
		}
	}

	typeByte := data[4]
	width, height := ResolvePanelSize(typeByte)

	info := DeviceInfo{
		Width:       width,
		Height:      height,
		DeviceType:  fmt.Sprintf("Type %d", typeByte),
		MCUVersion:  "Unknown",
		WiFiVersion: "Unknown",
	}

	if len(data) >= 8 {
		info.MCUVersion = fmt.Sprintf("%d.%02d", data[4], data[5])
		info.WiFiVersion = fmt.Sprintf("%d.%02d", data[6], data[7])
	}

	return info, nil
}

// DecodeError reports a notification too short to parse.
type DecodeError struct {
	Got  int
	Need int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("response too short: got %d bytes, need at least %d", e.Got, e.Need)
}
