package device

import (
	"context"

	"go.uber.org/zap"

	"github.com/ipxl/pixelctl/internal/logging"
	"github.com/ipxl/pixelctl/internal/render"
)

// Mode selects what the display shows.
type Mode string

const (
	// ModeTextImage renders text to a bitmap and delivers it. Default.
	ModeTextImage Mode = "text_image"
	// ModeClock switches the device to a built-in clock face.
	ModeClock Mode = "clock"
	// ModeRhythm is a music-reactive mode. Not implemented.
	ModeRhythm Mode = "rhythm"
	// ModeFun is a built-in effects mode. Not implemented.
	ModeFun Mode = "fun"
)

// ParseMode maps a mode name to a Mode. Unknown names fall back to
// ModeTextImage with a warning rather than failing, so a stale or
// misspelled selection still produces a display update.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeTextImage, ModeClock, ModeRhythm, ModeFun:
		return Mode(s)
	default:
		logging.Warn("Unknown display mode, falling back to text_image",
			zap.String("mode", s),
		)
		return ModeTextImage
	}
}

// UpdateRequest carries the per-update settings consumed by the mode
// handlers. Text and render options apply to ModeTextImage; the clock
// fields apply to ModeClock.
type UpdateRequest struct {
	Text       string
	Render     render.Options
	Screen     byte
	ClockStyle byte
	Format24   bool
	ShowDate   bool
}

// Update routes a display update to the handler for the selected mode.
// Stub modes (rhythm, fun) return a typed failure; they never silently
// succeed.
func (s *Session) Update(ctx context.Context, mode Mode, req UpdateRequest) error {
	switch mode {
	case ModeTextImage:
		return s.DisplayText(ctx, req.Text, req.Screen, req.Render)
	case ModeClock:
		return s.SetClockMode(ctx, req.ClockStyle, req.Format24, req.ShowDate)
	case ModeRhythm, ModeFun:
		return NewUnsupportedModeError(mode)
	default:
		logging.Warn("Unknown display mode, falling back to text_image",
			zap.String("mode", string(mode)),
		)
		return s.DisplayText(ctx, req.Text, req.Screen, req.Render)
	}
}
