package render

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/ipxl/pixelctl/internal/logging"
)

// MinFontSize is the floor of the auto-sizing search. Below this,
// glyphs are unreadable on any supported panel.
const MinFontSize = 4

// fontExtensions are tried when a font name is given without one.
var fontExtensions = []string{".ttf", ".otf"}

// defaultFace is the built-in fixed-size face used when no usable font
// file is available. It cannot be scaled; oversized text may overflow.
func defaultFace() font.Face {
	return basicfont.Face7x13
}

// findFontPath locates a font file by name inside dir. Names without a
// recognized extension get ".ttf" appended. Returns "" when not found.
func findFontPath(dir, name string) string {
	if dir == "" || name == "" {
		return ""
	}

	lower := strings.ToLower(name)
	hasExt := false
	for _, ext := range fontExtensions {
		if strings.HasSuffix(lower, ext) {
			hasExt = true
			break
		}
	}
	if !hasExt {
		name += ".ttf"
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		logging.Debug("Font not found",
			zap.String("name", name),
			zap.String("dir", dir),
		)
		return ""
	}
	return path
}

// loadFont parses the named truetype font from dir. Returns nil when
// the file is missing or unparsable; callers fall back to the built-in
// face, never an error.
func loadFont(dir, name string) *truetype.Font {
	path := findFontPath(dir, name)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logging.Warn("Could not read font file",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil
	}

	f, err := truetype.Parse(data)
	if err != nil {
		logging.Warn("Could not parse font file",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil
	}
	return f
}

// newFace builds a face at the given pixel size, or the built-in face
// when no scalable font is loaded.
func newFace(f *truetype.Font, size float64) font.Face {
	if f == nil {
		return defaultFace()
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// fitFace finds the largest size, from min(width, height) down to
// MinFontSize, at which every line fits the panel: each line no wider
// than width and the stacked line heights no taller than height. When
// nothing fits the built-in face is returned and text may overflow.
func fitFace(f *truetype.Font, lines []string, width, height, lineSpacing int) font.Face {
	max := width
	if height < max {
		max = height
	}

	for size := max; size >= MinFontSize; size-- {
		face := newFace(f, float64(size))

		fits := true
		totalHeight := 0
		for i, line := range lines {
			w, h := measureLine(face, line)
			if w > width {
				fits = false
				break
			}
			totalHeight += h
			if i > 0 {
				totalHeight += lineSpacing
			}
		}
		if fits && totalHeight <= height {
			logging.Debug("Auto-sized font",
				zap.Int("size", size),
				zap.Int("total_height", totalHeight),
				zap.Int("panel_height", height),
			)
			return face
		}

		// The built-in face has one size only; a second pass cannot
		// shrink it.
		if f == nil {
			break
		}
	}

	logging.Warn("No font size fits, text may overflow")
	return defaultFace()
}
