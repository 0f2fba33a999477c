package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ipxl/pixelctl/internal/logging"
)

// Options controls text rendering. The zero value renders with the
// built-in face, auto-sizing, no antialiasing and no line spacing; use
// DefaultOptions for the usual antialiased defaults.
type Options struct {
	// Antialias enables grayscale glyph edges. When false, glyphs are
	// thresholded to pure black/white; only the color depth of the draw
	// changes, never the geometry.
	Antialias bool

	// FontSize fixes the font size in pixels. Zero selects auto-sizing.
	FontSize float64

	// FontName is a file name inside FontsDir ("OpenSans-Light" or
	// "OpenSans-Light.ttf"). Empty or unloadable names use the built-in
	// face.
	FontName string

	// LineSpacing is extra vertical space in pixels between lines.
	LineSpacing int

	// FontsDir is the directory searched for FontName.
	FontsDir string
}

// DefaultOptions returns the standard render settings: antialiased,
// auto-sized, built-in face.
func DefaultOptions() Options {
	return Options{Antialias: true}
}

// measuredLine carries a line's tight glyph bounds so draws can place
// the glyph box, not the baseline, at a pixel position.
type measuredLine struct {
	text   string
	width  int
	height int
	minX   fixed.Int26_6
	minY   fixed.Int26_6
}

// measureLine returns the tight pixel width and height of s under face.
func measureLine(face font.Face, s string) (w, h int) {
	b, _ := font.BoundString(face, s)
	w = (b.Max.X - b.Min.X).Ceil()
	h = (b.Max.Y - b.Min.Y).Ceil()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// Render draws text into a width x height bitmap and returns it as PNG
// bytes. Multi-line input splits on "\n". Empty input yields a blank
// canvas; text that cannot fit still renders at the exact target size
// and may be clipped.
func Render(text string, width, height int, opts Options) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	lines := strings.Split(text, "\n")

	ttf := loadFont(opts.FontsDir, opts.FontName)
	var face font.Face
	if opts.FontSize > 0 {
		face = newFace(ttf, opts.FontSize)
	} else {
		face = fitFace(ttf, lines, width, height, opts.LineSpacing)
	}

	measured := make([]measuredLine, len(lines))
	totalHeight := 0
	for i, line := range lines {
		b, _ := font.BoundString(face, line)
		ml := measuredLine{
			text: line,
			minX: b.Min.X,
			minY: b.Min.Y,
		}
		ml.width, ml.height = measureLine(face, line)
		measured[i] = ml
		totalHeight += ml.height
		if i > 0 {
			totalHeight += opts.LineSpacing
		}
	}

	// First pass on a scratch buffer: stack the lines at the origin and
	// find where the bright pixels actually land.
	scratch := image.NewGray(image.Rect(0, 0, width, height))
	y := 0
	for _, ml := range measured {
		drawLine(scratch, face, ml, 0, y, image.NewUniform(color.Gray{Y: 255}))
		y += ml.height + opts.LineSpacing
	}

	box, found := contentBounds(scratch)
	var yOffset int
	if found {
		yOffset = (height-box.Dy())/2 - box.Min.Y
		logging.Debug("Content bounds",
			zap.Int("left", box.Min.X),
			zap.Int("top", box.Min.Y),
			zap.Int("right", box.Max.X),
			zap.Int("bottom", box.Max.Y),
		)
	} else {
		// Nothing above the threshold (blank or whitespace input):
		// center by font metrics alone.
		yOffset = (height - totalHeight) / 2
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	if opts.Antialias {
		white := image.NewUniform(color.White)
		yPos := yOffset
		for _, ml := range measured {
			x := (width - ml.width) / 2
			drawLine(canvas, face, ml, x, yPos, white)
			yPos += ml.height + opts.LineSpacing
		}
	} else {
		// 1-bit path: rasterize to grayscale, then threshold each pixel
		// to full white.
		mono := image.NewGray(image.Rect(0, 0, width, height))
		yPos := yOffset
		for _, ml := range measured {
			x := (width - ml.width) / 2
			drawLine(mono, face, ml, x, yPos, image.NewUniform(color.Gray{Y: 255}))
			yPos += ml.height + opts.LineSpacing
		}
		for py := 0; py < height; py++ {
			for px := 0; px < width; px++ {
				if mono.GrayAt(px, py).Y >= 128 {
					canvas.SetRGBA(px, py, color.RGBA{R: 255, G: 255, B: 255, A: 255})
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLine draws one measured line with its glyph box top-left corner
// at (x, y).
func drawLine(dst draw.Image, face font.Face, ml measuredLine, x, y int, src image.Image) {
	if ml.text == "" {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x) - ml.minX,
			Y: fixed.I(y) - ml.minY,
		},
	}
	d.DrawString(ml.text)
}
