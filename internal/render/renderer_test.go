package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

// decodePNG decodes rendered output and fails the test on error.
func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	return img
}

// brightBounds finds the bounding box of pixels brighter than the
// content threshold in a decoded image.
func brightBounds(img image.Image) (image.Rectangle, bool) {
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return contentBounds(gray)
}

func TestRenderEmptyString(t *testing.T) {
	data, err := Render("", 64, 16, DefaultOptions())
	if err != nil {
		t.Fatalf("Render(\"\") error = %v", err)
	}

	img := decodePNG(t, data)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 16 {
		t.Errorf("image size = %dx%d, want 64x16", img.Bounds().Dx(), img.Bounds().Dy())
	}

	if _, found := brightBounds(img); found {
		t.Error("blank render should have no pixels above the brightness threshold")
	}
}

func TestRenderSingleLineCentered(t *testing.T) {
	data, err := Render("HI", 64, 16, DefaultOptions())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	img := decodePNG(t, data)
	box, found := brightBounds(img)
	if !found {
		t.Fatal("rendered text produced no bright pixels")
	}

	contentWidth := box.Dx()
	wantX := (64 - contentWidth) / 2
	if diff := box.Min.X - wantX; diff < -1 || diff > 1 {
		t.Errorf("content left = %d, want %d (±1) for width %d", box.Min.X, wantX, contentWidth)
	}

	contentHeight := box.Dy()
	wantY := (16 - contentHeight) / 2
	if diff := box.Min.Y - wantY; diff < -1 || diff > 1 {
		t.Errorf("content top = %d, want %d (±1) for height %d", box.Min.Y, wantY, contentHeight)
	}
}

func TestRenderOverlongText(t *testing.T) {
	// Too long to fit even at the minimum font size; must still return
	// an image of the exact target dimensions.
	long := strings.Repeat("WWWWWWWWWW", 20)
	data, err := Render(long, 64, 16, DefaultOptions())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	img := decodePNG(t, data)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 16 {
		t.Errorf("image size = %dx%d, want 64x16", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRenderMultiline(t *testing.T) {
	data, err := Render("AB\nC", 64, 64, DefaultOptions())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	img := decodePNG(t, data)
	if _, found := brightBounds(img); !found {
		t.Error("multi-line render produced no bright pixels")
	}
}

func TestRenderNoAntialias(t *testing.T) {
	opts := DefaultOptions()
	opts.Antialias = false

	data, err := Render("X", 32, 16, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	img := decodePNG(t, data)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			if g != 0 && g != 255 {
				t.Fatalf("pixel (%d,%d) = %d, want pure black or white in 1-bit mode", x, y, g)
			}
		}
	}
}

func TestRenderFixedFontSizeMissingFont(t *testing.T) {
	// Named font does not exist; the built-in face must be used and the
	// render must still succeed.
	opts := DefaultOptions()
	opts.FontName = "DoesNotExist"
	opts.FontSize = 12
	opts.FontsDir = t.TempDir()

	data, err := Render("ok", 64, 16, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	img := decodePNG(t, data)
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 16 {
		t.Errorf("image size = %dx%d, want 64x16", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRenderInvalidSize(t *testing.T) {
	if _, err := Render("x", 0, 16, DefaultOptions()); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := Render("x", 64, -1, DefaultOptions()); err == nil {
		t.Error("expected error for negative height")
	}
}

func TestMeasureLine(t *testing.T) {
	face := defaultFace()

	w, h := measureLine(face, "")
	if w != 0 || h != 0 {
		t.Errorf("empty line measured %dx%d, want 0x0", w, h)
	}

	w1, _ := measureLine(face, "A")
	w2, _ := measureLine(face, "AA")
	if w1 <= 0 {
		t.Errorf("single glyph width = %d, want > 0", w1)
	}
	if w2 <= w1 {
		t.Errorf("two glyphs (%d) should measure wider than one (%d)", w2, w1)
	}
}

func TestFindFontPath(t *testing.T) {
	dir := t.TempDir()

	if got := findFontPath(dir, "nope"); got != "" {
		t.Errorf("findFontPath() = %q, want empty for missing font", got)
	}
	if got := findFontPath("", "anything"); got != "" {
		t.Errorf("findFontPath() = %q, want empty for empty dir", got)
	}
	if got := findFontPath(dir, ""); got != "" {
		t.Errorf("findFontPath() = %q, want empty for empty name", got)
	}
}
