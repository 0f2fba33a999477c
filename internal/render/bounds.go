package render

import "image"

// brightnessThreshold is the grayscale value a pixel must exceed to
// count as content during the bounding-box scan.
const brightnessThreshold = 64

// contentBounds scans a grayscale buffer for the tightest rectangle
// containing all pixels brighter than brightnessThreshold. The vertical
// band is found first (top-down, then bottom-up); the horizontal scan
// is restricted to that band. Returns ok=false when no pixel exceeds
// the threshold.
func contentBounds(img *image.Gray) (bounds image.Rectangle, ok bool) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	top := -1
	for y := 0; y < height && top < 0; y++ {
		for x := 0; x < width; x++ {
			if img.GrayAt(x, y).Y > brightnessThreshold {
				top = y
				break
			}
		}
	}
	if top < 0 {
		return image.Rectangle{}, false
	}

	bottom := -1
	for y := height - 1; y >= 0 && bottom < 0; y-- {
		for x := 0; x < width; x++ {
			if img.GrayAt(x, y).Y > brightnessThreshold {
				bottom = y + 1
				break
			}
		}
	}

	left := -1
	for x := 0; x < width && left < 0; x++ {
		for y := top; y < bottom; y++ {
			if img.GrayAt(x, y).Y > brightnessThreshold {
				left = x
				break
			}
		}
	}

	right := -1
	for x := width - 1; x >= 0 && right < 0; x-- {
		for y := top; y < bottom; y++ {
			if img.GrayAt(x, y).Y > brightnessThreshold {
				right = x + 1
				break
			}
		}
	}

	if left < 0 || right < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(left, top, right, bottom), true
}
