package render

import (
	"image"
	"image/color"
	"testing"
)

func TestContentBounds(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(*image.Gray)
		want   image.Rectangle
		wantOK bool
	}{
		{
			name:   "blank image has no bounds",
			setup:  func(*image.Gray) {},
			wantOK: false,
		},
		{
			name: "single bright pixel",
			setup: func(img *image.Gray) {
				img.SetGray(10, 3, color.Gray{Y: 255})
			},
			want:   image.Rect(10, 3, 11, 4),
			wantOK: true,
		},
		{
			name: "bright rectangle",
			setup: func(img *image.Gray) {
				for y := 2; y < 6; y++ {
					for x := 5; x < 20; x++ {
						img.SetGray(x, y, color.Gray{Y: 200})
					}
				}
			},
			want:   image.Rect(5, 2, 20, 6),
			wantOK: true,
		},
		{
			name: "pixels at threshold are ignored",
			setup: func(img *image.Gray) {
				img.SetGray(1, 1, color.Gray{Y: brightnessThreshold})
			},
			wantOK: false,
		},
		{
			name: "dim noise ignored around bright content",
			setup: func(img *image.Gray) {
				img.SetGray(0, 0, color.Gray{Y: 30})
				img.SetGray(63, 15, color.Gray{Y: 50})
				img.SetGray(30, 8, color.Gray{Y: 255})
				img.SetGray(33, 9, color.Gray{Y: 255})
			},
			want:   image.Rect(30, 8, 34, 10),
			wantOK: true,
		},
		{
			name: "corner pixels",
			setup: func(img *image.Gray) {
				img.SetGray(0, 0, color.Gray{Y: 255})
				img.SetGray(63, 15, color.Gray{Y: 255})
			},
			want:   image.Rect(0, 0, 64, 16),
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewGray(image.Rect(0, 0, 64, 16))
			tt.setup(img)

			got, ok := contentBounds(img)
			if ok != tt.wantOK {
				t.Fatalf("contentBounds() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("contentBounds() = %v, want %v", got, tt.want)
			}
		})
	}
}
