// Package render converts text into pixel bitmaps sized to an LED
// matrix panel.
//
// The renderer produces a PNG of exactly the requested width and height
// with white text on a black background. Unless a fixed font size is
// given it searches downward from the panel's smaller dimension for the
// largest size at which every line fits. Placement is based on the
// actual rendered pixels rather than font metrics: the text is drawn to
// a scratch grayscale buffer, the tightest bounding box of pixels above
// a brightness threshold is located, and the content is centered from
// that box. Each line additionally self-centers on its own measured
// width, so lines of differing length each sit centered.
//
// Named fonts are loaded from a fonts directory; a missing or broken
// font file falls back to a built-in fixed-size face and is never an
// error. An empty input produces a blank canvas.
package render
