package diagram

import "image"

// Labels are drawn in Go Mono at a fixed pixel size whatever the zoom.
// labelAdvance and labelHeight bound one glyph cell in pixels.
const (
	labelFontSize = 11
	labelAdvance  = 7
	labelHeight   = 16
)

// Canvas draws into one layer. Coordinates passed to it are in view space;
// the canvas maps them to pixels with the transform last set.
type Canvas interface {
	// SetTransform sets the view-to-pixel mapping: p*scale + (tx, ty).
	SetTransform(scale, tx, ty float64)
	// FillPath fills p using the nonzero rule.
	FillPath(p *Path, c Color)
	// StrokePath strokes p with a line of the given view-space width.
	StrokePath(p *Path, c Color, width float64)
	// DrawText draws s centered at (x, y).
	DrawText(s string, x, y float64, c Color)
}

// Surface is a fixed stack of layers composited in Layer order.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (w, h int)
	// Layer clears the clip rectangle of layer l and returns a canvas that
	// draws only inside it.
	Layer(l Layer, clip image.Rectangle) Canvas
}

// transformPoint maps a view-space point to pixels.
func transformPoint(scale, tx, ty, x, y float64) (float64, float64) {
	return x*scale + tx, y*scale + ty
}
