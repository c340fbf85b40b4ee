package diagram

import (
	"image"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultMinScale = 0.1
	defaultMaxScale = 10.0
)

// zoomAnim holds an active zoom tween around a fixed view-space anchor.
type zoomAnim struct {
	tween  *gween.Tween
	anchor Vec2
}

// scrollAnim holds active scroll tweens for the translate components.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// centerAnim tweens the scale and the view point shown at the surface center
// together.
type centerAnim struct {
	tween              *gween.Tween
	from, to           Vec2
	fromScale, toScale float64
}

// Viewport is the pan offset and uniform scale mapping view (logical)
// coordinates onto the drawing surface:
//
//	surface = view*scale + translate
//	window  = surface + bounds.Min
//
// Translate is accumulated with compensated summation so a pan followed by
// its inverse restores the previous value exactly.
type Viewport struct {
	// MinScale and MaxScale bound every zoom operation.
	MinScale, MaxScale float64

	scale  float64
	tx, ty float64
	// low-order parts of tx, ty
	txLo, tyLo float64

	// bounds is the surface rectangle in window coordinates.
	bounds Rect

	zoomTween   *zoomAnim
	scrollTween *scrollAnim
	centerTween *centerAnim
}

// NewViewport creates an identity viewport for a surface of the given window
// rectangle.
func NewViewport(bounds Rect) *Viewport {
	return &Viewport{
		MinScale: defaultMinScale,
		MaxScale: defaultMaxScale,
		scale:    1,
		bounds:   bounds,
	}
}

// Scale returns the current zoom factor.
func (v *Viewport) Scale() float64 {
	return v.scale
}

// Translate returns the current pan offset in surface pixels.
func (v *Viewport) Translate() (tx, ty float64) {
	return v.tx, v.ty
}

// Bounds returns the surface rectangle in window coordinates.
func (v *Viewport) Bounds() Rect {
	return v.bounds
}

// SetBounds moves or resizes the surface within the window.
func (v *Viewport) SetBounds(r Rect) {
	v.bounds = r
}

// Reset restores scale 1 and zero translation and cancels animations.
func (v *Viewport) Reset() {
	v.scale = 1
	v.setTranslate(0, 0)
	v.zoomTween = nil
	v.scrollTween = nil
	v.centerTween = nil
}

func (v *Viewport) setTranslate(tx, ty float64) {
	v.tx, v.txLo = tx, 0
	v.ty, v.tyLo = ty, 0
}

// MoveBy pans by (dx, dy) surface pixels. Scale is unchanged. Non-finite
// deltas are ignored.
func (v *Viewport) MoveBy(dx, dy float64) {
	if !finite(dx, dy) {
		return
	}
	v.tx, v.txLo = compensatedAdd(v.tx, v.txLo, dx)
	v.ty, v.tyLo = compensatedAdd(v.ty, v.tyLo, dy)
}

// ZoomTo sets the scale to newScale, clamped to [MinScale, MaxScale], keeping
// the view-space point (ax, ay) at the same surface position. Reports whether
// the scale changed. Non-finite arguments change nothing.
func (v *Viewport) ZoomTo(newScale, ax, ay float64) bool {
	if !finite(newScale, ax, ay) {
		return false
	}
	clamped := v.clampScale(newScale)
	delta := clamped - v.scale
	if delta == 0 {
		return false
	}
	v.scale = clamped
	v.tx, v.txLo = compensatedAdd(v.tx, v.txLo, -ax*delta)
	v.ty, v.tyLo = compensatedAdd(v.ty, v.tyLo, -ay*delta)
	return true
}

// ZoomBy multiplies the scale by factor around the window point (wx, wy).
func (v *Viewport) ZoomBy(factor, wx, wy float64) bool {
	ax, ay := v.WindowToView(wx, wy)
	return v.ZoomTo(v.scale*factor, ax, ay)
}

// WindowToView converts window coordinates to view coordinates.
func (v *Viewport) WindowToView(wx, wy float64) (x, y float64) {
	return (wx - v.bounds.X - v.tx) / v.scale, (wy - v.bounds.Y - v.ty) / v.scale
}

// ViewToWindow converts view coordinates to window coordinates.
func (v *Viewport) ViewToWindow(x, y float64) (wx, wy float64) {
	return x*v.scale + v.tx + v.bounds.X, y*v.scale + v.ty + v.bounds.Y
}

// ViewToSurface converts view coordinates to surface pixels.
func (v *Viewport) ViewToSurface(x, y float64) (sx, sy float64) {
	return x*v.scale + v.tx, y*v.scale + v.ty
}

// SurfaceToView converts surface pixels to view coordinates.
func (v *Viewport) SurfaceToView(sx, sy float64) (x, y float64) {
	return (sx - v.tx) / v.scale, (sy - v.ty) / v.scale
}

// WindowToSurface converts window coordinates to surface pixels.
func (v *Viewport) WindowToSurface(wx, wy float64) (sx, sy float64) {
	return wx - v.bounds.X, wy - v.bounds.Y
}

// VisibleRect returns the view-space rectangle covered by the surface.
func (v *Viewport) VisibleRect() Rect {
	x0, y0 := v.SurfaceToView(0, 0)
	x1, y1 := v.SurfaceToView(v.bounds.Width, v.bounds.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// SurfaceRect converts a view-space rect to the covering pixel rectangle on
// the surface, padded by one pixel for antialiasing and clipped to the surface.
func (v *Viewport) SurfaceRect(r Rect) image.Rectangle {
	x0, y0 := v.ViewToSurface(r.X, r.Y)
	x1, y1 := v.ViewToSurface(r.X+r.Width, r.Y+r.Height)
	pr := image.Rect(
		int(math.Floor(x0))-1, int(math.Floor(y0))-1,
		int(math.Ceil(x1))+1, int(math.Ceil(y1))+1,
	)
	return pr.Intersect(image.Rect(0, 0, int(v.bounds.Width), int(v.bounds.Height)))
}

// AnimateZoom tweens the scale to target over duration seconds, anchored at
// the view-space point (ax, ay).
func (v *Viewport) AnimateZoom(target, ax, ay float64, duration float32, easeFn ease.TweenFunc) {
	if !finite(target, ax, ay) {
		return
	}
	target = v.clampScale(target)
	v.zoomTween = &zoomAnim{
		tween:  gween.New(float32(v.scale), float32(target), duration, easeFn),
		anchor: Vec2{ax, ay},
	}
}

// ScrollTo tweens the translation so the view-space point (x, y) ends up at
// the surface center.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if !finite(x, y) {
		return
	}
	tx := v.bounds.Width/2 - x*v.scale
	ty := v.bounds.Height/2 - y*v.scale
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.tx), float32(tx), duration, easeFn),
		tweenY: gween.New(float32(v.ty), float32(ty), duration, easeFn),
	}
}

// CenterOn sets the scale, clamped, and pans so the view point (x, y) sits at
// the surface center. Cancels animations.
func (v *Viewport) CenterOn(x, y, scale float64) {
	if !finite(x, y, scale) {
		return
	}
	v.zoomTween, v.scrollTween, v.centerTween = nil, nil, nil
	v.centerOn(x, y, scale)
}

func (v *Viewport) centerOn(x, y, scale float64) {
	v.scale = v.clampScale(scale)
	v.setTranslate(v.bounds.Width/2-x*v.scale, v.bounds.Height/2-y*v.scale)
}

func (v *Viewport) clampScale(s float64) float64 {
	return math.Max(v.MinScale, math.Min(s, v.MaxScale))
}

// finite reports whether every value is neither NaN nor infinite.
func finite(vs ...float64) bool {
	for _, f := range vs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// AnimateTo tweens the scale and the centered view point to scale and (x, y)
// over duration seconds.
func (v *Viewport) AnimateTo(x, y, scale float64, duration float32, easeFn ease.TweenFunc) {
	if !finite(x, y, scale) {
		return
	}
	cx, cy := v.SurfaceToView(v.bounds.Width/2, v.bounds.Height/2)
	v.zoomTween, v.scrollTween = nil, nil
	v.centerTween = &centerAnim{
		tween:     gween.New(0, 1, duration, easeFn),
		from:      Vec2{cx, cy},
		to:        Vec2{x, y},
		fromScale: v.scale,
		toScale:   v.clampScale(scale),
	}
}

// Animating reports whether a tween is in progress.
func (v *Viewport) Animating() bool {
	return v.zoomTween != nil || v.scrollTween != nil || v.centerTween != nil
}

// Update advances active tweens by dt seconds. Reports whether the transform
// changed.
func (v *Viewport) Update(dt float32) bool {
	prevScale, prevX, prevY := v.scale, v.tx, v.ty

	if a := v.centerTween; a != nil {
		val, done := a.tween.Update(dt)
		t := float64(val)
		if done {
			t = 1
		}
		v.centerOn(
			a.from.X+(a.to.X-a.from.X)*t,
			a.from.Y+(a.to.Y-a.from.Y)*t,
			a.fromScale+(a.toScale-a.fromScale)*t,
		)
		if done {
			v.centerTween = nil
		}
	}

	if v.zoomTween != nil {
		val, done := v.zoomTween.tween.Update(dt)
		v.ZoomTo(float64(val), v.zoomTween.anchor.X, v.zoomTween.anchor.Y)
		if done {
			v.zoomTween = nil
		}
	}

	if v.scrollTween != nil {
		x, y := v.tx, v.ty
		if !v.scrollTween.doneX {
			val, done := v.scrollTween.tweenX.Update(dt)
			x = float64(val)
			v.scrollTween.doneX = done
		}
		if !v.scrollTween.doneY {
			val, done := v.scrollTween.tweenY.Update(dt)
			y = float64(val)
			v.scrollTween.doneY = done
		}
		v.setTranslate(x, y)
		if v.scrollTween.doneX && v.scrollTween.doneY {
			v.scrollTween = nil
		}
	}

	return v.scale != prevScale || v.tx != prevX || v.ty != prevY
}

// compensatedAdd adds d to the double-word value (hi, lo) and renormalizes so
// that hi is the correctly rounded value.
func compensatedAdd(hi, lo, d float64) (float64, float64) {
	s, e := twoSum(hi, d)
	return twoSum(s, e+lo)
}

// twoSum returns s = fl(a+b) and the exact rounding error e, a+b == s+e.
func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return s, e
}
