package diagram

import (
	"image"
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestViewportDefaults(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	if v.Scale() != 1 {
		t.Errorf("Scale = %f, want 1", v.Scale())
	}
	if tx, ty := v.Translate(); tx != 0 || ty != 0 {
		t.Errorf("Translate = (%f,%f), want (0,0)", tx, ty)
	}
	if v.MinScale != defaultMinScale || v.MaxScale != defaultMaxScale {
		t.Errorf("scale range = [%f,%f], want [%f,%f]", v.MinScale, v.MaxScale, defaultMinScale, defaultMaxScale)
	}
}

func TestViewportZoomFixedPoint(t *testing.T) {
	anchors := []Vec2{{0, 0}, {123.4, -56.7}, {-400, 900}, {1e4, 3e3}}
	scales := []float64{0.1, 0.25, 0.5, 1, 1.7, 3, 7.5, 10}

	for _, a := range anchors {
		for _, s := range scales {
			v := NewViewport(Rect{Width: 800, Height: 600})
			v.MoveBy(37.5, -12.25)
			v.ZoomTo(2, 10, 10)

			sx0, sy0 := v.ViewToSurface(a.X, a.Y)
			v.ZoomTo(s, a.X, a.Y)
			sx1, sy1 := v.ViewToSurface(a.X, a.Y)
			if !approxEqual(sx0, sx1, 1e-6) || !approxEqual(sy0, sy1, 1e-6) {
				t.Errorf("ZoomTo(%g) around %v moved the anchor from (%f,%f) to (%f,%f)", s, a, sx0, sy0, sx1, sy1)
			}
		}
	}
}

func TestViewportZoomClamp(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})

	if !v.ZoomTo(100, 0, 0) {
		t.Fatal("ZoomTo(100) = false, want true")
	}
	if v.Scale() != defaultMaxScale {
		t.Errorf("Scale = %f, want clamp to %f", v.Scale(), defaultMaxScale)
	}
	if v.ZoomTo(50, 0, 0) {
		t.Error("ZoomTo past the max a second time should report no change")
	}
	v.ZoomTo(0.0001, 0, 0)
	if v.Scale() != defaultMinScale {
		t.Errorf("Scale = %f, want clamp to %f", v.Scale(), defaultMinScale)
	}
}

func TestViewportPanRoundTripIsExact(t *testing.T) {
	deltas := []Vec2{{1.0 / 3, 7.77}, {-0.1, 1e-7}, {12345.678, -0.3}, {1e-12, 1e12}}
	for _, d := range deltas {
		v := NewViewport(Rect{Width: 800, Height: 600})
		v.MoveBy(0.1, 0.3)
		tx0, ty0 := v.Translate()

		v.MoveBy(d.X, d.Y)
		v.MoveBy(-d.X, -d.Y)
		tx, ty := v.Translate()
		if tx != tx0 || ty != ty0 {
			t.Errorf("MoveBy(%v) then its inverse: translate = (%v,%v), want (%v,%v)", d, tx, ty, tx0, ty0)
		}
	}
}

func TestViewportConversionsRoundtrip(t *testing.T) {
	v := NewViewport(Rect{X: 40, Y: 30, Width: 800, Height: 600})
	v.MoveBy(-120, 55)
	v.ZoomTo(2.5, 100, 100)

	wx, wy := v.ViewToWindow(321, -77)
	x, y := v.WindowToView(wx, wy)
	if !approxEqual(x, 321, 1e-9) || !approxEqual(y, -77, 1e-9) {
		t.Errorf("WindowToView(ViewToWindow(321,-77)) = (%f,%f)", x, y)
	}

	sx, sy := v.WindowToSurface(wx, wy)
	if !approxEqual(sx, wx-40, epsilon) || !approxEqual(sy, wy-30, epsilon) {
		t.Errorf("WindowToSurface = (%f,%f), want offset by the bounds", sx, sy)
	}
}

func TestViewportVisibleRect(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.ZoomTo(2, 0, 0)
	r := v.VisibleRect()
	if !approxEqual(r.Width, 400, epsilon) || !approxEqual(r.Height, 300, epsilon) {
		t.Errorf("VisibleRect = %v, want 400x300", r)
	}

	v.MoveBy(-200, 0)
	r = v.VisibleRect()
	if !approxEqual(r.X, 100, epsilon) {
		t.Errorf("VisibleRect.X = %f, want 100 after panning left by 200px at 2x", r.X)
	}
}

func TestViewportSurfaceRect(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	got := v.SurfaceRect(Rect{X: 10.5, Y: 20, Width: 30, Height: 40})
	want := image.Rect(9, 19, 42, 61)
	if got != want {
		t.Errorf("SurfaceRect = %v, want %v", got, want)
	}

	got = v.SurfaceRect(Rect{X: -100, Y: -100, Width: 2000, Height: 2000})
	if got != image.Rect(0, 0, 800, 600) {
		t.Errorf("SurfaceRect = %v, want clipped to the surface", got)
	}
}

func TestViewportAnimateZoom(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.AnimateZoom(2, 0, 0, 1, ease.Linear)
	if !v.Animating() {
		t.Fatal("Animating = false after AnimateZoom")
	}

	if !v.Update(0.5) {
		t.Error("Update mid-tween reported no change")
	}
	if !approxEqual(v.Scale(), 1.5, 1e-4) {
		t.Errorf("Scale at half time = %f, want 1.5", v.Scale())
	}

	v.Update(0.5)
	if !approxEqual(v.Scale(), 2, 1e-6) {
		t.Errorf("Scale at end = %f, want 2", v.Scale())
	}
	if v.Animating() {
		t.Error("Animating = true after the tween finished")
	}
	if v.Update(0.5) {
		t.Error("Update with no tween reported a change")
	}
}

func TestViewportScrollTo(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.ScrollTo(100, 50, 1, ease.Linear)
	v.Update(1)

	sx, sy := v.ViewToSurface(100, 50)
	if !approxEqual(sx, 400, 1e-3) || !approxEqual(sy, 300, 1e-3) {
		t.Errorf("ViewToSurface(100,50) after ScrollTo = (%f,%f), want (400,300)", sx, sy)
	}
	if v.Animating() {
		t.Error("Animating = true after the scroll finished")
	}
}

func TestViewportAnimateTo(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.AnimateTo(200, 100, 2, 1, ease.Linear)

	v.Update(0.5)
	if v.Scale() <= 1 || v.Scale() >= 2 {
		t.Errorf("Scale mid-tween = %f, want between 1 and 2", v.Scale())
	}

	v.Update(0.5)
	if v.Scale() != 2 {
		t.Errorf("Scale = %f, want 2", v.Scale())
	}
	sx, sy := v.ViewToSurface(200, 100)
	if !approxEqual(sx, 400, 1e-9) || !approxEqual(sy, 300, 1e-9) {
		t.Errorf("ViewToSurface(200,100) = (%f,%f), want the surface center", sx, sy)
	}
}

func TestViewportCenterOnCancelsTweens(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.AnimateZoom(5, 0, 0, 1, ease.Linear)
	v.CenterOn(0, 0, 50)
	if v.Animating() {
		t.Error("CenterOn should cancel the zoom tween")
	}
	if v.Scale() != defaultMaxScale {
		t.Errorf("Scale = %f, want clamp to %f", v.Scale(), defaultMaxScale)
	}
	if tx, ty := v.Translate(); tx != 400 || ty != 300 {
		t.Errorf("Translate = (%f,%f), want (400,300)", tx, ty)
	}
}

func TestEditorFitContent(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	if ed.FitContent(0) {
		t.Error("FitContent on an empty editor = true, want false")
	}

	addNodes(t, ed, 1, 2, 3)
	if !ed.FitContent(0) {
		t.Fatal("FitContent = false, want true")
	}
	visible := ed.Viewport().VisibleRect()
	for _, id := range []int{1, 2, 3} {
		d, _ := ed.Data(id)
		b := d.Bounds()
		if b.X < visible.X || b.Y < visible.Y ||
			b.X+b.Width > visible.X+visible.Width || b.Y+b.Height > visible.Y+visible.Height {
			t.Errorf("node %d bounds %v not inside visible %v", id, b, visible)
		}
	}
	if ed.Viewport().Scale() <= 1 {
		t.Errorf("Scale = %f, want zoomed in on a small diagram", ed.Viewport().Scale())
	}
}

func TestViewportIgnoresNonFinite(t *testing.T) {
	v := NewViewport(Rect{Width: 800, Height: 600})
	v.ZoomTo(2, 10, 20)
	v.MoveBy(5, 7)
	scale := v.Scale()
	tx, ty := v.Translate()

	nan, inf := math.NaN(), math.Inf(1)
	if v.ZoomTo(nan, 0, 0) {
		t.Error("ZoomTo(NaN) reported a change")
	}
	if v.ZoomTo(3, inf, 0) {
		t.Error("ZoomTo with an infinite anchor reported a change")
	}
	if v.ZoomBy(nan, 400, 300) {
		t.Error("ZoomBy(NaN) reported a change")
	}
	if v.ZoomBy(inf, 400, 300) {
		t.Error("ZoomBy(+Inf) reported a change")
	}
	v.MoveBy(nan, 1)
	v.MoveBy(1, -inf)
	v.CenterOn(nan, 0, 1)
	v.AnimateZoom(nan, 0, 0, 1, ease.Linear)
	v.ScrollTo(0, inf, 1, ease.Linear)
	v.AnimateTo(0, 0, nan, 1, ease.Linear)

	if v.Animating() {
		t.Error("a non-finite target started a tween")
	}
	if v.Scale() != scale {
		t.Errorf("Scale = %v, want %v", v.Scale(), scale)
	}
	if gx, gy := v.Translate(); gx != tx || gy != ty {
		t.Errorf("Translate = (%v,%v), want (%v,%v)", gx, gy, tx, ty)
	}
	if x, y := v.WindowToView(400, 300); math.IsNaN(x) || math.IsNaN(y) {
		t.Error("conversion produced NaN")
	}
}
