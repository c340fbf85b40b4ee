package diagram

import "testing"

func TestBoundaryRect(t *testing.T) {
	r := BoundaryRect{X: 10, Y: 20, Width: 30, Height: 40}
	tests := []struct {
		x, y float64
		want bool
	}{
		{25, 40, true},
		{10, 20, true}, // corner
		{40, 60, true}, // opposite corner
		{9.9, 40, false},
		{25, 60.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if b := r.Bounds(); b != (Rect{X: 10, Y: 20, Width: 30, Height: 40}) {
		t.Errorf("Bounds = %v", b)
	}
}

func TestBoundaryCircle(t *testing.T) {
	c := BoundaryCircle{CenterX: 50, CenterY: 50, Radius: 10}
	if !c.Contains(50, 50) || !c.Contains(60, 50) {
		t.Error("center and rim should be inside")
	}
	if c.Contains(58, 58) {
		t.Error("(58,58) is outside the radius")
	}
	if b := c.Bounds(); b != (Rect{X: 40, Y: 40, Width: 20, Height: 20}) {
		t.Errorf("Bounds = %v", b)
	}
}

func TestBoundaryPolygonConcave(t *testing.T) {
	// L shape: the notch at the top right is outside.
	l := BoundaryPolygon{Points: []Vec2{
		{0, 0}, {10, 0}, {10, 20}, {20, 20}, {20, 30}, {0, 30},
	}}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"stem", 5, 5, true},
		{"foot", 15, 25, true},
		{"notch", 15, 5, false},
		{"vertex", 10, 20, true},
		{"edge", 0, 15, true},
		{"outside", -1, 15, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
	if b := l.Bounds(); b != (Rect{X: 0, Y: 0, Width: 20, Height: 30}) {
		t.Errorf("Bounds = %v", b)
	}
}

func TestBoundaryPolygonTooFewPoints(t *testing.T) {
	p := BoundaryPolygon{Points: []Vec2{{0, 0}, {10, 10}}}
	if p.Contains(5, 5) {
		t.Error("a two-point polygon contains nothing")
	}
}

func TestPolygonShapeScalesUnitPoints(t *testing.T) {
	b := DiamondShape.boundaryAt(100, 50, 1)
	want := Rect{X: 100 - 36, Y: 50 - 28, Width: 72, Height: 56}
	got := b.Bounds()
	if !approxEqual(got.X, want.X, epsilon) || !approxEqual(got.Y, want.Y, epsilon) ||
		!approxEqual(got.Width, want.Width, epsilon) || !approxEqual(got.Height, want.Height, epsilon) {
		t.Errorf("diamond bounds = %v, want %v", got, want)
	}
	if !b.Contains(100, 50) {
		t.Error("diamond should contain its center")
	}
	if b.Contains(100-35, 50-27) {
		t.Error("diamond should not contain its bounding corner")
	}
}

func TestShapeBoundaryAt(t *testing.T) {
	var nilShape *Shape
	if nilShape.boundaryAt(0, 0, 1) != nil {
		t.Error("nil shape should have no boundary")
	}
	if (&Shape{Width: 10, Height: 10}).boundaryAt(0, 0, 1) != nil {
		t.Error("shape without a boundary func should have no boundary")
	}

	c, ok := CircleShape.boundaryAt(5, 6, 1).(BoundaryCircle)
	if !ok {
		t.Fatal("CircleShape boundary is not a BoundaryCircle")
	}
	if c.CenterX != 5 || c.CenterY != 6 || c.Radius != CircleShape.Width/2 {
		t.Errorf("circle = %+v", c)
	}

	r := RectShape.boundaryAt(0, 0, 1).Bounds()
	if r != (Rect{X: -48, Y: -24, Width: 96, Height: 48}) {
		t.Errorf("rect bounds = %v", r)
	}
}

func TestPathCircleBounds(t *testing.T) {
	var p Path
	p.Circle(10, 20, 5)
	if p.Len() != circleSegments+1 {
		t.Errorf("Len = %d, want %d", p.Len(), circleSegments+1)
	}
	b := p.Bounds()
	if !approxEqual(b.X, 5, 1e-9) || !approxEqual(b.Width, 10, 1e-9) {
		t.Errorf("Bounds = %v, want x 5..15", b)
	}

	p.Reset()
	if p.Len() != 0 || !p.Bounds().IsEmpty() {
		t.Error("Reset should empty the path")
	}
}
