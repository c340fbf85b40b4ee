package diagram

import "math"

// Boundary is the closed outline of a shape placed in view space. It is the
// only capability the geometry resolver and hit tester need: any outline that
// can answer containment works with them.
type Boundary interface {
	// Contains reports whether (x, y) lies inside or on the outline.
	Contains(x, y float64) bool
	// Bounds returns the axis-aligned rect enclosing the outline.
	Bounds() Rect
	// AppendPath appends the outline to p for drawing.
	AppendPath(p *Path)
}

// BoundaryRect is an axis-aligned rectangular outline.
type BoundaryRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r BoundaryRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Bounds returns the rectangle itself.
func (r BoundaryRect) Bounds() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// AppendPath appends the rectangle outline.
func (r BoundaryRect) AppendPath(p *Path) {
	p.Rect(r.Bounds())
}

// BoundaryCircle is a circular outline.
type BoundaryCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c BoundaryCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// Bounds returns the circle's enclosing square.
func (c BoundaryCircle) Bounds() Rect {
	return Rect{X: c.CenterX - c.Radius, Y: c.CenterY - c.Radius, Width: 2 * c.Radius, Height: 2 * c.Radius}
}

// AppendPath appends the circle outline.
func (c BoundaryCircle) AppendPath(p *Path) {
	p.Circle(c.CenterX, c.CenterY, c.Radius)
}

// BoundaryPolygon is a closed polygon outline in either winding order. It may
// be concave; containment uses the even-odd rule.
type BoundaryPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon or on one of its
// edges.
func (p BoundaryPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.Points[i], p.Points[j]
		if onSegment(x, y, a, b) {
			return true
		}
		if (a.Y > y) != (b.Y > y) {
			xi := (b.X-a.X)*(y-a.Y)/(b.Y-a.Y) + a.X
			if x < xi {
				inside = !inside
			}
		}
	}
	return inside
}

// Bounds returns the polygon's enclosing rect.
func (p BoundaryPolygon) Bounds() Rect {
	return rectAround(p.Points...)
}

// AppendPath appends the polygon outline.
func (p BoundaryPolygon) AppendPath(path *Path) {
	path.Polygon(p.Points)
}

// onSegment reports whether (x, y) lies on segment ab within a tiny tolerance.
func onSegment(x, y float64, a, b Vec2) bool {
	const eps = 1e-9
	cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
	if math.Abs(cross) > eps*math.Max(1, a.Dist(b)) {
		return false
	}
	return x >= math.Min(a.X, b.X)-eps && x <= math.Max(a.X, b.X)+eps &&
		y >= math.Min(a.Y, b.Y)-eps && y <= math.Max(a.Y, b.Y)+eps
}

// BoundaryFunc builds the outline of a shape centered at (cx, cy) with the
// given size for entity id.
type BoundaryFunc func(cx, cy, w, h float64, id int) Boundary

// ContentFunc draws extra content inside a shape after its outline.
type ContentFunc func(c Canvas, center Vec2, id int)

// Shape describes how an entity kind looks: its bounding size, the factory for
// its boundary, and an optional content renderer.
type Shape struct {
	Name          string
	Width, Height float64
	Boundary      BoundaryFunc
	Content       ContentFunc
}

// boundaryAt places the shape at (cx, cy). Returns nil for a nil shape.
func (s *Shape) boundaryAt(cx, cy float64, id int) Boundary {
	if s == nil || s.Boundary == nil {
		return nil
	}
	return s.Boundary(cx, cy, s.Width, s.Height, id)
}

// Built-in shapes.
var (
	CircleShape = &Shape{Name: "circle", Width: 48, Height: 48, Boundary: circleBoundary}
	RectShape   = &Shape{Name: "rect", Width: 96, Height: 48, Boundary: rectBoundary}
)

// LabelShape is a small circle drawn at an edge's shape anchor.
var LabelShape = &Shape{Name: "label", Width: 12, Height: 12, Boundary: circleBoundary}

// DiamondShape is a rhombus touching the middle of each bounding side.
var DiamondShape = PolygonShape("diamond", 72, 56, []Vec2{
	{0, -0.5}, {0.5, 0}, {0, 0.5}, {-0.5, 0},
})

// HexagonShape is a flat-topped hexagon.
var HexagonShape = PolygonShape("hexagon", 64, 56, []Vec2{
	{-0.25, -0.5}, {0.25, -0.5}, {0.5, 0}, {0.25, 0.5}, {-0.25, 0.5}, {-0.5, 0},
})

func circleBoundary(cx, cy, w, h float64, _ int) Boundary {
	return BoundaryCircle{CenterX: cx, CenterY: cy, Radius: math.Min(w, h) / 2}
}

func rectBoundary(cx, cy, w, h float64, _ int) Boundary {
	return BoundaryRect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// PolygonShape creates a shape from unit points in [-0.5, 0.5], scaled to the
// shape size around the center.
func PolygonShape(name string, w, h float64, unit []Vec2) *Shape {
	pts := append([]Vec2(nil), unit...)
	return &Shape{
		Name:   name,
		Width:  w,
		Height: h,
		Boundary: func(cx, cy, w, h float64, _ int) Boundary {
			out := make([]Vec2, len(pts))
			for i, p := range pts {
				out[i] = Vec2{cx + p.X*w, cy + p.Y*h}
			}
			return BoundaryPolygon{Points: out}
		},
	}
}
