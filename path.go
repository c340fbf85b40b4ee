package diagram

import "math"

// circleSegments is the number of line segments used to outline a circle.
const circleSegments = 48

// pathOp is a single path command.
type pathOp uint8

const (
	opMoveTo pathOp = iota
	opLineTo
	opClose
)

type pathSeg struct {
	op   pathOp
	x, y float64
}

// Path is a sequence of polylines in view coordinates. Surfaces translate it
// into their own vector path representation.
type Path struct {
	segs []pathSeg
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.segs = append(p.segs, pathSeg{op: opMoveTo, x: x, y: y})
}

// LineTo adds a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.segs = append(p.segs, pathSeg{op: opLineTo, x: x, y: y})
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.segs = append(p.segs, pathSeg{op: opClose})
}

// Reset empties the path, keeping its storage.
func (p *Path) Reset() {
	p.segs = p.segs[:0]
}

// Len returns the number of commands.
func (p *Path) Len() int {
	return len(p.segs)
}

// Rect appends a closed rectangle.
func (p *Path) Rect(r Rect) {
	p.MoveTo(r.X, r.Y)
	p.LineTo(r.X+r.Width, r.Y)
	p.LineTo(r.X+r.Width, r.Y+r.Height)
	p.LineTo(r.X, r.Y+r.Height)
	p.Close()
}

// Polygon appends a closed polygon through pts.
func (p *Path) Polygon(pts []Vec2) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
}

// Circle appends a closed circle approximated by line segments.
func (p *Path) Circle(cx, cy, r float64) {
	p.MoveTo(cx+r, cy)
	for i := 1; i < circleSegments; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / circleSegments)
		p.LineTo(cx+r*cos, cy+r*sin)
	}
	p.Close()
}

// Bounds returns the bounding rect of every point in the path.
func (p *Path) Bounds() Rect {
	r := emptyRect
	for _, s := range p.segs {
		if s.op == opClose {
			continue
		}
		r = r.Union(Rect{X: s.x, Y: s.y})
	}
	return r
}
