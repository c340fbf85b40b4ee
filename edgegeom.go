package diagram

import "math"

// edgeResolver computes connector geometry from endpoint centers and
// boundaries.
type edgeResolver struct {
	lineWidth   float64
	arrowLength float64
	arrowWidth  float64
}

// resolve computes the geometry of an edge running from the center src to the
// center dst. srcB and dstB may be nil, in which case the line starts or ends
// at the center itself.
func (r edgeResolver) resolve(src, dst Vec2, srcB, dstB Boundary) EdgeGeometry {
	dx, dy := dst.X-src.X, dst.Y-src.Y
	if dx == 0 && dy == 0 {
		return EdgeGeometry{
			Start:      src,
			End:        src,
			Arrow:      [3]Vec2{src, src, src},
			Anchor:     src,
			Degenerate: true,
		}
	}

	angle := math.Atan2(dy, dx)
	sin, cos := math.Sincos(angle)
	dir := Vec2{cos, sin}

	start := boundaryCrossing(src, dst, srcB)
	end := boundaryCrossing(dst, src, dstB)

	half := r.lineWidth / 2
	start = start.Add(dir.Scale(half))
	end = end.Sub(dir.Scale(half))

	// Arrowhead: tip on the target anchor, base backed off along the line.
	base := end.Sub(dir.Scale(r.arrowLength))
	perp := Vec2{-sin, cos}.Scale(r.arrowWidth / 2)
	arrow := [3]Vec2{end, base.Add(perp), base.Sub(perp)}

	mid := Vec2{(start.X + end.X) / 2, (start.Y + end.Y) / 2}
	anchor := mid.Sub(dir.Scale(r.arrowLength / 2))

	return EdgeGeometry{
		Start:  start,
		End:    end,
		Arrow:  arrow,
		Anchor: anchor,
		Angle:  angle,
	}
}

// boundaryCrossing finds where the segment from -> to leaves b. The segment is
// discretized into |dx|+|dy| steps and bisected on the containment test, so
// the result is within one step (at most one view unit) of the outline for any
// boundary kind. The returned point is the midpoint of the last inside and the
// first outside sample.
//
// When from is not inside b the search has nothing to find and from is
// returned; when to is still inside b (overlapping shapes) to is returned.
func boundaryCrossing(from, to Vec2, b Boundary) Vec2 {
	if b == nil {
		return from
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	steps := int(math.Ceil(math.Abs(dx) + math.Abs(dy)))
	if steps < 1 {
		return from
	}
	at := func(i int) Vec2 {
		t := float64(i) / float64(steps)
		return Vec2{from.X + dx*t, from.Y + dy*t}
	}

	if !b.Contains(from.X, from.Y) {
		return from
	}
	if b.Contains(to.X, to.Y) {
		return to
	}

	lo, hi := 0, steps // lo inside, hi outside
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		p := at(mid)
		if b.Contains(p.X, p.Y) {
			lo = mid
		} else {
			hi = mid
		}
	}
	in, out := at(lo), at(hi)
	return Vec2{(in.X + out.X) / 2, (in.Y + out.Y) / 2}
}

// segmentIntersectsRect reports whether segment ab touches r, using
// Liang-Barsky clipping.
func segmentIntersectsRect(a, b Vec2, r Rect) bool {
	if r.Contains(a.X, a.Y) || r.Contains(b.X, b.Y) {
		return true
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = math.Min(t1, t)
		}
		return true
	}
	return clip(-dx, a.X-r.X) &&
		clip(dx, r.X+r.Width-a.X) &&
		clip(-dy, a.Y-r.Y) &&
		clip(dy, r.Y+r.Height-a.Y) &&
		t0 <= t1
}

// distToSegment returns the distance from p to segment ab.
func distToSegment(p, a, b Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.Dist(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(Vec2{a.X + t*dx, a.Y + t*dy})
}

// triangleContains reports whether p lies inside or on triangle t. A
// zero-area triangle contains nothing.
func triangleContains(t [3]Vec2, p Vec2) bool {
	area := (t[1].X-t[0].X)*(t[2].Y-t[0].Y) - (t[1].Y-t[0].Y)*(t[2].X-t[0].X)
	if area == 0 {
		return false
	}
	var positive, negative bool
	for i := 0; i < 3; i++ {
		a, b := t[i], t[(i+1)%3]
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}
