package diagram

import (
	"math"

	"go.uber.org/zap"
)

// QueryAt returns the entity under the view point (x, y). Candidates come
// from a HitProbe-sized square in the index and are tested exactly; when
// several contain the point the last one in index order wins.
func (e *Editor) QueryAt(x, y float64) (int, bool) {
	e.flushBounds()
	p := e.cfg.HitProbe
	probe := Rect{X: x - p/2, Y: y - p/2, Width: p, Height: p}
	e.queryBuf = e.index.AppendQuery(e.queryBuf[:0], probe)

	pt := Vec2{x, y}
	hit := 0
	for _, id := range e.queryBuf {
		d, _ := e.data.get(id)
		switch d := d.(type) {
		case *NodeData:
			if e.ensureNode(d).Contains(x, y) {
				hit = id
			}
		case *EdgeData:
			if e.edgeContains(d, pt) {
				hit = id
			}
		}
	}
	return hit, hit != 0
}

// edgeContains tests the edge's shape, its stroke along the trimmed line,
// then its arrowhead.
func (e *Editor) edgeContains(d *EdgeData, p Vec2) bool {
	e.ensureEdge(d)
	if d.boundary != nil && d.boundary.Contains(p.X, p.Y) {
		return true
	}
	g := d.geom
	if g.Degenerate {
		return false
	}
	half := math.Max(e.cfg.EdgeLineWidth/2, e.cfg.HitProbe/2)
	if distToSegment(p, g.Start, g.End) <= half {
		return true
	}
	return triangleContains(g.Arrow, p)
}

// HitTest returns the entity under the window point (wx, wy).
func (e *Editor) HitTest(wx, wy float64) (int, bool) {
	x, y := e.view.WindowToView(wx, wy)
	return e.QueryAt(x, y)
}

// Hovered returns the hovered entity id, or 0.
func (e *Editor) Hovered() int { return e.hovered }

// UpdateHover hit tests the window point (wx, wy) and makes the result the
// hovered entity. On change it schedules a redraw of exactly the previous and
// new entity's boxes and emits leave and enter events. Reports whether the
// hovered id changed.
func (e *Editor) UpdateHover(wx, wy float64) bool {
	id, _ := e.HitTest(wx, wy)
	return e.setHovered(id, wx, wy)
}

func (e *Editor) setHovered(id int, wx, wy float64) bool {
	prev := e.hovered
	if id == prev {
		return false
	}
	e.hovered = id
	e.markDirty(e.entityBounds(prev).Union(e.entityBounds(id)))
	if ce := e.log.Check(zap.DebugLevel, "hover"); ce != nil {
		ce.Write(zap.Int("from", prev), zap.Int("to", id))
	}
	if prev != 0 {
		e.emit(InteractionEvent{Type: EventPointerLeave, EntityID: prev, WindowX: wx, WindowY: wy})
	}
	if id != 0 {
		e.emit(InteractionEvent{Type: EventPointerEnter, EntityID: id, WindowX: wx, WindowY: wy})
	}
	return true
}
