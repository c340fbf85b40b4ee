package diagram

import (
	"image"
	"math"
	"slices"
	"time"
	"unicode/utf8"
)

// minGridPixels is the smallest on-screen grid spacing that is still drawn.
const minGridPixels = 4

// PassStats describes one executed render pass.
type PassStats struct {
	Mode       DrawMode
	Scoped     bool
	Region     Rect // view-space area redrawn
	Candidates int  // ids returned by the index query
	Drawn      int  // entities drawn on any layer
	Culled     int  // candidates rejected by the viewport test
	Duration   time.Duration
}

// LastPass returns the stats of the most recent render pass.
func (e *Editor) LastPass() PassStats { return e.last }

// runPass executes a captured draw request. Called by the scheduler on the
// frame tick.
func (e *Editor) runPass(req DrawRequest) {
	start := time.Now()
	e.flushBounds()
	fresh := e.fresh
	e.fresh = emptyRect

	st := PassStats{Mode: req.Mode, Scoped: req.Scoped}
	visible := e.view.VisibleRect()
	region := visible
	if req.Scoped {
		// Labels overhang their boxes. Grow the area so the old and new text
		// of every dirty entity is cleared and redrawn.
		mx, my := e.labelMargin()
		region = inflate(req.Region.Union(fresh), mx, my).Intersection(visible)
	}
	st.Region = region

	if e.surface != nil && !region.IsEmpty() {
		if req.Mode == DrawMove {
			e.drawMoveLayers(&st, e.view.SurfaceRect(visible), visible)
		} else {
			e.drawStatic(&st, req, region)
		}
	}

	st.Duration = time.Since(start)
	e.last = st
	e.logPass(st)
}

// drawStatic redraws the background and the static layers the mode selects
// over region. DrawAll also refreshes the move layers.
func (e *Editor) drawStatic(st *PassStats, req DrawRequest, region Rect) {
	clip := e.view.SurfaceRect(region)
	e.drawBackground(clip, region)

	mx, my := e.labelMargin()
	e.queryBuf = e.index.AppendQuery(e.queryBuf[:0], inflate(region, mx, my))
	st.Candidates = len(e.queryBuf)

	skip := func(id int) bool {
		return slices.Contains(req.Exclude, id) || e.IsMoving(id)
	}

	if req.Mode != DrawNodes {
		c := e.layer(LayerEdges, clip)
		for _, id := range e.queryBuf {
			d := e.data.edge(id)
			if d == nil || skip(id) {
				continue
			}
			e.drawEdgeCulled(c, st, d, region)
		}
	}

	if req.Mode != DrawEdges {
		c := e.layer(LayerNodes, clip)
		for _, id := range e.queryBuf {
			d := e.data.node(id)
			if d == nil || skip(id) {
				continue
			}
			e.drawNodeCulled(c, st, d, region)
		}
	}

	if req.Mode == DrawAll {
		e.drawMoveLayers(st, clip, region)
	}
}

// drawMoveLayers redraws the moving nodes and their incident edges. The
// static layers are not touched.
func (e *Editor) drawMoveLayers(st *PassStats, clip image.Rectangle, region Rect) {
	edges := e.layer(LayerMoveEdges, clip)
	for _, id := range e.movingEdges() {
		e.drawEdgeCulled(edges, st, e.data.edge(id), region)
	}
	nodes := e.layer(LayerMoveNodes, clip)
	for _, id := range e.Moving() {
		e.drawNodeCulled(nodes, st, e.data.node(id), region)
	}
}

// movingEdges returns the edges incident to a moving node, ascending.
func (e *Editor) movingEdges() []int {
	if len(e.moving) == 0 {
		return nil
	}
	seen := make(map[int]struct{})
	for id := range e.moving {
		e.data.node(id).eachEdge(func(eid int) { seen[eid] = struct{}{} })
	}
	return sortedKeys(seen)
}

// layer clears clip on layer l and returns its canvas set to the viewport
// transform.
func (e *Editor) layer(l Layer, clip image.Rectangle) Canvas {
	c := e.surface.Layer(l, clip)
	tx, ty := e.view.Translate()
	c.SetTransform(e.view.Scale(), tx, ty)
	return c
}

func (e *Editor) drawBackground(clip image.Rectangle, region Rect) {
	c := e.layer(LayerBackground, clip)
	e.path.Reset()
	e.path.Rect(region)
	c.FillPath(&e.path, e.palette.background)

	sp := e.cfg.GridSpacing
	if !e.cfg.GridVisible || sp*e.view.Scale() < minGridPixels {
		return
	}
	e.path.Reset()
	right, bottom := region.X+region.Width, region.Y+region.Height
	for x := math.Floor(region.X/sp) * sp; x <= right; x += sp {
		e.path.MoveTo(x, region.Y)
		e.path.LineTo(x, bottom)
	}
	for y := math.Floor(region.Y/sp) * sp; y <= bottom; y += sp {
		e.path.MoveTo(region.X, y)
		e.path.LineTo(right, y)
	}
	c.StrokePath(&e.path, e.palette.grid, 1/e.view.Scale())
}

// nodeVisible is the coarse viewport test for a node.
func nodeVisible(d *NodeData, region Rect) bool {
	return d.bounds.Intersects(region)
}

// edgeVisible tests the line, the arrowhead box and the shape box against
// region independently.
func (e *Editor) edgeVisible(d *EdgeData, region Rect) bool {
	g := d.geom
	if segmentIntersectsRect(g.Start, g.End, region.Expand(e.cfg.EdgeLineWidth/2)) {
		return true
	}
	if !g.Degenerate && g.ArrowBounds().Intersects(region) {
		return true
	}
	return d.boundary != nil && d.boundary.Bounds().Intersects(region)
}

// noteLabel records the length of a label that is about to be drawn.
func (e *Editor) noteLabel(s string) {
	e.labelRunes = max(e.labelRunes, utf8.RuneCountInString(s))
}

// labelMargin is how far, in view units, the longest label can reach past
// its anchor at the current scale.
func (e *Editor) labelMargin() (float64, float64) {
	if e.labelRunes == 0 {
		return 0, 0
	}
	s := e.view.Scale()
	return float64(e.labelRunes*labelAdvance) / 2 / s, labelHeight / 2 / s
}

// labelVisible reports whether label s centered at p reaches into region.
func (e *Editor) labelVisible(s string, p Vec2, region Rect) bool {
	if s == "" {
		return false
	}
	sc := e.view.Scale()
	w := float64(utf8.RuneCountInString(s)*labelAdvance) / sc
	h := labelHeight / sc
	box := Rect{X: p.X - w/2, Y: p.Y - h/2, Width: w, Height: h}
	return box.Intersects(region)
}

// inflate grows r by dx horizontally and dy vertically on each side.
func inflate(r Rect, dx, dy float64) Rect {
	if r.IsEmpty() {
		return r
	}
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

func (e *Editor) drawNodeCulled(c Canvas, st *PassStats, d *NodeData, region Rect) {
	n := e.nodes[d.id]
	if !nodeVisible(d, region) && !e.labelVisible(n.Label, Vec2{n.X, n.Y}, region) {
		st.Culled++
		return
	}
	e.drawNode(c, d)
	st.Drawn++
}

func (e *Editor) drawEdgeCulled(c Canvas, st *PassStats, d *EdgeData, region Rect) {
	e.ensureEdge(d)
	if !e.edgeVisible(d, region) && !e.labelVisible(e.edges[d.id].Label, d.geom.Anchor, region) {
		st.Culled++
		return
	}
	e.drawEdge(c, d)
	st.Drawn++
}

func (e *Editor) drawNode(c Canvas, d *NodeData) {
	n := e.nodes[d.id]
	style := e.palette.node[e.stateOf(d.id)]

	e.path.Reset()
	e.ensureNode(d).AppendPath(&e.path)
	c.FillPath(&e.path, style.fill)
	if w := e.cfg.NodeLineWidth; w > 0 {
		c.StrokePath(&e.path, style.stroke, w)
	}
	center := Vec2{n.X, n.Y}
	if n.Shape.Content != nil {
		n.Shape.Content(c, center, d.id)
	}
	if n.Label != "" {
		c.DrawText(n.Label, center.X, center.Y, e.palette.label)
	}
}

func (e *Editor) drawEdge(c Canvas, d *EdgeData) {
	ed := e.edges[d.id]
	style := e.palette.edge[e.stateOf(d.id)]
	g := d.geom

	if !g.Degenerate {
		e.path.Reset()
		e.path.MoveTo(g.Start.X, g.Start.Y)
		e.path.LineTo(g.End.X, g.End.Y)
		c.StrokePath(&e.path, style.stroke, e.cfg.EdgeLineWidth)

		e.path.Reset()
		e.path.Polygon(g.Arrow[:])
		c.FillPath(&e.path, style.fill)
	}

	if d.boundary != nil {
		e.path.Reset()
		d.boundary.AppendPath(&e.path)
		c.FillPath(&e.path, style.fill)
		c.StrokePath(&e.path, style.stroke, e.cfg.EdgeLineWidth)
		if ed.Shape.Content != nil {
			ed.Shape.Content(c, g.Anchor, d.id)
		}
	}
	if ed.Label != "" {
		c.DrawText(ed.Label, g.Anchor.X, g.Anchor.Y, e.palette.label)
	}
}
