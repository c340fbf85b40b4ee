package diagram

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// fitMargin is the share of the surface FitContent fills with content.
const fitMargin = 0.9

// Editor is the diagram engine: the graph, its cached draw data, the spatial
// index, the viewport, and the redraw scheduler. Every operation mutates all
// of them together. An Editor is not safe for concurrent use.
type Editor struct {
	cfg     *Config
	palette palette
	log     *zap.Logger
	debug   bool

	nodes map[int]*Node
	edges map[int]*Edge
	pairs map[edgePair]int

	data     drawDataStore
	index    *Quadtree
	view     *Viewport
	resolver edgeResolver

	selected map[int]struct{}
	moving   map[int]struct{}
	// stale holds edges whose index entry predates their last invalidation.
	stale map[int]struct{}
	// fresh is the union of boxes refreshed since the last pass.
	fresh   Rect
	hovered int
	// labelRunes is the rune count of the longest label ever set. It only
	// grows until Clear, so a pass also covers labels that were shortened.
	labelRunes int

	sched   *Scheduler
	ticker  *FrameTicker // non-nil when the editor owns its frame source
	surface Surface

	input     inputState
	store     EntityStore
	script    *ScriptRunner
	snapshots []string

	queryBuf []int
	path     Path
	last     PassStats
}

type edgePair struct {
	source, target int
}

// NewEditor creates an empty editor. A nil cfg uses DefaultConfig. When
// frames is nil the editor owns a FrameTicker advanced by Update.
func NewEditor(cfg *Config, frames FrameSource) (*Editor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pal, err := cfg.palette()
	if err != nil {
		return nil, fmt.Errorf("new editor: %w", err)
	}

	half := cfg.WorldExtent / 2
	e := &Editor{
		cfg:      cfg,
		palette:  pal,
		log:      zap.NewNop(),
		debug:    cfg.Debug,
		nodes:    make(map[int]*Node),
		edges:    make(map[int]*Edge),
		pairs:    make(map[edgePair]int),
		data:     newDrawDataStore(),
		index:    NewQuadtree(Rect{X: -half, Y: -half, Width: cfg.WorldExtent, Height: cfg.WorldExtent}),
		view:     NewViewport(Rect{}),
		selected: make(map[int]struct{}),
		moving:   make(map[int]struct{}),
		stale:    make(map[int]struct{}),
		fresh:    emptyRect,
	}
	e.resolver = edgeResolver{
		lineWidth:   cfg.EdgeLineWidth,
		arrowLength: cfg.ArrowLength,
		arrowWidth:  cfg.ArrowWidth,
	}
	e.view.MinScale = cfg.MinScale
	e.view.MaxScale = cfg.MaxScale
	e.input.init()

	if frames == nil {
		e.ticker = &FrameTicker{}
		frames = e.ticker
	}
	e.sched = NewScheduler(frames, e.runPass)
	return e, nil
}

// Config returns the configuration the editor was built with.
func (e *Editor) Config() *Config { return e.cfg }

// SetLogger replaces the logger. nil restores the no-op logger.
func (e *Editor) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	e.log = l
}

// Viewport returns the editor's viewport. Callers that change it directly
// should follow with RequestDraw(DrawAll).
func (e *Editor) Viewport() *Viewport { return e.view }

// Scheduler returns the redraw scheduler.
func (e *Editor) Scheduler() *Scheduler { return e.sched }

// Index returns the spatial index.
func (e *Editor) Index() *Quadtree { return e.index }

// SetSurface attaches the drawing surface, sizes the viewport to it and
// schedules a full redraw. nil detaches; passes then only update state.
func (e *Editor) SetSurface(s Surface) {
	e.surface = s
	if s != nil {
		w, h := s.Size()
		b := e.view.Bounds()
		e.view.SetBounds(Rect{X: b.X, Y: b.Y, Width: float64(w), Height: float64(h)})
	}
	e.sched.RequestDraw(DrawAll)
}

// SetViewportBounds places the surface within the window, in window pixels.
func (e *Editor) SetViewportBounds(r Rect) {
	e.view.SetBounds(r)
	e.sched.RequestDraw(DrawAll)
}

// Update runs one frame: the attached script, input, viewport animation, then
// the frame tick when the editor owns its frame source.
func (e *Editor) Update(dt float32) {
	if e.script != nil {
		e.script.step(e)
	}
	e.processInput()
	if e.view.Update(dt) {
		e.requestFull()
	}
	if e.ticker != nil {
		e.ticker.Tick()
	}
}

// RequestDraw schedules a pass of the given mode that skips exclude on the
// static layers.
func (e *Editor) RequestDraw(mode DrawMode, exclude ...int) {
	e.sched.RequestDraw(mode, exclude...)
}

// --- Viewport operations ---

// MoveBy pans the view by (dx, dy) surface pixels.
func (e *Editor) MoveBy(dx, dy float64) {
	if dx == 0 && dy == 0 || !finite(dx, dy) {
		return
	}
	e.view.MoveBy(dx, dy)
	e.requestFull()
}

// ZoomTo sets the scale around the view point (ax, ay). Reports whether the
// scale changed.
func (e *Editor) ZoomTo(scale, ax, ay float64) bool {
	if !e.view.ZoomTo(scale, ax, ay) {
		return false
	}
	e.requestFull()
	return true
}

// ZoomBy multiplies the scale by factor around the window point (wx, wy).
func (e *Editor) ZoomBy(factor, wx, wy float64) bool {
	if !e.view.ZoomBy(factor, wx, wy) {
		return false
	}
	e.requestFull()
	return true
}

// FitContent scales and pans so every node fits the surface, centered. A
// positive seconds animates the change. Reports false when there is nothing
// to fit or no surface size.
func (e *Editor) FitContent(seconds float32) bool {
	content := emptyRect
	for id := range e.nodes {
		content = content.Union(e.data.node(id).bounds)
	}
	b := e.view.Bounds()
	if content.IsEmpty() || b.Width <= 0 || b.Height <= 0 {
		return false
	}
	scale := fitMargin * math.Min(
		b.Width/math.Max(content.Width, 1),
		b.Height/math.Max(content.Height, 1),
	)
	c := content.Center()
	if seconds > 0 {
		e.view.AnimateTo(c.X, c.Y, scale, seconds, ease.InOutQuad)
		return true
	}
	e.view.CenterOn(c.X, c.Y, scale)
	e.requestFull()
	return true
}

// WindowToView converts window coordinates to view coordinates.
func (e *Editor) WindowToView(wx, wy float64) (float64, float64) {
	return e.view.WindowToView(wx, wy)
}

// ViewToWindow converts view coordinates to window coordinates.
func (e *Editor) ViewToWindow(x, y float64) (float64, float64) {
	return e.view.ViewToWindow(x, y)
}

// --- Draw data ---

// ensureNode recomputes a node's boundary if it is stale.
func (e *Editor) ensureNode(d *NodeData) Boundary {
	if d.boundary == nil {
		n := e.nodes[d.id]
		d.boundary = n.Shape.boundaryAt(n.X, n.Y, n.ID)
	}
	return d.boundary
}

// ensureEdge recomputes an edge's geometry if it is stale.
func (e *Editor) ensureEdge(d *EdgeData) {
	if d.valid {
		return
	}
	src := e.data.node(d.source)
	dst := e.data.node(d.target)
	sn, tn := e.nodes[d.source], e.nodes[d.target]
	d.geom = e.resolver.resolve(
		Vec2{sn.X, sn.Y}, Vec2{tn.X, tn.Y},
		e.ensureNode(src), e.ensureNode(dst),
	)
	d.boundary = e.edges[d.id].Shape.boundaryAt(d.geom.Anchor.X, d.geom.Anchor.Y, d.id)
	d.valid = true
}

// nodeBounds is the index box of a node: its shape size around the center,
// grown by half the outline width.
func (e *Editor) nodeBounds(n *Node) Rect {
	r := Rect{
		X:      n.X - n.Shape.Width/2,
		Y:      n.Y - n.Shape.Height/2,
		Width:  n.Shape.Width,
		Height: n.Shape.Height,
	}
	return r.Expand(e.cfg.NodeLineWidth / 2)
}

// edgeBounds is the index box of an edge with valid geometry.
func (e *Editor) edgeBounds(d *EdgeData) Rect {
	g := d.geom
	r := rectAround(g.Start, g.End)
	if !g.Degenerate {
		r = r.Union(g.ArrowBounds())
	}
	if d.boundary != nil {
		r = r.Union(d.boundary.Bounds().Expand(e.cfg.EdgeLineWidth / 2))
	}
	return r.Expand(e.cfg.EdgeLineWidth / 2)
}

// reindex moves the index entry of id from old to box.
func (e *Editor) reindex(id int, old, box Rect) {
	e.index.Remove(id, old)
	e.index.Insert(id, box)
}

// invalidateNode drops a node's cached boundary and the geometry of every
// incident edge, and refreshes the node's index entry. Returns the union of
// the node's old and new boxes and the old boxes of its edges.
func (e *Editor) invalidateNode(id int) Rect {
	d := e.data.node(id)
	d.boundary = nil
	old := d.bounds
	d.bounds = e.nodeBounds(e.nodes[id])
	e.reindex(id, old, d.bounds)

	dirty := old.Union(d.bounds)
	d.eachEdge(func(eid int) {
		dirty = dirty.Union(e.invalidateEdge(eid))
	})
	return dirty
}

// invalidateEdge drops an edge's cached geometry. Its index entry keeps the
// old box until flushBounds. Returns the old box.
func (e *Editor) invalidateEdge(id int) Rect {
	d := e.data.edge(id)
	d.invalidate()
	e.stale[id] = struct{}{}
	return d.bounds
}

// flushBounds resolves every stale edge and moves its index entry to the new
// box. The new boxes accumulate in e.fresh until the next pass takes them.
func (e *Editor) flushBounds() {
	for id := range e.stale {
		d := e.data.edge(id)
		delete(e.stale, id)
		if d == nil {
			continue
		}
		e.ensureEdge(d)
		old := d.bounds
		d.bounds = e.edgeBounds(d)
		e.reindex(id, old, d.bounds)
		e.fresh = e.fresh.Union(d.bounds)
	}
}

// entityBounds returns the indexed box of id, or the empty rect.
func (e *Editor) entityBounds(id int) Rect {
	if d, ok := e.data.get(id); ok {
		return d.Bounds()
	}
	return emptyRect
}

// --- Redraw requests ---

// markDirty schedules a redraw of region, merging it with whatever is
// already pending.
func (e *Editor) markDirty(region Rect) {
	if region.IsEmpty() {
		return
	}
	req, pending := e.sched.Pending()
	switch {
	case !pending:
		e.sched.RequestRegion(DrawAll, region)
	case req.Scoped:
		e.sched.RequestRegion(DrawAll, req.Region.Union(region))
	case req.Mode == DrawAll:
	default:
		e.sched.RequestDraw(DrawAll, req.Exclude...)
	}
}

// requestFull schedules a full redraw, keeping pending exclusions.
func (e *Editor) requestFull() {
	req, pending := e.sched.Pending()
	if pending && !req.Scoped {
		e.sched.RequestDraw(DrawAll, req.Exclude...)
		return
	}
	e.sched.RequestDraw(DrawAll)
}

// requestMove schedules a move-layer pass unless a wider one is pending.
func (e *Editor) requestMove() {
	req, pending := e.sched.Pending()
	switch {
	case !pending:
		e.sched.RequestDraw(DrawMove)
	case req.Mode == DrawMove:
	case req.Scoped:
		e.sched.RequestDraw(DrawAll)
	case req.Mode == DrawAll:
	default:
		e.sched.RequestDraw(DrawAll, req.Exclude...)
	}
}
