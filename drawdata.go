package diagram

import "slices"

// DrawData is the cached derived geometry for one live entity. It is either a
// *NodeData or an *EdgeData; consumers switch on the concrete type.
type DrawData interface {
	// ID returns the owning entity id.
	ID() int
	// Kind reports which variant this is.
	Kind() EntityKind
	// Bounds returns the rectangle currently stored in the spatial index.
	Bounds() Rect
}

// NodeData caches a node's boundary and holds the back-references to the
// edges it participates in.
type NodeData struct {
	id       int
	boundary Boundary // nil when stale
	bounds   Rect
	out      map[int]struct{} // edges with this node as source
	in       map[int]struct{} // edges with this node as target
}

func newNodeData(id int) *NodeData {
	return &NodeData{
		id:  id,
		out: make(map[int]struct{}),
		in:  make(map[int]struct{}),
	}
}

// ID returns the node id.
func (d *NodeData) ID() int { return d.id }

// Kind returns KindNode.
func (d *NodeData) Kind() EntityKind { return KindNode }

// Bounds returns the indexed bounding box.
func (d *NodeData) Bounds() Rect { return d.bounds }

// Valid reports whether the cached boundary is current.
func (d *NodeData) Valid() bool { return d.boundary != nil }

// Boundary returns the cached boundary, or nil when stale.
func (d *NodeData) Boundary() Boundary { return d.boundary }

// OutEdges returns the ids of edges whose source is this node, sorted.
func (d *NodeData) OutEdges() []int { return sortedKeys(d.out) }

// InEdges returns the ids of edges whose target is this node, sorted.
func (d *NodeData) InEdges() []int { return sortedKeys(d.in) }

// Degree returns the number of incident edges.
func (d *NodeData) Degree() int { return len(d.out) + len(d.in) }

// eachEdge calls fn for every incident edge id.
func (d *NodeData) eachEdge(fn func(id int)) {
	for id := range d.out {
		fn(id)
	}
	for id := range d.in {
		if _, loop := d.out[id]; loop {
			continue
		}
		fn(id)
	}
}

// EdgeGeometry is the resolved connector geometry of an edge in view space.
type EdgeGeometry struct {
	// Start and End are the line endpoints on the source and target
	// boundaries, pulled in by half the stroke width.
	Start, End Vec2
	// Arrow is the arrowhead triangle: tip, then the two base corners.
	Arrow [3]Vec2
	// Anchor is where the edge's shape and label are centered.
	Anchor Vec2
	// Angle is the direction from source center to target center in radians.
	Angle float64
	// Degenerate is set when both endpoint centers coincide; every point then
	// equals the shared center.
	Degenerate bool
}

// ArrowBounds returns the rect enclosing the arrowhead.
func (g EdgeGeometry) ArrowBounds() Rect {
	return rectAround(g.Arrow[:]...)
}

// EdgeData caches an edge's resolved geometry.
type EdgeData struct {
	id       int
	source   int
	target   int
	valid    bool
	geom     EdgeGeometry
	boundary Boundary // shape at Anchor; nil when the edge has no shape
	bounds   Rect
}

// ID returns the edge id.
func (d *EdgeData) ID() int { return d.id }

// Kind returns KindEdge.
func (d *EdgeData) Kind() EntityKind { return KindEdge }

// Bounds returns the indexed bounding box.
func (d *EdgeData) Bounds() Rect { return d.bounds }

// Valid reports whether the cached geometry is current.
func (d *EdgeData) Valid() bool { return d.valid }

// Source returns the source node id.
func (d *EdgeData) Source() int { return d.source }

// Target returns the target node id.
func (d *EdgeData) Target() int { return d.target }

// Geometry returns the cached geometry. Only meaningful when Valid.
func (d *EdgeData) Geometry() EdgeGeometry { return d.geom }

// Boundary returns the boundary of the edge's shape, or nil.
func (d *EdgeData) Boundary() Boundary { return d.boundary }

// invalidate drops the cached geometry.
func (d *EdgeData) invalidate() {
	d.valid = false
	d.geom = EdgeGeometry{}
	d.boundary = nil
}

// drawDataStore holds one DrawData entry per live entity.
type drawDataStore struct {
	entries map[int]DrawData
}

func newDrawDataStore() drawDataStore {
	return drawDataStore{entries: make(map[int]DrawData)}
}

func (s *drawDataStore) get(id int) (DrawData, bool) {
	d, ok := s.entries[id]
	return d, ok
}

func (s *drawDataStore) node(id int) *NodeData {
	d, _ := s.entries[id].(*NodeData)
	return d
}

func (s *drawDataStore) edge(id int) *EdgeData {
	d, _ := s.entries[id].(*EdgeData)
	return d
}

func (s *drawDataStore) put(d DrawData) {
	s.entries[d.ID()] = d
}

func (s *drawDataStore) remove(id int) {
	delete(s.entries, id)
}

func (s *drawDataStore) reset() {
	clear(s.entries)
}

func (s *drawDataStore) size() int {
	return len(s.entries)
}

func sortedKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
