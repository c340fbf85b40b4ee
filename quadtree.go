package diagram

const (
	quadCapacity = 4 // entries a leaf holds before it subdivides
	quadMaxDepth = 8 // leaves at this depth never subdivide
)

// quadEntry is a bounding box tagged with the owning entity id.
type quadEntry struct {
	id  int
	box Rect
}

// quadNode is one cell of the tree. Children are stored contiguously in the
// arena starting at first; first is -1 for leaves.
type quadNode struct {
	bounds Rect
	depth  int
	first  int32
	items  []quadEntry
}

// Quadtree is a recursive quadrant tree over axis-aligned bounding boxes keyed
// by integer id. Cells live in a flat arena so Clear is a slice truncation.
//
// Entries that overlap several quadrants are stored in each of them; Query
// deduplicates. Boxes that do not intersect the root bounds are silently
// dropped. Cells are never merged after removals.
type Quadtree struct {
	bounds Rect
	nodes  []quadNode
	seen   map[int]struct{}
}

// QuadtreeStats summarizes the tree shape for diagnostics.
type QuadtreeStats struct {
	Cells    int // arena size
	Leaves   int // cells without children
	Depth    int // deepest cell
	Entries  int // stored entries, counting duplicates
	MaxItems int // largest leaf
}

// NewQuadtree creates an empty tree rooted at bounds.
func NewQuadtree(bounds Rect) *Quadtree {
	q := &Quadtree{bounds: bounds, seen: make(map[int]struct{})}
	q.Clear()
	return q
}

// Bounds returns the root rectangle.
func (q *Quadtree) Bounds() Rect {
	return q.bounds
}

// Clear drops every entry and every subdivision.
func (q *Quadtree) Clear() {
	for i := range q.nodes {
		q.nodes[i] = quadNode{}
	}
	q.nodes = append(q.nodes[:0], quadNode{bounds: q.bounds, first: -1})
}

// Insert adds id with the given bounding box.
func (q *Quadtree) Insert(id int, box Rect) {
	q.insert(0, quadEntry{id: id, box: box})
}

func (q *Quadtree) insert(ni int32, e quadEntry) {
	n := &q.nodes[ni]
	if !n.bounds.Intersects(e.box) {
		return
	}
	if (n.first < 0 && len(n.items) < quadCapacity) || n.depth >= quadMaxDepth {
		n.items = append(n.items, e)
		return
	}
	if n.first < 0 {
		q.subdivide(ni)
	}
	first := q.nodes[ni].first
	for c := first; c < first+4; c++ {
		q.insert(c, e)
	}
}

// subdivide splits a leaf into four equal quadrants and pushes its entries
// one level down.
func (q *Quadtree) subdivide(ni int32) {
	b := q.nodes[ni].bounds
	depth := q.nodes[ni].depth + 1
	hw, hh := b.Width/2, b.Height/2

	first := int32(len(q.nodes))
	q.nodes = append(q.nodes,
		quadNode{bounds: Rect{X: b.X, Y: b.Y, Width: hw, Height: hh}, depth: depth, first: -1},
		quadNode{bounds: Rect{X: b.X + hw, Y: b.Y, Width: hw, Height: hh}, depth: depth, first: -1},
		quadNode{bounds: Rect{X: b.X, Y: b.Y + hh, Width: hw, Height: hh}, depth: depth, first: -1},
		quadNode{bounds: Rect{X: b.X + hw, Y: b.Y + hh, Width: hw, Height: hh}, depth: depth, first: -1},
	)

	// Re-take the pointer: append may have moved the arena.
	n := &q.nodes[ni]
	n.first = first
	items := n.items
	n.items = nil
	for _, e := range items {
		for c := first; c < first+4; c++ {
			q.insert(c, e)
		}
	}
}

// Remove deletes id from every cell intersecting box. box must be the same
// rectangle the entry was inserted with. Reports whether anything was removed.
func (q *Quadtree) Remove(id int, box Rect) bool {
	return q.remove(0, id, box)
}

func (q *Quadtree) remove(ni int32, id int, box Rect) bool {
	n := &q.nodes[ni]
	if !n.bounds.Intersects(box) {
		return false
	}
	removed := false
	for i := range n.items {
		if n.items[i].id == id {
			copy(n.items[i:], n.items[i+1:])
			n.items[len(n.items)-1] = quadEntry{}
			n.items = n.items[:len(n.items)-1]
			removed = true
			break
		}
	}
	if n.first >= 0 {
		first := n.first
		for c := first; c < first+4; c++ {
			if q.remove(c, id, box) {
				removed = true
			}
		}
	}
	return removed
}

// Query returns the ids of every entry whose box intersects r. Each id appears
// once, in tree traversal order.
func (q *Quadtree) Query(r Rect) []int {
	return q.AppendQuery(nil, r)
}

// AppendQuery is like Query but appends to dst to avoid allocations.
func (q *Quadtree) AppendQuery(dst []int, r Rect) []int {
	clear(q.seen)
	return q.query(0, r, dst)
}

func (q *Quadtree) query(ni int32, r Rect, dst []int) []int {
	n := &q.nodes[ni]
	if !n.bounds.Intersects(r) {
		return dst
	}
	for _, e := range n.items {
		if !e.box.Intersects(r) {
			continue
		}
		if _, dup := q.seen[e.id]; dup {
			continue
		}
		q.seen[e.id] = struct{}{}
		dst = append(dst, e.id)
	}
	if n.first >= 0 {
		first := n.first
		for c := first; c < first+4; c++ {
			dst = q.query(c, r, dst)
		}
	}
	return dst
}

// Stats walks the arena and reports its shape.
func (q *Quadtree) Stats() QuadtreeStats {
	st := QuadtreeStats{Cells: len(q.nodes)}
	for i := range q.nodes {
		n := &q.nodes[i]
		if n.first < 0 {
			st.Leaves++
		}
		st.Depth = max(st.Depth, n.depth)
		st.Entries += len(n.items)
		st.MaxItems = max(st.MaxItems, len(n.items))
	}
	return st
}
