package diagram

import (
	"slices"

	"go.uber.org/zap"
)

// Node is a positioned shape. X and Y are the center in view coordinates.
type Node struct {
	ID    int
	X, Y  float64
	Shape *Shape // nil means CircleShape
	Label string
}

// Edge connects two nodes. Node and edge ids share one id space.
type Edge struct {
	ID     int
	Source int
	Target int
	Shape  *Shape // drawn at the anchor; nil for none
	Label  string
}

// NodeUpdate lists the node fields to change. Nil fields are left alone.
type NodeUpdate struct {
	X, Y  *float64
	Shape *Shape
	Label *string
}

// EdgeUpdate lists the edge fields to change. Nil fields are left alone.
type EdgeUpdate struct {
	Source *int
	Target *int
	Shape  *Shape
	Label  *string
}

func (e *Editor) exists(id int) bool {
	_, ok := e.data.get(id)
	return ok
}

func (e *Editor) reject(op string, id int, reason string) bool {
	e.log.Debug("rejected", zap.String("op", op), zap.Int("id", id), zap.String("reason", reason))
	return false
}

// AddNode inserts n. It fails when the id is not positive or already used by
// a node or an edge.
func (e *Editor) AddNode(n Node) bool {
	if n.ID <= 0 {
		return e.reject("add node", n.ID, "non-positive id")
	}
	if e.exists(n.ID) {
		return e.reject("add node", n.ID, "id in use")
	}
	if n.Shape == nil {
		n.Shape = CircleShape
	}
	node := &n
	e.nodes[n.ID] = node
	e.noteLabel(n.Label)

	d := newNodeData(n.ID)
	d.bounds = e.nodeBounds(node)
	e.data.put(d)
	e.index.Insert(n.ID, d.bounds)

	e.markDirty(d.bounds)
	return true
}

// AddEdge inserts ed. It fails when the id is not positive or in use, when
// either endpoint is not a node, when source equals target, or when an edge
// already connects the same ordered pair.
func (e *Editor) AddEdge(ed Edge) bool {
	if ed.ID <= 0 {
		return e.reject("add edge", ed.ID, "non-positive id")
	}
	if e.exists(ed.ID) {
		return e.reject("add edge", ed.ID, "id in use")
	}
	if reason := e.checkEndpoints(ed.Source, ed.Target); reason != "" {
		return e.reject("add edge", ed.ID, reason)
	}

	edge := &ed
	e.edges[ed.ID] = edge
	e.noteLabel(ed.Label)
	e.pairs[edgePair{ed.Source, ed.Target}] = ed.ID
	e.data.node(ed.Source).out[ed.ID] = struct{}{}
	e.data.node(ed.Target).in[ed.ID] = struct{}{}

	d := &EdgeData{id: ed.ID, source: ed.Source, target: ed.Target}
	e.data.put(d)
	e.ensureEdge(d)
	d.bounds = e.edgeBounds(d)
	e.index.Insert(ed.ID, d.bounds)

	e.markDirty(d.bounds)
	return true
}

// checkEndpoints returns why (source, target) cannot be connected, or "".
func (e *Editor) checkEndpoints(source, target int) string {
	if _, ok := e.nodes[source]; !ok {
		return "missing source"
	}
	if _, ok := e.nodes[target]; !ok {
		return "missing target"
	}
	if source == target {
		return "self loop"
	}
	if _, dup := e.pairs[edgePair{source, target}]; dup {
		return "duplicate pair"
	}
	return ""
}

// MoveNode offsets a node's center by (dx, dy) and invalidates the geometry
// of its incident edges.
func (e *Editor) MoveNode(id int, dx, dy float64) bool {
	n, ok := e.nodes[id]
	if !ok {
		return e.reject("move node", id, "no such node")
	}
	n.X += dx
	n.Y += dy
	dirty := e.invalidateNode(id)
	if _, moving := e.moving[id]; moving {
		e.requestMove()
		return true
	}
	e.markDirty(dirty)
	return true
}

// moveSet offsets every node in ids, then schedules one move-layer pass.
func (e *Editor) moveSet(ids map[int]struct{}, dx, dy float64) {
	for id := range ids {
		n, ok := e.nodes[id]
		if !ok {
			continue
		}
		n.X += dx
		n.Y += dy
		e.invalidateNode(id)
	}
	e.requestMove()
}

// UpdateNode applies the non-nil fields of u.
func (e *Editor) UpdateNode(id int, u NodeUpdate) bool {
	n, ok := e.nodes[id]
	if !ok {
		return e.reject("update node", id, "no such node")
	}
	if u.X != nil {
		n.X = *u.X
	}
	if u.Y != nil {
		n.Y = *u.Y
	}
	if u.Shape != nil {
		n.Shape = u.Shape
	}
	if u.Label != nil {
		n.Label = *u.Label
		e.noteLabel(n.Label)
	}
	e.markDirty(e.invalidateNode(id))
	return true
}

// UpdateEdge applies the non-nil fields of u. Changing an endpoint is subject
// to the same checks as AddEdge; on failure nothing changes.
func (e *Editor) UpdateEdge(id int, u EdgeUpdate) bool {
	ed, ok := e.edges[id]
	if !ok {
		return e.reject("update edge", id, "no such edge")
	}
	source, target := ed.Source, ed.Target
	if u.Source != nil {
		source = *u.Source
	}
	if u.Target != nil {
		target = *u.Target
	}
	if source != ed.Source || target != ed.Target {
		if reason := e.checkEndpoints(source, target); reason != "" {
			return e.reject("update edge", id, reason)
		}
		e.unlinkEdge(ed)
		ed.Source, ed.Target = source, target
		e.pairs[edgePair{source, target}] = id
		e.data.node(source).out[id] = struct{}{}
		e.data.node(target).in[id] = struct{}{}
		d := e.data.edge(id)
		d.source, d.target = source, target
	}
	if u.Shape != nil {
		ed.Shape = u.Shape
	}
	if u.Label != nil {
		ed.Label = *u.Label
		e.noteLabel(ed.Label)
	}
	e.markDirty(e.invalidateEdge(id))
	return true
}

// unlinkEdge removes an edge's pair entry and endpoint back-references.
func (e *Editor) unlinkEdge(ed *Edge) {
	delete(e.pairs, edgePair{ed.Source, ed.Target})
	if d := e.data.node(ed.Source); d != nil {
		delete(d.out, ed.ID)
	}
	if d := e.data.node(ed.Target); d != nil {
		delete(d.in, ed.ID)
	}
}

// RemoveEdge deletes an edge.
func (e *Editor) RemoveEdge(id int) bool {
	ed, ok := e.edges[id]
	if !ok {
		return e.reject("remove edge", id, "no such edge")
	}
	e.markDirty(e.dropEntity(id))
	e.unlinkEdge(ed)
	delete(e.edges, id)
	return true
}

// RemoveNode deletes a node after deleting every edge incident to it.
func (e *Editor) RemoveNode(id int) bool {
	if _, ok := e.nodes[id]; !ok {
		return e.reject("remove node", id, "no such node")
	}
	d := e.data.node(id)
	var incident []int
	d.eachEdge(func(eid int) { incident = append(incident, eid) })
	for _, eid := range incident {
		e.RemoveEdge(eid)
	}
	e.markDirty(e.dropEntity(id))
	delete(e.nodes, id)
	return true
}

// dropEntity removes the draw data, index entry and per-id state of id.
// Returns its last indexed box.
func (e *Editor) dropEntity(id int) Rect {
	box := e.entityBounds(id)
	e.index.Remove(id, box)
	e.data.remove(id)
	delete(e.stale, id)
	delete(e.selected, id)
	delete(e.moving, id)
	if e.hovered == id {
		e.hovered = 0
	}
	return box
}

// Clear removes every node and edge and resets the index.
func (e *Editor) Clear() {
	clear(e.nodes)
	clear(e.edges)
	clear(e.pairs)
	e.data.reset()
	e.index.Clear()
	clear(e.stale)
	e.fresh = emptyRect
	clear(e.selected)
	clear(e.moving)
	e.hovered = 0
	e.labelRunes = 0
	e.requestFull()
}

// Data returns the draw data of id. A missing boundary or stale edge
// geometry is recomputed before returning.
func (e *Editor) Data(id int) (DrawData, bool) {
	d, ok := e.data.get(id)
	if !ok {
		return nil, false
	}
	switch d := d.(type) {
	case *NodeData:
		e.ensureNode(d)
	case *EdgeData:
		e.ensureEdge(d)
	}
	return d, true
}

// NodeBoundary returns the current boundary of a node, recomputing it if
// needed.
func (e *Editor) NodeBoundary(id int) (Boundary, bool) {
	d := e.data.node(id)
	if d == nil {
		return nil, false
	}
	return e.ensureNode(d), true
}

// EdgeGeometry returns the current geometry of an edge, recomputing it if
// needed.
func (e *Editor) EdgeGeometry(id int) (EdgeGeometry, bool) {
	d := e.data.edge(id)
	if d == nil {
		return EdgeGeometry{}, false
	}
	e.ensureEdge(d)
	return d.geom, true
}

// Node returns a copy of the node with the given id.
func (e *Editor) Node(id int) (Node, bool) {
	n, ok := e.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Edge returns a copy of the edge with the given id.
func (e *Editor) Edge(id int) (Edge, bool) {
	ed, ok := e.edges[id]
	if !ok {
		return Edge{}, false
	}
	return *ed, true
}

// EdgeBetween returns the id of the edge from source to target.
func (e *Editor) EdgeBetween(source, target int) (int, bool) {
	id, ok := e.pairs[edgePair{source, target}]
	return id, ok
}

// Nodes returns a snapshot of every node ordered by id.
func (e *Editor) Nodes() []Node {
	out := make([]Node, 0, len(e.nodes))
	for _, n := range e.nodes {
		out = append(out, *n)
	}
	slices.SortFunc(out, func(a, b Node) int { return a.ID - b.ID })
	return out
}

// Edges returns a snapshot of every edge ordered by id.
func (e *Editor) Edges() []Edge {
	out := make([]Edge, 0, len(e.edges))
	for _, ed := range e.edges {
		out = append(out, *ed)
	}
	slices.SortFunc(out, func(a, b Edge) int { return a.ID - b.ID })
	return out
}

// NodeCount returns the number of nodes.
func (e *Editor) NodeCount() int { return len(e.nodes) }

// EdgeCount returns the number of edges.
func (e *Editor) EdgeCount() int { return len(e.edges) }

// QueryRegion returns the ids whose indexed box intersects the view-space
// rect r.
func (e *Editor) QueryRegion(r Rect) []int {
	e.flushBounds()
	return e.index.Query(r)
}
