package diagram

// Select replaces the selection with ids. It fails without change when any id
// is unknown.
func (e *Editor) Select(ids ...int) bool {
	for _, id := range ids {
		if !e.exists(id) {
			return e.reject("select", id, "no such entity")
		}
	}
	dirty := emptyRect
	for id := range e.selected {
		dirty = dirty.Union(e.entityBounds(id))
	}
	clear(e.selected)
	for _, id := range ids {
		e.selected[id] = struct{}{}
		dirty = dirty.Union(e.entityBounds(id))
	}
	e.markDirty(dirty)
	return true
}

// AddSelection adds id to the selection.
func (e *Editor) AddSelection(id int) bool {
	if !e.exists(id) {
		return e.reject("add selection", id, "no such entity")
	}
	if _, ok := e.selected[id]; ok {
		return true
	}
	e.selected[id] = struct{}{}
	e.markDirty(e.entityBounds(id))
	return true
}

// RemoveSelection removes id from the selection. Reports whether it was
// selected.
func (e *Editor) RemoveSelection(id int) bool {
	if _, ok := e.selected[id]; !ok {
		return false
	}
	delete(e.selected, id)
	e.markDirty(e.entityBounds(id))
	return true
}

// ToggleSelection adds id if it is not selected and removes it otherwise.
func (e *Editor) ToggleSelection(id int) bool {
	if _, ok := e.selected[id]; ok {
		return e.RemoveSelection(id)
	}
	return e.AddSelection(id)
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() {
	if len(e.selected) == 0 {
		return
	}
	dirty := emptyRect
	for id := range e.selected {
		dirty = dirty.Union(e.entityBounds(id))
	}
	clear(e.selected)
	e.markDirty(dirty)
}

// IsSelected reports whether id is selected.
func (e *Editor) IsSelected(id int) bool {
	_, ok := e.selected[id]
	return ok
}

// Selected returns the selected ids in ascending order.
func (e *Editor) Selected() []int {
	return sortedKeys(e.selected)
}

// SetMoving marks the given nodes as being dragged. They and their incident
// edges leave the static layers and are drawn on the move layers until
// ClearMoving. Fails without change when any id is not a node.
func (e *Editor) SetMoving(ids ...int) bool {
	for _, id := range ids {
		if _, ok := e.nodes[id]; !ok {
			return e.reject("set moving", id, "no such node")
		}
	}
	clear(e.moving)
	for _, id := range ids {
		e.moving[id] = struct{}{}
	}
	e.requestFull()
	return true
}

// ClearMoving returns every moving node to the static layers.
func (e *Editor) ClearMoving() {
	if len(e.moving) == 0 {
		return
	}
	clear(e.moving)
	e.requestFull()
}

// Moving returns the ids of the nodes being dragged in ascending order.
func (e *Editor) Moving() []int {
	return sortedKeys(e.moving)
}

// IsMoving reports whether id is a moving node or an edge incident to one.
func (e *Editor) IsMoving(id int) bool {
	if _, ok := e.moving[id]; ok {
		return true
	}
	if ed, ok := e.edges[id]; ok {
		_, src := e.moving[ed.Source]
		_, dst := e.moving[ed.Target]
		return src || dst
	}
	return false
}

// stateOf returns the style state of id. Selection wins over hover.
func (e *Editor) stateOf(id int) EntityState {
	if _, ok := e.selected[id]; ok {
		return StateSelected
	}
	if id == e.hovered {
		return StateHover
	}
	return StateNormal
}
