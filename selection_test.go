package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	addNodes(t, ed, 1, 2, 3)

	require.True(t, ed.Select(2, 1))
	assert.Equal(t, []int{1, 2}, ed.Selected())

	assert.False(t, ed.Select(3, 99), "unknown id fails the whole call")
	assert.Equal(t, []int{1, 2}, ed.Selected())

	require.True(t, ed.Select(3))
	assert.Equal(t, []int{3}, ed.Selected(), "Select replaces")
}

func TestSelectionEditing(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	addNodes(t, ed, 1, 2)

	assert.True(t, ed.AddSelection(1))
	assert.True(t, ed.AddSelection(1), "adding twice is fine")
	assert.False(t, ed.AddSelection(9))
	assert.True(t, ed.ToggleSelection(2))
	assert.Equal(t, []int{1, 2}, ed.Selected())

	assert.True(t, ed.ToggleSelection(1))
	assert.False(t, ed.IsSelected(1))
	assert.True(t, ed.RemoveSelection(2))
	assert.False(t, ed.RemoveSelection(2))
	assert.Empty(t, ed.Selected())

	ed.AddSelection(1)
	ed.ClearSelection()
	assert.Empty(t, ed.Selected())
}

func TestSelectSchedulesScopedRedraw(t *testing.T) {
	ed, ticker, _ := newTestEditor(t)
	addNodes(t, ed, 1, 2)
	ticker.Tick()

	require.True(t, ed.Select(1))
	req, pending := ed.Scheduler().Pending()
	require.True(t, pending)
	assert.True(t, req.Scoped)
	d, _ := ed.Data(1)
	assert.Equal(t, d.Bounds(), req.Region)

	require.True(t, ed.AddSelection(2))
	req, _ = ed.Scheduler().Pending()
	d2, _ := ed.Data(2)
	assert.Equal(t, d.Bounds().Union(d2.Bounds()), req.Region, "regions merge while pending")
}

func TestRemovedEntityLeavesSelection(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	addNodes(t, ed, 1, 2)
	require.True(t, ed.AddEdge(Edge{ID: 10, Source: 1, Target: 2}))
	require.True(t, ed.Select(1, 10))

	require.True(t, ed.RemoveNode(1))
	assert.Empty(t, ed.Selected())
}

func TestStatePriority(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	addNodes(t, ed, 1)

	assert.Equal(t, StateNormal, ed.stateOf(1))
	ed.UpdateHover(100, 100)
	assert.Equal(t, StateHover, ed.stateOf(1))
	ed.Select(1)
	assert.Equal(t, StateSelected, ed.stateOf(1), "selection wins over hover")
}

func TestSetMoving(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	addNodes(t, ed, 1, 2, 3)
	require.True(t, ed.AddEdge(Edge{ID: 10, Source: 1, Target: 2}))
	require.True(t, ed.AddEdge(Edge{ID: 11, Source: 2, Target: 3}))

	assert.False(t, ed.SetMoving(1, 10), "edges cannot be moved directly")
	assert.Empty(t, ed.Moving())

	require.True(t, ed.SetMoving(1))
	assert.Equal(t, []int{1}, ed.Moving())
	assert.True(t, ed.IsMoving(1))
	assert.True(t, ed.IsMoving(10), "incident edge moves with the node")
	assert.False(t, ed.IsMoving(11))
	assert.False(t, ed.IsMoving(2))

	ed.ClearMoving()
	assert.Empty(t, ed.Moving())
	assert.False(t, ed.IsMoving(10))
}
