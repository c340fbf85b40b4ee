package diagram

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordStore collects emitted interaction events.
type recordStore struct {
	events []InteractionEvent
}

func (s *recordStore) EmitEvent(ev InteractionEvent) {
	s.events = append(s.events, ev)
}

func (s *recordStore) types() []EventType {
	out := make([]EventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

// fakeSource is an EventSource driven by the test.
type fakeSource struct {
	x, y    float64
	pressed bool
	touches []Touch
	wheel   float64
	mods    KeyModifiers
}

func (s *fakeSource) Cursor() (float64, float64) { return s.x, s.y }

func (s *fakeSource) Pressed() (bool, MouseButton) { return s.pressed, MouseButtonLeft }

func (s *fakeSource) Wheel() (float64, float64) { return 0, s.wheel }

func (s *fakeSource) Modifiers() KeyModifiers { return s.mods }

func (s *fakeSource) AppendTouches(dst []Touch) []Touch {
	return append(dst, s.touches...)
}

// drain runs frames until the inject queue is empty.
func drain(ed *Editor, ticker *FrameTicker) {
	for ed.InjectPending() > 0 {
		ed.Update(1.0 / 60)
		ticker.Tick()
	}
}

func newInputEditor(t *testing.T) (*Editor, *FrameTicker, *recordStore) {
	t.Helper()
	ed, ticker, _ := newTestEditor(t)
	addNodes(t, ed, 1, 2)
	ticker.Tick()
	store := &recordStore{}
	ed.SetEntityStore(store)
	return ed, ticker, store
}

func TestInjectClickSelects(t *testing.T) {
	ed, ticker, store := newInputEditor(t)

	ed.InjectClick(100, 100)
	assert.Equal(t, 2, ed.InjectPending())
	drain(ed, ticker)

	assert.Equal(t, []int{1}, ed.Selected())
	require.Len(t, store.events, 1)
	ev := store.events[0]
	assert.Equal(t, EventClick, ev.Type)
	assert.Equal(t, 1, ev.EntityID)
	assert.Equal(t, KindNode, ev.Kind)
	assert.Equal(t, 100.0, ev.ViewX)
}

func TestShiftClickToggles(t *testing.T) {
	ed, ticker, _ := newInputEditor(t)
	ed.InjectClick(100, 100)
	drain(ed, ticker)

	ed.InjectPressMods(200, 100, ModShift)
	ed.InjectRelease(200, 100)
	drain(ed, ticker)
	assert.Equal(t, []int{1, 2}, ed.Selected())

	ed.InjectPressMods(100, 100, ModShift)
	ed.InjectRelease(100, 100)
	drain(ed, ticker)
	assert.Equal(t, []int{2}, ed.Selected())
}

func TestClickEmptyClearsSelection(t *testing.T) {
	ed, ticker, store := newInputEditor(t)
	require.True(t, ed.Select(1, 2))

	ed.InjectClick(500, 500)
	drain(ed, ticker)
	assert.Empty(t, ed.Selected())
	assert.Empty(t, store.events, "no entity, no event")
}

func TestDragMovesNode(t *testing.T) {
	ed, ticker, store := newInputEditor(t)

	ed.InjectDrag(100, 100, 160, 100, 5)
	frame := func() {
		ed.Update(1.0 / 60)
		ticker.Tick()
	}
	frame()
	frame()
	assert.True(t, ed.IsMoving(1), "past the dead zone the node moves")
	ed.Update(1.0 / 60)
	req, _ := ed.Scheduler().Pending()
	assert.Equal(t, DrawMove, req.Mode, "later drag frames only touch the move layers")
	ticker.Tick()
	drain(ed, ticker)

	assert.Empty(t, ed.Moving())
	n, _ := ed.Node(1)
	assert.InDelta(t, 160, n.X, 1e-9)
	assert.Equal(t, 100.0, n.Y)

	assert.Equal(t, []EventType{
		EventDragStart, EventDrag, EventDrag, EventDrag, EventDrag, EventDragEnd,
	}, store.types())
	var dx float64
	for _, ev := range store.events {
		dx += ev.DeltaX
	}
	assert.InDelta(t, 60, dx, 1e-9)
}

func TestDragAtScaleUsesViewUnits(t *testing.T) {
	ed, ticker, _ := newInputEditor(t)
	require.True(t, ed.ZoomTo(2, 0, 0))

	ed.InjectDrag(200, 200, 300, 200, 4)
	drain(ed, ticker)

	n, _ := ed.Node(1)
	assert.InDelta(t, 150, n.X, 1e-9)
}

func TestDragEmptySpacePans(t *testing.T) {
	ed, ticker, _ := newInputEditor(t)

	ed.InjectDrag(500, 500, 540, 520, 4)
	drain(ed, ticker)

	tx, ty := ed.Viewport().Translate()
	assert.InDelta(t, 40, tx, 1e-9)
	assert.InDelta(t, 20, ty, 1e-9)
	n, _ := ed.Node(1)
	assert.Equal(t, 100.0, n.X, "nodes stay put")
}

func TestShortPressIsNotADrag(t *testing.T) {
	ed, ticker, store := newInputEditor(t)

	ed.InjectPress(100, 100)
	ed.InjectMove(102, 101)
	ed.InjectRelease(102, 101)
	drain(ed, ticker)

	n, _ := ed.Node(1)
	assert.Equal(t, 100.0, n.X)
	assert.Equal(t, []EventType{EventClick}, store.types())
}

func TestInjectDragMinimumFrames(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ed.InjectDrag(0, 0, 10, 10, 0)
	assert.Equal(t, 2, ed.InjectPending())
	ed.InjectDrag(0, 0, 10, 10, 6)
	assert.Equal(t, 8, ed.InjectPending())
}

func TestInjectWheelZoomsAroundCursor(t *testing.T) {
	ed, ticker, _ := newInputEditor(t)
	bx, by := ed.WindowToView(400, 300)

	ed.InjectWheel(400, 300, 2)
	drain(ed, ticker)

	assert.InDelta(t, math.Pow(1.1, 2), ed.Viewport().Scale(), 1e-12)
	ax, ay := ed.WindowToView(400, 300)
	assert.InDelta(t, bx, ax, 1e-9)
	assert.InDelta(t, by, ay, 1e-9)
}

func TestSourceHoverEvents(t *testing.T) {
	ed, ticker, store := newInputEditor(t)
	src := &fakeSource{x: 100, y: 100}
	ed.SetEventSource(src)

	ed.Update(1.0 / 60)
	ticker.Tick()
	assert.Equal(t, 1, ed.Hovered())

	src.x, src.y = 500, 500
	ed.Update(1.0 / 60)
	assert.Zero(t, ed.Hovered())
	assert.Equal(t, []EventType{EventPointerEnter, EventPointerLeave}, store.types())
}

func TestSourceWheel(t *testing.T) {
	ed, _, _ := newInputEditor(t)
	src := &fakeSource{x: 400, y: 300, wheel: -1}
	ed.SetEventSource(src)

	ed.Update(1.0 / 60)
	assert.InDelta(t, 1/1.1, ed.Viewport().Scale(), 1e-12)
}

func TestInjectedEventReplacesMouse(t *testing.T) {
	ed, ticker, _ := newInputEditor(t)
	src := &fakeSource{x: 500, y: 500}
	ed.SetEventSource(src)

	ed.InjectClick(100, 100)
	drain(ed, ticker)
	assert.Equal(t, []int{1}, ed.Selected())
}

func TestPinchZoom(t *testing.T) {
	ed, ticker, store := newInputEditor(t)
	src := &fakeSource{x: 700, y: 500}
	ed.SetEventSource(src)

	src.touches = []Touch{{ID: 11, X: 300, Y: 300}, {ID: 12, X: 500, Y: 300}}
	ed.Update(1.0 / 60)
	ticker.Tick()
	assert.Equal(t, 1.0, ed.Viewport().Scale(), "first frame only records the distance")

	src.touches = []Touch{{ID: 11, X: 250, Y: 300}, {ID: 12, X: 550, Y: 300}}
	ed.Update(1.0 / 60)
	ticker.Tick()
	assert.InDelta(t, 1.5, ed.Viewport().Scale(), 1e-12)
	ax, ay := ed.WindowToView(400, 300)
	assert.InDelta(t, 400, ax, 1e-9, "midpoint stays fixed")
	assert.InDelta(t, 300, ay, 1e-9)

	require.Len(t, store.events, 1)
	ev := store.events[0]
	assert.Equal(t, EventPinch, ev.Type)
	assert.InDelta(t, 1.5, ev.Scale, 1e-12)
	assert.InDelta(t, 0.5, ev.ScaleDelta, 1e-12)

	src.touches = nil
	ed.Update(1.0 / 60)
	assert.False(t, ed.input.pinch.active)
	assert.False(t, ed.input.pointers[1].down)
}
