package diagram

import "math"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// Touch is one active touch point in window coordinates.
type Touch struct {
	ID   int
	X, Y float64
}

// EventSource delivers raw pointer state once per frame. EbitenInput reads
// it from Ebitengine; tests use only the inject queue.
type EventSource interface {
	// Cursor returns the mouse position in window coordinates.
	Cursor() (x, y float64)
	// Pressed reports whether a mouse button is down, and which.
	Pressed() (bool, MouseButton)
	// AppendTouches appends the active touch points to dst.
	AppendTouches(dst []Touch) []Touch
	// Wheel returns the wheel movement since the last frame.
	Wheel() (dx, dy float64)
	// Modifiers returns the held modifier keys.
	Modifiers() KeyModifiers
}

// InteractionEvent is emitted to an EntityStore for every pointer gesture
// that concerns an entity, and for every pinch.
type InteractionEvent struct {
	Type       EventType
	EntityID   int // 0 when no entity is involved
	Kind       EntityKind
	WindowX    float64
	WindowY    float64
	ViewX      float64
	ViewY      float64
	Button     MouseButton
	Modifiers  KeyModifiers
	DeltaX     float64 // drag: view-space movement since the last event
	DeltaY     float64
	Scale      float64 // pinch: cumulative scale
	ScaleDelta float64 // pinch: change since the last event
}

// EntityStore receives interaction events, e.g. to forward them into an ECS
// world.
type EntityStore interface {
	EmitEvent(InteractionEvent)
}

// SetEntityStore sets the receiver of interaction events. nil disables.
func (e *Editor) SetEntityStore(s EntityStore) { e.store = s }

// SetEventSource sets the live input source. nil leaves only injected input.
func (e *Editor) SetEventSource(src EventSource) { e.input.source = src }

// emit forwards ev to the entity store. Events without an entity are only
// forwarded for pinches.
func (e *Editor) emit(ev InteractionEvent) {
	if e.store == nil {
		return
	}
	if ev.Type != EventPinch && ev.EntityID == 0 {
		return
	}
	if d, ok := e.data.get(ev.EntityID); ok {
		ev.Kind = d.Kind()
	}
	if ev.ViewX == 0 && ev.ViewY == 0 {
		ev.ViewX, ev.ViewY = e.view.WindowToView(ev.WindowX, ev.WindowY)
	}
	e.store.EmitEvent(ev)
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	hit      int         // entity under the pointer at press time
	dragging bool        // moved past the dead zone
	panning  bool        // dragging empty space
	button   MouseButton // button captured at press time
}

type pinchState struct {
	active      bool
	pointer0    int
	pointer1    int
	initialDist float64
	prevDist    float64
}

type inputState struct {
	source   EventSource
	pointers [maxPointers]pointerState
	pinch    pinchState

	touchMap  [maxPointers]int
	touchUsed [maxPointers]bool
	touches   []Touch

	injectQueue []syntheticPointerEvent
}

func (in *inputState) init() {
	in.touches = make([]Touch, 0, maxPointers)
}

// processInput is called from Update. One injected event, when queued,
// replaces the mouse for this frame.
func (e *Editor) processInput() {
	var mods KeyModifiers
	if e.input.source != nil {
		mods = e.input.source.Modifiers()
	}

	if !e.processInjectedInput(mods) && e.input.source != nil {
		src := e.input.source
		mx, my := src.Cursor()
		pressed, button := src.Pressed()
		e.processPointer(0, mx, my, pressed, button, mods)
		if _, dy := src.Wheel(); dy != 0 {
			e.wheelZoom(mx, my, dy)
		}
		e.processTouchPointers(mods)
	}
	e.detectPinch()
}

// wheelZoom zooms around the window point (wx, wy) by one step per notch.
func (e *Editor) wheelZoom(wx, wy, notches float64) {
	factor := math.Pow(1+e.cfg.WheelZoomStep, notches)
	e.ZoomBy(factor, wx, wy)
}

func (e *Editor) processTouchPointers(mods KeyModifiers) {
	in := &e.input
	in.touches = in.source.AppendTouches(in.touches[:0])

	var active [maxPointers]bool
	for _, t := range in.touches {
		slot := in.touchSlot(t.ID)
		if slot < 0 {
			continue
		}
		active[slot] = true
		e.processPointer(slot, t.X, t.Y, true, MouseButtonLeft, mods)
	}

	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !active[i] {
			ps := &in.pointers[i]
			if ps.down {
				e.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps a touch id to a pointer slot (1-9), allocating one if
// needed. Returns -1 when every slot is taken.
func (in *inputState) touchSlot(id int) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == id {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = id
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for one pointer in window
// coordinates.
//
// Press selects the entity under the pointer (shift toggles it). Moving past
// the dead zone either drags the selected nodes on the move layers or, over
// empty space, pans the view. Release ends the drag and returns the nodes to
// the static layers.
func (e *Editor) processPointer(pid int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &e.input.pointers[pid]

	switch {
	case pressed && !ps.down:
		target, _ := e.HitTest(wx, wy)
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hit = target
		ps.dragging = false
		ps.panning = false
		e.pressSelect(target, mods)

	case !pressed && ps.down:
		if ps.dragging {
			if wx != ps.lastX || wy != ps.lastY {
				e.dragStep(ps, wx, wy, mods)
			}
			e.endDrag(ps, wx, wy, mods)
		} else if ps.hit != 0 {
			if target, _ := e.HitTest(wx, wy); target == ps.hit {
				e.emit(InteractionEvent{
					Type: EventClick, EntityID: target,
					WindowX: wx, WindowY: wy, Button: ps.button, Modifiers: mods,
				})
			}
		}
		ps.down = false
		ps.hit = 0
		ps.dragging = false
		ps.panning = false
		ps.lastX, ps.lastY = wx, wy

	case pressed && ps.down:
		if wx == ps.lastX && wy == ps.lastY {
			return
		}
		if !ps.dragging && !e.input.pinch.active {
			if math.Hypot(wx-ps.startX, wy-ps.startY) > e.cfg.DragDeadZone {
				e.startDrag(ps, wx, wy, mods)
			}
		}
		if ps.dragging {
			e.dragStep(ps, wx, wy, mods)
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		if pid == 0 && (wx != ps.lastX || wy != ps.lastY || e.hovered == 0) {
			e.UpdateHover(wx, wy)
		}
		ps.lastX, ps.lastY = wx, wy
	}
}

// pressSelect updates the selection for a press on target (0 for none).
func (e *Editor) pressSelect(target int, mods KeyModifiers) {
	switch {
	case target == 0:
		if mods&ModShift == 0 {
			e.ClearSelection()
		}
	case mods&ModShift != 0:
		e.ToggleSelection(target)
	case !e.IsSelected(target):
		e.Select(target)
	}
}

func (e *Editor) startDrag(ps *pointerState, wx, wy float64, mods KeyModifiers) {
	ps.dragging = true
	if _, isNode := e.nodes[ps.hit]; !isNode || !e.IsSelected(ps.hit) {
		ps.panning = true
		return
	}
	var ids []int
	for id := range e.selected {
		if _, ok := e.nodes[id]; ok {
			ids = append(ids, id)
		}
	}
	e.setHovered(0, wx, wy)
	e.SetMoving(ids...)
	e.emit(InteractionEvent{
		Type: EventDragStart, EntityID: ps.hit,
		WindowX: wx, WindowY: wy, Button: ps.button, Modifiers: mods,
	})
}

func (e *Editor) dragStep(ps *pointerState, wx, wy float64, mods KeyModifiers) {
	dx, dy := wx-ps.lastX, wy-ps.lastY
	if ps.panning {
		e.MoveBy(dx, dy)
		return
	}
	s := e.view.Scale()
	e.moveSet(e.moving, dx/s, dy/s)
	e.emit(InteractionEvent{
		Type: EventDrag, EntityID: ps.hit,
		WindowX: wx, WindowY: wy, Button: ps.button, Modifiers: mods,
		DeltaX: dx / s, DeltaY: dy / s,
	})
}

func (e *Editor) endDrag(ps *pointerState, wx, wy float64, mods KeyModifiers) {
	if ps.panning {
		return
	}
	e.ClearMoving()
	e.emit(InteractionEvent{
		Type: EventDragEnd, EntityID: ps.hit,
		WindowX: wx, WindowY: wy, Button: ps.button, Modifiers: mods,
	})
}

// --- Pinch detection ---

// detectPinch zooms around the midpoint of exactly two held touch pointers.
// A pinch cancels any drag those pointers started.
func (e *Editor) detectPinch() {
	in := &e.input
	p0, p1, count := 0, 0, 0
	for i := 1; i < maxPointers; i++ {
		if !in.pointers[i].down {
			continue
		}
		switch count {
		case 0:
			p0 = i
		case 1:
			p1 = i
		}
		count++
	}

	if count != 2 {
		in.pinch.active = false
		return
	}

	ps0, ps1 := &in.pointers[p0], &in.pointers[p1]
	cx := (ps0.lastX + ps1.lastX) / 2
	cy := (ps0.lastY + ps1.lastY) / 2
	dist := math.Hypot(ps1.lastX-ps0.lastX, ps1.lastY-ps0.lastY)

	if !in.pinch.active {
		in.pinch = pinchState{active: true, pointer0: p0, pointer1: p1, initialDist: dist, prevDist: dist}
		if (ps0.dragging && !ps0.panning) || (ps1.dragging && !ps1.panning) {
			e.ClearMoving()
		}
		ps0.dragging, ps1.dragging = false, false
		return
	}

	if in.pinch.prevDist > 0 && dist != in.pinch.prevDist {
		delta := dist/in.pinch.prevDist - 1
		e.ZoomBy(dist/in.pinch.prevDist, cx, cy)
		scale := 1.0
		if in.pinch.initialDist > 0 {
			scale = dist / in.pinch.initialDist
		}
		e.emit(InteractionEvent{
			Type: EventPinch, WindowX: cx, WindowY: cy,
			Scale: scale, ScaleDelta: delta,
		})
	}
	in.pinch.prevDist = dist
	ps0.dragging, ps1.dragging = false, false
}
