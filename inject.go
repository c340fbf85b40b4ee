package diagram

// syntheticPointerEvent is one injected pointer or wheel event in window
// coordinates. It goes through the same state machine as real mouse input.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
	mods    KeyModifiers
	wheel   float64
}

// InjectPress queues a left-button press at the window point (x, y). Each
// queued event is consumed by one Update.
func (e *Editor) InjectPress(x, y float64) {
	e.InjectPressMods(x, y, 0)
}

// InjectPressMods is InjectPress with modifier keys held.
func (e *Editor) InjectPressMods(x, y float64, mods KeyModifiers) {
	e.input.injectQueue = append(e.input.injectQueue, syntheticPointerEvent{
		x:       x,
		y:       y,
		pressed: true,
		button:  MouseButtonLeft,
		mods:    mods,
	})
}

// InjectMove queues a pointer move with the button held. Use it between
// InjectPress and InjectRelease to drag.
func (e *Editor) InjectMove(x, y float64) {
	e.input.injectQueue = append(e.input.injectQueue, syntheticPointerEvent{
		x:       x,
		y:       y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectHover queues a pointer move with no button held.
func (e *Editor) InjectHover(x, y float64) {
	e.input.injectQueue = append(e.input.injectQueue, syntheticPointerEvent{
		x:      x,
		y:      y,
		button: MouseButtonLeft,
	})
}

// InjectRelease queues a button release at (x, y).
func (e *Editor) InjectRelease(x, y float64) {
	e.input.injectQueue = append(e.input.injectQueue, syntheticPointerEvent{
		x:      x,
		y:      y,
		button: MouseButtonLeft,
	})
}

// InjectClick queues a press and a release at the same point. Consumes two
// frames.
func (e *Editor) InjectClick(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves and
// a release at (toX, toY). Minimum frames is 2.
func (e *Editor) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel movement of notches at (x, y). Positive notches
// zoom in.
func (e *Editor) InjectWheel(x, y, notches float64) {
	e.input.injectQueue = append(e.input.injectQueue, syntheticPointerEvent{
		x:      x,
		y:      y,
		button: MouseButtonLeft,
		wheel:  notches,
	})
}

// InjectPending returns the number of queued events.
func (e *Editor) InjectPending() int {
	return len(e.input.injectQueue)
}

// processInjectedInput pops one queued event and feeds it through the mouse
// pointer. Returns true if an event was consumed.
func (e *Editor) processInjectedInput(mods KeyModifiers) bool {
	in := &e.input
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	if evt.wheel != 0 {
		e.wheelZoom(evt.x, evt.y, evt.wheel)
		return true
	}
	e.processPointer(0, evt.x, evt.y, evt.pressed, evt.button, mods|evt.mods)
	return true
}
