package diagram

// FrameSource delivers the display's frame tick. RequestFrame registers fn to
// run once on the next frame.
type FrameSource interface {
	RequestFrame(fn func())
}

// FrameTicker is a FrameSource driven by the host loop: call Tick once per
// frame (from ebiten's Update, or from a test).
type FrameTicker struct {
	pending []func()
	running []func()
}

// RequestFrame queues fn for the next Tick.
func (t *FrameTicker) RequestFrame(fn func()) {
	t.pending = append(t.pending, fn)
}

// Pending returns the number of callbacks waiting for the next Tick.
func (t *FrameTicker) Pending() int {
	return len(t.pending)
}

// Tick runs every callback registered before the call. Callbacks registered
// while ticking run on the following Tick. Returns the number run.
func (t *FrameTicker) Tick() int {
	t.running, t.pending = t.pending, t.running[:0]
	for i, fn := range t.running {
		fn()
		t.running[i] = nil
	}
	n := len(t.running)
	t.running = t.running[:0]
	return n
}

// DrawRequest is the captured parameters of a pending render pass.
type DrawRequest struct {
	Mode DrawMode
	// Exclude lists ids skipped on the static layers.
	Exclude []int
	// Region limits the pass to a view-space dirty rect when Scoped is set.
	Region Rect
	Scoped bool
}

type schedulerState uint8

const (
	stateIdle schedulerState = iota
	stateFrameScheduled
)

// Scheduler coalesces draw requests into at most one pass per frame. It has a
// single pending slot: requests made while a frame is scheduled replace the
// slot (last write wins) rather than queueing.
type Scheduler struct {
	frames  FrameSource
	state   schedulerState
	pending DrawRequest
	run     func(DrawRequest)
	fireFn  func()

	requests int // requests since construction
	passes   int // passes executed since construction
}

// NewScheduler creates an idle scheduler that calls run for each pass.
func NewScheduler(frames FrameSource, run func(DrawRequest)) *Scheduler {
	s := &Scheduler{frames: frames, run: run}
	s.fireFn = s.fire
	return s
}

// RequestDraw schedules a full pass of the given mode, skipping exclude on the
// static layers.
func (s *Scheduler) RequestDraw(mode DrawMode, exclude ...int) {
	s.request(DrawRequest{Mode: mode, Exclude: exclude})
}

// RequestRegion schedules a pass limited to the view-space rect region.
func (s *Scheduler) RequestRegion(mode DrawMode, region Rect) {
	s.request(DrawRequest{Mode: mode, Region: region, Scoped: true})
}

func (s *Scheduler) request(req DrawRequest) {
	s.requests++
	s.pending = req
	if s.state == stateIdle {
		s.state = stateFrameScheduled
		s.frames.RequestFrame(s.fireFn)
	}
}

// fire runs on the frame tick: back to idle first, so the pass itself may
// request the next frame.
func (s *Scheduler) fire() {
	if s.state != stateFrameScheduled {
		return
	}
	req := s.pending
	s.pending = DrawRequest{}
	s.state = stateIdle
	s.passes++
	s.run(req)
}

// Pending returns the captured request while a frame is scheduled.
func (s *Scheduler) Pending() (DrawRequest, bool) {
	return s.pending, s.state == stateFrameScheduled
}

// Scheduled reports whether a frame callback is registered.
func (s *Scheduler) Scheduled() bool {
	return s.state == stateFrameScheduled
}

// Counts returns the number of requests made and passes run.
func (s *Scheduler) Counts() (requests, passes int) {
	return s.requests, s.passes
}
