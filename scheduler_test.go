package diagram

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameTickerDefersNestedRequests(t *testing.T) {
	var ticker FrameTicker
	var order []string
	ticker.RequestFrame(func() {
		order = append(order, "a")
		ticker.RequestFrame(func() { order = append(order, "c") })
	})
	ticker.RequestFrame(func() { order = append(order, "b") })

	if n := ticker.Tick(); n != 2 {
		t.Errorf("first Tick ran %d callbacks, want 2", n)
	}
	if !slices.Equal(order, []string{"a", "b"}) {
		t.Errorf("order = %v, want [a b]", order)
	}
	if ticker.Pending() != 1 {
		t.Fatalf("Pending = %d, want the nested request", ticker.Pending())
	}
	ticker.Tick()
	if !slices.Equal(order, []string{"a", "b", "c"}) {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestSchedulerCoalescesToOnePass(t *testing.T) {
	var ticker FrameTicker
	var runs []DrawRequest
	s := NewScheduler(&ticker, func(r DrawRequest) { runs = append(runs, r) })

	s.RequestDraw(DrawAll)
	s.RequestDraw(DrawNodes, 3)
	s.RequestDraw(DrawEdges, 7, 8)

	assert.True(t, s.Scheduled())
	assert.Equal(t, 1, ticker.Pending(), "only the first request registers a frame callback")

	ticker.Tick()
	require.Len(t, runs, 1)
	assert.Equal(t, DrawEdges, runs[0].Mode, "last write wins")
	assert.Equal(t, []int{7, 8}, runs[0].Exclude)
	assert.False(t, s.Scheduled())

	req, passes := s.Counts()
	assert.Equal(t, 3, req)
	assert.Equal(t, 1, passes)
}

func TestSchedulerIdleAfterPass(t *testing.T) {
	var ticker FrameTicker
	passes := 0
	s := NewScheduler(&ticker, func(DrawRequest) { passes++ })

	ticker.Tick()
	assert.Equal(t, 0, passes, "no request, no pass")

	s.RequestDraw(DrawMove)
	ticker.Tick()
	s.RequestDraw(DrawAll)
	assert.True(t, s.Scheduled(), "a request after the pass schedules a new frame")
	ticker.Tick()
	assert.Equal(t, 2, passes)

	_, pending := s.Pending()
	assert.False(t, pending)
}

func TestSchedulerRequestFromPassRunsNextFrame(t *testing.T) {
	var ticker FrameTicker
	var s *Scheduler
	passes := 0
	s = NewScheduler(&ticker, func(DrawRequest) {
		passes++
		if passes == 1 {
			s.RequestDraw(DrawAll)
		}
	})

	s.RequestDraw(DrawAll)
	ticker.Tick()
	assert.Equal(t, 1, passes)
	assert.True(t, s.Scheduled())
	ticker.Tick()
	assert.Equal(t, 2, passes)
}

func TestSchedulerRegionRequest(t *testing.T) {
	var ticker FrameTicker
	var got DrawRequest
	s := NewScheduler(&ticker, func(r DrawRequest) { got = r })

	region := Rect{X: 1, Y: 2, Width: 3, Height: 4}
	s.RequestRegion(DrawAll, region)
	req, pending := s.Pending()
	require.True(t, pending)
	assert.True(t, req.Scoped)

	ticker.Tick()
	assert.True(t, got.Scoped)
	assert.Equal(t, region, got.Region)
}
