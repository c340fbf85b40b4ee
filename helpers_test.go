package diagram

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// recordSurface counts the layer clears and draw calls of each pass.
type recordSurface struct {
	w, h    int
	clears  [layerCount]int
	clips   [layerCount][]image.Rectangle
	fills   [layerCount]int
	strokes [layerCount]int
	texts   []string
	inks    []Color // color of each text, parallel to texts
}

func newRecordSurface(w, h int) *recordSurface {
	return &recordSurface{w: w, h: h}
}

func (s *recordSurface) Size() (int, int) { return s.w, s.h }

func (s *recordSurface) Layer(l Layer, clip image.Rectangle) Canvas {
	s.clears[l]++
	s.clips[l] = append(s.clips[l], clip)
	return &recordCanvas{layer: l, rec: s}
}

// calls returns the number of fill and stroke calls on l.
func (s *recordSurface) calls(l Layer) int {
	return s.fills[l] + s.strokes[l]
}

// reset forgets every recorded call.
func (s *recordSurface) reset() {
	*s = recordSurface{w: s.w, h: s.h}
}

type recordCanvas struct {
	layer Layer
	rec   *recordSurface
}

func (c *recordCanvas) SetTransform(scale, tx, ty float64) {}

func (c *recordCanvas) FillPath(p *Path, col Color) {
	c.rec.fills[c.layer]++
}

func (c *recordCanvas) StrokePath(p *Path, col Color, width float64) {
	c.rec.strokes[c.layer]++
}

func (c *recordCanvas) DrawText(s string, x, y float64, col Color) {
	c.rec.texts = append(c.rec.texts, s)
	c.rec.inks = append(c.rec.inks, col)
}

// newTestEditor returns an editor drawing into an 800x600 recording surface,
// with the initial full pass already run and forgotten.
func newTestEditor(t *testing.T) (*Editor, *FrameTicker, *recordSurface) {
	t.Helper()
	ticker := &FrameTicker{}
	ed, err := NewEditor(nil, ticker)
	require.NoError(t, err)
	surf := newRecordSurface(800, 600)
	ed.SetSurface(surf)
	ticker.Tick()
	surf.reset()
	return ed, ticker, surf
}

// addNodes adds circle nodes with the given ids at (100*id, 100).
func addNodes(t *testing.T, ed *Editor, ids ...int) {
	t.Helper()
	for _, id := range ids {
		require.True(t, ed.AddNode(Node{ID: id, X: float64(100 * id), Y: 100}), "add node %d", id)
	}
}
