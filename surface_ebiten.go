package diagram

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

// EbitenSurface keeps one offscreen image per layer and composites them onto
// the screen in layer order.
type EbitenSurface struct {
	w, h     int
	layers   [layerCount]*ebiten.Image
	canvases [layerCount]ebitenCanvas
	flat     *ebiten.Image // composite target for Image

	white *ebiten.Image // 1x1 source for solid triangles
	face  *text.GoTextFace
}

// NewEbitenSurface creates a surface of w x h pixels.
func NewEbitenSurface(w, h int) (*EbitenSurface, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("ebiten surface: parse font: %w", err)
	}
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	s := &EbitenSurface{
		white: base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		face:  &text.GoTextFace{Source: src, Size: labelFontSize},
	}
	s.Resize(w, h)
	return s, nil
}

// Resize reallocates the layer images when the size changes. The caller
// should hand the surface back to the editor to trigger a full redraw.
func (s *EbitenSurface) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	for i := range s.layers {
		if s.layers[i] != nil {
			s.layers[i].Deallocate()
		}
		s.layers[i] = ebiten.NewImage(w, h)
	}
	if s.flat != nil {
		s.flat.Deallocate()
		s.flat = nil
	}
}

// Size returns the surface size in pixels.
func (s *EbitenSurface) Size() (int, int) { return s.w, s.h }

// Layer clears clip on layer l and returns a canvas restricted to it.
func (s *EbitenSurface) Layer(l Layer, clip image.Rectangle) Canvas {
	dst := s.layers[l].SubImage(clip).(*ebiten.Image)
	dst.Clear()
	c := &s.canvases[l]
	c.dst = dst
	c.white = s.white
	c.face = s.face
	c.scale, c.tx, c.ty = 1, 0, 0
	return c
}

// Composite draws every layer onto screen in order.
func (s *EbitenSurface) Composite(screen *ebiten.Image) {
	for _, img := range s.layers {
		screen.DrawImage(img, nil)
	}
}

// LayerImage returns the image backing layer l.
func (s *EbitenSurface) LayerImage(l Layer) *ebiten.Image { return s.layers[l] }

// Image composites the layers and reads them back. Anything the host drew
// over the screen, such as the FPS overlay, is left out. Must be called
// while the game loop runs, typically from Draw.
func (s *EbitenSurface) Image() image.Image {
	if s.flat == nil {
		s.flat = ebiten.NewImage(s.w, s.h)
	}
	s.flat.Clear()
	s.Composite(s.flat)
	// Ebitengine pixels are alpha-premultiplied, which is image.RGBA's layout.
	img := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	s.flat.ReadPixels(img.Pix)
	return img
}

type ebitenCanvas struct {
	dst       *ebiten.Image
	white     *ebiten.Image
	face      *text.GoTextFace
	textOpt   text.DrawOptions
	scale     float64
	tx, ty    float64
	vpath     vector.Path
	verts     []ebiten.Vertex
	indices   []uint16
	strokeOpt vector.StrokeOptions
}

func (c *ebitenCanvas) SetTransform(scale, tx, ty float64) {
	c.scale, c.tx, c.ty = scale, tx, ty
}

// buildPath converts p to pixel space in c.vpath.
func (c *ebitenCanvas) buildPath(p *Path) {
	c.vpath = vector.Path{}
	for _, s := range p.segs {
		x, y := transformPoint(c.scale, c.tx, c.ty, s.x, s.y)
		switch s.op {
		case opMoveTo:
			c.vpath.MoveTo(float32(x), float32(y))
		case opLineTo:
			c.vpath.LineTo(float32(x), float32(y))
		case opClose:
			c.vpath.Close()
		}
	}
}

func (c *ebitenCanvas) FillPath(p *Path, col Color) {
	if p.Len() == 0 {
		return
	}
	c.buildPath(p)
	c.verts, c.indices = c.vpath.AppendVerticesAndIndicesForFilling(c.verts[:0], c.indices[:0])
	c.submit(col, ebiten.FillRuleNonZero)
}

func (c *ebitenCanvas) StrokePath(p *Path, col Color, width float64) {
	if p.Len() == 0 || width <= 0 {
		return
	}
	c.buildPath(p)
	c.strokeOpt.Width = float32(math.Max(width*c.scale, 1))
	c.strokeOpt.LineJoin = vector.LineJoinRound
	c.strokeOpt.MiterLimit = 4
	c.verts, c.indices = c.vpath.AppendVerticesAndIndicesForStroke(c.verts[:0], c.indices[:0], &c.strokeOpt)
	c.submit(col, ebiten.FillRuleFillAll)
}

// submit draws the accumulated triangles in a solid color.
func (c *ebitenCanvas) submit(col Color, rule ebiten.FillRule) {
	rgba := col.toRGBA()
	r := float32(rgba.R) / 0xff
	g := float32(rgba.G) / 0xff
	b := float32(rgba.B) / 0xff
	a := float32(rgba.A) / 0xff
	for i := range c.verts {
		v := &c.verts[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	var op ebiten.DrawTrianglesOptions
	op.FillRule = rule
	op.AntiAlias = true
	c.dst.DrawTriangles(c.verts, c.indices, c.white, &op)
}

func (c *ebitenCanvas) DrawText(s string, x, y float64, col Color) {
	px, py := transformPoint(c.scale, c.tx, c.ty, x, y)
	op := &c.textOpt
	op.GeoM.Reset()
	op.GeoM.Translate(px, py)
	op.ColorScale.Reset()
	op.ColorScale.ScaleWithColor(col.toRGBA())
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(c.dst, s, c.face, op)
}

// EbitenInput reads the mouse, touches, wheel and modifier keys from
// Ebitengine. It must be used from the game's Update.
type EbitenInput struct {
	ids []ebiten.TouchID
}

// Cursor returns the cursor position.
func (*EbitenInput) Cursor() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// Pressed reports the first held mouse button, preferring left.
func (*EbitenInput) Pressed() (bool, MouseButton) {
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return true, MouseButtonMiddle
	}
	return false, MouseButtonLeft
}

// AppendTouches appends the active touches.
func (in *EbitenInput) AppendTouches(dst []Touch) []Touch {
	in.ids = ebiten.AppendTouchIDs(in.ids[:0])
	for _, id := range in.ids {
		x, y := ebiten.TouchPosition(id)
		dst = append(dst, Touch{ID: int(id), X: float64(x), Y: float64(y)})
	}
	return dst
}

// Wheel returns the wheel movement of this frame.
func (*EbitenInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

// Modifiers returns the held modifier keys.
func (*EbitenInput) Modifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
