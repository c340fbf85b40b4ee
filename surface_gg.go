package diagram

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// ImageSurface renders the layers into in-memory images with gg. It needs no
// display and is used for PNG snapshots.
type ImageSurface struct {
	w, h   int
	layers [layerCount]*gg.Context
	canvas [layerCount]ggCanvas
	face   font.Face
}

// NewImageSurface creates a surface of w x h pixels.
func NewImageSurface(w, h int) (*ImageSurface, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("image surface: invalid size %dx%d", w, h)
	}
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("image surface: parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    labelFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	s := &ImageSurface{w: w, h: h, face: face}
	for i := range s.layers {
		dc := gg.NewContext(w, h)
		dc.SetFontFace(s.face)
		s.layers[i] = dc
	}
	return s, nil
}

// Size returns the surface size in pixels.
func (s *ImageSurface) Size() (int, int) { return s.w, s.h }

// Layer clears clip on layer l and returns a canvas clipped to it.
func (s *ImageSurface) Layer(l Layer, clip image.Rectangle) Canvas {
	dc := s.layers[l]
	if img, ok := dc.Image().(draw.Image); ok {
		draw.Draw(img, clip, image.Transparent, image.Point{}, draw.Src)
	}
	dc.ResetClip()
	dc.DrawRectangle(float64(clip.Min.X), float64(clip.Min.Y), float64(clip.Dx()), float64(clip.Dy()))
	dc.Clip()

	c := &s.canvas[l]
	c.dc = dc
	c.scale, c.tx, c.ty = 1, 0, 0
	return c
}

// Image composites every layer into a new image.
func (s *ImageSurface) Image() image.Image {
	return s.composite().Image()
}

// EncodePNG writes the composited layers to w as PNG.
func (s *ImageSurface) EncodePNG(w io.Writer) error {
	if err := s.composite().EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the composited layers to a PNG file.
func (s *ImageSurface) SavePNG(path string) error {
	if err := s.composite().SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

func (s *ImageSurface) composite() *gg.Context {
	out := gg.NewContext(s.w, s.h)
	for _, dc := range s.layers {
		out.DrawImage(dc.Image(), 0, 0)
	}
	return out
}

type ggCanvas struct {
	dc     *gg.Context
	scale  float64
	tx, ty float64
}

func (c *ggCanvas) SetTransform(scale, tx, ty float64) {
	c.scale, c.tx, c.ty = scale, tx, ty
}

// trace replays p onto the gg path in pixel space.
func (c *ggCanvas) trace(p *Path) {
	c.dc.NewSubPath()
	for _, s := range p.segs {
		x, y := transformPoint(c.scale, c.tx, c.ty, s.x, s.y)
		switch s.op {
		case opMoveTo:
			c.dc.MoveTo(x, y)
		case opLineTo:
			c.dc.LineTo(x, y)
		case opClose:
			c.dc.ClosePath()
		}
	}
}

func (c *ggCanvas) FillPath(p *Path, col Color) {
	if p.Len() == 0 {
		return
	}
	c.trace(p)
	c.dc.SetFillRuleWinding()
	c.dc.SetColor(col.toRGBA())
	c.dc.Fill()
}

func (c *ggCanvas) StrokePath(p *Path, col Color, width float64) {
	if p.Len() == 0 || width <= 0 {
		return
	}
	c.trace(p)
	c.dc.SetLineWidth(max(width*c.scale, 1))
	c.dc.SetColor(col.toRGBA())
	c.dc.Stroke()
}

func (c *ggCanvas) DrawText(s string, x, y float64, col Color) {
	px, py := transformPoint(c.scale, c.tx, c.ty, x, y)
	c.dc.SetColor(col.toRGBA())
	c.dc.DrawStringAnchored(s, px, py, 0.5, 0.5)
}
