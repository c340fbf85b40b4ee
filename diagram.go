package diagram

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite and ColorBlack are convenience values used as fallbacks.
var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// toRGBA converts to a premultiplied color.RGBA for the drawing backends.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a 2D vector used for positions, anchors, and directions.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dist returns the euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(o.X-v.X, o.Y-v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// IsEmpty reports whether the rect has negative extent.
func (r Rect) IsEmpty() bool {
	return r.Width < 0 || r.Height < 0
}

// Union returns the smallest rect containing both rects. An empty operand is
// ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Intersection returns the overlapping area of r and other. The result is
// empty when they do not intersect.
func (r Rect) Intersection(other Rect) Rect {
	minX := math.Max(r.X, other.X)
	minY := math.Max(r.Y, other.Y)
	maxX := math.Min(r.X+r.Width, other.X+other.Width)
	maxY := math.Min(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Expand grows the rect by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Center returns the center point of the rect.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// emptyRect is the identity element for Union.
var emptyRect = Rect{Width: -1, Height: -1}

// rectAround returns the bounding rect of the given points.
func rectAround(pts ...Vec2) Rect {
	if len(pts) == 0 {
		return emptyRect
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// EntityKind tags a DrawData entry.
type EntityKind uint8

const (
	KindNode EntityKind = iota // a positioned shape
	KindEdge                   // a connector between two nodes
)

// String returns the kind name.
func (k EntityKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// DrawMode selects which layers a render pass touches.
type DrawMode uint8

const (
	DrawAll   DrawMode = iota // background, nodes, edges, and move layers
	DrawNodes                 // node layer only
	DrawEdges                 // edge layer only
	DrawMove                  // transient move layers only
)

// String returns the mode name.
func (m DrawMode) String() string {
	switch m {
	case DrawAll:
		return "all"
	case DrawNodes:
		return "nodes"
	case DrawEdges:
		return "edges"
	case DrawMove:
		return "move"
	default:
		return "unknown"
	}
}

// Layer identifies one of the fixed drawing surfaces. Layers are composited
// in declaration order.
type Layer uint8

const (
	LayerBackground Layer = iota // fill and grid
	LayerEdges                   // static edges
	LayerNodes                   // static nodes
	LayerMoveEdges               // edges incident to entities being dragged
	LayerMoveNodes               // nodes being dragged
	layerCount
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerEdges:
		return "edges"
	case LayerNodes:
		return "nodes"
	case LayerMoveEdges:
		return "move-edges"
	case LayerMoveNodes:
		return "move-nodes"
	default:
		return "unknown"
	}
}

// EntityState selects the style an entity is drawn with.
type EntityState uint8

const (
	StateNormal   EntityState = iota // default colors
	StateHover                       // pointer is over the entity
	StateSelected                    // entity is in the selection set
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerEnter EventType = iota // hovered id changed to this entity
	EventPointerLeave                  // hovered id changed away from this entity
	EventClick                         // press then release over the same entity
	EventDragStart                     // movement exceeded the drag dead zone
	EventDrag                          // fires each frame while dragging
	EventDragEnd                       // pointer released after dragging
	EventPinch                         // two-finger pinch zoom
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
