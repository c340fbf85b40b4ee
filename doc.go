// Package diagram is the engine behind an interactive 2D diagram editor for
// [Ebitengine].
//
// It keeps a live graph of positioned, variably shaped nodes and the edges
// connecting them, answers "what is near this point or region" through a
// quadtree fast enough for pointer interaction at 60fps, and redraws only the
// layers and regions a mutation affects.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// the editor with live mouse, touch and wheel input:
//
//	ed, _ := diagram.NewEditor(nil, nil)
//	ed.AddNode(diagram.Node{ID: 1, X: 0, Y: 0, Label: "a"})
//	ed.AddNode(diagram.Node{ID: 2, X: 200, Y: 80, Shape: diagram.RectShape})
//	ed.AddEdge(diagram.Edge{ID: 3, Source: 1, Target: 2})
//	diagram.Run(ed, diagram.RunConfig{Title: "Diagram", Width: 960, Height: 640})
//
// For full control, implement [ebiten.Game] yourself: attach an
// [EbitenSurface] with [Editor.SetSurface], call [Editor.Update] from Update
// and [EbitenSurface.Composite] from Draw.
//
// # Rendering
//
// Mutations never draw. They schedule a request with the [Scheduler], which
// keeps one pending [DrawRequest] and runs at most one pass per frame. A pass
// queries the index for the visible or dirty region, culls each candidate
// against it, and draws into a fixed stack of layers: background, edges,
// nodes, then the two move layers used while nodes are dragged.
//
// [ImageSurface] renders the same layers with gg for PNG snapshots without a
// display.
//
// # Geometry
//
// Node outlines come from a [Shape]; anything implementing [Boundary] can be
// used. Edge endpoints are found by bisecting along the line between the two
// centers until the containment test flips, so every boundary kind works with
// the same resolver.
//
// [Ebitengine]: https://ebitengine.org
package diagram
