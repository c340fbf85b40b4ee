package main

import (
	"fmt"

	"github.com/phanxgames/diagram"
)

const (
	demoCols    = 6
	demoSpacing = 160
)

var demoShapes = []*diagram.Shape{
	diagram.CircleShape,
	diagram.RectShape,
	diagram.DiamondShape,
	diagram.HexagonShape,
}

// buildDemo lays n nodes out on a grid and links each to its right and lower
// neighbour. Every third edge carries a label shape.
func buildDemo(ed *diagram.Editor, n int) {
	for i := 0; i < n; i++ {
		ed.AddNode(diagram.Node{
			ID:    i + 1,
			X:     float64(i%demoCols) * demoSpacing,
			Y:     float64(i/demoCols) * demoSpacing,
			Shape: demoShapes[i%len(demoShapes)],
			Label: fmt.Sprintf("n%d", i+1),
		})
	}

	id := n + 1
	link := func(src, dst int) {
		e := diagram.Edge{ID: id, Source: src, Target: dst}
		if id%3 == 0 {
			e.Shape = diagram.LabelShape
			e.Label = fmt.Sprintf("e%d", id)
		}
		if ed.AddEdge(e) {
			id++
		}
	}
	for i := 1; i <= n; i++ {
		if i%demoCols != 0 && i < n {
			link(i, i+1)
		}
		if i+demoCols <= n {
			link(i, i+demoCols)
		}
	}
}
