package main

import (
	"fmt"
	"time"

	"github.com/phanxgames/diagram"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print index statistics for the generated diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := newEditor(&diagram.FrameTicker{})
			if err != nil {
				return err
			}

			st := ed.Stats()
			fmt.Println(brand.Sprint("graph"))
			row("nodes", st.Nodes)
			row("edges", st.Edges)

			fmt.Println(brand.Sprint("index"))
			row("cells", st.Index.Cells)
			row("leaves", st.Index.Leaves)
			row("depth", st.Index.Depth)
			row("entries", st.Index.Entries)
			row("max leaf", st.Index.MaxItems)

			fmt.Println(brand.Sprint("queries"))
			n, _ := ed.Node(1)
			start := time.Now()
			hit, ok := ed.QueryAt(n.X, n.Y)
			elapsed := time.Since(start)
			if ok {
				row("hit", fmt.Sprintf("(%.0f, %.0f) -> %d in %v", n.X, n.Y, hit, elapsed))
			} else {
				row("hit", fmt.Sprintf("(%.0f, %.0f) -> none", n.X, n.Y))
			}
			start = time.Now()
			ids := ed.QueryRegion(ed.Index().Bounds())
			row("region", fmt.Sprintf("%d ids in %v", len(ids), time.Since(start)))

			if broken := ed.CheckLinks(); len(broken) > 0 {
				return fmt.Errorf("inconsistent edge links on nodes %v", broken)
			}
			good.Println("  links consistent")
			return nil
		},
	}
}
