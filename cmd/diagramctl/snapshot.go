package main

import (
	"github.com/phanxgames/diagram"
	"github.com/spf13/cobra"
)

func snapshotCmd() *cobra.Command {
	var (
		out           string
		label         string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the generated diagram to a PNG without a window",
		Long: "Render the generated diagram to a PNG without a window.\n" +
			subtle.Sprint("With --out the file is written there; otherwise it goes to the configured snapshot_dir under --label."),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticker := &diagram.FrameTicker{}
			ed, err := newEditor(ticker)
			if err != nil {
				return err
			}
			surface, err := diagram.NewImageSurface(width, height)
			if err != nil {
				return err
			}
			ed.SetSurface(surface)
			ed.FitContent(0)
			ticker.Tick()

			path := out
			if out != "" {
				if err := surface.SavePNG(out); err != nil {
					return err
				}
			} else {
				ed.Snapshot(label)
				paths, err := ed.WriteSnapshots(surface.Image())
				if err != nil {
					return err
				}
				path = paths[0]
			}

			st := ed.LastPass()
			good.Printf("  wrote %s\n", path)
			row("mode", st.Mode)
			row("candidates", st.Candidates)
			row("drawn", st.Drawn)
			row("culled", st.Culled)
			row("duration", st.Duration)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output PNG path")
	cmd.Flags().StringVar(&label, "label", "diagram", "Snapshot label when --out is not set")
	cmd.Flags().IntVar(&width, "width", 960, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", 640, "Image height in pixels")
	return cmd
}
