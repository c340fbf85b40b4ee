package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/diagram"
	"github.com/spf13/cobra"
)

func viewCmd() *cobra.Command {
	var (
		width, height int
		scriptPath    string
		showFPS       bool
		exit          bool
	)
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the generated diagram in an interactive window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := newEditor(nil)
			if err != nil {
				return err
			}
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				runner, err := diagram.LoadScript(data)
				if err != nil {
					return err
				}
				ed.SetScript(runner)
			}

			ed.SetViewportBounds(diagram.Rect{Width: float64(width), Height: float64(height)})
			ed.FitContent(0)

			return diagram.Run(ed, diagram.RunConfig{
				Title:            "diagramctl",
				Width:            width,
				Height:           height,
				ShowFPS:          showFPS,
				ExitOnScriptDone: exit,
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 960, "Window width in pixels")
	cmd.Flags().IntVar(&height, "height", 640, "Window height in pixels")
	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON input script to replay")
	cmd.Flags().BoolVar(&showFPS, "fps", false, "Show FPS and TPS")
	cmd.Flags().BoolVar(&exit, "exit", false, "Close the window when the script is done")
	return cmd
}
