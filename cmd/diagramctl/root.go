package main

import (
	"fmt"

	"github.com/phanxgames/diagram"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

var (
	configPath string
	verbose    bool
	nodeCount  int
)

var rootCmd = &cobra.Command{
	Use:           "diagramctl",
	Short:         "diagramctl: view, render and inspect diagrams",
	Long:          brand.Sprint("diagramctl") + " drives the incremental diagram engine\n" + subtle.Sprint("Open a live editor, write PNG snapshots or print index statistics"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("diagramctl {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output, including render passes")
	rootCmd.PersistentFlags().IntVarP(&nodeCount, "nodes", "n", 24, "Number of nodes in the generated diagram")

	rootCmd.AddCommand(
		viewCmd(),
		snapshotCmd(),
		statsCmd(),
		configCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		bad.Printf("diagramctl: %v\n", err)
		return err
	}
	return nil
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig reads --config over the defaults and DIAGRAM_* overrides.
func loadConfig() (*diagram.Config, error) {
	cfg, err := diagram.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Debug = true
	}
	return cfg, nil
}

// newEditor builds an editor with a generated diagram. frames may be nil.
func newEditor(frames diagram.FrameSource) (*diagram.Editor, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	ed, err := diagram.NewEditor(cfg, frames)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	ed.SetLogger(logger)
	if nodeCount < 1 {
		return nil, fmt.Errorf("--nodes must be positive, got %d", nodeCount)
	}
	buildDemo(ed, nodeCount)
	return ed, nil
}
