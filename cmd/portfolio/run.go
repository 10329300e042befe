package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/orbit"
	"github.com/phanxgames/orbit/catalog"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the carousel window",
	Long: `Opens the carousel in a window. Drag to spin it, hover to highlight a card,
click to open a project. Arrow keys move the cursor and cycle categories,
space selects, enter compares, escape resets, P pauses and M mutes.

With --watch the catalog file is reloaded whenever it changes.`,
	RunE: runViewer,
}

func init() {
	runCmd.Flags().String("layout", "", "card layout: ring or sphere")
	runCmd.Flags().Float64("radius", 0, "layout radius in world units")
	runCmd.Flags().Bool("reduced-motion", false, "disable ambient rotation and hover animation")
	runCmd.Flags().String("script", "", "YAML or JSON input script to play back")
	runCmd.Flags().Bool("watch", false, "reload the catalog when it changes")
	runCmd.Flags().Bool("fps", false, "show the frame rate")
	runCmd.Flags().Bool("sound", true, "play hover and click tones")
}

func runViewer(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	opts := []orbit.ViewerOption{
		orbit.WithLogger(logger),
		orbit.WithContext(cmd.Context()),
		orbit.WithCategories(cat.Categories),
		orbit.WithViewport(orbit.Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}),
		orbit.WithNavigate(func(it orbit.Item, path string) {
			logger.Info("open project", zap.String("id", it.ID), zap.String("path", path))
		}),
	}
	if cfg.Sound && !cfg.ReducedMotion {
		opts = append(opts, orbit.WithTonePlayer(orbit.NewAudioTonePlayer(0)))
	}
	v, err := orbit.NewViewer(cat.Items, cfg.Config, cat.Fetcher(), opts...)
	if err != nil {
		return err
	}
	defer v.Close()
	v.ScreenshotDir = cfg.ScreenshotDir

	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		s, err := orbit.LoadScript(data)
		if err != nil {
			return err
		}
		v.SetScript(s)
	}

	if cfg.Watch && cfg.Catalog != "" {
		w, err := catalog.NewWatcher(cfg.Catalog,
			func(c *catalog.Catalog) {
				v.Post(func() {
					if err := v.SetItems(c.Items, c.Categories); err != nil {
						logger.Warn("reloaded catalog rejected", zap.Error(err))
					}
				})
			},
			catalog.WithWatchLogger(logger))
		if err != nil {
			return err
		}
		if err := w.Start(cmd.Context()); err != nil {
			return err
		}
		defer w.Stop()
	}

	logger.Info("starting viewer",
		zap.Int("projects", len(cat.Items)),
		zap.Stringer("layout", cfg.Layout))
	return orbit.Run(v, orbit.RunConfig{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFPS:    cfg.ShowFPS,
		ClearColor: orbit.Color{R: 0.06, G: 0.06, B: 0.08, A: 1},
	})
}
