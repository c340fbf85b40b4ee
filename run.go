package diagram

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ExitOnScriptDone closes the window once the attached script finished
	// and its snapshots are written.
	ExitOnScriptDone bool
}

// Run opens a window and drives ed with Ebitengine until it is closed. The
// editor reads live input from the mouse, touches and wheel; an attached
// script replays on top of it.
func Run(ed *Editor, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{ed: ed, cfg: cfg}
	ed.SetEventSource(&g.input)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

type game struct {
	ed      *Editor
	cfg     RunConfig
	surface *EbitenSurface
	input   EbitenInput
	w, h    int

	fps    string
	fpsAge float32
}

func (g *game) Update() error {
	if g.cfg.ExitOnScriptDone && g.ed.script != nil && g.ed.script.Done() && g.ed.PendingSnapshots() == 0 {
		return ebiten.Termination
	}
	if g.w > 0 && g.h > 0 {
		if g.surface == nil {
			surface, err := NewEbitenSurface(g.w, g.h)
			if err != nil {
				return err
			}
			g.surface = surface
			g.ed.SetSurface(g.surface)
		} else if sw, sh := g.surface.Size(); sw != g.w || sh != g.h {
			g.surface.Resize(g.w, g.h)
			g.ed.SetSurface(g.surface)
		}
	}

	dt := 1 / float32(ebiten.TPS())
	g.ed.Update(dt)

	if g.cfg.ShowFPS {
		g.fpsAge += dt
		if g.fpsAge >= 0.5 || g.fps == "" {
			g.fpsAge = 0
			g.fps = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.surface != nil {
		g.surface.Composite(screen)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, g.fps)
	}
	if g.surface != nil && g.ed.PendingSnapshots() > 0 {
		if _, err := g.ed.WriteSnapshots(g.surface.Image()); err != nil {
			g.ed.log.Warn("snapshot failed", zap.Error(err))
		}
	}
}

func (g *game) Layout(w, h int) (int, int) {
	g.w, g.h = w, h
	return w, h
}
