package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Sheepdog-Run/internal/assets"
	"github.com/Garsondee/Sheepdog-Run/internal/config"
)

// Playfield caps, in logical pixels.
const (
	maxCanvasW       = 480
	maxCanvasH       = 720
	canvasHeightFrac = 0.8
)

// Game adapts a World to ebiten.Game: Update polls input and steps the
// simulation, Draw renders it, Layout sizes the playfield.
type Game struct {
	world    *World
	sprites  *Sprites
	assets   *assets.Set
	controls Controls
	logger   *zap.Logger

	// copyScore writes the banner text to the clipboard.
	copyScore func(string) error
}

// New builds a game from config. Sprite loading starts immediately in the
// background; until it finishes the fallback shapes are drawn.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- game only
	logger.Info("starting game", zap.Int64("seed", seed), zap.String("assets", cfg.Assets.Dir))

	set := assets.NewSet(cfg.Assets.Dir, logger)
	set.Load(ctx)

	w, h := canvasSize(cfg.Window.Width, cfg.Window.Height)
	return &Game{
		world:     NewWorld(float64(w), float64(h), ParamsFromConfig(cfg), rng, logger),
		sprites:   NewSprites(set),
		assets:    set,
		logger:    logger,
		copyScore: clipboard.WriteAll,
	}
}

// World exposes the simulation state.
func (g *Game) World() *World {
	return g.world
}

// Close waits for background sprite loading to finish.
func (g *Game) Close() error {
	return g.assets.Wait()
}

func (g *Game) Update() error {
	w := g.world
	switch w.Phase {
	case PhasePlaying:
		g.controls.Poll(&w.Dog.Intent, w.Width, w.Height)
	case PhaseAwaitAck:
		g.handleBanner()
		return nil
	}
	w.Step()
	return nil
}

// handleBanner waits for the player to dismiss the game-over banner.
func (g *Game) handleBanner() {
	w := g.world
	if g.controls.CopyRequested() {
		line := w.Result().String()
		if err := g.copyScore(line); err != nil {
			g.logger.Warn("clipboard unavailable", zap.Error(err))
		} else {
			g.logger.Info("score copied to clipboard", zap.String("text", line))
		}
	}
	if !g.controls.Acknowledged() {
		return
	}
	if res, ok := w.Acknowledge(); ok {
		g.logger.Info("round acknowledged",
			zap.String("round_id", res.ID.String()),
			zap.Int("score", res.Score))
	}
	g.controls.Release(&w.Dog.Intent)
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.world, g.sprites)
}

// Layout re-measures the playfield on every call. Entities are not moved
// when the size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := canvasSize(outsideWidth, outsideHeight)
	if w <= 0 || h <= 0 {
		return int(g.world.Width), int(g.world.Height)
	}
	g.world.Resize(float64(w), float64(h))
	return w, h
}

// canvasSize applies the playfield caps to an outside window size.
func canvasSize(outsideWidth, outsideHeight int) (int, int) {
	w := min(outsideWidth, maxCanvasW)
	h := min(int(float64(outsideHeight)*canvasHeightFrac), maxCanvasH)
	return w, h
}
