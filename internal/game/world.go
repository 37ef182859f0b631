package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Garsondee/Sheepdog-Run/internal/config"
)

// Entity dimensions and layout, in canvas pixels.
const (
	dogRadius   = 18.0
	dogStartY   = 80.0
	dogMinY     = 60.0 // top of the playfield; the HUD sits above it
	sheepRadius = 12.0
	sheepGap    = 30.0 // lateral spacing of the flock at reset

	obstacleW       = 36.0
	obstacleH       = 18.0
	obstacleSpacing = 200.0
	obstacleFirstY  = 100.0
	obstacleMarginX = 40.0
	inertObstacleY  = -1000.0

	defaultCanvasW = 480.0
	defaultCanvasH = 720.0
)

// Score deltas. Nothing else changes the score mid-round.
const (
	scoreSheepInjured = -10
	scoreSheepLost    = -15
	scoreDogClear     = 5
)

// ObstacleKind selects an obstacle's look and collision penalty.
type ObstacleKind int

const (
	ObstacleRock ObstacleKind = iota
	ObstacleLog
	ObstacleBramble
	obstacleKindCount
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleRock:
		return "rock"
	case ObstacleLog:
		return "log"
	case ObstacleBramble:
		return "bramble"
	default:
		return fmt.Sprintf("ObstacleKind(%d)", int(k))
	}
}

// Intent is the dog's current movement intent, one flag per direction.
type Intent struct {
	Left, Right, Up, Down bool
}

// Dog is the player-controlled herder.
type Dog struct {
	X, Y   float64
	Radius float64
	Speed  float64
	Intent Intent
}

// Sheep is one member of the flock. Once Lost or Injured it is out of the
// round for good.
type Sheep struct {
	X, Y    float64
	Radius  float64
	Lost    bool // hit a rock or log; not drawn
	Injured bool // hit a bramble; drawn tinted, no longer follows
}

// Active reports whether the sheep still follows the dog and counts.
func (s *Sheep) Active() bool {
	return !s.Lost && !s.Injured
}

// Obstacle is a hazard on the slope. X/Y is the top-left corner.
type Obstacle struct {
	X, Y  float64
	W, H  float64
	Kind  ObstacleKind
	Inert bool // cleared by the dog; never collides again
}

// Phase is the round state machine.
type Phase int

const (
	PhasePlaying  Phase = iota
	PhaseEnding         // simulation halted, end delay counting down
	PhaseAwaitAck       // game-over banner up, waiting for the player
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseEnding:
		return "ending"
	case PhaseAwaitAck:
		return "await_ack"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Outcome is why a round ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeReachedRiver
	OutcomeFlockLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReachedRiver:
		return "reached_river"
	case OutcomeFlockLost:
		return "flock_lost"
	default:
		return "none"
	}
}

// Params are the per-round tunables.
type Params struct {
	FlockSize      int
	ObstacleCount  int
	DogSpeed       float64
	RiverDistance  float64 // scroll at which the flock reaches the river
	RiverVisibleAt float64 // scroll at which the river band is drawn
	EndDelayTicks  int
}

// DefaultParams matches config.DefaultConfig at 60 TPS.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultConfig())
}

// ParamsFromConfig extracts the simulation parameters from a config.
func ParamsFromConfig(c *config.Config) Params {
	return Params{
		FlockSize:      c.Sim.FlockSize,
		ObstacleCount:  c.Sim.ObstacleCount,
		DogSpeed:       c.Sim.DogSpeed,
		RiverDistance:  c.Sim.RiverDistance,
		RiverVisibleAt: c.Sim.RiverVisibleAt,
		EndDelayTicks:  c.EndDelayTicks(),
	}
}

// World owns all mutable state of one game. It has no Ebiten dependency,
// so it can be stepped headlessly.
type World struct {
	Width  float64
	Height float64

	Dog       Dog
	Flock     []Sheep
	Obstacles []Obstacle

	Score   int
	Scroll  float64
	Phase   Phase
	Outcome Outcome
	RoundID uuid.UUID
	Tick    int // ticks simulated this round
	Round   int // 1-based round counter

	Log *EventLog

	params      Params
	rng         *rand.Rand
	logger      *zap.Logger
	endingTicks int
	riverShown  bool
}

// NewWorld creates a world on a width x height canvas and resets it for the
// first round. A nil logger is allowed. The world keeps no event log; use
// the headless harness when one is needed.
func NewWorld(width, height float64, p Params, rng *rand.Rand, logger *zap.Logger) *World {
	return newWorld(width, height, p, rng, logger, nil)
}

func newWorld(width, height float64, p Params, rng *rand.Rand, logger *zap.Logger, log *EventLog) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1)) // #nosec G404 -- game only
	}
	w := &World{
		Width:  width,
		Height: height,
		Log:    log,
		params: p,
		rng:    rng,
		logger: logger,
	}
	w.Reset()
	return w
}

// Params returns the world's tunables.
func (w *World) Params() Params {
	return w.params
}

// Reset recreates every entity for a fresh round. Dog and sheep positions
// depend only on the canvas width; obstacle placement draws from the rng.
func (w *World) Reset() {
	w.Score = 0
	w.Scroll = 0
	w.Phase = PhasePlaying
	w.Outcome = OutcomeNone
	w.Tick = 0
	w.endingTicks = 0
	w.riverShown = false
	w.Round++
	w.RoundID = uuid.New()

	w.Dog = Dog{
		X:      w.Width / 2,
		Y:      dogStartY,
		Radius: dogRadius,
		Speed:  w.params.DogSpeed,
	}
	w.initFlock()
	w.initObstacles()

	w.Log.Add(0, "--", "round", "reset", fmt.Sprintf("round %d %s", w.Round, w.RoundID), float64(w.Round))
	w.logger.Info("round started",
		zap.Int("round", w.Round),
		zap.String("round_id", w.RoundID.String()),
		zap.Int("sheep", len(w.Flock)),
		zap.Int("obstacles", len(w.Obstacles)))
}

func (w *World) initFlock() {
	w.Flock = make([]Sheep, w.params.FlockSize)
	mid := float64(w.params.FlockSize-1) / 2
	for i := range w.Flock {
		w.Flock[i] = Sheep{
			X:      w.Width/2 + (float64(i)-mid)*sheepGap,
			Y:      w.Dog.Y + flockLead,
			Radius: sheepRadius,
		}
	}
}

func (w *World) initObstacles() {
	w.Obstacles = make([]Obstacle, 0, w.params.ObstacleCount)
	for i := 1; i <= w.params.ObstacleCount; i++ {
		kind := ObstacleKind(w.rng.Intn(int(obstacleKindCount)))
		x := obstacleMarginX + w.rng.Float64()*(w.Width-2*obstacleMarginX)
		y := float64(i)*obstacleSpacing + obstacleFirstY
		w.Obstacles = append(w.Obstacles, Obstacle{X: x, Y: y, W: obstacleW, H: obstacleH, Kind: kind})
	}
}

// Resize changes the canvas bounds. Entities keep their absolute
// coordinates, so some may end up outside the new bounds until they move.
func (w *World) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	w.Width = width
	w.Height = height
}

// ActiveSheep counts sheep that are neither lost nor injured.
func (w *World) ActiveSheep() int {
	n := 0
	for i := range w.Flock {
		if w.Flock[i].Active() {
			n++
		}
	}
	return n
}

// RiverVisible reports whether the river band should be drawn.
func (w *World) RiverVisible() bool {
	return w.Scroll > w.params.RiverVisibleAt
}
