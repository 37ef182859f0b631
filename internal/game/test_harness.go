package game

import (
	"math"
	"math/rand"

	"go.uber.org/zap"
)

// Policy decides the dog's intent for the next tick of a headless run.
type Policy func(w *World) Intent

// DivePolicy drives straight down the slope.
func DivePolicy(*World) Intent {
	return Intent{Down: true}
}

// IdlePolicy never moves the dog.
func IdlePolicy(*World) Intent {
	return Intent{}
}

// SeekPolicy drives down while lining the dog up with the nearest live
// obstacle ahead, clearing it for points before the flock reaches it.
func SeekPolicy(w *World) Intent {
	in := Intent{Down: true}
	best := -1
	bestDY := math.Inf(1)
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		if o.Inert {
			continue
		}
		dy := o.Y - w.Dog.Y
		if dy < -o.H || dy > 2*obstacleSpacing || dy >= bestDY {
			continue
		}
		best, bestDY = i, dy
	}
	if best < 0 {
		return in
	}
	cx := w.Obstacles[best].X + w.Obstacles[best].W/2
	switch {
	case cx < w.Dog.X-w.Dog.Speed:
		in.Left = true
	case cx > w.Dog.X+w.Dog.Speed:
		in.Right = true
	}
	return in
}

// TestSim is a headless harness around World used by tests and the
// headless report. It steps the world with a Policy instead of input.
type TestSim struct {
	World   *World
	Log     *EventLog
	Results []RoundResult

	width     float64
	height    float64
	params    Params
	seed      int64
	verbose   bool
	logger    *zap.Logger
	policy    Policy
	obstacles []Obstacle
	placed    bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra     simOptionKind = iota // canvas, params, seed, logging; applied before the world exists
	simOptPlacement                      // entity placement; applied after the first reset
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithCanvas sets the playfield dimensions.
func WithCanvas(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.width = w
		ts.height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithParams replaces the simulation parameters wholesale.
func WithParams(p Params) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.params = p
	}}
}

// WithFlockSize sets the number of sheep per round.
func WithFlockSize(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.params.FlockSize = n
	}}
}

// WithObstacleCount sets how many random obstacles each round gets.
func WithObstacleCount(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.params.ObstacleCount = n
	}}
}

// WithEndDelay sets the end-of-round delay in ticks.
func WithEndDelay(ticks int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.params.EndDelayTicks = ticks
	}}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithLogger routes the world's zap output.
func WithLogger(l *zap.Logger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.logger = l
	}}
}

// WithPolicy sets the dog's driver. Defaults to IdlePolicy.
func WithPolicy(p Policy) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.policy = p
	}}
}

// WithObstacle places an obstacle with its top-left at (x, y). Placed
// obstacles replace the random layout of the first round.
func WithObstacle(x, y float64, kind ObstacleKind) SimOption {
	return SimOption{simOptPlacement, func(ts *TestSim) {
		if !ts.placed {
			ts.World.Obstacles = ts.World.Obstacles[:0]
			ts.placed = true
		}
		ts.World.Obstacles = append(ts.World.Obstacles, Obstacle{X: x, Y: y, W: obstacleW, H: obstacleH, Kind: kind})
	}}
}

// WithObstacleUnderSheep centres an obstacle on sheep i's starting spot.
func WithObstacleUnderSheep(i int, kind ObstacleKind) SimOption {
	return SimOption{simOptPlacement, func(ts *TestSim) {
		s := ts.World.Flock[i]
		WithObstacle(s.X-obstacleW/2, s.Y-obstacleH/2, kind).fn(ts)
	}}
}

// WithDogAt moves the dog after the first reset.
func WithDogAt(x, y float64) SimOption {
	return SimOption{simOptPlacement, func(ts *TestSim) {
		ts.World.Dog.X = x
		ts.World.Dog.Y = y
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered passes:
//  1. Infrastructure (canvas, params, seed, logging, policy)
//  2. Placement (obstacles, dog position) on the first round's world
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		width:  defaultCanvasW,
		height: defaultCanvasH,
		params: DefaultParams(),
		seed:   1,
		policy: IdlePolicy,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Log = NewEventLog(ts.verbose)
	rng := rand.New(rand.NewSource(ts.seed)) // #nosec G404 -- test harness
	ts.World = newWorld(ts.width, ts.height, ts.params, rng, ts.logger, ts.Log)
	for _, o := range opts {
		if o.kind == simOptPlacement {
			o.fn(ts)
		}
	}
	return ts
}

// StepOnce applies the policy (only while playing) and advances one tick.
func (ts *TestSim) StepOnce() {
	if ts.World.Phase == PhasePlaying {
		ts.World.Dog.Intent = ts.policy(ts.World)
	}
	ts.World.Step()
}

// RunTicks advances n ticks without acknowledging a game over.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.StepOnce()
	}
}

// RunUntilEnding steps until the round leaves PhasePlaying or maxTicks
// elapse. It reports whether the round ended.
func (ts *TestSim) RunUntilEnding(maxTicks int) bool {
	for i := 0; i < maxTicks; i++ {
		if ts.World.Phase != PhasePlaying {
			return true
		}
		ts.StepOnce()
	}
	return ts.World.Phase != PhasePlaying
}

// PlayRound plays the current round to completion, waits out the end
// delay, acknowledges the banner and records the result. It returns false
// if the round did not end within maxTicks.
func (ts *TestSim) PlayRound(maxTicks int) (RoundResult, bool) {
	for i := 0; i < maxTicks; i++ {
		if res, ok := ts.World.Acknowledge(); ok {
			ts.Results = append(ts.Results, res)
			return res, true
		}
		ts.StepOnce()
	}
	return RoundResult{}, false
}
