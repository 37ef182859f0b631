package game

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoundResult summarises a finished round.
type RoundResult struct {
	ID        uuid.UUID
	Round     int
	Outcome   Outcome
	Score     int
	SheepLeft int
	Scroll    float64
	Ticks     int
}

// String formats the result the way the game-over banner shows it.
func (r RoundResult) String() string {
	return fmt.Sprintf("Game Over! Final Score: %d", r.Score)
}

// checkRoundEnd starts the ending phase once the flock reaches the river
// or no sheep are left.
func (w *World) checkRoundEnd() {
	active := w.ActiveSheep()
	switch {
	case w.Scroll > w.params.RiverDistance:
		w.beginEnding(OutcomeReachedRiver)
	case active == 0:
		w.beginEnding(OutcomeFlockLost)
	}
}

func (w *World) beginEnding(o Outcome) {
	w.Phase = PhaseEnding
	w.Outcome = o
	w.endingTicks = w.params.EndDelayTicks
	w.Log.Add(w.Tick, "--", "round", "ending",
		fmt.Sprintf("%s score=%d sheep=%d", o, w.Score, w.ActiveSheep()), float64(w.Score))
	w.logger.Info("round over",
		zap.String("round_id", w.RoundID.String()),
		zap.Stringer("outcome", o),
		zap.Int("score", w.Score),
		zap.Int("sheep", w.ActiveSheep()),
		zap.Float64("scroll", w.Scroll),
		zap.Int("ticks", w.Tick))
	if w.endingTicks <= 0 {
		w.Phase = PhaseAwaitAck
	}
}

func (w *World) advanceEnding() {
	w.endingTicks--
	if w.endingTicks <= 0 {
		w.Phase = PhaseAwaitAck
	}
}

// Result snapshots the current round.
func (w *World) Result() RoundResult {
	return RoundResult{
		ID:        w.RoundID,
		Round:     w.Round,
		Outcome:   w.Outcome,
		Score:     w.Score,
		SheepLeft: w.ActiveSheep(),
		Scroll:    w.Scroll,
		Ticks:     w.Tick,
	}
}

// Acknowledge dismisses the game-over banner and starts a new round. It
// only acts while the banner is showing.
func (w *World) Acknowledge() (RoundResult, bool) {
	if w.Phase != PhaseAwaitAck {
		return RoundResult{}, false
	}
	res := w.Result()
	w.Log.Add(w.Tick, "--", "round", "ack", res.String(), float64(res.Score))
	w.Reset()
	return res, true
}
