package game

import "fmt"

// Step advances the world by one tick. While the round is ending only the
// end delay counts down; once the game-over banner is up nothing moves
// until Acknowledge is called.
func (w *World) Step() {
	switch w.Phase {
	case PhaseEnding:
		w.advanceEnding()
		return
	case PhaseAwaitAck:
		return
	}

	w.Tick++
	w.moveDog()
	w.steerFlock()
	w.scroll()
	w.Log.AddVerbose(w.Tick, "dog", "move", "position",
		fmt.Sprintf("(%.1f,%.1f)", w.Dog.X, w.Dog.Y), w.Scroll)
	w.resolveCollisions()
	w.checkRoundEnd()
}

// moveDog applies the dog's intent then clamps it to the playfield. The
// axes are independent, so diagonal movement is faster than straight.
func (w *World) moveDog() {
	d := &w.Dog
	if d.Intent.Left {
		d.X -= d.Speed
	}
	if d.Intent.Right {
		d.X += d.Speed
	}
	if d.Intent.Up {
		d.Y -= d.Speed
	}
	if d.Intent.Down {
		d.Y += d.Speed
	}
	d.X = clamp(d.X, d.Radius, w.Width-d.Radius)
	d.Y = clamp(d.Y, dogMinY, w.Height-d.Radius)
}

// scroll keeps the dog at most half way down the canvas by moving the
// whole field up instead.
func (w *World) scroll() {
	mid := w.Height / 2
	if w.Dog.Y <= mid {
		return
	}
	delta := w.Dog.Y - mid
	w.Scroll += delta
	w.Dog.Y -= delta
	for i := range w.Flock {
		w.Flock[i].Y -= delta
	}
	for i := range w.Obstacles {
		w.Obstacles[i].Y -= delta
	}

	if !w.riverShown && w.RiverVisible() {
		w.riverShown = true
		w.Log.Add(w.Tick, "--", "scroll", "river_visible", fmt.Sprintf("scroll %.0f", w.Scroll), w.Scroll)
	}
}

// clamp bounds v to [lo, hi]. lo wins if the range is inverted.
func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
