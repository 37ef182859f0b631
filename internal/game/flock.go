package game

// Flock steering constants.
const (
	flockLead    = 40.0 // how far below the dog the first sheep aims
	flockStagger = 5.0  // extra trailing distance per flock index
	flockPull    = 0.07 // fraction of the remaining gap closed per tick
	flockJitter  = 6.0  // width of the uniform per-axis noise band
)

// flockSlot returns the follow target offset (dx, dy) from the dog for the
// sheep at index i. Later sheep trail slightly further behind.
func flockSlot(i int) (float64, float64) {
	return 0, flockLead + float64(i)*flockStagger
}

// SlotWorld converts the flock slot of sheep i into canvas coordinates for a
// dog at (dogX, dogY).
func SlotWorld(dogX, dogY float64, i int) (float64, float64) {
	dx, dy := flockSlot(i)
	return dogX + dx, dogY + dy
}

// steerFlock pulls every active sheep a fixed fraction of the way toward
// its jittered slot. Noise is redrawn every tick for each axis and nothing
// carries over between ticks: there is no velocity.
func (w *World) steerFlock() {
	for i := range w.Flock {
		s := &w.Flock[i]
		if !s.Active() {
			continue
		}
		tx, ty := SlotWorld(w.Dog.X, w.Dog.Y, i)
		dx := tx - s.X + (w.rng.Float64()-0.5)*flockJitter
		dy := ty - s.Y + (w.rng.Float64()-0.5)*flockJitter
		s.X += dx * flockPull
		s.Y += dy * flockPull
	}
}
