package game

import (
	"fmt"
	"math"
)

// metresPerUnit converts scroll distance into the HUD's "metres".
const metresPerUnit = 10.0

// RiverDistance returns the metres left to the river, rounded half up and
// never negative.
func RiverDistance(scroll, riverAt float64) int {
	m := math.Floor((riverAt-scroll)/metresPerUnit + 0.5)
	return int(max(0, m))
}

// Status is the three-line text readout refreshed every frame.
type Status struct {
	Score string
	Sheep string
	River string
}

// StatusOf builds the readout for the current world.
func StatusOf(w *World) Status {
	return Status{
		Score: fmt.Sprintf("Score: %d", w.Score),
		Sheep: fmt.Sprintf("Sheep: %d", w.ActiveSheep()),
		River: fmt.Sprintf("River: %dm", RiverDistance(w.Scroll, w.params.RiverDistance)),
	}
}

// Lines returns the readout in display order.
func (s Status) Lines() []string {
	return []string{s.Score, s.Sheep, s.River}
}
