package game

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// CircleRect reports whether a circle centred at (cx, cy) with radius r
// touches the axis-aligned rectangle with top-left (rx, ry) and size rw x rh.
// A circle exactly r away from a corner counts as touching.
func CircleRect(cx, cy, r, rx, ry, rw, rh float64) bool {
	halfW, halfH := rw/2, rh/2
	distX := math.Abs(cx - rx - halfW)
	distY := math.Abs(cy - ry - halfH)

	if distX > halfW+r || distY > halfH+r {
		return false
	}
	if distX <= halfW || distY <= halfH {
		return true
	}
	dx := distX - halfW
	dy := distY - halfH
	return dx*dx+dy*dy <= r*r
}

func (o *Obstacle) touches(x, y, r float64) bool {
	return !o.Inert && CircleRect(x, y, r, o.X, o.Y, o.W, o.H)
}

// resolveCollisions applies obstacle hits in obstacle order: every active
// sheep is tested against an obstacle before the dog is. Each touch is
// scored independently.
func (w *World) resolveCollisions() {
	for oi := range w.Obstacles {
		o := &w.Obstacles[oi]
		for si := range w.Flock {
			s := &w.Flock[si]
			if !s.Active() || !o.touches(s.X, s.Y, s.Radius) {
				continue
			}
			w.hitSheep(si, s, o)
		}
		if o.touches(w.Dog.X, w.Dog.Y, w.Dog.Radius) {
			w.clearObstacle(oi, o)
		}
	}
}

func (w *World) hitSheep(si int, s *Sheep, o *Obstacle) {
	key := "sheep_lost"
	delta := scoreSheepLost
	if o.Kind == ObstacleBramble {
		key = "sheep_injured"
		delta = scoreSheepInjured
		s.Injured = true
	} else {
		s.Lost = true
	}
	w.Score += delta
	w.Log.Add(w.Tick, sheepLabel(si), "collision", key,
		fmt.Sprintf("%s at (%.0f,%.0f)", o.Kind, o.X, o.Y), float64(delta))
	w.logger.Debug("sheep hit obstacle",
		zap.String("event", key),
		zap.Int("sheep", si),
		zap.Stringer("obstacle", o.Kind),
		zap.Int("score", w.Score))
}

func (w *World) clearObstacle(oi int, o *Obstacle) {
	w.Log.Add(w.Tick, "dog", "collision", "dog_cleared",
		fmt.Sprintf("%s #%d at (%.0f,%.0f)", o.Kind, oi, o.X, o.Y), float64(scoreDogClear))
	o.Y = inertObstacleY
	o.Inert = true
	w.Score += scoreDogClear
	w.logger.Debug("dog cleared obstacle",
		zap.Int("obstacle", oi),
		zap.Stringer("kind", o.Kind),
		zap.Int("score", w.Score))
}

func sheepLabel(i int) string {
	return fmt.Sprintf("S%d", i)
}
