package game

import (
	"math"
	"math/rand"
	"testing"
)

// maxJitterStep is the largest displacement the noise alone can add per axis.
const maxJitterStep = flockJitter / 2 * flockPull

func newFlockWorld(t *testing.T, seed int64) *World {
	t.Helper()
	p := DefaultParams()
	p.ObstacleCount = 0
	return NewWorld(defaultCanvasW, defaultCanvasH, p, rand.New(rand.NewSource(seed)), nil)
}

func TestFlockSlot_StaggersByIndex(t *testing.T) {
	prevY := -1.0
	for i := 0; i < 5; i++ {
		dx, dy := flockSlot(i)
		if dx != 0 {
			t.Fatalf("slot %d: lateral offset should be 0, got %.1f", i, dx)
		}
		if dy <= prevY {
			t.Fatalf("slot %d: vertical offset %.1f should exceed previous %.1f", i, dy, prevY)
		}
		prevY = dy
	}
	if _, dy := flockSlot(0); dy != flockLead {
		t.Fatalf("first slot should sit %.0f below the dog, got %.1f", flockLead, dy)
	}
}

func TestSlotWorld_OffsetsFromDog(t *testing.T) {
	x, y := SlotWorld(200, 300, 2)
	if x != 200 || y != 300+flockLead+2*flockStagger {
		t.Fatalf("expected (200,%.0f), got (%.1f,%.1f)", 300+flockLead+2*flockStagger, x, y)
	}
}

func TestSteerFlock_ClosesSevenPercentOfGap(t *testing.T) {
	w := newFlockWorld(t, 3)
	w.Dog.X, w.Dog.Y = 400, 300
	for i := range w.Flock {
		w.Flock[i].X, w.Flock[i].Y = 0, 0
	}
	w.steerFlock()

	for i, s := range w.Flock {
		tx, ty := SlotWorld(400, 300, i)
		wantX, wantY := tx*flockPull, ty*flockPull
		if math.Abs(s.X-wantX) > maxJitterStep+1e-9 || math.Abs(s.Y-wantY) > maxJitterStep+1e-9 {
			t.Fatalf("sheep %d moved to (%.3f,%.3f), want within %.2f of (%.3f,%.3f)",
				i, s.X, s.Y, maxJitterStep, wantX, wantY)
		}
	}
}

func TestSteerFlock_NoPersistentVelocity(t *testing.T) {
	// Sheep already at its slot: each tick it only wanders by the jitter,
	// it never accumulates speed.
	w := newFlockWorld(t, 11)
	w.Dog.X, w.Dog.Y = 240, 200
	for i := range w.Flock {
		w.Flock[i].X, w.Flock[i].Y = SlotWorld(240, 200, i)
	}
	for tick := 0; tick < 200; tick++ {
		before := append([]Sheep(nil), w.Flock...)
		w.steerFlock()
		for i := range w.Flock {
			tx, ty := SlotWorld(240, 200, i)
			stepX := w.Flock[i].X - before[i].X
			stepY := w.Flock[i].Y - before[i].Y
			// The deterministic part of the step is the 7% pull toward the slot.
			pullX := (tx - before[i].X) * flockPull
			pullY := (ty - before[i].Y) * flockPull
			if math.Abs(stepX-pullX) > maxJitterStep+1e-9 || math.Abs(stepY-pullY) > maxJitterStep+1e-9 {
				t.Fatalf("tick %d sheep %d: step (%.3f,%.3f) departs from pull (%.3f,%.3f) by more than jitter",
					tick, i, stepX, stepY, pullX, pullY)
			}
		}
	}
	// Jitter is zero-mean, so the flock stays near its slots.
	for i, s := range w.Flock {
		tx, ty := SlotWorld(240, 200, i)
		if math.Hypot(s.X-tx, s.Y-ty) > flockJitter {
			t.Fatalf("sheep %d drifted %.2f from its slot", i, math.Hypot(s.X-tx, s.Y-ty))
		}
	}
}

func TestSteerFlock_ExponentialApproach(t *testing.T) {
	w := newFlockWorld(t, 5)
	w.Dog.X, w.Dog.Y = 100, 100
	w.Flock = w.Flock[:1]
	w.Flock[0].X, w.Flock[0].Y = 400, 600
	gap := math.Hypot(400-100, 600-(100+flockLead))
	for tick := 0; tick < 10; tick++ {
		w.steerFlock()
	}
	tx, ty := SlotWorld(100, 100, 0)
	left := math.Hypot(w.Flock[0].X-tx, w.Flock[0].Y-ty)
	want := gap * math.Pow(1-flockPull, 10)
	// Ten ticks of jitter can shift the result by at most 10 jitter steps per axis.
	if math.Abs(left-want) > 10*maxJitterStep*math.Sqrt2 {
		t.Fatalf("after 10 ticks remaining gap %.2f, want ≈%.2f (exponential approach)", left, want)
	}
}

func TestSteerFlock_SkipsLostAndInjured(t *testing.T) {
	w := newFlockWorld(t, 7)
	w.Dog.X, w.Dog.Y = 300, 300
	w.Flock[1].Lost = true
	w.Flock[3].Injured = true
	lostX, lostY := w.Flock[1].X, w.Flock[1].Y
	hurtX, hurtY := w.Flock[3].X, w.Flock[3].Y

	for tick := 0; tick < 20; tick++ {
		w.steerFlock()
	}
	if w.Flock[1].X != lostX || w.Flock[1].Y != lostY {
		t.Fatal("lost sheep must not move")
	}
	if w.Flock[3].X != hurtX || w.Flock[3].Y != hurtY {
		t.Fatal("injured sheep must not move")
	}
}
