package game

import (
	"math/rand"
	"testing"
)

func TestEventLog_NilRecordsNothing(t *testing.T) {
	var el *EventLog
	el.Add(1, "dog", "collision", "dog_cleared", "rock", 5)
	el.AddVerbose(1, "dog", "move", "position", "(0,0)", 0)
	if el.Len() != 0 || el.Since(0) != nil || el.CountCategory("", "") != 0 {
		t.Fatal("a nil log must stay empty")
	}
	if el.HasEntry("collision", "", "") {
		t.Fatal("a nil log has no entries to match")
	}
}

func TestNewWorld_KeepsNoEventLog(t *testing.T) {
	rng := rand.New(rand.NewSource(5)) // #nosec G404 -- test
	w := NewWorld(480, 720, DefaultParams(), rng, nil)
	if w.Log != nil {
		t.Fatal("the windowed world should not accumulate events")
	}

	// Collisions and round changes must still work without a log.
	w.Obstacles = []Obstacle{{X: w.Dog.X - obstacleW/2, Y: w.Dog.Y - obstacleH/2, W: obstacleW, H: obstacleH, Kind: ObstacleRock}}
	w.Step()
	if w.Score != scoreDogClear || !w.Obstacles[0].Inert {
		t.Fatalf("dog should clear the rock without a log: score=%d inert=%v", w.Score, w.Obstacles[0].Inert)
	}
}

func TestEventLog_CountAndMatch(t *testing.T) {
	el := NewEventLog(false)
	el.Add(1, "S0", "collision", "sheep_lost", "log at (10,20)", -15)
	el.Add(2, "dog", "collision", "dog_cleared", "rock #3 at (50,60)", 5)
	el.AddVerbose(2, "dog", "move", "position", "(1,1)", 0)

	if el.Len() != 2 {
		t.Fatalf("verbose entry recorded on a quiet log: %d entries", el.Len())
	}
	if n := el.CountCategory("collision", ""); n != 2 {
		t.Fatalf("expected 2 collisions, got %d", n)
	}
	if !el.HasEntry("collision", "dog_cleared", "rock") || el.HasEntry("collision", "sheep_lost", "rock") {
		t.Fatalf("HasEntry matched the wrong entry\n%s", el.Format())
	}
	if got := el.Since(1); len(got) != 1 || got[0].Key != "dog_cleared" {
		t.Fatalf("Since(1) = %+v", got)
	}
}
