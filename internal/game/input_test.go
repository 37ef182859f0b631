package game

import "testing"

func TestTouchIntent_ZoneGrid(t *testing.T) {
	const w, h = 480.0, 720.0
	cases := []struct {
		name string
		x, y float64
		want Intent
	}{
		{"top-left", 10, 10, Intent{Left: true, Up: true}},
		{"top-middle", 240, 10, Intent{Up: true}},
		{"top-right", 470, 10, Intent{Right: true, Up: true}},
		{"centre", 240, 360, Intent{}},
		{"middle-left", 10, 360, Intent{Left: true}},
		{"bottom-right", 470, 710, Intent{Right: true, Down: true}},
		{"bottom-middle", 240, 710, Intent{Down: true}},
		// Exactly on a third line belongs to the middle band.
		{"left third line", w / 3, 360, Intent{}},
		{"right third line", w * 2 / 3, 360, Intent{}},
		{"top third line", 240, h / 3, Intent{}},
		{"bottom third line", 240, h * 2 / 3, Intent{}},
		// Out-of-range points are absorbed, not rejected.
		{"far off left", -500, 360, Intent{Left: true}},
		{"far below", 240, 5000, Intent{Down: true}},
	}
	for _, c := range cases {
		if got := TouchIntent(c.x, c.y, w, h); got != c.want {
			t.Fatalf("%s: TouchIntent(%.0f,%.0f) = %+v, want %+v", c.name, c.x, c.y, got, c.want)
		}
	}
}

func TestIntent_SetAndClear(t *testing.T) {
	var in Intent
	in.Set(DirLeft, true)
	in.Set(DirDown, true)
	if in != (Intent{Left: true, Down: true}) {
		t.Fatalf("unexpected intent %+v", in)
	}
	in.Set(DirLeft, false)
	if in != (Intent{Down: true}) {
		t.Fatalf("release should clear only that direction, got %+v", in)
	}
	if !in.Any() {
		t.Fatal("Any should report the held direction")
	}
	in.Clear()
	if in.Any() {
		t.Fatalf("Clear should drop everything, got %+v", in)
	}
}

func TestControls_TouchEndClearsIntent(t *testing.T) {
	var c Controls
	var in Intent

	c.applyPointer(&in, pointer{x: 10, y: 700, active: true}, 480, 720)
	if in != (Intent{Left: true, Down: true}) {
		t.Fatalf("touch in bottom-left should steer left+down, got %+v", in)
	}

	// Dragging to the centre drops both axes.
	c.applyPointer(&in, pointer{x: 240, y: 360, active: true}, 480, 720)
	if in.Any() {
		t.Fatalf("centre touch should hold nothing, got %+v", in)
	}

	c.applyPointer(&in, pointer{x: 470, y: 10, active: true}, 480, 720)
	c.applyPointer(&in, pointer{}, 480, 720)
	if in.Any() {
		t.Fatalf("touch end should clear all intents, got %+v", in)
	}
}

func TestControls_NoTouchLeavesKeyboardIntent(t *testing.T) {
	var c Controls
	in := Intent{Right: true}
	c.applyPointer(&in, pointer{}, 480, 720)
	if in != (Intent{Right: true}) {
		t.Fatalf("without any touch the keyboard intent must survive, got %+v", in)
	}
}

func TestControls_KeysFollowHeldState(t *testing.T) {
	var c Controls
	var in Intent
	var held [4]bool

	held[DirDown] = true
	held[DirLeft] = true
	c.applyKeys(&in, held)
	if in != (Intent{Left: true, Down: true}) {
		t.Fatalf("held keys should set their flags, got %+v", in)
	}

	held[DirLeft] = false
	c.applyKeys(&in, held)
	if in != (Intent{Down: true}) {
		t.Fatalf("releasing a key should drop only its flag, got %+v", in)
	}
}

func TestControls_KeyHeldThroughAckSteersNewRound(t *testing.T) {
	ts := NewTestSim(WithEndDelay(0), WithObstacleCount(0))
	var c Controls
	var held [4]bool
	held[DirDown] = true

	c.applyKeys(&ts.World.Dog.Intent, held)
	for i := range ts.World.Flock {
		ts.World.Flock[i].Lost = true
	}
	ts.World.Step()
	if ts.World.Phase != PhaseAwaitAck {
		t.Fatalf("expected await_ack, got %s", ts.World.Phase)
	}

	if _, ok := ts.World.Acknowledge(); !ok {
		t.Fatal("acknowledge should start a new round")
	}
	c.Release(&ts.World.Dog.Intent)

	// Down was never released, so the first tick of the new round must move.
	startY := ts.World.Dog.Y
	c.applyKeys(&ts.World.Dog.Intent, held)
	ts.World.Step()
	if got := ts.World.Dog.Y - startY; got != ts.World.Dog.Speed {
		t.Fatalf("dog should move down %.0f on the first tick, moved %.1f", ts.World.Dog.Speed, got)
	}
}

func TestControls_KeyFirstPressedDuringBannerCounts(t *testing.T) {
	var c Controls
	var in Intent
	c.Release(&in)

	var held [4]bool
	held[DirRight] = true
	c.applyKeys(&in, held)
	if in != (Intent{Right: true}) {
		t.Fatalf("a key pressed before play resumed should steer once polled, got %+v", in)
	}
}
