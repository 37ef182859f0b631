package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Direction is one of the four movement intents.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// Set turns one direction flag on or off.
func (in *Intent) Set(d Direction, on bool) {
	switch d {
	case DirLeft:
		in.Left = on
	case DirRight:
		in.Right = on
	case DirUp:
		in.Up = on
	case DirDown:
		in.Down = on
	}
}

// Clear drops every intent.
func (in *Intent) Clear() {
	*in = Intent{}
}

// Any reports whether any direction is held.
func (in Intent) Any() bool {
	return in.Left || in.Right || in.Up || in.Down
}

// TouchIntent maps a touch point onto a 3x3 grid over a w x h surface: the
// outer columns steer horizontally, the outer rows vertically, the middle
// band of each axis does nothing on that axis. Points outside the surface
// fall into the nearest outer zone.
func TouchIntent(x, y, w, h float64) Intent {
	return Intent{
		Left:  x < w/3,
		Right: x > w*2/3,
		Up:    y < h/3,
		Down:  y > h*2/3,
	}
}

// arrowKeys binds each direction to its arrow key.
var arrowKeys = [...]struct {
	key ebiten.Key
	dir Direction
}{
	{ebiten.KeyArrowLeft, DirLeft},
	{ebiten.KeyArrowRight, DirRight},
	{ebiten.KeyArrowUp, DirUp},
	{ebiten.KeyArrowDown, DirDown},
}

// pointer is where the current touch or mouse drag sits, if any.
type pointer struct {
	x, y   int
	active bool
}

// Controls turns raw Ebiten input into dog intents. Arrow keys are read as
// held state every tick, so a key kept down across a round reset keeps
// steering. A touch (or a held left mouse button) replaces all four flags
// from its zone every tick, and lifting it clears them.
type Controls struct {
	touching bool
	touchIDs []ebiten.TouchID
}

// Poll updates intent from this tick's input on a w x h surface.
func (c *Controls) Poll(intent *Intent, w, h float64) {
	p := c.pointer()
	c.applyPointer(intent, p, w, h)
	if !p.active {
		c.applyKeys(intent, heldArrows())
	}
}

// heldArrows reports which arrow keys are down, indexed by Direction.
func heldArrows() [4]bool {
	var held [4]bool
	for _, k := range arrowKeys {
		held[k.dir] = ebiten.IsKeyPressed(k.key)
	}
	return held
}

// applyKeys is the keyboard half of Poll. Each flag follows its key.
func (c *Controls) applyKeys(intent *Intent, held [4]bool) {
	for d, on := range held {
		intent.Set(Direction(d), on)
	}
}

// applyPointer is the touch half of Poll, split out so it can be driven
// without a live window.
func (c *Controls) applyPointer(intent *Intent, p pointer, w, h float64) {
	switch {
	case p.active:
		*intent = TouchIntent(float64(p.x), float64(p.y), w, h)
		c.touching = true
	case c.touching:
		intent.Clear()
		c.touching = false
	}
}

func (c *Controls) pointer() pointer {
	c.touchIDs = ebiten.AppendTouchIDs(c.touchIDs[:0])
	if len(c.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(c.touchIDs[0])
		return pointer{x: x, y: y, active: true}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return pointer{x: x, y: y, active: true}
	}
	return pointer{}
}

// Acknowledged reports a fresh Enter, Space, click or tap.
func (c *Controls) Acknowledged() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}

// CopyRequested reports a fresh press of C.
func (c *Controls) CopyRequested() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyC)
}

// Release drops any held pointer so a click that dismissed the banner
// does not steer the next round.
func (c *Controls) Release(intent *Intent) {
	c.touching = false
	intent.Clear()
}
