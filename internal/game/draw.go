package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Sheepdog-Run/internal/assets"
)

// Palette.
var (
	skyCol     = color.RGBA{R: 214, G: 232, B: 240, A: 255}
	slopeCol   = color.RGBA{R: 0xa3, G: 0xc9, B: 0xa8, A: 255}
	snowCol    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	riverCol   = color.RGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 255}
	rockCol    = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
	logCol     = color.RGBA{R: 0xa0, G: 0x52, B: 0x2d, A: 255}
	brambleCol = color.RGBA{R: 0x22, G: 0x8b, B: 0x22, A: 255}
	sheepCol   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	injuredCol = color.RGBA{R: 0xff, G: 0x88, B: 0x88, A: 255}
	dogCol     = color.RGBA{R: 0x6b, G: 0x4f, B: 0x1d, A: 255}
	hudBackCol = color.RGBA{R: 20, G: 40, B: 24, A: 150}
	bannerBack = color.RGBA{R: 10, G: 20, B: 12, A: 220}
	bannerEdge = color.RGBA{R: 120, G: 180, B: 120, A: 255}
)

const (
	riverAlpha  = 0.8
	ellipseSegs = 32
	hudLineH    = 16
)

// hudFace is the bitmap face used for all on-screen text.
var hudFace = text.NewGoXFace(basicfont.Face7x13)

// injuredTint reddens an injured sheep's sprite.
var injuredTint = func() *ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.Scale(1, 0.55, 0.55, 1)
	return &cs
}()

// drawWorld renders the whole frame from w. It reads state only.
func drawWorld(dst *ebiten.Image, w *World, sp *Sprites) {
	dst.Fill(skyCol)
	drawBackground(dst, w)
	for i := range w.Obstacles {
		drawObstacle(dst, &w.Obstacles[i], sp)
	}
	for i := range w.Flock {
		if w.Flock[i].Lost {
			continue
		}
		drawSheep(dst, &w.Flock[i], sp)
	}
	drawDog(dst, &w.Dog, sp)
	drawHUD(dst, StatusOf(w))
	if w.Phase == PhaseAwaitAck {
		drawBanner(dst, w)
	}
}

// drawBackground paints the mountain slope, a snow cap and, near the end,
// the river band across the bottom.
func drawBackground(dst *ebiten.Image, w *World) {
	fw, fh := float32(w.Width), float32(w.Height)

	var slope vector.Path
	slope.MoveTo(0, 0)
	slope.LineTo(fw*0.3, fh*0.3)
	slope.LineTo(fw*0.7, fh*0.2)
	slope.LineTo(fw, 0)
	slope.LineTo(fw, fh)
	slope.LineTo(0, fh)
	slope.Close()
	fillPath(dst, &slope, slopeCol, 1)

	var snow vector.Path
	snow.MoveTo(fw*0.25, fh*0.1)
	snow.LineTo(fw*0.3, fh*0.3)
	snow.LineTo(fw*0.35, fh*0.1)
	snow.Close()
	fillPath(dst, &snow, snowCol, 1)

	if !w.RiverVisible() {
		return
	}
	var river vector.Path
	river.MoveTo(0, fh-60)
	river.CubicTo(fw*0.3, fh-40, fw*0.7, fh-80, fw, fh-40)
	river.LineTo(fw, fh)
	river.LineTo(0, fh)
	river.Close()
	fillPath(dst, &river, riverCol, riverAlpha)
}

func drawObstacle(dst *ebiten.Image, o *Obstacle, sp *Sprites) {
	if sp.draw(dst, obstacleSprite[o.Kind], o.X, o.Y, nil) {
		return
	}
	cx := float32(o.X + o.W/2)
	cy := float32(o.Y + o.H/2)
	switch o.Kind {
	case ObstacleRock:
		fillEllipse(dst, cx, cy, 18, 12, 0.3, rockCol)
	case ObstacleLog:
		fillEllipse(dst, cx, cy, 18, 7, 0, logCol)
	case ObstacleBramble:
		const sw = 3
		vector.StrokeLine(dst, cx-14, cy, cx+14, cy, sw, brambleCol, true)
		vector.StrokeLine(dst, cx, cy-7, cx, cy+7, sw, brambleCol, true)
		vector.StrokeLine(dst, cx-10, cy-5, cx+10, cy+5, sw, brambleCol, true)
		vector.StrokeLine(dst, cx-10, cy+5, cx+10, cy-5, sw, brambleCol, true)
	}
}

func drawSheep(dst *ebiten.Image, s *Sheep, sp *Sprites) {
	var tint *ebiten.ColorScale
	if s.Injured {
		tint = injuredTint
	}
	if sp.draw(dst, assets.Sheep, s.X-28, s.Y-28, tint) {
		return
	}
	c := sheepCol
	if s.Injured {
		c = injuredCol
	}
	fillEllipse(dst, float32(s.X), float32(s.Y)+6, 12, 16, 0, c)
}

func drawDog(dst *ebiten.Image, d *Dog, sp *Sprites) {
	if sp.draw(dst, assets.Dog, d.X-32, d.Y-32, nil) {
		return
	}
	fillEllipse(dst, float32(d.X), float32(d.Y)+8, 14, 20, 0, dogCol)
}

// drawHUD renders the score, sheep and river readout in the strip above
// the playfield.
func drawHUD(dst *ebiten.Image, st Status) {
	lines := st.Lines()
	bw := float32(dst.Bounds().Dx())
	vector.FillRect(dst, 0, 0, bw, float32(len(lines)*hudLineH+8), hudBackCol, false)
	for i, l := range lines {
		drawText(dst, l, 8, float64(4+i*hudLineH), color.White)
	}
}

// drawBanner shows the final score until the player acknowledges it.
func drawBanner(dst *ebiten.Image, w *World) {
	lines := []string{
		w.Result().String(),
		"",
		"Enter / tap to play again",
		"C to copy score",
	}
	maxW := 0.0
	for _, l := range lines {
		lw, _ := text.Measure(l, hudFace, hudLineH)
		maxW = max(maxW, lw)
	}
	const pad = 14
	boxW := maxW + 2*pad
	boxH := float64(len(lines)*hudLineH + 2*pad)
	bx := (w.Width - boxW) / 2
	by := (w.Height - boxH) / 2

	vector.FillRect(dst, float32(bx), float32(by), float32(boxW), float32(boxH), bannerBack, false)
	vector.StrokeRect(dst, float32(bx), float32(by), float32(boxW), float32(boxH), 2, bannerEdge, false)
	for i, l := range lines {
		lw, _ := text.Measure(l, hudFace, hudLineH)
		drawText(dst, l, bx+(boxW-lw)/2, by+pad+float64(i*hudLineH), color.White)
	}
}

func drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = hudLineH
	text.Draw(dst, s, hudFace, op)
}

// fillEllipse fills an ellipse with radii (rx, ry) rotated by rot radians
// around (cx, cy).
func fillEllipse(dst *ebiten.Image, cx, cy, rx, ry, rot float32, c color.Color) {
	sinR, cosR := math.Sincos(float64(rot))
	var p vector.Path
	for i := 0; i < ellipseSegs; i++ {
		a := 2 * math.Pi * float64(i) / float64(ellipseSegs)
		ex := float64(rx) * math.Cos(a)
		ey := float64(ry) * math.Sin(a)
		x := cx + float32(ex*cosR-ey*sinR)
		y := cy + float32(ex*sinR+ey*cosR)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	fillPath(dst, &p, c, 1)
}

func fillPath(dst *ebiten.Image, p *vector.Path, c color.Color, alpha float32) {
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	vector.FillPath(dst, p, &vector.FillOptions{}, op)
}
