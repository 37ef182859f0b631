package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Sheepdog-Run/internal/assets"
)

// spriteSize is the on-screen size each sprite is scaled to.
var spriteSize = map[assets.Name][2]float64{
	assets.Dog:     {64, 64},
	assets.Sheep:   {56, 56},
	assets.Rock:    {48, 32},
	assets.Log:     {56, 24},
	assets.Bramble: {56, 32},
}

// obstacleSprite maps an obstacle kind to its image.
var obstacleSprite = [obstacleKindCount]assets.Name{
	ObstacleRock:    assets.Rock,
	ObstacleLog:     assets.Log,
	ObstacleBramble: assets.Bramble,
}

// Sprites uploads decoded images to the GPU the first time they are drawn.
// Until an image has been decoded, get reports false and the caller draws
// the vector fallback.
type Sprites struct {
	src   *assets.Set
	cache map[assets.Name]*ebiten.Image
}

// NewSprites wraps an asset set. A nil set means "never ready".
func NewSprites(src *assets.Set) *Sprites {
	return &Sprites{src: src, cache: make(map[assets.Name]*ebiten.Image, len(assets.All))}
}

func (sp *Sprites) get(n assets.Name) (*ebiten.Image, bool) {
	if sp == nil || sp.src == nil {
		return nil, false
	}
	if img, ok := sp.cache[n]; ok {
		return img, true
	}
	decoded, ok := sp.src.Image(n)
	if !ok {
		return nil, false
	}
	img := ebiten.NewImageFromImage(decoded)
	sp.cache[n] = img
	return img, true
}

// draw scales sprite n to its target size with its top-left at (x, y).
// It reports false when the sprite is not ready.
func (sp *Sprites) draw(dst *ebiten.Image, n assets.Name, x, y float64, tint *ebiten.ColorScale) bool {
	img, ok := sp.get(n)
	if !ok {
		return false
	}
	size := spriteSize[n]
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size[0]/float64(b.Dx()), size[1]/float64(b.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	if tint != nil {
		op.ColorScale = *tint
	}
	dst.DrawImage(img, op)
	return true
}
