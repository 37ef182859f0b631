package assets

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestSet_NothingReadyBeforeLoad(t *testing.T) {
	s := NewSet(t.TempDir(), nil)
	for _, n := range All {
		assert.False(t, s.Ready(n), "sprite %s", n)
	}
	assert.NoError(t, s.Wait())
}

func TestSet_LoadsPresentSpritesAndSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, Path(dir, Dog), 64, 64)
	writePNG(t, Path(dir, Rock), 48, 32)

	s := NewSet(dir, nil)
	s.Load(context.Background())
	require.NoError(t, s.Wait(), "missing sprites are not errors")

	assert.True(t, s.Ready(Dog))
	assert.True(t, s.Ready(Rock))
	assert.False(t, s.Ready(Sheep))
	assert.False(t, s.Ready(Log))
	assert.False(t, s.Ready(Bramble))

	img, ok := s.Image(Rock)
	require.True(t, ok)
	assert.Equal(t, 48, img.Bounds().Dx())
}

func TestSet_CorruptSpriteStaysUnready(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sheep.png"), []byte("not a png"), 0o644))

	s := NewSet(dir, nil)
	s.Load(context.Background())
	require.NoError(t, s.Wait())

	assert.False(t, s.Ready(Sheep))
}

func TestSet_CancelledContextLoadsNothing(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, Path(dir, Dog), 8, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSet(dir, nil)
	s.Load(ctx)
	require.NoError(t, s.Wait())
	assert.False(t, s.Ready(Dog))
}

func TestSet_UnknownName(t *testing.T) {
	s := NewSet(t.TempDir(), nil)
	_, ok := s.Image(Name("cat"))
	assert.False(t, ok)
}
