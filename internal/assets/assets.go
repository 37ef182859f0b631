// Package assets loads the game's sprite images in the background.
//
// Readiness is polled, never signalled: a sprite that is missing, corrupt or
// still decoding just reports not ready and the renderer draws its vector
// fallback instead.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // sprites are PNG
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Name identifies one sprite.
type Name string

const (
	Dog     Name = "dog"
	Sheep   Name = "sheep"
	Rock    Name = "rock"
	Log     Name = "log"
	Bramble Name = "bramble"
)

// All lists every sprite the game draws.
var All = []Name{Dog, Sheep, Rock, Log, Bramble}

// Path returns the file a sprite is read from.
func Path(dir string, n Name) string {
	return filepath.Join(dir, string(n)+".png")
}

// Set holds the decoded sprites. Safe for concurrent use: loaders publish
// through atomics while the draw loop polls.
type Set struct {
	dir    string
	logger *zap.Logger
	slots  map[Name]*atomic.Pointer[image.Image]
	group  *errgroup.Group
}

// NewSet creates an empty set reading from dir. A nil logger is allowed.
func NewSet(dir string, logger *zap.Logger) *Set {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Set{
		dir:    dir,
		logger: logger,
		slots:  make(map[Name]*atomic.Pointer[image.Image], len(All)),
	}
	for _, n := range All {
		s.slots[n] = new(atomic.Pointer[image.Image])
	}
	return s
}

// Load starts one background decode per sprite and returns immediately.
// Calling it more than once is a no-op.
func (s *Set) Load(ctx context.Context) {
	if s.group != nil {
		return
	}
	g, ctx := errgroup.WithContext(ctx)
	s.group = g
	for _, n := range All {
		g.Go(func() error {
			img, err := decodeFile(ctx, Path(s.dir, n))
			if err != nil {
				s.logger.Warn("sprite unavailable, using fallback shape",
					zap.String("sprite", string(n)), zap.Error(err))
				return nil
			}
			s.slots[n].Store(&img)
			s.logger.Debug("sprite loaded", zap.String("sprite", string(n)),
				zap.Int("w", img.Bounds().Dx()), zap.Int("h", img.Bounds().Dy()))
			return nil
		})
	}
}

// Wait blocks until every load attempt has finished.
func (s *Set) Wait() error {
	if s.group == nil {
		return nil
	}
	return s.group.Wait()
}

// Ready reports whether the sprite has been decoded.
func (s *Set) Ready(n Name) bool {
	_, ok := s.Image(n)
	return ok
}

// Image returns the decoded sprite, if ready.
func (s *Set) Image(n Name) (image.Image, bool) {
	slot, ok := s.slots[n]
	if !ok {
		return nil, false
	}
	p := slot.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

func decodeFile(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decode %s: empty image", path)
	}
	return img, nil
}
