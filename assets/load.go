package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/prefabs"
)

var ErrAtlasTooSmall = errors.New("atlas image too small")

// Options controls how the atlas is resolved.
type Options struct {
	// Path, when set, names a PNG laid out like the generated atlas. It
	// replaces the generated pixels; frame positions stay the same.
	Path  string
	Kinds map[ecs.Kind]prefabs.KindSpec
	// Timeout bounds reading Path. Zero waits for ctx only.
	Timeout time.Duration
}

// Load resolves the atlas before the first tick. It fails when the override
// cannot be read or decoded in time or is smaller than the layout.
func Load(ctx context.Context, opts Options) (*Atlas, error) {
	if opts.Path == "" {
		return Build(opts.Kinds), nil
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := decodeFile(opts.Path)
		done <- result{img, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("assets: load %s: %w", opts.Path, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("assets: load %s: %w", opts.Path, r.err)
		}
		need := MinSize()
		if b := r.img.Bounds(); b.Dx() < need.X || b.Dy() < need.Y {
			return nil, fmt.Errorf("assets: %s is %dx%d, need %dx%d: %w",
				opts.Path, b.Dx(), b.Dy(), need.X, need.Y, ErrAtlasTooSmall)
		}
		return layout(r.img, opts.Kinds), nil
	}
}

func decodeFile(path string) (image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}

// WritePNG encodes the atlas image, e.g. as a starting point for an
// override.
func (a *Atlas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, a.Image); err != nil {
		return fmt.Errorf("assets: encode atlas: %w", err)
	}
	return nil
}
