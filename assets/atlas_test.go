package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockKinds(t *testing.T) map[ecs.Kind]prefabs.KindSpec {
	t.Helper()
	spec, err := prefabs.LoadTuning(prefabs.Loader{Dir: t.TempDir()}, prefabs.TuningFile)
	require.NoError(t, err)
	return spec.KindSpecs()
}

func TestBuildFrames(t *testing.T) {
	a := Build(stockKinds(t))

	for _, k := range ecs.Kinds {
		f, ok := a.Kind(k)
		require.True(t, ok, k.String())
		assert.Equal(t, int(k)*prefabs.FrameSize, f.Rect.Min.X)
		assert.Equal(t, prefabs.FrameSize, f.Width())
		assert.Equal(t, prefabs.FrameSize, f.Height())
		assert.True(t, f.Rect.In(a.Image.Bounds()))
	}

	gem, _ := a.Kind(ecs.KindGem)
	assert.Equal(t, '$', gem.Rune)
}

func TestBuildPaintsPixelArt(t *testing.T) {
	a := Build(stockKinds(t))
	img := a.Image.(*image.RGBA)

	bullet, _ := a.Kind(ecs.KindBullet)
	// Row 0 of the bullet is blank, row 2 has two lit pixels in the middle.
	assert.Zero(t, img.RGBAAt(bullet.Rect.Min.X, bullet.Rect.Min.Y).A)
	assert.Equal(t, uint8(255), img.RGBAAt(bullet.Rect.Min.X+3, bullet.Rect.Min.Y+2).A)
}

func TestBuildWithoutArtFillsBlocks(t *testing.T) {
	a := Build(nil)
	img := a.Image.(*image.RGBA)

	for _, k := range ecs.Kinds {
		f, _ := a.Kind(k)
		assert.Equal(t, uint8(255), img.RGBAAt(f.Rect.Min.X, f.Rect.Min.Y).A, k.String())
	}
}

func TestGlyphs(t *testing.T) {
	a := Build(nil)
	img := a.Image.(*image.RGBA)

	for _, r := range GlyphSet {
		f, ok := a.Glyph(r)
		require.True(t, ok, string(r))
		assert.Equal(t, GlyphWidth, f.Width())
		assert.Equal(t, GlyphHeight, f.Height())

		lit := 0
		for y := f.Rect.Min.Y; y < f.Rect.Max.Y; y++ {
			for x := f.Rect.Min.X; x < f.Rect.Max.X; x++ {
				if img.RGBAAt(x, y).A > 0 {
					lit++
				}
			}
		}
		assert.Positive(t, lit, "glyph %q is blank", r)
	}

	lower, ok := a.Glyph('q')
	require.True(t, ok)
	upper, _ := a.Glyph('Q')
	assert.Equal(t, upper, lower)

	_, ok = a.Glyph(' ')
	assert.False(t, ok)
	_, ok = a.Glyph('!')
	assert.False(t, ok)
}

func TestLoadGenerated(t *testing.T) {
	a, err := Load(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 256, a.Width())
	assert.Equal(t, 24, a.Height())
}

func TestLoadOverrideRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Build(stockKinds(t)).WritePNG(&buf))
	path := filepath.Join(t.TempDir(), "atlas.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	a, err := Load(context.Background(), Options{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 256, a.Width())
	f, ok := a.Kind(ecs.KindSpider)
	require.True(t, ok)
	assert.Equal(t, 'x', f.Rune)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 16, 16))))
	require.NoError(t, os.WriteFile(small, buf.Bytes(), 0o644))

	_, err := Load(context.Background(), Options{Path: small})
	assert.True(t, errors.Is(err, ErrAtlasTooSmall), "%v", err)

	_, err = Load(context.Background(), Options{Path: filepath.Join(dir, "missing.png")})
	assert.True(t, errors.Is(err, os.ErrNotExist), "%v", err)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not a png"), 0o644))
	_, err = Load(context.Background(), Options{Path: garbage})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Load(ctx, Options{Path: small})
	if err != nil {
		assert.Contains(t, err.Error(), "assets: ")
	}
}

func TestMinSizeFitsLayout(t *testing.T) {
	need := MinSize()
	assert.LessOrEqual(t, need.X, atlasWidth)
	assert.LessOrEqual(t, need.Y, atlasHeight)
	assert.GreaterOrEqual(t, need.X, (int(ecs.KindGem)+1)*prefabs.FrameSize)
}
