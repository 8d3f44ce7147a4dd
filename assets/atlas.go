package assets

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/prefabs"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Atlas layout: one row of text glyphs on top, then one row of entity
// frames with each kind at column kind*FrameSize.
const (
	GlyphWidth  = 7
	GlyphHeight = 13

	glyphRowY = 0
	kindRowY  = GlyphHeight

	atlasWidth  = 256
	atlasHeight = 24
)

// GlyphSet lists the characters the atlas carries, in column order.
const GlyphSet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Background is the clear color of the play field.
var Background = color.RGBA{R: 26, G: 26, B: 26, A: 255}

// Frame is one sprite in the atlas. Rune and Color stand in for the pixels on
// character displays.
type Frame struct {
	Rect  image.Rectangle
	Rune  rune
	Color color.Color
}

func (f Frame) Width() int  { return f.Rect.Dx() }
func (f Frame) Height() int { return f.Rect.Dy() }

// Atlas is the sprite sheet and its frame table.
type Atlas struct {
	Image  image.Image
	kinds  map[ecs.Kind]Frame
	glyphs map[rune]Frame
}

func (a *Atlas) Width() int  { return a.Image.Bounds().Dx() }
func (a *Atlas) Height() int { return a.Image.Bounds().Dy() }

// Kind returns the frame drawn for entities of kind k.
func (a *Atlas) Kind(k ecs.Kind) (Frame, bool) {
	f, ok := a.kinds[k]
	return f, ok
}

// Glyph returns the frame for r. Lowercase letters map to uppercase.
func (a *Atlas) Glyph(r rune) (Frame, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	f, ok := a.glyphs[r]
	return f, ok
}

// MinSize is the smallest image that can hold the atlas layout.
func MinSize() image.Point {
	return image.Pt(len(GlyphSet)*GlyphWidth, kindRowY+prefabs.FrameSize)
}

var fallbackColors = map[ecs.Kind]color.Color{
	ecs.KindPlayer: colornames.White,
	ecs.KindBullet: colornames.Gold,
	ecs.KindSnake:  colornames.Limegreen,
	ecs.KindSpider: colornames.Mediumpurple,
	ecs.KindGem:    colornames.Cyan,
}

var fallbackRunes = map[ecs.Kind]rune{
	ecs.KindPlayer: '@',
	ecs.KindBullet: '*',
	ecs.KindSnake:  's',
	ecs.KindSpider: 'x',
	ecs.KindGem:    '$',
}

// Build paints a fresh atlas from the kinds' pixel art. Kinds without art are
// drawn as solid blocks in a stock color.
func Build(kinds map[ecs.Kind]prefabs.KindSpec) *Atlas {
	img := image.NewRGBA(image.Rect(0, 0, atlasWidth, atlasHeight))
	a := layout(img, kinds)
	for _, g := range a.glyphs {
		paintGlyph(img, g)
	}
	for _, k := range ecs.Kinds {
		paintKind(img, a.kinds[k].Rect, kinds[k], a.kinds[k].Color)
	}
	return a
}

// layout fills the frame table for an atlas image without drawing.
func layout(img image.Image, kinds map[ecs.Kind]prefabs.KindSpec) *Atlas {
	a := &Atlas{
		Image:  img,
		kinds:  make(map[ecs.Kind]Frame, len(ecs.Kinds)),
		glyphs: make(map[rune]Frame, len(GlyphSet)),
	}
	for i, r := range GlyphSet {
		x := i * GlyphWidth
		a.glyphs[r] = Frame{
			Rect:  image.Rect(x, glyphRowY, x+GlyphWidth, glyphRowY+GlyphHeight),
			Rune:  r,
			Color: colornames.White,
		}
	}
	for _, k := range ecs.Kinds {
		x := int(k) * prefabs.FrameSize
		f := Frame{
			Rect:  image.Rect(x, kindRowY, x+prefabs.FrameSize, kindRowY+prefabs.FrameSize),
			Rune:  fallbackRunes[k],
			Color: fallbackColors[k],
		}
		if spec, ok := kinds[k]; ok {
			if rs := []rune(spec.Glyph); len(rs) > 0 {
				f.Rune = rs[0]
			}
			if spec.Color != nil && spec.Color.Color != nil {
				f.Color = spec.Color.Color
			}
		}
		a.kinds[k] = f
	}
	return a
}

func paintGlyph(dst *image.RGBA, f Frame) {
	face := basicfont.Face7x13
	dot := fixed.P(f.Rect.Min.X, f.Rect.Min.Y+face.Ascent)
	dr, mask, maskp, _, ok := face.Glyph(dot, f.Rune)
	if !ok {
		return
	}
	draw.DrawMask(dst, dr, image.NewUniform(f.Color), image.Point{}, mask, maskp, draw.Over)
}

func paintKind(dst *image.RGBA, rect image.Rectangle, spec prefabs.KindSpec, main color.Color) {
	if len(spec.Pixels) == 0 {
		draw.Draw(dst, rect, image.NewUniform(main), image.Point{}, draw.Src)
		return
	}
	accent := main
	if spec.Accent != nil && spec.Accent.Color != nil {
		accent = spec.Accent.Color
	}
	for y, row := range spec.Pixels {
		if y >= rect.Dy() {
			break
		}
		for x, ch := range []rune(row) {
			if x >= rect.Dx() {
				break
			}
			switch ch {
			case '#':
				dst.Set(rect.Min.X+x, rect.Min.Y+y, main)
			case '+':
				dst.Set(rect.Min.X+x, rect.Min.Y+y, accent)
			}
		}
	}
}
