package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gemswarm/assets"
	"github.com/milk9111/gemswarm/render"
)

// maxBatchVertices keeps one DrawTriangles call inside uint16 indices.
const maxBatchVertices = 4 * 4096

// Batch is a render.Canvas that collects atlas quads and submits them to
// the target in as few DrawTriangles calls as possible.
type Batch struct {
	stack    *render.Stack
	target   *ebiten.Image
	atlas    *assets.Atlas
	sheet    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	submits  int
}

func NewBatch() *Batch {
	return &Batch{
		stack:    render.NewStack(),
		vertices: make([]ebiten.Vertex, 0, 1024),
		indices:  make([]uint16, 0, 1536),
	}
}

// Begin points the batch at this frame's target. The atlas image is
// uploaded again only when the atlas changes.
func (b *Batch) Begin(target *ebiten.Image, atlas *assets.Atlas) {
	b.target = target
	b.submits = 0
	if atlas != b.atlas {
		if b.sheet != nil {
			b.sheet.Deallocate()
		}
		b.atlas = atlas
		b.sheet = ebiten.NewImageFromImage(atlas.Image)
	}
}

func (b *Batch) Clear(c color.Color) {
	b.stack.Reset()
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.target.Fill(c)
}

func (b *Batch) Push()                  { b.stack.Push() }
func (b *Batch) Pop()                   { b.stack.Pop() }
func (b *Batch) Translate(x, y float64) { b.stack.Translate(x, y) }
func (b *Batch) Rotate(theta float64)   { b.stack.Rotate(theta) }

func (b *Batch) Draw(f assets.Frame, x, y float64) {
	if b.sheet == nil {
		return
	}
	if len(b.vertices)+4 > maxBatchVertices {
		b.Flush()
	}

	w, h := float64(f.Width()), float64(f.Height())
	sx0, sy0 := float32(f.Rect.Min.X), float32(f.Rect.Min.Y)
	sx1, sy1 := float32(f.Rect.Max.X), float32(f.Rect.Max.Y)

	base := uint16(len(b.vertices))
	b.vertex(x, y, sx0, sy0)
	b.vertex(x+w, y, sx1, sy0)
	b.vertex(x, y+h, sx0, sy1)
	b.vertex(x+w, y+h, sx1, sy1)
	b.indices = append(b.indices, base, base+1, base+2, base+1, base+3, base+2)
}

func (b *Batch) vertex(x, y float64, sx, sy float32) {
	dx, dy := b.stack.Apply(x, y)
	b.vertices = append(b.vertices, ebiten.Vertex{
		DstX:   float32(dx),
		DstY:   float32(dy),
		SrcX:   sx,
		SrcY:   sy,
		ColorR: 1,
		ColorG: 1,
		ColorB: 1,
		ColorA: 1,
	})
}

// Flush submits the queued quads.
func (b *Batch) Flush() {
	if len(b.indices) == 0 || b.target == nil {
		return
	}
	b.target.DrawTriangles(b.vertices, b.indices, b.sheet, &ebiten.DrawTrianglesOptions{})
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.submits++
}

// Submits is the number of DrawTriangles calls made this frame.
func (b *Batch) Submits() int {
	return b.submits
}
