package render

import (
	"strconv"

	"github.com/milk9111/gemswarm/assets"
	"github.com/milk9111/gemswarm/ecs"
)

// HUD placement in screen pixels.
const (
	hudX          = 4
	hudTop        = 4
	hudLineHeight = assets.GlyphHeight
)

// DrawScene clears the canvas, draws every live entity in live order, the
// HUD on top, and flushes.
func DrawScene(c Canvas, w *ecs.World, a *assets.Atlas) {
	if c == nil || w == nil || a == nil {
		return
	}
	c.Clear(assets.Background)

	store := w.Store()
	for _, e := range store.Live() {
		f, ok := a.Kind(store.Kind(e))
		if !ok {
			continue
		}
		x, y := store.Position(e)
		c.Push()
		c.Translate(float64(x), float64(y))
		c.Rotate(0)
		c.Draw(f, -float64(f.Width())/2, 0)
		c.Pop()
	}

	DrawHUD(c, w, a)
	c.Flush()
}

// HUDLines returns the status lines shown in the top-left corner.
func HUDLines(w *ecs.World) []string {
	return []string{
		"HEALTH  " + strconv.Itoa(int(w.PlayerHealth())),
		"SCORE   " + strconv.Itoa(w.Score()),
		"TIME    " + strconv.Itoa(int(w.Elapsed())),
	}
}

// HintLines returns the control hints shown in the bottom-left corner.
func HintLines() []string {
	return []string{
		"ARROW KEYS OR WASD TO MOVE",
		"LEFT CLICK TO SHOOT",
	}
}

// DrawHUD draws the status and hint lines.
func DrawHUD(c Canvas, w *ecs.World, a *assets.Atlas) {
	for i, line := range HUDLines(w) {
		DrawString(c, a, line, hudX, float64(hudTop+i*hudLineHeight))
	}
	hints := HintLines()
	bottom := float64(w.Tuning().ArenaHeight) - hudTop - float64(len(hints)*hudLineHeight)
	for i, line := range hints {
		DrawString(c, a, line, hudX, bottom+float64(i*hudLineHeight))
	}
}

// DrawString draws s with its first glyph's left edge at x and top at y.
// Characters without a glyph leave a gap.
func DrawString(c Canvas, a *assets.Atlas, s string, x, y float64) {
	if tc, ok := c.(TextCanvas); ok {
		tc.DrawText(s, x, y)
		return
	}
	for _, r := range s {
		if f, ok := a.Glyph(r); ok {
			c.Push()
			c.Translate(x, y)
			c.Rotate(0)
			c.Draw(f, 0, 0)
			c.Pop()
		}
		x += assets.GlyphWidth
	}
}
