package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/gemswarm/assets"
)

// Terminal draws onto a tcell screen. Each cell covers CellW x CellH canvas
// units and shows the rune of the last frame whose center falls inside it.
type Terminal struct {
	screen tcell.Screen
	stack  *Stack

	CellW, CellH float64

	bg   tcell.Color
	text tcell.Style
}

func NewTerminal(screen tcell.Screen, cellW, cellH float64) *Terminal {
	t := &Terminal{
		screen: screen,
		stack:  NewStack(),
		CellW:  cellW,
		CellH:  cellH,
		bg:     tcell.FromImageColor(assets.Background),
	}
	t.text = tcell.StyleDefault.Background(t.bg).Foreground(tcell.ColorWhite)
	return t
}

func (t *Terminal) Clear(c color.Color) {
	t.stack.Reset()
	t.bg = tcell.FromImageColor(c)
	t.text = t.text.Background(t.bg)
	t.screen.Fill(' ', tcell.StyleDefault.Background(t.bg))
}

func (t *Terminal) Push()                  { t.stack.Push() }
func (t *Terminal) Pop()                   { t.stack.Pop() }
func (t *Terminal) Translate(x, y float64) { t.stack.Translate(x, y) }
func (t *Terminal) Rotate(theta float64)   { t.stack.Rotate(theta) }

func (t *Terminal) Draw(f assets.Frame, x, y float64) {
	cx, cy := t.stack.Apply(x+float64(f.Width())/2, y+float64(f.Height())/2)
	col, row, ok := t.cell(cx, cy)
	if !ok {
		return
	}
	style := tcell.StyleDefault.Background(t.bg)
	if f.Color != nil {
		style = style.Foreground(tcell.FromImageColor(f.Color))
	}
	t.screen.SetContent(col, row, f.Rune, nil, style)
}

// DrawText writes s one character per cell starting at the cell holding
// (x, y).
func (t *Terminal) DrawText(s string, x, y float64) {
	px, py := t.stack.Apply(x, y)
	col, row, ok := t.cell(px, py)
	if !ok {
		return
	}
	w, _ := t.screen.Size()
	for _, r := range s {
		if col >= w {
			return
		}
		t.screen.SetContent(col, row, r, nil, t.text)
		col++
	}
}

func (t *Terminal) Flush() {
	t.screen.Show()
}

func (t *Terminal) cell(x, y float64) (int, int, bool) {
	if t.CellW <= 0 || t.CellH <= 0 {
		return 0, 0, false
	}
	col := int(math.Floor(x / t.CellW))
	row := int(math.Floor(y / t.CellH))
	w, h := t.screen.Size()
	if col < 0 || row < 0 || col >= w || row >= h {
		return 0, 0, false
	}
	return col, row, true
}
