package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// DefaultHoldTicks is how long a terminal key press counts as held. Terminals
// report presses and repeats but never releases.
const DefaultHoldTicks = 8

// Terminal is a Source fed by tcell events. HandleEvent may be called from
// the screen's event goroutine while the game loop calls Poll.
type Terminal struct {
	mu sync.Mutex

	hold   [keyCount]int
	mouse  [mouseButtonCount]bool
	mouseX float64
	mouseY float64

	// CellW and CellH convert cell coordinates to world units.
	CellW, CellH float64
	HoldTicks    int

	tracker Tracker
}

// NewTerminal returns a terminal source mapping one cell to cellW by cellH
// world units.
func NewTerminal(cellW, cellH float64) *Terminal {
	return &Terminal{CellW: cellW, CellH: cellH, HoldTicks: DefaultHoldTicks}
}

// HandleEvent records a tcell key or mouse event. It reports whether the
// event was consumed.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := terminalKey(ev)
		if !ok {
			return false
		}
		t.mu.Lock()
		t.hold[k] = t.holdTicks()
		t.mu.Unlock()
		return true
	case *tcell.EventMouse:
		cx, cy := ev.Position()
		buttons := ev.Buttons()
		t.mu.Lock()
		t.mouseX = (float64(cx) + 0.5) * t.CellW
		t.mouseY = (float64(cy) + 0.5) * t.CellH
		t.mouse[MouseLeft] = buttons&tcell.Button1 != 0
		t.mouse[MouseRight] = buttons&tcell.Button2 != 0
		t.mu.Unlock()
		return true
	}
	return false
}

func (t *Terminal) holdTicks() int {
	if t.HoldTicks <= 0 {
		return DefaultHoldTicks
	}
	return t.HoldTicks
}

// Poll samples the current state and ages held keys by one tick.
func (t *Terminal) Poll() State {
	t.mu.Lock()
	var raw Raw
	for k := range t.hold {
		if t.hold[k] > 0 {
			raw.Keys[k] = true
			t.hold[k]--
		}
	}
	raw.Mouse = t.mouse
	raw.MouseX = t.mouseX
	raw.MouseY = t.mouseY
	t.mu.Unlock()
	return t.tracker.Advance(raw)
}

func terminalKey(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyF2:
		return KeyDebugDump, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return KeyW, true
		case 'a', 'A':
			return KeyA, true
		case 's', 'S':
			return KeyS, true
		case 'd', 'D':
			return KeyD, true
		}
	}
	return 0, false
}
