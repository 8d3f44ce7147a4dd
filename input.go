package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gemswarm/input"
)

var keyBindings = map[input.Key]ebiten.Key{
	input.KeyUp:        ebiten.KeyArrowUp,
	input.KeyDown:      ebiten.KeyArrowDown,
	input.KeyLeft:      ebiten.KeyArrowLeft,
	input.KeyRight:     ebiten.KeyArrowRight,
	input.KeyW:         ebiten.KeyW,
	input.KeyA:         ebiten.KeyA,
	input.KeyS:         ebiten.KeyS,
	input.KeyD:         ebiten.KeyD,
	input.KeyDebugDump: ebiten.KeyF2,
}

var mouseBindings = map[input.MouseButton]ebiten.MouseButton{
	input.MouseLeft:  ebiten.MouseButtonLeft,
	input.MouseRight: ebiten.MouseButtonRight,
}

// ebitenInput samples the keyboard and mouse once per tick. The cursor
// position is already in logical screen pixels.
type ebitenInput struct {
	tracker input.Tracker
}

func (e *ebitenInput) Poll() input.State {
	var raw input.Raw
	for k, key := range keyBindings {
		raw.SetKey(k, ebiten.IsKeyPressed(key))
	}
	for b, btn := range mouseBindings {
		raw.SetButton(b, ebiten.IsMouseButtonPressed(btn))
	}
	x, y := ebiten.CursorPosition()
	raw.MouseX, raw.MouseY = float64(x), float64(y)
	return e.tracker.Advance(raw)
}
