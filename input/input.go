package input

// Key names the keys the game reads.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyDebugDump
	keyCount
)

// MouseButton names the mouse buttons the game reads.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	mouseButtonCount
)

// Button is the state of one key or mouse button this frame and last frame.
type Button struct {
	Down    bool
	WasDown bool
}

// Pressed is true on the frame the button went down.
func (b Button) Pressed() bool {
	return b.Down && !b.WasDown
}

// Released is true on the frame the button came up.
func (b Button) Released() bool {
	return !b.Down && b.WasDown
}

// State is one frame of input. Mouse coordinates are in logical screen
// pixels, which equal world units.
type State struct {
	Keys   [keyCount]Button
	Mouse  [mouseButtonCount]Button
	MouseX float64
	MouseY float64
}

func (s State) Key(k Key) Button {
	if k < 0 || k >= keyCount {
		return Button{}
	}
	return s.Keys[k]
}

func (s State) Button(b MouseButton) Button {
	if b < 0 || b >= mouseButtonCount {
		return Button{}
	}
	return s.Mouse[b]
}

// Up reports whether either up binding is held.
func (s State) Up() bool { return s.Keys[KeyUp].Down || s.Keys[KeyW].Down }

// Down reports whether either down binding is held.
func (s State) Down() bool { return s.Keys[KeyDown].Down || s.Keys[KeyS].Down }

// Left reports whether either left binding is held.
func (s State) Left() bool { return s.Keys[KeyLeft].Down || s.Keys[KeyA].Down }

// Right reports whether either right binding is held.
func (s State) Right() bool { return s.Keys[KeyRight].Down || s.Keys[KeyD].Down }

// Fire reports whether the fire button is held.
func (s State) Fire() bool { return s.Mouse[MouseLeft].Down }

// Source is polled once per tick before the simulation reads input.
type Source interface {
	Poll() State
}

// Raw is the instantaneous down state a backend samples each tick.
type Raw struct {
	Keys   [keyCount]bool
	Mouse  [mouseButtonCount]bool
	MouseX float64
	MouseY float64
}

// SetKey marks k down or up.
func (r *Raw) SetKey(k Key, down bool) {
	if k >= 0 && k < keyCount {
		r.Keys[k] = down
	}
}

// SetButton marks b down or up.
func (r *Raw) SetButton(b MouseButton, down bool) {
	if b >= 0 && b < mouseButtonCount {
		r.Mouse[b] = down
	}
}

// Tracker turns successive raw samples into States with previous-frame
// state filled in.
type Tracker struct {
	last State
}

// Advance records raw as the current frame and returns the full state.
func (t *Tracker) Advance(raw Raw) State {
	next := State{MouseX: raw.MouseX, MouseY: raw.MouseY}
	for i := range next.Keys {
		next.Keys[i] = Button{Down: raw.Keys[i], WasDown: t.last.Keys[i].Down}
	}
	for i := range next.Mouse {
		next.Mouse[i] = Button{Down: raw.Mouse[i], WasDown: t.last.Mouse[i].Down}
	}
	t.last = next
	return next
}

// Last returns the most recent state.
func (t *Tracker) Last() State {
	return t.last
}
