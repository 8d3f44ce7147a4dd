package render

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gemswarm/assets"
)

// Canvas is a 2D sprite target with a save/restore transform stack. Draw
// places a frame's top-left corner at (x, y) in the current local space.
// Implementations may batch until Flush.
type Canvas interface {
	Clear(c color.Color)
	Push()
	Pop()
	Translate(x, y float64)
	Rotate(theta float64)
	Draw(f assets.Frame, x, y float64)
	Flush()
}

// TextCanvas is implemented by canvases that lay out text themselves, such
// as character grids.
type TextCanvas interface {
	DrawText(s string, x, y float64)
}

// Stack is an affine transform stack. The zero value is not usable; use
// NewStack.
type Stack struct {
	current cp.Transform
	saved   []cp.Transform
}

func NewStack() *Stack {
	return &Stack{current: cp.NewTransformIdentity()}
}

// Reset drops all saved transforms and returns to identity.
func (s *Stack) Reset() {
	s.current = cp.NewTransformIdentity()
	s.saved = s.saved[:0]
}

func (s *Stack) Push() {
	s.saved = append(s.saved, s.current)
}

// Pop restores the last pushed transform. Popping an empty stack resets to
// identity.
func (s *Stack) Pop() {
	n := len(s.saved)
	if n == 0 {
		s.current = cp.NewTransformIdentity()
		return
	}
	s.current = s.saved[n-1]
	s.saved = s.saved[:n-1]
}

// Translate applies a translation before the current transform.
func (s *Stack) Translate(x, y float64) {
	s.current = s.current.Mult(cp.NewTransformTranslate(cp.Vector{X: x, Y: y}))
}

// Rotate applies a rotation before the current transform.
func (s *Stack) Rotate(theta float64) {
	if theta == 0 {
		return
	}
	s.current = s.current.Mult(cp.NewTransformRotate(theta))
}

// Apply maps a local point to canvas space.
func (s *Stack) Apply(x, y float64) (float64, float64) {
	p := s.current.Point(cp.Vector{X: x, Y: y})
	return p.X, p.Y
}

// Depth is the number of pushed transforms.
func (s *Stack) Depth() int {
	return len(s.saved)
}
