package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gemswarm/ecs"
)

func position(s *ecs.Store, e ecs.Entity) cp.Vector {
	x, y := s.Position(e)
	return cp.Vector{X: float64(x), Y: float64(y)}
}

// direction returns the unit vector pointing from one point to the other. ok
// is false when they coincide.
func direction(from, to cp.Vector) (cp.Vector, bool) {
	d := to.Sub(from)
	if d.LengthSq() == 0 {
		return cp.Vector{}, false
	}
	return d.Normalize(), true
}

// touching reports whether a and b are closer than dist.
func touching(s *ecs.Store, a, b ecs.Entity, dist float32) bool {
	return position(s, a).Near(position(s, b), float64(dist))
}
