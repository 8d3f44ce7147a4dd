package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gemswarm/ecs"
)

// Steer moves e by speed world units straight toward (tx, ty). An entity
// already on the target stays put.
func Steer(s *ecs.Store, e ecs.Entity, tx, ty, speed float32) {
	if s == nil || !s.IsLive(e) {
		return
	}
	dir, ok := direction(position(s, e), cp.Vector{X: float64(tx), Y: float64(ty)})
	if !ok {
		return
	}
	step := dir.Mult(float64(speed))
	s.Move(e, float32(step.X), float32(step.Y))
}
