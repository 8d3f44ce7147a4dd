package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/input"
)

// PlayerControlSystem polls the input source once per tick and applies it to
// the player: movement, firing, and starting the music on the first click.
type PlayerControlSystem struct {
	Source input.Source

	musicStarted bool
	last         input.State
}

func NewPlayerControlSystem(src input.Source) *PlayerControlSystem {
	return &PlayerControlSystem{Source: src}
}

// Input returns the state polled on the most recent tick.
func (p *PlayerControlSystem) Input() input.State {
	return p.last
}

func (p *PlayerControlSystem) Update(w *ecs.World) {
	if w == nil || p.Source == nil || !w.Running() {
		return
	}
	in := p.Source.Poll()
	p.last = in

	if !p.musicStarted && in.Fire() {
		p.musicStarted = true
		w.Emit(ecs.EventMusic, w.Player(), ecs.InvalidEntity)
	}

	store := w.Store()
	player := w.Player()
	speed := w.Tuning().PlayerSpeed
	if in.Up() {
		store.Move(player, 0, -speed)
	}
	if in.Left() {
		store.Move(player, -speed, 0)
	}
	if in.Down() {
		store.Move(player, 0, speed)
	}
	if in.Right() {
		store.Move(player, speed, 0)
	}

	if in.Fire() {
		Shoot(w, player, float32(in.MouseX), float32(in.MouseY), true)
	}
}

// Shoot fires a bullet from shooter toward (tx, ty) if its cooldown has run
// out. Aiming at the shooter's own position fires nothing. loud controls
// whether the shot emits a sound event.
func Shoot(w *ecs.World, shooter ecs.Entity, tx, ty float32, loud bool) ecs.Entity {
	store := w.Store()
	if !store.IsLive(shooter) || store.Cooldown(shooter) > 0 {
		return ecs.InvalidEntity
	}
	from := position(store, shooter)
	dir, ok := direction(from, cp.Vector{X: float64(tx), Y: float64(ty)})
	if !ok {
		return ecs.InvalidEntity
	}

	tuning := w.Tuning()
	vel := dir.Mult(float64(tuning.BulletSpeed))
	bullet := store.Create(ecs.KindBullet, float32(from.X), float32(from.Y),
		ecs.WithVelocity(float32(vel.X), float32(vel.Y)),
		ecs.WithHealth(tuning.BulletHealth),
	)
	store.SetCooldown(shooter, tuning.FireCooldown)
	if loud {
		w.Emit(ecs.EventShoot, shooter, bullet)
	}
	return bullet
}
