package system

import (
	"github.com/milk9111/gemswarm/ecs"
)

// LifetimeSystem integrates movement, decays cooldowns, runs the per-kind
// behavior and reclaims dead entities. The live sequence is walked in
// reverse so reclaiming the visited entry never skips another.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	store := w.Store()
	tuning := w.Tuning()
	player := w.Player()

	for i := store.Len() - 1; i >= 0; i-- {
		e := store.Live()[i]

		dx, dy := store.Velocity(e)
		store.Move(e, dx, dy)

		if c := store.Cooldown(e); c > 0 {
			store.SetCooldown(e, c-1)
		}

		kind := store.Kind(e)
		switch kind {
		case ecs.KindSnake, ecs.KindSpider:
			px, py := store.Position(player)
			Steer(store, e, px, py, tuning.EnemySpeed)
		case ecs.KindBullet:
			decay(store, e, tuning.BulletDecay)
		case ecs.KindPlayer, ecs.KindGem:
		}

		if kind != ecs.KindPlayer && store.Health(e) <= 0 {
			store.ReclaimAt(i)
		}
	}

	store.SortFreeList()
}

// decay takes amount health from e, carrying fractions across ticks.
func decay(s *ecs.Store, e ecs.Entity, amount float32) {
	wear := s.Wear(e) + amount
	if whole := int32(wear); whole > 0 {
		s.Damage(e, whole)
		wear -= float32(whole)
	}
	s.SetWear(e, wear)
}
