package system

import (
	"github.com/milk9111/gemswarm/ecs"
)

// CombatSystem resolves every ordered pair of live entities closer than the
// proximity threshold. Entities it kills are left for the next lifetime
// sweep to reclaim. A player killed mid-scan does not stop the scan; the
// world halts once the tick completes.
type CombatSystem struct{}

func NewCombatSystem() *CombatSystem { return &CombatSystem{} }

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil || !w.Running() {
		return
	}
	store := w.Store()
	tuning := w.Tuning()
	live := store.Live()

	for _, a := range live {
		for _, b := range live {
			if a == b || !touching(store, a, b, tuning.Proximity) {
				continue
			}
			s.resolve(w, a, b)
		}
	}
}

// resolve applies the interaction of a acting on b.
func (s *CombatSystem) resolve(w *ecs.World, a, b ecs.Entity) {
	store := w.Store()
	tuning := w.Tuning()
	ka, kb := store.Kind(a), store.Kind(b)

	switch {
	case ka == ecs.KindBullet && kb.IsEnemy():
		store.SetHealth(a, 0)
		store.SetKind(b, ecs.KindGem)
		w.Emit(ecs.EventHit, a, b)

	case a == w.Player() && kb.IsEnemy():
		alive := store.Health(a) > 0
		store.Damage(a, tuning.ContactDamage)
		store.SetHealth(b, 0)
		switch {
		case alive && store.Health(a) <= 0:
			w.Emit(ecs.EventGameOver, a, b)
		case alive:
			w.Emit(ecs.EventHurt, a, b)
		}

	case a == w.Player() && kb == ecs.KindGem:
		w.AddScore(tuning.GemScore)
		store.SetHealth(b, 0)
		w.Emit(ecs.EventPickup, a, b)
	}
}
