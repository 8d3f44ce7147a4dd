package ecs

// Tuning carries the gameplay constants. Defaults match the shipped prefabs.
type Tuning struct {
	ArenaWidth  float32
	ArenaHeight float32
	Capacity    int

	PlayerSpeed  float32
	FireCooldown int32

	BulletSpeed  float32
	BulletHealth int32
	// BulletDecay is the health a bullet loses per tick. Fractions accumulate.
	BulletDecay float32

	EnemySpeed float32

	Proximity     float32
	ContactDamage int32
	GemScore      int

	SpawnBase float64
	SpawnRate float64
	// SpawnRadius scales half the arena width into the spawn circle radius.
	SpawnRadius float64
}

// DefaultTuning returns the stock arena: 480x270, 2000 slots, 8 unit touch
// distance.
func DefaultTuning() Tuning {
	return Tuning{
		ArenaWidth:    480,
		ArenaHeight:   270,
		Capacity:      DefaultCapacity,
		PlayerSpeed:   1,
		FireCooldown:  10,
		BulletSpeed:   2,
		BulletHealth:  100,
		BulletDecay:   0.5,
		EnemySpeed:    0.5,
		Proximity:     8,
		ContactDamage: 10,
		GemScore:      100,
		SpawnBase:     0.01,
		SpawnRate:     0.001,
		SpawnRadius:   1.5,
	}
}

// Center is the middle of the arena.
func (t Tuning) Center() (float32, float32) {
	return t.ArenaWidth / 2, t.ArenaHeight / 2
}
