package system

import (
	"math"

	"github.com/milk9111/gemswarm/ecs"
)

// Curve maps elapsed seconds to the chance of spawning an enemy this tick.
// Values above 1 mean every tick.
type Curve interface {
	Probability(t float64) float64
}

// LinearCurve is base + rate*t, uncapped.
type LinearCurve struct {
	Base float64
	Rate float64
}

func (c LinearCurve) Probability(t float64) float64 {
	return c.Base + c.Rate*t
}

// SpawnProbability is the stock curve: 0.01 at t=0, rising 0.001 per second.
func SpawnProbability(t float64) float64 {
	d := ecs.DefaultTuning()
	return LinearCurve{Base: d.SpawnBase, Rate: d.SpawnRate}.Probability(t)
}

// SpawnSystem rolls once per tick and spawns a random enemy on the spawn
// circle when the roll lands under the curve.
type SpawnSystem struct {
	// Curve overrides the world's tuned linear curve when set.
	Curve Curve
}

func NewSpawnSystem(curve Curve) *SpawnSystem {
	return &SpawnSystem{Curve: curve}
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if w == nil || !w.Running() {
		return
	}
	if w.Rand().Float64() < s.probability(w) {
		SpawnEnemy(w)
	}
}

func (s *SpawnSystem) probability(w *ecs.World) float64 {
	if s.Curve != nil {
		return s.Curve.Probability(w.Elapsed())
	}
	t := w.Tuning()
	return LinearCurve{Base: t.SpawnBase, Rate: t.SpawnRate}.Probability(w.Elapsed())
}

// SpawnEnemy creates a snake or spider, chosen evenly, at a random angle on
// a circle around the arena center whose radius is SpawnRadius half-widths.
func SpawnEnemy(w *ecs.World) ecs.Entity {
	rng := w.Rand()
	kind := ecs.KindSpider
	if rng.Float64() < 0.5 {
		kind = ecs.KindSnake
	}
	theta := rng.Float64() * math.Pi * 2

	tuning := w.Tuning()
	cx, cy := tuning.Center()
	r := float64(cx) * tuning.SpawnRadius
	x := float64(cx) + math.Cos(theta)*r
	y := float64(cy) + math.Sin(theta)*r
	return w.Store().Create(kind, float32(x), float32(y))
}
