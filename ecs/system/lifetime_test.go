package system

import (
	"math"
	"testing"

	"github.com/milk9111/gemswarm/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteerMovesTowardTarget(t *testing.T) {
	s := ecs.NewStore(4, nil)
	e := s.Create(ecs.KindSnake, 0, 0)

	Steer(s, e, 3, 4, 0.5)
	x, y := s.Position(e)
	assert.InDelta(t, 0.3, x, 1e-6)
	assert.InDelta(t, 0.4, y, 1e-6)
}

func TestSteerOnTargetStaysPut(t *testing.T) {
	s := ecs.NewStore(4, nil)
	e := s.Create(ecs.KindSpider, 7, 9)

	Steer(s, e, 7, 9, 0.5)
	x, y := s.Position(e)
	assert.Equal(t, float32(7), x)
	assert.Equal(t, float32(9), y)
	assert.False(t, math.IsNaN(float64(x)))
}

func TestLifetimeBulletReclaimedAtTick200(t *testing.T) {
	w := ecs.NewTestWorld()
	w.AddSystem(NewLifetimeSystem())
	bullet := w.Store().Create(ecs.KindBullet, 0, 0, ecs.WithHealth(100))

	for i := 1; i < 200; i++ {
		w.Update()
		require.True(t, w.Store().IsLive(bullet), "bullet gone early at tick %d", i)
	}
	assert.Equal(t, int32(1), w.Store().Health(bullet))

	w.Update()
	assert.Equal(t, uint64(200), w.Tick())
	assert.False(t, w.Store().IsLive(bullet))
	assert.Contains(t, w.Store().FreeList(), bullet)
}

func TestLifetimeIntegratesAndCoolsDown(t *testing.T) {
	w := ecs.NewTestWorld()
	store := w.Store()
	e := store.Create(ecs.KindGem, 10, 10, ecs.WithVelocity(1, -2))
	store.SetCooldown(e, 2)

	sys := NewLifetimeSystem()
	for i := 0; i < 3; i++ {
		sys.Update(w)
	}

	x, y := store.Position(e)
	assert.Equal(t, float32(13), x)
	assert.Equal(t, float32(4), y)
	assert.Zero(t, store.Cooldown(e))
	assert.Equal(t, int32(ecs.DefaultHealth), store.Health(e))
}

func TestLifetimeEnemiesChasePlayer(t *testing.T) {
	w := ecs.NewTestWorld()
	store := w.Store()
	px, py := store.Position(w.Player())
	snake := store.Create(ecs.KindSnake, px-10, py)
	spider := store.Create(ecs.KindSpider, px, py+10)

	NewLifetimeSystem().Update(w)

	x, _ := store.Position(snake)
	assert.InDelta(t, px-9.5, x, 1e-5)
	_, y := store.Position(spider)
	assert.InDelta(t, py+9.5, y, 1e-5)
}

func TestLifetimeNeverReclaimsPlayer(t *testing.T) {
	w := ecs.NewTestWorld()
	store := w.Store()
	store.SetHealth(w.Player(), 0)
	dead := store.Create(ecs.KindGem, 1, 1, ecs.WithHealth(0))

	NewLifetimeSystem().Update(w)

	assert.True(t, store.IsLive(w.Player()))
	assert.False(t, store.IsLive(dead))
}

func TestLifetimeSortsFreeList(t *testing.T) {
	w := ecs.NewTestWorld()
	store := w.Store()
	var ids []ecs.Entity
	for i := 0; i < 5; i++ {
		ids = append(ids, store.Create(ecs.KindGem, 0, 0))
	}
	store.SetHealth(ids[0], 0)
	store.SetHealth(ids[3], 0)
	store.SetHealth(ids[1], 0)

	NewLifetimeSystem().Update(w)

	assert.Equal(t, []ecs.Entity{ids[3], ids[1], ids[0]}, store.FreeList())
	assert.Equal(t, []ecs.Entity{w.Player(), ids[2], ids[4]}, store.Live())
}
