package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorldPlacesPlayer(t *testing.T) {
	w := NewWorld(DefaultTuning(), WithSeed(1))

	require.True(t, w.Store().IsLive(w.Player()))
	assert.Equal(t, KindPlayer, w.Store().Kind(w.Player()))
	x, y := w.Store().Position(w.Player())
	assert.Equal(t, float32(240), x)
	assert.Equal(t, float32(135), y)
	assert.Equal(t, Running, w.State())
	assert.Equal(t, DefaultCapacity, w.Store().Cap())
}

func TestWorldUpdateRunsSystemsInOrder(t *testing.T) {
	w := NewWorld(DefaultTuning(), WithSeed(1))
	var order []string
	w.AddSystem(SystemFunc(func(*World) { order = append(order, "a") }))
	w.AddSystem(SystemFunc(func(*World) { order = append(order, "b") }))
	w.AddSystem(nil)

	w.Update()
	w.Update()

	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
	assert.Equal(t, uint64(2), w.Tick())
}

func TestWorldElapsed(t *testing.T) {
	w := NewWorld(DefaultTuning(), WithSeed(1), WithTPS(30))
	for i := 0; i < 45; i++ {
		w.Update()
	}
	assert.InDelta(t, 1.5, w.Elapsed(), 1e-9)
}

func TestWorldHaltIsTerminal(t *testing.T) {
	w := NewWorld(DefaultTuning(), WithSeed(1))
	calls := 0
	w.AddSystem(SystemFunc(func(w *World) {
		calls++
		if calls == 3 {
			w.Store().SetHealth(w.Player(), 0)
		}
	}))

	for i := 0; i < 10; i++ {
		w.Update()
	}

	assert.Equal(t, Halted, w.State())
	assert.Equal(t, 3, calls)
	assert.Equal(t, uint64(3), w.Tick())

	// Reviving the player does not restart a halted world.
	w.Store().SetHealth(w.Player(), 100)
	w.Update()
	assert.Equal(t, Halted, w.State())
	assert.Equal(t, 3, calls)
}

func TestWorldEventsFlushedEachTick(t *testing.T) {
	w := NewWorld(DefaultTuning(), WithSeed(1))
	var drained []Event
	w.AddSystem(SystemFunc(func(w *World) {
		w.Emit(EventPickup, w.Player(), InvalidEntity)
	}))
	w.AddSystem(SystemFunc(func(w *World) {
		drained = append(drained, w.Events().Drain()...)
	}))
	w.AddSystem(SystemFunc(func(w *World) {
		w.Emit(EventHit, 1, 2)
	}))

	w.Update()
	w.Update()

	assert.Len(t, drained, 2)
	assert.Zero(t, w.Events().Len(), "undrained events do not leak into the next tick")
}

func TestWorldSetTuningKeepsCapacity(t *testing.T) {
	tuning := DefaultTuning()
	tuning.Capacity = 32
	w := NewWorld(tuning, WithSeed(1))

	next := DefaultTuning()
	next.Capacity = 4096
	next.EnemySpeed = 2
	w.SetTuning(next)

	assert.Equal(t, 32, w.Tuning().Capacity)
	assert.Equal(t, float32(2), w.Tuning().EnemySpeed)
}
