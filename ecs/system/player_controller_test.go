package system

import (
	"testing"

	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func held(keys ...input.Key) input.Raw {
	var r input.Raw
	for _, k := range keys {
		r.SetKey(k, true)
	}
	return r
}

func firing(x, y float64) input.Raw {
	var r input.Raw
	r.SetButton(input.MouseLeft, true)
	r.MouseX, r.MouseY = x, y
	return r
}

func TestPlayerControlMovement(t *testing.T) {
	cases := []struct {
		name   string
		raw    input.Raw
		dx, dy float32
	}{
		{"up", held(input.KeyUp), 0, -1},
		{"w", held(input.KeyW), 0, -1},
		{"down", held(input.KeyS), 0, 1},
		{"left", held(input.KeyA), -1, 0},
		{"right", held(input.KeyRight), 1, 0},
		{"diagonal", held(input.KeyW, input.KeyD), 1, -1},
		{"opposed", held(input.KeyLeft, input.KeyD), 0, 0},
		{"both bindings", held(input.KeyUp, input.KeyW), 0, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewTestWorld()
			w.AddSystem(NewPlayerControlSystem(input.NewScripted(c.raw)))
			x0, y0 := w.Store().Position(w.Player())

			w.Update()
			w.Update()

			x, y := w.Store().Position(w.Player())
			assert.Equal(t, x0+2*c.dx, x)
			assert.Equal(t, y0+2*c.dy, y)
		})
	}
}

func TestPlayerControlFireRate(t *testing.T) {
	w := ecs.NewTestWorld()
	sound := &recordingPlayer{}
	cx, cy := w.Tuning().Center()
	w.AddSystem(NewPlayerControlSystem(input.NewScripted(firing(float64(cx)+100, float64(cy)))))
	w.AddSystem(NewLifetimeSystem())
	w.AddSystem(NewAudioSystem(sound))

	for i := 0; i < 11; i++ {
		w.Update()
	}

	var bullets []ecs.Entity
	for _, e := range w.Store().Live() {
		if w.Store().Kind(e) == ecs.KindBullet {
			bullets = append(bullets, e)
		}
	}
	require.Len(t, bullets, 2)
	dx, dy := w.Store().Velocity(bullets[0])
	assert.InDelta(t, 2, dx, 1e-6)
	assert.InDelta(t, 0, dy, 1e-6)
	// The first shot has worn for 11 ticks; the second was fired this tick.
	assert.Equal(t, int32(95), w.Store().Health(bullets[0]))
	assert.Equal(t, int32(100), w.Store().Health(bullets[1]))

	assert.Equal(t, 1, sound.music, "music starts once")
	shots := 0
	for _, k := range sound.effects {
		if k == ecs.EventShoot {
			shots++
		}
	}
	assert.Equal(t, 2, shots)
}

func TestShootZeroAim(t *testing.T) {
	w := ecs.NewTestWorld()
	px, py := w.Store().Position(w.Player())

	assert.Equal(t, ecs.InvalidEntity, Shoot(w, w.Player(), px, py, true))
	assert.Equal(t, 1, w.Store().Len())
	assert.Zero(t, w.Store().Cooldown(w.Player()))
	assert.Zero(t, w.Events().Len())
}

func TestShootCooldown(t *testing.T) {
	w := ecs.NewTestWorld()
	px, py := w.Store().Position(w.Player())

	first := Shoot(w, w.Player(), px, py-10, false)
	require.NotEqual(t, ecs.InvalidEntity, first)
	assert.Equal(t, int32(10), w.Store().Cooldown(w.Player()))
	assert.Zero(t, w.Events().Len(), "quiet shots emit nothing")

	assert.Equal(t, ecs.InvalidEntity, Shoot(w, w.Player(), px, py-10, false))
}

func TestPlayerControlIdleWithoutSource(t *testing.T) {
	w := ecs.NewTestWorld()
	w.AddSystem(NewPlayerControlSystem(nil))
	x0, y0 := w.Store().Position(w.Player())

	w.Update()

	x, y := w.Store().Position(w.Player())
	assert.Equal(t, x0, x)
	assert.Equal(t, y0, y)
}
