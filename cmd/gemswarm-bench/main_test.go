package main

import (
	"context"
	"testing"

	"github.com/milk9111/gemswarm/config"
	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/game"
	"github.com/milk9111/gemswarm/input"
	"github.com/milk9111/gemswarm/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutopilotIdleWithoutEnemies(t *testing.T) {
	w := ecs.NewTestWorld()
	raw := autopilot(w)
	assert.Equal(t, input.Raw{}, raw)
	assert.Equal(t, input.Raw{}, autopilot(nil))
}

func TestAutopilotAimsAndRetreats(t *testing.T) {
	w := ecs.NewTestWorld()
	w.Store().Create(ecs.KindSnake, 400, 135)
	w.Store().Create(ecs.KindSpider, 260, 135)
	w.Store().Create(ecs.KindGem, 241, 135)

	raw := autopilot(w)
	assert.True(t, raw.Mouse[input.MouseLeft])
	assert.Equal(t, 260.0, raw.MouseX)
	assert.Equal(t, 135.0, raw.MouseY)
	assert.True(t, raw.Keys[input.KeyLeft], "spider is right of the player")
	assert.False(t, raw.Keys[input.KeyRight])
}

func TestSimulateStopsAtGameOver(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Seed = 3
	var world *ecs.World
	s, err := game.New(context.Background(), game.Options{
		Config: cfg,
		Loader: prefabs.Loader{Dir: t.TempDir()},
		Input:  &input.Func{Sample: func() input.Raw { return autopilot(world) }},
	})
	require.NoError(t, err)
	world = s.World

	stats := Simulate(s, 600)
	assert.Equal(t, uint64(600), stats.Ticks)
	assert.Positive(t, stats.PeakLive)

	world.Store().SetHealth(world.Player(), 0)
	stats = Simulate(s, 100)
	assert.Equal(t, uint64(600), stats.Ticks)
	assert.False(t, world.Running())
}
