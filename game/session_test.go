package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/gemswarm/config"
	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/input"
	"github.com/milk9111/gemswarm/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Game.Seed = 1
	return cfg
}

func newSession(t *testing.T, dir string, cfg *config.Config) *Session {
	t.Helper()
	s, err := New(context.Background(), Options{
		Config: cfg,
		Loader: prefabs.Loader{Dir: dir},
		Input:  input.NewScripted(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewSessionDefaults(t *testing.T) {
	s := newSession(t, t.TempDir(), testConfig())

	require.NotNil(t, s.World)
	require.NotNil(t, s.Atlas)
	assert.Equal(t, ecs.DefaultTuning(), s.World.Tuning())
	assert.Nil(t, s.Pipeline.Spawn.Curve)
	assert.Nil(t, s.Pipeline.Debug)

	for range 10 {
		s.Update()
	}
	assert.Equal(t, uint64(10), s.World.Tick())
	assert.True(t, s.World.Running())
}

func TestNewSessionScriptCurve(t *testing.T) {
	cfg := testConfig()
	cfg.Game.SpawnCurve = "spawn_curve.tengo"
	s := newSession(t, t.TempDir(), cfg)

	require.NotNil(t, s.Pipeline.Spawn.Curve)
	assert.InDelta(t, 0.01, s.Pipeline.Spawn.Curve.Probability(0), 1e-12)
}

func TestNewSessionErrors(t *testing.T) {
	cfg := testConfig()
	cfg.Game.Tuning = "missing.yaml"
	_, err := New(context.Background(), Options{Config: cfg, Loader: prefabs.Loader{Dir: t.TempDir()}})
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Game.SpawnCurve = "nope.tengo"
	_, err = New(context.Background(), Options{Config: cfg, Loader: prefabs.Loader{Dir: t.TempDir()}})
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = New(context.Background(), Options{
		Config:  testConfig(),
		Loader:  prefabs.Loader{Dir: t.TempDir()},
		Preload: []func(context.Context) error{func(context.Context) error { return boom }},
	})
	assert.ErrorIs(t, err, boom)
}

func TestReloadTuning(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, dir, testConfig())
	before := s.Atlas

	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player:\n  speed: 3\n"), 0o644))
	require.NoError(t, s.Reload(path))
	assert.Equal(t, float32(3), s.World.Tuning().PlayerSpeed)
	assert.Equal(t, float32(3), s.Tuning().Player.Speed)
	assert.NotSame(t, before, s.Atlas)

	require.NoError(t, os.WriteFile(path, []byte("capacity: -1\n"), 0o644))
	assert.ErrorIs(t, s.Reload(path), prefabs.ErrInvalidTuning)
	assert.Equal(t, float32(3), s.World.Tuning().PlayerSpeed)

	require.NoError(t, s.Reload(filepath.Join(dir, "other.yaml")))
}

func TestReloadScript(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Game.SpawnCurve = "spawn_curve.tengo"
	s := newSession(t, dir, cfg)

	scripts := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))
	path := filepath.Join(scripts, "spawn_curve.tengo")
	require.NoError(t, os.WriteFile(path, []byte("p = 1.0\n"), 0o644))

	require.NoError(t, s.Reload(path))
	assert.Equal(t, 1.0, s.Pipeline.Spawn.Curve.Probability(0))

	require.NoError(t, os.WriteFile(path, []byte("p = = 1\n"), 0o644))
	assert.Error(t, s.Reload(path))
	assert.Equal(t, 1.0, s.Pipeline.Spawn.Curve.Probability(0))
}

func TestHotReloadWatcher(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Debug.Enabled = true
	cfg.Debug.HotReload = true
	cfg.Debug.DumpInterval = 0
	s := newSession(t, dir, cfg)
	require.NotNil(t, s.watcher)

	// Rename into place so the watcher never sees a half-written file.
	staged := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(staged, []byte("enemy:\n  speed: 2\n"), 0o644))
	require.NoError(t, os.Rename(staged, filepath.Join(dir, "tuning.yaml")))

	require.Eventually(t, func() bool {
		s.Update()
		return s.World.Tuning().EnemySpeed == 2
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
}
