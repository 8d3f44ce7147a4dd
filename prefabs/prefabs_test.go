package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/gemswarm/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	spec, err := LoadTuning(Loader{Dir: t.TempDir()}, TuningFile)
	require.NoError(t, err)

	assert.Equal(t, ecs.DefaultTuning(), spec.Tuning())

	kinds := spec.KindSpecs()
	require.Len(t, kinds, len(ecs.Kinds))
	for _, k := range ecs.Kinds {
		ks, ok := kinds[k]
		require.True(t, ok, k.String())
		assert.Len(t, ks.Pixels, FrameSize, k.String())
		for _, row := range ks.Pixels {
			assert.Len(t, row, FrameSize, k.String())
		}
		require.NotNil(t, ks.Color, k.String())
		assert.NotEmpty(t, ks.Glyph, k.String())
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte(`
enemy:
  speed: 2
capacity: 64
`), 0o644))

	l := Loader{Dir: dir}
	spec, err := LoadTuning(l, "prefabs/"+TuningFile)
	require.NoError(t, err)

	tuning := spec.Tuning()
	assert.Equal(t, float32(2), tuning.EnemySpeed)
	assert.Equal(t, 64, tuning.Capacity)
	assert.Equal(t, float32(8), tuning.Proximity, "missing keys keep defaults")
	assert.Empty(t, spec.Kinds)

	_, ok := l.ModTime(TuningFile)
	assert.True(t, ok)
	_, ok = Loader{Dir: t.TempDir()}.ModTime(TuningFile)
	assert.False(t, ok)
}

func TestLoadTuningErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"unknown kind", "kinds:\n  dragon:\n    glyph: D\n", ErrUnknownKind},
		{"zero capacity", "capacity: 0\n", ErrInvalidTuning},
		{"negative decay", "bullet:\n  decay: -1\n", ErrInvalidTuning},
		{"flat arena", "arena:\n  height: 0\n", ErrInvalidTuning},
		{"tall sprite", "kinds:\n  gem:\n    pixels: [a, b, c, d, e, f, g, h, i]\n", ErrInvalidTuning},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(c.body), 0o644))

			_, err := LoadTuning(Loader{Dir: dir}, "bad.yaml")
			require.Error(t, err)
			assert.True(t, errors.Is(err, c.want), err.Error())
		})
	}
}

func TestLoadTuningMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("kinds: [1, 2"), 0o644))

	_, err := LoadTuning(Loader{Dir: dir}, "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: unmarshal bad.yaml")

	_, err = LoadTuning(Loader{Dir: dir}, "missing.yaml")
	assert.Error(t, err)
}

func TestYAMLColor(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte(`color: "#10203080"`), 0o644))
	ks, err := LoadSpecFrom[KindSpec](Loader{Dir: dir}, "c.yaml")
	require.NoError(t, err)
	r, g, b, a := ks.Color.RGBA()
	assert.Equal(t, uint32(0x80), a>>8)
	assert.NotZero(t, r)
	assert.NotZero(t, g)
	assert.NotZero(t, b)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte(`color: "#12"`), 0o644))
	_, err = LoadSpecFrom[KindSpec](Loader{Dir: dir}, "c.yaml")
	assert.Error(t, err)
}

func TestScriptCurveEmbedded(t *testing.T) {
	curve, err := LoadScriptCurve(Loader{Dir: t.TempDir()}, "spawn_curve.tengo", 0.01, 0.001, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.01, curve.Probability(0), 1e-12)
	assert.InDelta(t, 0.07, curve.Probability(60), 1e-12)

	prev := curve.Probability(0)
	for ts := 1.0; ts < 1500; ts += 7 {
		p := curve.Probability(ts)
		require.GreaterOrEqual(t, p, prev, "t=%v", ts)
		prev = p
	}
}

func TestScriptCurveFallback(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	curve, err := NewScriptCurve("bad.tengo", []byte(`p = t > 5 ? "soon" : base`), 0.5, 0.25, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 0.5, curve.Probability(1))
	assert.Equal(t, 0.5+0.25*10, curve.Probability(10))
	assert.Equal(t, 0.5+0.25*11, curve.Probability(11))
	assert.Equal(t, 1, logs.Len(), "one log per distinct failure")
}

func TestScriptCurveCompileError(t *testing.T) {
	_, err := NewScriptCurve("broken.tengo", []byte(`p = (`), 0, 0, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: compile script broken.tengo")

	_, err = LoadScriptCurve(Loader{Dir: t.TempDir()}, "nope.tengo", 0, 0, nil)
	assert.Error(t, err)
}

func TestCleanScriptPath(t *testing.T) {
	for _, in := range []string{"a.tengo", "scripts/a.tengo", "prefabs/a.tengo", "prefabs/scripts/a.tengo"} {
		assert.Equal(t, "scripts/a.tengo", cleanScriptPath(in), in)
	}
	assert.Empty(t, cleanScriptPath(""))
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, TuningFile), []byte("capacity: 5\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, TuningFile, filepath.Base(name))
		assert.False(t, IsScript(name))
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}

func TestLoaderDirs(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, []string{dir}, Loader{Dir: dir}.Dirs())

	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	assert.Len(t, Loader{Dir: dir}.Dirs(), 2)
	assert.Empty(t, Loader{Dir: filepath.Join(dir, "absent")}.Dirs())
}
