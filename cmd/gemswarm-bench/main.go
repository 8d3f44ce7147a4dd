// Profiling:
// go build ./cmd/gemswarm-bench
// ./gemswarm-bench -ticks 100000 -profile cpu
// go tool pprof -http=":8000" ./gemswarm-bench cpu.pprof

package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/milk9111/gemswarm/config"
	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/game"
	"github.com/milk9111/gemswarm/input"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gemswarm-bench:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a TOML config file")
	ticks := flag.Int("ticks", 36000, "ticks to simulate")
	seed := flag.Int64("seed", 1, "random seed")
	mode := flag.String("profile", "cpu", "cpu, mem or none")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	cfg.Game.Seed = *seed
	cfg.Audio.Enabled = false
	cfg.Debug.Enabled = false

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var world *ecs.World
	pilot := &input.Func{Sample: func() input.Raw { return autopilot(world) }}
	session, err := game.New(context.Background(), game.Options{Config: cfg, Input: pilot, Log: log})
	if err != nil {
		return err
	}
	defer func() { _ = session.Close() }()
	world = session.World

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "none":
	default:
		return fmt.Errorf("unknown profile mode %q", *mode)
	}

	stats := Simulate(session, *ticks)
	log.Info("bench done",
		zap.Uint64("ticks", stats.Ticks),
		zap.Duration("wall", stats.Wall),
		zap.Duration("per_tick", stats.PerTick()),
		zap.Int("peak_live", stats.PeakLive),
		zap.Int("high_water", world.Store().HighWater()),
		zap.Int("score", world.Score()),
		zap.Bool("halted", !world.Running()),
	)
	return nil
}

// Stats summarizes a headless run.
type Stats struct {
	Ticks    uint64
	Wall     time.Duration
	PeakLive int
}

func (s Stats) PerTick() time.Duration {
	if s.Ticks == 0 {
		return 0
	}
	return s.Wall / time.Duration(s.Ticks)
}

// Simulate runs up to n ticks, stopping early at game over.
func Simulate(s *game.Session, n int) Stats {
	var stats Stats
	start := time.Now()
	for range n {
		if !s.World.Running() {
			break
		}
		s.Update()
		stats.PeakLive = max(stats.PeakLive, s.World.Store().Len())
	}
	stats.Wall = time.Since(start)
	stats.Ticks = s.World.Tick()
	return stats
}

// autopilot keeps the left button held aimed at the nearest enemy and steps
// away from it once it gets close.
func autopilot(w *ecs.World) input.Raw {
	var raw input.Raw
	if w == nil {
		return raw
	}
	store := w.Store()
	px, py := store.Position(w.Player())

	best := math.MaxFloat64
	var tx, ty float32
	found := false
	for _, e := range store.Live() {
		if !store.Kind(e).IsEnemy() {
			continue
		}
		x, y := store.Position(e)
		d := math.Hypot(float64(x-px), float64(y-py))
		if d < best {
			best, tx, ty, found = d, x, y, true
		}
	}
	if !found {
		return raw
	}

	raw.SetButton(input.MouseLeft, true)
	raw.MouseX, raw.MouseY = float64(tx), float64(ty)
	if best < 48 {
		raw.SetKey(input.KeyLeft, tx > px)
		raw.SetKey(input.KeyRight, tx < px)
		raw.SetKey(input.KeyUp, ty > py)
		raw.SetKey(input.KeyDown, ty < py)
	}
	return raw
}
