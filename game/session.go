package game

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/milk9111/gemswarm/assets"
	"github.com/milk9111/gemswarm/config"
	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/ecs/system"
	"github.com/milk9111/gemswarm/input"
	"github.com/milk9111/gemswarm/prefabs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options wires a session to its frontend.
type Options struct {
	Config *config.Config
	Loader prefabs.Loader
	Input  input.Source
	Sound  system.SoundPlayer
	Log    *zap.Logger
	// Preload runs concurrently with asset loading, before the first tick.
	Preload []func(ctx context.Context) error
}

// Session owns one world, its system pipeline and everything loaded for it:
// tuning, spawn curve, atlas and the optional prefab watcher.
type Session struct {
	World    *ecs.World
	Pipeline *system.Pipeline
	Atlas    *assets.Atlas

	cfg     *config.Config
	loader  prefabs.Loader
	log     *zap.Logger
	tuning  *prefabs.TuningSpec
	watcher *prefabs.Watcher
}

// New loads everything a game needs and returns a session ready to tick.
func New(ctx context.Context, opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	loader := opts.Loader
	if loader.Dir == "" {
		loader = prefabs.Loader{Dir: cfg.Game.PrefabsDir}
	}

	tuning, err := prefabs.LoadTuning(loader, cfg.Game.Tuning)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		loader: loader,
		log:    log,
		tuning: tuning,
	}

	var curve system.Curve
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		atlas, err := assets.Load(gctx, assets.Options{
			Path:    cfg.Assets.AtlasPath,
			Kinds:   tuning.KindSpecs(),
			Timeout: cfg.Assets.LoadTimeout,
		})
		if err != nil {
			return err
		}
		s.Atlas = atlas
		return nil
	})
	if cfg.Game.SpawnCurve != "" {
		g.Go(func() error {
			c, err := s.loadCurve()
			if err != nil {
				return err
			}
			curve = c
			return nil
		})
	}
	for _, fn := range opts.Preload {
		g.Go(func() error { return fn(gctx) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	worldOpts := []ecs.Option{
		ecs.WithLogger(log),
		ecs.WithTPS(cfg.Window.TPS),
	}
	if cfg.Game.Seed != 0 {
		worldOpts = append(worldOpts, ecs.WithSeed(cfg.Game.Seed))
	}
	s.World = ecs.NewWorld(tuning.Tuning(), worldOpts...)
	s.Pipeline = system.Install(s.World, system.PipelineConfig{
		Input:        opts.Input,
		Sound:        opts.Sound,
		Curve:        curve,
		Debug:        cfg.Debug.Enabled,
		DumpInterval: cfg.Debug.DumpInterval,
	})

	if cfg.Debug.Enabled && cfg.Debug.HotReload {
		if dirs := loader.Dirs(); len(dirs) > 0 {
			w, err := prefabs.NewWatcher(dirs...)
			if err != nil {
				log.Warn("prefab watcher disabled", zap.Error(err))
			} else {
				s.watcher = w
				log.Info("watching prefabs", zap.Strings("dirs", dirs))
			}
		}
	}

	log.Info("session ready",
		zap.Int("capacity", s.World.Store().Cap()),
		zap.Int("tps", s.World.TPS()),
		zap.Bool("scripted_curve", curve != nil),
	)
	return s, nil
}

func (s *Session) loadCurve() (*prefabs.ScriptCurve, error) {
	return prefabs.LoadScriptCurve(s.loader, s.cfg.Game.SpawnCurve,
		s.tuning.Spawn.Base, s.tuning.Spawn.Rate, s.log)
}

// Update applies pending prefab changes and runs one tick.
func (s *Session) Update() {
	s.pollWatcher()
	s.World.Update()
}

func (s *Session) pollWatcher() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-s.watcher.Events:
			if !ok {
				s.watcher = nil
				return
			}
			if err := s.Reload(path); err != nil {
				s.log.Warn("reload failed, keeping previous prefabs", zap.String("path", path), zap.Error(err))
			}
		case err, ok := <-s.watcher.Errors:
			if ok {
				s.log.Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

// Reload re-reads the prefab at path. Scripts replace the spawn curve;
// anything else reloads the tuning and redraws the generated atlas. On
// error the previous state is kept.
func (s *Session) Reload(path string) error {
	if prefabs.IsScript(path) {
		if s.cfg.Game.SpawnCurve == "" || filepath.Base(path) != filepath.Base(s.cfg.Game.SpawnCurve) {
			return nil
		}
		curve, err := s.loadCurve()
		if err != nil {
			return err
		}
		s.Pipeline.Spawn.Curve = curve
		s.log.Info("spawn curve reloaded", zap.String("script", s.cfg.Game.SpawnCurve))
		return nil
	}

	if filepath.Base(path) != filepath.Base(s.cfg.Game.Tuning) {
		return nil
	}
	tuning, err := prefabs.LoadTuning(s.loader, s.cfg.Game.Tuning)
	if err != nil {
		return err
	}
	s.tuning = tuning
	s.World.SetTuning(tuning.Tuning())
	if s.cfg.Assets.AtlasPath == "" {
		s.Atlas = assets.Build(tuning.KindSpecs())
	}
	if s.cfg.Game.SpawnCurve != "" {
		// The script reads base and rate at compile time.
		if curve, err := s.loadCurve(); err == nil {
			s.Pipeline.Spawn.Curve = curve
		} else {
			s.log.Warn("spawn curve kept", zap.Error(err))
		}
	}
	if tuning.Capacity != s.World.Store().Cap() {
		s.log.Warn("capacity change needs a restart",
			zap.Int("configured", tuning.Capacity),
			zap.Int("current", s.World.Store().Cap()),
		)
	}
	fields := []zap.Field{zap.String("file", s.cfg.Game.Tuning)}
	if mod, ok := s.loader.ModTime(s.cfg.Game.Tuning); ok {
		fields = append(fields, zap.Time("modified", mod))
	}
	s.log.Info("tuning reloaded", fields...)
	return nil
}

// Tuning is the prefab the world is currently running with.
func (s *Session) Tuning() *prefabs.TuningSpec {
	return s.tuning
}

func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	if err != nil {
		return fmt.Errorf("game: close watcher: %w", err)
	}
	return nil
}
