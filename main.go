package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gemswarm/config"
	"github.com/milk9111/gemswarm/ecs/system"
	"github.com/milk9111/gemswarm/game"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gemswarm:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a TOML config file")
	debug := flag.Bool("debug", false, "enable debug mode (store dumps, hot reload, overlay)")
	seed := flag.Int64("seed", 0, "random seed, 0 for the clock")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	exportAtlas := flag.String("export-atlas", "", "write the generated sprite atlas to this PNG and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *debug {
		cfg.Debug.Enabled = true
		cfg.Logging.Level = "debug"
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	opts := game.Options{
		Config: cfg,
		Input:  &ebitenInput{},
		Log:    log,
	}
	if cfg.Audio.Enabled && *exportAtlas == "" {
		sound := newEbitenSound(cfg.Audio.SampleRate, cfg.Audio.MasterVolume, log)
		opts.Sound = sound
		opts.Preload = append(opts.Preload, sound.Preload)
	}

	session, err := game.New(context.Background(), opts)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	defer func() { _ = session.Close() }()

	if *exportAtlas != "" {
		return writeAtlas(session, *exportAtlas)
	}
	if cfg.Debug.Enabled {
		system.Dump(session.World)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	t := session.World.Tuning()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(t.ArenaWidth)*cfg.Window.Scale, int(t.ArenaHeight)*cfg.Window.Scale)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)

	g := NewGame(session, cfg.Debug.Enabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Error("game loop", zap.Error(err))
		return err
	}
	log.Info("bye",
		zap.Int("score", session.World.Score()),
		zap.Float64("elapsed", session.World.Elapsed()),
	)
	return nil
}

func writeAtlas(s *game.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export atlas: %w", err)
	}
	if err := s.Atlas.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
