package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Game    GameConfig    `toml:"game"`
	Assets  AssetsConfig  `toml:"assets"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type WindowConfig struct {
	Title string `toml:"title"`
	Scale int    `toml:"scale"` // window pixels per logical pixel
	TPS   int    `toml:"tps"`
}

type GameConfig struct {
	Seed       int64  `toml:"seed"` // 0 seeds from the clock
	Tuning     string `toml:"tuning"`
	SpawnCurve string `toml:"spawn_curve"` // tengo script name, empty for the linear curve
	PrefabsDir string `toml:"prefabs_dir"`
}

type AssetsConfig struct {
	AtlasPath   string        `toml:"atlas_path"`
	LoadTimeout time.Duration `toml:"load_timeout"`
}

type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"` // 0.0-1.0
	SampleRate   int     `toml:"sample_rate"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty logs to stderr
}

type DebugConfig struct {
	Enabled      bool   `toml:"enabled"`
	DumpInterval uint64 `toml:"dump_interval"` // ticks between store dumps, 0 disables
	HotReload    bool   `toml:"hot_reload"`
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "Gem Swarm",
			Scale: 2,
			TPS:   60,
		},
		Game: GameConfig{
			Tuning:     "tuning.yaml",
			PrefabsDir: "prefabs",
		},
		Assets: AssetsConfig{
			LoadTimeout: 5 * time.Second,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.5,
			SampleRate:   44100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			DumpInterval: 600,
			HotReload:    true,
		},
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Scale <= 0:
		return fmt.Errorf("window.scale %d: %w", c.Window.Scale, ErrInvalid)
	case c.Window.TPS <= 0:
		return fmt.Errorf("window.tps %d: %w", c.Window.TPS, ErrInvalid)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("audio.sample_rate %d: %w", c.Audio.SampleRate, ErrInvalid)
	case c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1:
		return fmt.Errorf("audio.master_volume %v: %w", c.Audio.MasterVolume, ErrInvalid)
	case c.Assets.LoadTimeout < 0:
		return fmt.Errorf("assets.load_timeout %v: %w", c.Assets.LoadTimeout, ErrInvalid)
	case c.Game.Tuning == "":
		return fmt.Errorf("game.tuning is empty: %w", ErrInvalid)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalid)
	}
	return nil
}
