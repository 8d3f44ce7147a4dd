package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/gemswarm/ecs"
	"gopkg.in/yaml.v3"
)

// TuningFile is the prefab holding gameplay constants and sprite art.
const TuningFile = "tuning.yaml"

// FrameSize is the width and height of a kind's sprite in pixels.
const FrameSize = 8

var (
	ErrUnknownKind   = errors.New("unknown entity kind")
	ErrInvalidTuning = errors.New("invalid tuning")
)

// LoadSpecFrom decodes filename into a fresh T.
func LoadSpecFrom[T any](l Loader, filename string) (T, error) {
	var zero T
	data, err := l.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TuningSpec struct {
	Arena    ArenaSpec           `yaml:"arena"`
	Capacity int                 `yaml:"capacity"`
	Player   PlayerSpec          `yaml:"player"`
	Bullet   BulletSpec          `yaml:"bullet"`
	Enemy    EnemySpec           `yaml:"enemy"`
	Combat   CombatSpec          `yaml:"combat"`
	Spawn    SpawnSpec           `yaml:"spawn"`
	Kinds    map[string]KindSpec `yaml:"kinds"`
}

type ArenaSpec struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type PlayerSpec struct {
	Speed        float32 `yaml:"speed"`
	FireCooldown int32   `yaml:"fire_cooldown"`
}

type BulletSpec struct {
	Speed  float32 `yaml:"speed"`
	Health int32   `yaml:"health"`
	Decay  float32 `yaml:"decay"`
}

type EnemySpec struct {
	Speed float32 `yaml:"speed"`
}

type CombatSpec struct {
	Proximity     float32 `yaml:"proximity"`
	ContactDamage int32   `yaml:"contact_damage"`
	GemScore      int     `yaml:"gem_score"`
}

type SpawnSpec struct {
	Base   float64 `yaml:"base"`
	Rate   float64 `yaml:"rate"`
	Radius float64 `yaml:"radius"`
}

// KindSpec is the look of one entity kind. Pixels are FrameSize rows where
// '#' paints Color, '+' paints Accent and anything else is transparent.
type KindSpec struct {
	Glyph  string     `yaml:"glyph"`
	Color  *YAMLColor `yaml:"color"`
	Accent *YAMLColor `yaml:"accent"`
	Pixels []string   `yaml:"pixels"`
}

// SpecFromTuning converts t into a spec with no kind art.
func SpecFromTuning(t ecs.Tuning) TuningSpec {
	return TuningSpec{
		Arena:    ArenaSpec{Width: t.ArenaWidth, Height: t.ArenaHeight},
		Capacity: t.Capacity,
		Player:   PlayerSpec{Speed: t.PlayerSpeed, FireCooldown: t.FireCooldown},
		Bullet:   BulletSpec{Speed: t.BulletSpeed, Health: t.BulletHealth, Decay: t.BulletDecay},
		Enemy:    EnemySpec{Speed: t.EnemySpeed},
		Combat: CombatSpec{
			Proximity:     t.Proximity,
			ContactDamage: t.ContactDamage,
			GemScore:      t.GemScore,
		},
		Spawn: SpawnSpec{Base: t.SpawnBase, Rate: t.SpawnRate, Radius: t.SpawnRadius},
	}
}

// Tuning converts the prefab into gameplay constants.
func (s *TuningSpec) Tuning() ecs.Tuning {
	return ecs.Tuning{
		ArenaWidth:    s.Arena.Width,
		ArenaHeight:   s.Arena.Height,
		Capacity:      s.Capacity,
		PlayerSpeed:   s.Player.Speed,
		FireCooldown:  s.Player.FireCooldown,
		BulletSpeed:   s.Bullet.Speed,
		BulletHealth:  s.Bullet.Health,
		BulletDecay:   s.Bullet.Decay,
		EnemySpeed:    s.Enemy.Speed,
		Proximity:     s.Combat.Proximity,
		ContactDamage: s.Combat.ContactDamage,
		GemScore:      s.Combat.GemScore,
		SpawnBase:     s.Spawn.Base,
		SpawnRate:     s.Spawn.Rate,
		SpawnRadius:   s.Spawn.Radius,
	}
}

// KindSpecs returns the art keyed by kind.
func (s *TuningSpec) KindSpecs() map[ecs.Kind]KindSpec {
	out := make(map[ecs.Kind]KindSpec, len(s.Kinds))
	for name, spec := range s.Kinds {
		if k, ok := ecs.ParseKind(name); ok {
			out[k] = spec
		}
	}
	return out
}

// Validate rejects unusable constants and kinds outside the fixed set.
func (s *TuningSpec) Validate() error {
	switch {
	case s.Arena.Width <= 0 || s.Arena.Height <= 0:
		return fmt.Errorf("arena %gx%g: %w", s.Arena.Width, s.Arena.Height, ErrInvalidTuning)
	case s.Capacity <= 0:
		return fmt.Errorf("capacity %d: %w", s.Capacity, ErrInvalidTuning)
	case s.Combat.Proximity <= 0:
		return fmt.Errorf("proximity %g: %w", s.Combat.Proximity, ErrInvalidTuning)
	case s.Bullet.Decay < 0:
		return fmt.Errorf("bullet decay %g: %w", s.Bullet.Decay, ErrInvalidTuning)
	case s.Player.FireCooldown < 0:
		return fmt.Errorf("fire cooldown %d: %w", s.Player.FireCooldown, ErrInvalidTuning)
	}

	names := make([]string, 0, len(s.Kinds))
	for name := range s.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := ecs.ParseKind(name); !ok {
			return fmt.Errorf("kind %q: %w", name, ErrUnknownKind)
		}
		if rows := s.Kinds[name].Pixels; len(rows) > FrameSize {
			return fmt.Errorf("kind %q has %d pixel rows: %w", name, len(rows), ErrInvalidTuning)
		}
	}
	return nil
}

// LoadTuning reads a tuning prefab over the stock constants and validates
// it. Constants missing from the file keep their defaults.
func LoadTuning(l Loader, filename string) (*TuningSpec, error) {
	data, err := l.Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec := SpecFromTuning(ecs.DefaultTuning())
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
