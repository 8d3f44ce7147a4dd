package system

import (
	"github.com/milk9111/gemswarm/ecs"
	"github.com/milk9111/gemswarm/input"
)

// PipelineConfig selects the collaborators wired into a game world.
type PipelineConfig struct {
	Input input.Source
	Sound SoundPlayer
	Curve Curve

	// DumpInterval enables the debug system when non-zero.
	DumpInterval uint64
	Debug        bool
}

// Pipeline is the per-tick system order of a game.
type Pipeline struct {
	Spawn    *SpawnSystem
	Control  *PlayerControlSystem
	Lifetime *LifetimeSystem
	Combat   *CombatSystem
	Audio    *AudioSystem
	Debug    *DebugSystem
}

// Install builds the pipeline and appends it to w's schedule: spawn, player
// control, lifetime, combat, audio, then debug.
func Install(w *ecs.World, cfg PipelineConfig) *Pipeline {
	p := &Pipeline{
		Spawn:    NewSpawnSystem(cfg.Curve),
		Control:  NewPlayerControlSystem(cfg.Input),
		Lifetime: NewLifetimeSystem(),
		Combat:   NewCombatSystem(),
		Audio:    NewAudioSystem(cfg.Sound),
	}
	if cfg.Debug {
		p.Debug = NewDebugSystem(cfg.DumpInterval, p.Control.Input)
	}

	w.AddSystem(p.Spawn)
	w.AddSystem(p.Control)
	w.AddSystem(p.Lifetime)
	w.AddSystem(p.Combat)
	w.AddSystem(p.Audio)
	if p.Debug != nil {
		w.AddSystem(p.Debug)
	}
	return p
}
