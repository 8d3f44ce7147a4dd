package system

import (
	"github.com/milk9111/gemswarm/ecs"
)

// SoundPlayer is the audio backend. Calls must not block the tick.
type SoundPlayer interface {
	PlayEffect(kind ecs.EventKind)
	StartMusic()
}

// AudioSystem drains the tick's events and hands them to the sound player.
// It runs after a game over too, so the final sound is heard.
type AudioSystem struct {
	Player SoundPlayer
}

func NewAudioSystem(p SoundPlayer) *AudioSystem {
	return &AudioSystem{Player: p}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	events := w.Events().Drain()
	if a.Player == nil {
		return
	}
	for _, evt := range events {
		if evt.Kind == ecs.EventMusic {
			a.Player.StartMusic()
			continue
		}
		a.Player.PlayEffect(evt.Kind)
	}
}
