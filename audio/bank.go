package audio

import (
	"github.com/milk9111/gemswarm/ecs"
)

// Bank maps gameplay events to sound effects.
type Bank map[ecs.EventKind]Params

// DefaultBank holds the stock effects.
func DefaultBank() Bank {
	return Bank{
		ecs.EventShoot: {
			Volume: 1, Randomness: 0.05, Frequency: 90,
			Sustain: 0.01, Release: 0.03, Shape: ShapeNoise, ShapeCurve: 1,
			Noise: 9, Modulation: 50, BitCrush: 0.2,
			SustainVolume: 0.2, Decay: 0.01,
		},
		ecs.EventHit: {
			Volume: 0.4, Randomness: 0.05, Frequency: 368,
			Attack: 0.01, Sustain: 0.1, Release: 0.3, Shape: ShapeNoise, ShapeCurve: 0.31,
			Noise: 1.7, BitCrush: 0.4,
			SustainVolume: 0.46, Decay: 0.1,
		},
		ecs.EventHurt: {
			Volume: 2, Randomness: 0.05, Frequency: 433,
			Attack: 0.01, Sustain: 0.06, Release: 0.11, Shape: ShapeTriangle, ShapeCurve: 2.79,
			Slide: 7.7, DeltaSlide: -8.6, Noise: 1.7, BitCrush: 0.4,
			SustainVolume: 0.54, Decay: 0.05,
		},
		ecs.EventGameOver: {
			Volume: 2.89, Randomness: 0.05, Frequency: 752,
			Attack: 0.04, Sustain: 0.4, Release: 0.44, Shape: ShapeTriangle, ShapeCurve: 1.39,
			Slide: 1, RepeatTime: 0.15, Noise: 1.3, Modulation: 19, BitCrush: 0.9,
			Delay: 0.32, SustainVolume: 0.39, Decay: 0.15, Tremolo: 0.31,
		},
		ecs.EventPickup: {
			Volume: 1, Randomness: 0.05, Frequency: 1267,
			Attack: 0.01, Sustain: 0.09, Release: 0.15, ShapeCurve: 1.95,
			PitchJump: 412, PitchJumpTime: 0.06,
			SustainVolume: 0.45, Decay: 0.02,
		},
	}
}

// Lookup returns the effect for kind.
func (b Bank) Lookup(kind ecs.EventKind) (Params, bool) {
	p, ok := b[kind]
	return p, ok
}
