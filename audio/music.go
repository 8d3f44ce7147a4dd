package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// Note is one step of a music pattern. Pitch is in semitones from A4; rest
// steps are skipped.
type Note struct {
	Pitch int
	Rest  bool
}

// Track is a looping pattern of voices sharing one step length.
type Track struct {
	BPM    float64
	Voices []Voice
}

// Voice plays Notes with a fixed instrument, one note per step.
type Voice struct {
	Instrument Params
	Notes      []Note
}

func n(p int) Note { return Note{Pitch: p} }

var rest = Note{Rest: true}

// DefaultTrack is the background loop: a pulsing bass under a minor
// arpeggio.
func DefaultTrack() Track {
	bass := Params{
		Volume: 0.8, Attack: 0.005, Sustain: 0.08, Release: 0.1,
		Shape: ShapeTriangle, ShapeCurve: 1, SustainVolume: 0.6, Decay: 0.04,
	}
	lead := Params{
		Volume: 0.35, Attack: 0.01, Sustain: 0.05, Release: 0.12,
		Shape: ShapeSine, ShapeCurve: 1, SustainVolume: 0.5, Decay: 0.03,
		Modulation: 0.5,
	}
	return Track{
		BPM: 125,
		Voices: []Voice{
			{Instrument: bass, Notes: []Note{
				n(-24), rest, n(-24), n(-12), n(-24), rest, n(-24), n(-12),
				n(-29), rest, n(-29), n(-17), n(-27), rest, n(-27), n(-15),
			}},
			{Instrument: lead, Notes: []Note{
				n(0), n(3), n(7), n(12), n(7), n(3), n(0), rest,
				n(-4), n(0), n(3), n(8), n(5), n(3), n(2), rest,
			}},
		},
	}
}

// Steps is the pattern length of the longest voice.
func (t Track) Steps() int {
	steps := 0
	for _, v := range t.Voices {
		steps = max(steps, len(v.Notes))
	}
	return steps
}

// Render mixes one pass of the pattern into mono samples. Note tails that
// run past the end wrap to the start so the loop is seamless.
func (t Track) Render(rate beep.SampleRate) []float64 {
	if t.BPM <= 0 || t.Steps() == 0 {
		return nil
	}
	stepLen := int(float64(rate) * 60 / t.BPM / 2)
	out := make([]float64, stepLen*t.Steps())

	for _, v := range t.Voices {
		for i, note := range v.Notes {
			if note.Rest {
				continue
			}
			p := v.Instrument
			p.Frequency = 440 * math.Pow(2, float64(note.Pitch)/12)
			start := i * stepLen
			for k, s := range p.Render(rate, nil) {
				out[(start+k)%len(out)] += s
			}
		}
	}
	for i := range out {
		out[i] = clamp(out[i])
	}
	return out
}

// Music returns an endless stream of the track.
func Music(t Track, rate beep.SampleRate) beep.Streamer {
	return NewSamples(t.Render(rate), true)
}
