package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"
)

// DefaultSampleRate is used when a config leaves the rate unset.
const DefaultSampleRate = beep.SampleRate(44100)

// masterGain keeps stacked effects from clipping.
const masterGain = 0.3

// Shape selects the oscillator wave.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeTriangle
	ShapeSaw
	ShapeTan
	ShapeNoise
)

// Params describes one procedural sound effect. Times are in seconds,
// frequencies in Hz.
type Params struct {
	Volume        float64
	Randomness    float64
	Frequency     float64
	Attack        float64
	Sustain       float64
	Release       float64
	Shape         Shape
	ShapeCurve    float64
	Slide         float64
	DeltaSlide    float64
	PitchJump     float64
	PitchJumpTime float64
	RepeatTime    float64
	Noise         float64
	Modulation    float64
	BitCrush      float64
	Delay         float64
	SustainVolume float64
	Decay         float64
	Tremolo       float64
}

// DefaultParams is a short 220 Hz sine blip.
func DefaultParams() Params {
	return Params{
		Volume:        1,
		Randomness:    0.05,
		Frequency:     220,
		Release:       0.1,
		ShapeCurve:    1,
		SustainVolume: 1,
	}
}

// Render synthesizes the effect into mono samples in [-1, 1] scaled by the
// master gain. rng drives the pitch randomness; nil means no randomness.
func (p Params) Render(rate beep.SampleRate, rng *rand.Rand) []float64 {
	sr := float64(rate)
	if sr <= 0 {
		sr = float64(DefaultSampleRate)
	}
	const pi2 = math.Pi * 2

	jitter := 1.0
	if rng != nil {
		jitter = 1 + p.Randomness*2*rng.Float64() - p.Randomness
	}

	slide := p.Slide * 500 * pi2 / sr / sr
	startSlide := slide
	frequency := p.Frequency * jitter * pi2 / sr
	startFrequency := frequency
	attack := p.Attack*sr + 9
	decay := p.Decay * sr
	sustain := p.Sustain * sr
	release := p.Release * sr
	delay := p.Delay * sr
	deltaSlide := p.DeltaSlide * 500 * pi2 / (sr * sr * sr)
	modulation := p.Modulation * pi2 / sr
	pitchJump := p.PitchJump * pi2 / sr
	pitchJumpTime := p.PitchJumpTime * sr
	repeatTime := int(p.RepeatTime * sr)
	crush := int(p.BitCrush * 100)

	length := int(attack + decay + sustain + release + delay)
	out := make([]float64, length)

	var (
		t, s  float64
		c, r  int
		tm    float64
		j     = 1
		shape = p.Shape
	)
	for i := 0; i < length; i++ {
		c++
		if crush == 0 || c%crush == 0 {
			s = wave(shape, t)

			trem := 1.0
			if repeatTime > 0 {
				trem = 1 - p.Tremolo + p.Tremolo*math.Sin(pi2*float64(i)/float64(repeatTime))
			}

			fi := float64(i)
			var env float64
			switch {
			case fi < attack:
				env = fi / attack
			case fi < attack+decay:
				env = 1 - ((fi-attack)/decay)*(1-p.SustainVolume)
			case fi < attack+decay+sustain:
				env = p.SustainVolume
			case fi < float64(length)-delay:
				env = (float64(length) - fi - delay) / release * p.SustainVolume
			}
			s = trem * sign(s) * math.Pow(math.Abs(s), p.ShapeCurve) * p.Volume * masterGain * env

			if delay > 0 {
				echo := 0.0
				if fi >= delay {
					tail := 1.0
					if fi >= float64(length)-delay {
						tail = (float64(length) - fi) / delay
					}
					echo = tail * out[i-int(delay)] / 2
				}
				s = s/2 + echo
			}
		}
		out[i] = s

		slide += deltaSlide
		frequency += slide
		f := frequency * math.Cos(modulation*tm)
		tm++
		t += f - f*p.Noise*(1-math.Mod((math.Sin(float64(i))+1)*1e9, 2))

		if j > 0 {
			j++
			if float64(j) > pitchJumpTime {
				frequency += pitchJump
				startFrequency += pitchJump
				j = 0
			}
		}
		if repeatTime > 0 {
			r++
			if r%repeatTime == 0 {
				frequency = startFrequency
				slide = startSlide
				if j == 0 {
					j = 1
				}
			}
		}
	}
	for i := range out {
		out[i] = clamp(out[i])
	}
	return out
}

// Streamer renders the effect and returns it as a finite stereo stream.
func (p Params) Streamer(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return NewSamples(p.Render(rate, rng), false)
}

func wave(shape Shape, t float64) float64 {
	const pi2 = math.Pi * 2
	switch shape {
	case ShapeTriangle:
		return 1 - 4*math.Abs(math.Round(t/pi2)-t/pi2)
	case ShapeSaw:
		return 1 - math.Mod(math.Mod(2*t/pi2, 2)+2, 2)
	case ShapeTan:
		return math.Max(math.Min(math.Tan(t), 1), -1)
	case ShapeNoise:
		return math.Sin(math.Pow(math.Mod(t, pi2), 3))
	default:
		return math.Sin(t)
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// Samples streams a mono buffer to both channels, optionally wrapping
// around forever.
type Samples struct {
	buf  []float64
	pos  int
	loop bool
}

func NewSamples(buf []float64, loop bool) *Samples {
	return &Samples{buf: buf, loop: loop}
}

func (s *Samples) Stream(samples [][2]float64) (n int, ok bool) {
	if len(s.buf) == 0 {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.buf) {
			if !s.loop {
				return i, i > 0
			}
			s.pos = 0
		}
		v := s.buf[s.pos]
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *Samples) Err() error { return nil }

// Len is the number of samples in one pass.
func (s *Samples) Len() int { return len(s.buf) }
