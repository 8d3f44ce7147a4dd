package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/milk9111/gemswarm/ecs"
	"go.uber.org/zap"
)

// PlayerConfig wires a mixer player.
type PlayerConfig struct {
	Rate   beep.SampleRate
	Volume float64
	Bank   Bank
	Track  Track
	// Locker guards the mixer against the output device's reader, e.g. the
	// speaker lock. Nil uses a private mutex.
	Locker sync.Locker
	Seed   int64
	Log    *zap.Logger
}

// Player plays effects and music through one beep mixer. Stream the value
// returned by Output into a device.
type Player struct {
	mixer  *beep.Mixer
	out    beep.Streamer
	music  *beep.Ctrl
	bank   Bank
	track  Track
	rate   beep.SampleRate
	rng    *rand.Rand
	locker sync.Locker
	log    *zap.Logger
}

func NewPlayer(cfg PlayerConfig) *Player {
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultSampleRate
	}
	if cfg.Bank == nil {
		cfg.Bank = DefaultBank()
	}
	if cfg.Track.BPM == 0 {
		cfg.Track = DefaultTrack()
	}
	if cfg.Locker == nil {
		cfg.Locker = &sync.Mutex{}
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	mixer := &beep.Mixer{}
	return &Player{
		mixer:  mixer,
		out:    withVolume(mixer, cfg.Volume),
		bank:   cfg.Bank,
		track:  cfg.Track,
		rate:   cfg.Rate,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		locker: cfg.Locker,
		log:    cfg.Log,
	}
}

// withVolume scales s by a linear gain. Zero or less mutes.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Output is the mixed stream.
func (p *Player) Output() beep.Streamer {
	return p.out
}

func (p *Player) Rate() beep.SampleRate {
	return p.rate
}

// PlayEffect starts the effect mapped to kind. Unknown kinds are ignored.
func (p *Player) PlayEffect(kind ecs.EventKind) {
	params, ok := p.bank.Lookup(kind)
	if !ok {
		p.log.Debug("no sound for event", zap.String("event", string(kind)))
		return
	}
	s := params.Streamer(p.rate, p.rng)
	p.locker.Lock()
	p.mixer.Add(s)
	p.locker.Unlock()
}

// StartMusic starts the background loop. Later calls do nothing.
func (p *Player) StartMusic() {
	p.locker.Lock()
	defer p.locker.Unlock()
	if p.music != nil {
		return
	}
	p.music = &beep.Ctrl{Streamer: Music(p.track, p.rate), Paused: false}
	p.mixer.Add(p.music)
}

// MusicPlaying reports whether the background loop was started.
func (p *Player) MusicPlaying() bool {
	p.locker.Lock()
	defer p.locker.Unlock()
	return p.music != nil && !p.music.Paused
}

// Voices is the number of streams currently in the mixer.
func (p *Player) Voices() int {
	p.locker.Lock()
	defer p.locker.Unlock()
	return p.mixer.Len()
}
