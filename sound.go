package main

import (
	"bytes"
	"context"
	"math/rand"

	"github.com/gopxl/beep"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/gemswarm/audio"
	"github.com/milk9111/gemswarm/ecs"
	"go.uber.org/zap"
)

// ebitenSound plays pre-rendered effects and the music loop through the
// ebiten audio context.
type ebitenSound struct {
	ctx    *ebaudio.Context
	volume float64
	bank   audio.Bank
	track  audio.Track
	log    *zap.Logger

	effects map[ecs.EventKind][]byte
	music   []byte
	loop    *ebaudio.Player
}

func newEbitenSound(sampleRate int, volume float64, log *zap.Logger) *ebitenSound {
	return &ebitenSound{
		ctx:     ebaudio.NewContext(sampleRate),
		volume:  volume,
		bank:    audio.DefaultBank(),
		track:   audio.DefaultTrack(),
		log:     log,
		effects: make(map[ecs.EventKind][]byte),
	}
}

// Preload renders every effect and one pass of the music to 16-bit PCM.
// Each effect gets one fixed variation.
func (s *ebitenSound) Preload(ctx context.Context) error {
	rate := beep.SampleRate(s.ctx.SampleRate())
	for kind, params := range s.bank {
		if err := ctx.Err(); err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(int64(len(kind))))
		s.effects[kind] = audio.PCM16(params.Streamer(rate, rng), 0)
	}
	s.music = audio.PCM16(audio.NewSamples(s.track.Render(rate), false), 0)
	s.log.Debug("sound bank rendered",
		zap.Int("effects", len(s.effects)),
		zap.Int("music_bytes", len(s.music)),
	)
	return nil
}

func (s *ebitenSound) PlayEffect(kind ecs.EventKind) {
	pcm, ok := s.effects[kind]
	if !ok {
		s.log.Debug("no sound for event", zap.String("event", string(kind)))
		return
	}
	p := s.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(s.volume)
	p.Play()
}

func (s *ebitenSound) StartMusic() {
	if s.loop != nil || len(s.music) == 0 {
		return
	}
	loop := ebaudio.NewInfiniteLoop(bytes.NewReader(s.music), int64(len(s.music)))
	p, err := s.ctx.NewPlayer(loop)
	if err != nil {
		s.log.Warn("music disabled", zap.Error(err))
		return
	}
	p.SetVolume(s.volume)
	p.Play()
	s.loop = p
}
