// Command gemswarm-term plays the game in a terminal. Each cell stands for a
// patch of the arena; held keys are simulated since terminals do not report
// key releases.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/gemswarm/audio"
	"github.com/milk9111/gemswarm/config"
	"github.com/milk9111/gemswarm/game"
	"github.com/milk9111/gemswarm/input"
	"github.com/milk9111/gemswarm/render"
	"go.uber.org/zap"
)

const defaultLogFile = "gemswarm-term.log"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gemswarm-term:", err)
		os.Exit(1)
	}
}

// speakerLock serializes mixer changes with the speaker's reader.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

func run() error {
	configPath := flag.String("config", "", "path to a TOML config file")
	debug := flag.Bool("debug", false, "enable debug mode")
	seed := flag.Int64("seed", 0, "random seed, 0 for the clock")
	hold := flag.Int("hold", input.DefaultHoldTicks, "ticks a key press counts as held")
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
	if cfg.Logging.File == "" {
		cfg.Logging.File = defaultLogFile
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	keys := input.NewTerminal(1, 1)
	keys.HoldTicks = *hold
	opts := game.Options{Config: cfg, Input: keys, Log: log}

	if cfg.Audio.Enabled {
		rate := beep.SampleRate(cfg.Audio.SampleRate)
		if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer speaker.Close()
			player := audio.NewPlayer(audio.PlayerConfig{
				Rate:   rate,
				Volume: cfg.Audio.MasterVolume,
				Locker: speakerLock{},
				Seed:   cfg.Game.Seed,
				Log:    log,
			})
			speaker.Play(player.Output())
			opts.Sound = player
		}
	}

	session, err := game.New(context.Background(), opts)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	defer func() { _ = session.Close() }()

	canvas := render.NewTerminal(screen, 1, 1)
	fit := func() {
		cols, rows := screen.Size()
		t := session.World.Tuning()
		cw := float64(t.ArenaWidth) / float64(max(cols, 1))
		ch := float64(t.ArenaHeight) / float64(max(rows, 1))
		canvas.CellW, canvas.CellH = cw, ch
		keys.CellW, keys.CellH = cw, ch
	}
	fit()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Window.TPS))
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				fit()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					log.Info("bye",
						zap.Int("score", session.World.Score()),
						zap.Float64("elapsed", session.World.Elapsed()),
					)
					return nil
				}
				keys.HandleEvent(ev)
			default:
				keys.HandleEvent(ev)
			}
		case <-ticker.C:
			session.Update()
			render.DrawScene(canvas, session.World, session.Atlas)
			if !session.World.Running() {
				drawGameOver(screen, session)
			}
		}
	}
}

func drawGameOver(screen tcell.Screen, s *game.Session) {
	cols, rows := screen.Size()
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("SCORE %d   TIME %ds", s.World.Score(), int(s.World.Elapsed())),
		"PRESS Q TO QUIT",
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack).Bold(true)
	top := rows/2 - len(lines)/2
	for i, line := range lines {
		x := (cols - len(line)) / 2
		for j, r := range line {
			screen.SetContent(x+j, top+i, r, nil, style)
		}
	}
	screen.Show()
}
