package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gemswarm/game"
	"github.com/milk9111/gemswarm/render"
)

var errQuit = errors.New("quit")

type Game struct {
	session *game.Session
	batch   *Batch
	over    *gameOverUI
	shown   bool
	quit    bool
	debug   bool

	width, height int
}

func NewGame(s *game.Session, debug bool) *Game {
	t := s.World.Tuning()
	g := &Game{
		session: s,
		batch:   NewBatch(),
		debug:   debug,
		width:   int(t.ArenaWidth),
		height:  int(t.ArenaHeight),
	}
	g.over = newGameOverUI(g.width, g.height, func() { g.quit = true })
	return g
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	g.session.Update()

	if !g.session.World.Running() {
		if !g.shown {
			g.over.Show(g.session.World)
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
			g.shown = true
		}
		g.over.ui.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.batch.Begin(screen, g.session.Atlas)
	render.DrawScene(g.batch, g.session.World, g.session.Atlas)

	if g.shown {
		g.over.ui.Draw(screen)
	}
	if g.debug {
		store := g.session.World.Store()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f  TPS %.0f  live %d/%d  batches %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), store.Len(), store.Cap(), g.batch.Submits()), 4, g.height-60)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
