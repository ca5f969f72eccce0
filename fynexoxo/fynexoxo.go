// Package fynexoxo runs the game in a fyne window.
package fynexoxo

import (
	"context"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/pr1vateer/libretictactoe/config"
	"github.com/pr1vateer/libretictactoe/xoxo"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

var game *Game

func Run(ctx context.Context, logger zerolog.Logger, cfg config.Config) error {
	var err error
	if game, err = New(ctx, logger, cfg, app.New()); err != nil {
		return err
	}
	return game.Run()
}

func Shutdown() {
	if game != nil {
		game.Shutdown()
	}
}

type Game struct {
	ctx    context.Context
	logger zerolog.Logger
	cfg    config.Config
	round  string
	ctrl   *xoxo.Controller
	app    fyne.App
	window fyne.Window
	board  *Board
}

func New(ctx context.Context, logger zerolog.Logger, cfg config.Config, a fyne.App) (*Game, error) {
	g := &Game{
		ctx:    ctx,
		logger: logger,
		cfg:    cfg,
		app:    a,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.init()
	return g, nil
}

func (g *Game) init() {
	g.window = g.app.NewWindow(g.cfg.Title)
	g.board = NewBoard(g)
	g.window.SetContent(g.board)
	g.window.Resize(fyne.NewSize(xoxo.BoardSize, xoxo.BoardSize))
	g.window.SetFixedSize(true)
}

func (g *Game) restart() error {
	strategy, err := g.cfg.NewStrategy()
	if err != nil {
		return fmt.Errorf("unable to create strategy: %w", err)
	}
	g.round = xid.New().String()
	logger := g.logger.With().Str("round", g.round).Logger()
	g.ctrl = xoxo.New(
		xoxo.WithStrategy(strategy),
		xoxo.WithLogf(func(s string, v ...interface{}) {
			logger.Debug().CallerSkipFrame(1).Msgf(s, v...)
		}),
		xoxo.WithHandler(g.StateHandler),
	)
	logger.
		Debug().
		Str("session", g.ctrl.ID()).
		Msg("new game")
	return nil
}

// pointerDown forwards a press on the board. A primary press on the end
// screen starts a new game.
func (g *Game) pointerDown(button xoxo.Button, x, y float64) {
	if g.ctrl.Status().Terminal() {
		if button != xoxo.ButtonPrimary {
			return
		}
		if err := g.restart(); err != nil {
			g.logger.
				Debug().
				Err(err).
				Msg("unable to restart")
			return
		}
		g.board.Refresh()
		return
	}
	if err := g.ctrl.OnPointerDown(button, x, y); err != nil {
		g.logger.
			Debug().
			Err(err).
			Float64("x", x).
			Float64("y", y).
			Msg("ignoring pointer event")
	}
}

func (g *Game) Run() error {
	go func() {
		<-g.ctx.Done()
		g.Shutdown()
	}()
	g.window.ShowAndRun()
	return nil
}

func (g *Game) Shutdown() {
	g.logger.
		Debug().
		Msg("Shutdown")
	g.app.Quit()
}

func (g *Game) StateHandler(s xoxo.Snapshot) {
	g.logger.
		Debug().
		Str("round", g.round).
		Str("state", s.String()).
		Msg("state change")
	if g.board != nil {
		g.board.Refresh()
	}
}

var (
	background  color.Color = color.White
	gridColor   color.Color = color.Black
	textColor   color.Color = color.Black
	crossColor  color.Color = color.RGBA{0xd0, 0x30, 0x30, 0xff}
	circleColor color.Color = color.RGBA{0x30, 0x50, 0xd0, 0xff}
)
