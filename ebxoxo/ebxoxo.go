// Package ebxoxo runs the game in an ebiten window.
package ebxoxo

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pr1vateer/libretictactoe/config"
	"github.com/pr1vateer/libretictactoe/ebxoxo/assets"
	"github.com/pr1vateer/libretictactoe/xoxo"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

func Run(ctx context.Context, logger zerolog.Logger, cfg config.Config) error {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowClosingHandled(true)
	scaling := cfg.Scale
	if scaling == 0.0 {
		scaling = ebiten.DeviceScaleFactor()
	}
	if scaling == 0.0 {
		scaling = 1.0
	}
	logger.Debug().
		Float64("scale", scaling).
		Int("size", xoxo.BoardSize).
		Msg("window")
	ebiten.SetWindowSize(int(xoxo.BoardSize*scaling), int(xoxo.BoardSize*scaling))
	var err error
	if game, err = New(ctx, logger, cfg); err != nil {
		return err
	}
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func Shutdown() {
	if game != nil {
		game.Shutdown()
	}
}

var game *Game

type Game struct {
	ctx     context.Context
	logger  zerolog.Logger
	debug   bool
	cfg     config.Config
	round   string
	ctrl    *xoxo.Controller
	ready   bool
	exiting bool
	tick    int
}

func New(ctx context.Context, logger zerolog.Logger, cfg config.Config) (*Game, error) {
	g := &Game{
		ctx:    ctx,
		logger: logger,
		debug:  cfg.Debug,
		cfg:    cfg,
		tick:   -1,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart starts a new session. The previous one is dropped as is.
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
		xoxo.WithHandler(func(s xoxo.Snapshot) {
			logger.Debug().
				Str("state", s.String()).
				Int("human", s.LastHuman).
				Int("ai", s.LastAI).
				Msg("state change")
		}),
	)
	logger.Debug().
		Str("session", g.ctrl.ID()).
		Msg("new game")
	return nil
}

func (g *Game) init() error {
	if err := assets.Init(); err != nil {
		return fmt.Errorf("unable to init assets: %w", err)
	}
	g.ready = true
	return nil
}

func (g *Game) Update() error {
	g.tick++
	switch {
	case g.exiting:
		return ebiten.Termination
	case ebiten.IsWindowBeingClosed():
		g.Shutdown()
		return nil
	case g.ctx.Err() != nil:
		g.Shutdown()
		return nil
	case !g.ready:
		return g.init()
	}
	for _, ev := range pointerEvents() {
		if err := g.ctrl.OnPointerDown(ev.button, ev.x, ev.y); err != nil {
			g.logger.Debug().
				Err(err).
				Float64("x", ev.x).
				Float64("y", ev.y).
				Msg("ignoring pointer event")
		}
	}
	if g.ctrl.Status().Terminal() && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.restart()
	}
	return nil
}

type pointerEvent struct {
	button xoxo.Button
	x, y   float64
}

// pointerEvents collects the presses of this tick. Touches count as primary
// presses.
func pointerEvents() []pointerEvent {
	var v []pointerEvent
	x, y := ebiten.CursorPosition()
	for _, b := range []ebiten.MouseButton{
		ebiten.MouseButtonLeft,
		ebiten.MouseButtonRight,
		ebiten.MouseButtonMiddle,
	} {
		if inpututil.IsMouseButtonJustPressed(b) {
			v = append(v, pointerEvent{buttonOf(b), float64(x), float64(y)})
		}
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		v = append(v, pointerEvent{xoxo.ButtonPrimary, float64(x), float64(y)})
	}
	return v
}

func buttonOf(b ebiten.MouseButton) xoxo.Button {
	switch b {
	case ebiten.MouseButtonRight:
		return xoxo.ButtonSecondary
	case ebiten.MouseButtonMiddle:
		return xoxo.ButtonMiddle
	}
	return xoxo.ButtonPrimary
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(assets.Background)
	if !g.ready {
		return
	}
	switch status := g.ctrl.Status(); status {
	case xoxo.Running:
		g.drawBoard(screen)
	default:
		g.drawMessage(screen, status.Message())
	}
	if g.debug {
		x, y := ebiten.CursorPosition()
		text.Draw(
			screen,
			fmt.Sprintf("FPS: %0.0f Ticks: %0.0f (%d,%d)", ebiten.ActualFPS(), ebiten.ActualTPS(), x, y),
			assets.Bold16, 8, xoxo.BoardSize-8, color.RGBA{0x80, 0x80, 0x80, 0xff},
		)
	}
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	for _, l := range xoxo.GridLines() {
		vector.StrokeLine(
			screen,
			float32(l.From.X), float32(l.From.Y),
			float32(l.To.X), float32(l.To.Y),
			xoxo.LineWidth, assets.GridColor, false,
		)
	}
	for _, m := range g.ctrl.Occupied() {
		p, err := xoxo.CellToPoint(m.Cell)
		if err != nil {
			continue
		}
		img := assets.Cross
		if m.Owner == xoxo.AI {
			img = assets.Circle
		}
		opts := new(ebiten.DrawImageOptions)
		opts.GeoM.Translate(p.X, p.Y)
		screen.DrawImage(img, opts)
	}
}

func (g *Game) drawMessage(screen *ebiten.Image, msg string) {
	b := text.BoundString(assets.Bold48, msg)
	x := (xoxo.BoardSize - b.Dx()) / 2
	y := (xoxo.BoardSize + b.Dy()) / 2
	text.Draw(screen, msg, assets.Bold48, x, y, assets.TextColor)
	const hint = "Press R to play again"
	h := text.BoundString(assets.Bold16, hint)
	text.Draw(screen, hint, assets.Bold16, (xoxo.BoardSize-h.Dx())/2, y+48, assets.TextColor)
}

func (g *Game) LayoutF(float64, float64) (float64, float64) {
	return xoxo.BoardSize, xoxo.BoardSize
}

func (g *Game) Layout(int, int) (int, int) {
	panic("should never be called")
}

func (g *Game) Shutdown() {
	g.logger.Debug().Msg("Shutdown")
	g.exiting = true
}
