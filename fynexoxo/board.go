package fynexoxo

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/pr1vateer/libretictactoe/xoxo"
)

const (
	markPadding = 24
	markWidth   = 10
)

// Board draws the grid and marks of the current session and reports taps in
// board pixels.
type Board struct {
	widget.BaseWidget
	g *Game
}

func NewBoard(g *Game) *Board {
	b := &Board{g: g}
	b.ExtendBaseWidget(b)
	return b
}

func (b *Board) Tapped(ev *fyne.PointEvent) {
	b.g.pointerDown(xoxo.ButtonPrimary, float64(ev.Position.X), float64(ev.Position.Y))
}

func (b *Board) TappedSecondary(ev *fyne.PointEvent) {
	b.g.pointerDown(xoxo.ButtonSecondary, float64(ev.Position.X), float64(ev.Position.Y))
}

func (b *Board) MinSize() fyne.Size {
	return fyne.NewSize(xoxo.BoardSize, xoxo.BoardSize)
}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{
		b:    b,
		bg:   canvas.NewRectangle(background),
		text: canvas.NewText("", textColor),
		hint: canvas.NewText("Click to play again", textColor),
	}
	r.text.TextSize = 48
	r.text.TextStyle = fyne.TextStyle{Bold: true}
	r.text.Alignment = fyne.TextAlignCenter
	r.hint.TextSize = 16
	r.hint.Alignment = fyne.TextAlignCenter
	r.objects = append(r.objects, r.bg)
	for _, l := range xoxo.GridLines() {
		line := canvas.NewLine(gridColor)
		line.StrokeWidth = xoxo.LineWidth
		line.Position1 = fyne.NewPos(float32(l.From.X), float32(l.From.Y))
		line.Position2 = fyne.NewPos(float32(l.To.X), float32(l.To.Y))
		r.grid = append(r.grid, line)
		r.objects = append(r.objects, line)
	}
	for i := 0; i < 9; i++ {
		p, _ := xoxo.CellToPoint(i)
		lo, hi := float32(markPadding), float32(xoxo.CellSize-markPadding)
		x, y := float32(p.X), float32(p.Y)
		m := &mark{
			a: canvas.NewLine(crossColor),
			b: canvas.NewLine(crossColor),
			o: canvas.NewCircle(color.Transparent),
		}
		m.a.StrokeWidth, m.b.StrokeWidth = markWidth, markWidth
		m.a.Position1, m.a.Position2 = fyne.NewPos(x+lo, y+lo), fyne.NewPos(x+hi, y+hi)
		m.b.Position1, m.b.Position2 = fyne.NewPos(x+lo, y+hi), fyne.NewPos(x+hi, y+lo)
		m.o.StrokeColor, m.o.StrokeWidth = circleColor, markWidth
		m.o.Position1, m.o.Position2 = fyne.NewPos(x+lo, y+lo), fyne.NewPos(x+hi, y+hi)
		r.marks[i] = m
		r.objects = append(r.objects, m.a, m.b, m.o)
	}
	r.objects = append(r.objects, r.text, r.hint)
	r.Refresh()
	return r
}

type mark struct {
	a, b *canvas.Line
	o    *canvas.Circle
}

func (m *mark) set(c xoxo.Cell) {
	for _, o := range []fyne.CanvasObject{m.a, m.b, m.o} {
		o.Hide()
	}
	switch c {
	case xoxo.Human:
		m.a.Show()
		m.b.Show()
	case xoxo.AI:
		m.o.Show()
	}
}

type boardRenderer struct {
	b       *Board
	bg      *canvas.Rectangle
	grid    []*canvas.Line
	marks   [9]*mark
	text    *canvas.Text
	hint    *canvas.Text
	objects []fyne.CanvasObject
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Move(fyne.NewPos(0, xoxo.BoardSize/2-48))
	r.text.Resize(fyne.NewSize(xoxo.BoardSize, 64))
	r.hint.Move(fyne.NewPos(0, xoxo.BoardSize/2+32))
	r.hint.Resize(fyne.NewSize(xoxo.BoardSize, 24))
}

func (r *boardRenderer) MinSize() fyne.Size {
	return r.b.MinSize()
}

// Refresh shows the board while running and the message once the game ended.
func (r *boardRenderer) Refresh() {
	s := r.b.g.ctrl.Snapshot()
	running := s.Status == xoxo.Running
	for _, l := range r.grid {
		if running {
			l.Show()
		} else {
			l.Hide()
		}
	}
	for i, m := range r.marks {
		c := s.Cells[i]
		if !running {
			c = xoxo.Empty
		}
		m.set(c)
	}
	if running {
		r.text.Hide()
		r.hint.Hide()
	} else {
		r.text.Text = s.Status.Message()
		r.text.Show()
		r.hint.Show()
	}
	for _, o := range r.objects {
		canvas.Refresh(o)
	}
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardRenderer) Destroy() {}
