package xoxo

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Controller is one game session. It owns the board and status and is driven
// by a single event loop; it is not safe for concurrent use.
type Controller struct {
	id        string
	board     *Board
	status    Status
	strategy  Strategy
	logf      func(string, ...interface{})
	handler   func(Snapshot)
	moves     int
	lastHuman int
	lastAI    int
}

func New(opts ...Option) *Controller {
	c := &Controller{
		board:     NewBoard(),
		status:    Running,
		strategy:  NoOpStrategy{},
		logf:      func(string, ...interface{}) {},
		handler:   func(Snapshot) {},
		lastHuman: -1,
		lastAI:    -1,
	}
	for _, o := range opts {
		o(c)
	}
	if c.id == "" {
		c.id = uuid.New().String()
	}
	return c
}

// OnPointerDown handles a pointer press at board pixel (x, y). Only the
// primary button plays. Off-board presses return ErrOutOfBounds; presses on
// taken cells or after the game ended are ignored.
func (c *Controller) OnPointerDown(button Button, x, y float64) error {
	c.logf("pointer down: %v, x: %g, y: %g", button, x, y)
	if button != ButtonPrimary {
		return nil
	}
	if c.status != Running {
		return nil
	}
	cell, err := PointToCell(x, y)
	if err != nil {
		return err
	}
	switch err := c.Play(cell); {
	case errors.Is(err, ErrInvalidMove), errors.Is(err, ErrGameOver):
		c.logf("ignoring click on cell %d: %v", cell, err)
	case err != nil:
		return err
	}
	return nil
}

// Play makes the human move on cell followed by the AI reply.
func (c *Controller) Play(cell int) error {
	if c.status != Running {
		return fmt.Errorf("%w: %s", ErrGameOver, c.status)
	}
	if err := c.board.Occupy(cell, Human); err != nil {
		return err
	}
	c.moves++
	c.lastHuman = cell
	c.update()
	if c.status == Running {
		c.reply()
	}
	c.logf("state: %s", c.board)
	c.handler(c.Snapshot())
	return nil
}

func (c *Controller) reply() {
	cell, ok := c.strategy.Choose(c.board.FreeCells())
	if !ok {
		return
	}
	if err := c.board.Occupy(cell, AI); err != nil {
		// strategies only pick from the free cells they were given
		panic(fmt.Sprintf("strategy chose unavailable cell: %v", err))
	}
	c.moves++
	c.lastAI = cell
	c.logf("ai moved: %d", cell)
	c.update()
}

func (c *Controller) update() {
	switch c.board.Winner() {
	case Human:
		c.status = Won
	case AI:
		c.status = Lost
	default:
		if c.board.IsFull() {
			c.status = Draw
		}
	}
	if c.status != Running {
		c.logf("game ended: %s", c.status)
	}
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) Status() Status {
	return c.status
}

// Board returns a copy of the board.
func (c *Controller) Board() *Board {
	b := NewBoard()
	for i, v := range c.board.Cells() {
		if v != Empty {
			_ = b.Occupy(i, v)
		}
	}
	return b
}

func (c *Controller) Occupied() []Mark {
	s := c.Snapshot()
	return s.Occupied()
}

// Message returns the end screen text for a finished game.
func (c *Controller) Message() string {
	return c.status.Message()
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		ID:        c.id,
		Cells:     c.board.Cells(),
		Status:    c.status,
		Free:      c.board.FreeCells(),
		Moves:     c.moves,
		LastHuman: c.lastHuman,
		LastAI:    c.lastAI,
	}
}

type Option func(*Controller)

func WithStrategy(strategy Strategy) Option {
	return func(c *Controller) {
		if strategy != nil {
			c.strategy = strategy
		}
	}
}

func WithLogf(logf func(string, ...interface{})) Option {
	return func(c *Controller) {
		c.logf = logf
	}
}

// WithHandler sets a func called with the new state after every accepted
// move.
func WithHandler(handler func(Snapshot)) Option {
	return func(c *Controller) {
		c.handler = handler
	}
}

func WithID(id string) Option {
	return func(c *Controller) {
		c.id = id
	}
}
