// Package xoxo is the game core: board state, coordinate mapping and the turn
// controller a host drives with pointer events.
package xoxo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrOutOfBounds     = errors.New("out of bounds")
	ErrGameOver        = errors.New("game over")
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Cell is the occupant of a board cell.
type Cell int

const (
	Empty Cell = iota
	Human
	AI
)

func (c Cell) String() string {
	switch c {
	case Human:
		return "X"
	case AI:
		return "O"
	}
	return "."
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Status is the game status. Only Running accepts moves.
type Status int

const (
	Running Status = iota
	Won
	Lost
	Draw
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether s ends the game.
func (s Status) Terminal() bool {
	return s == Won || s == Lost || s == Draw
}

// Message returns the end screen text. It panics for Running, which has no
// end screen.
func (s Status) Message() string {
	switch s {
	case Draw:
		return "Draw!"
	case Lost:
		return "You lost"
	case Won:
		return "You won"
	}
	panic(fmt.Sprintf("no message for status %s", s))
}

// Button is a pointer button as seen by the core.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// Mark is an occupied cell.
type Mark struct {
	Cell  int  `json:"cell"`
	Owner Cell `json:"owner"`
}

// Snapshot is a copy of a session's state taken after an event completed.
type Snapshot struct {
	ID        string  `json:"id,omitempty"`
	Cells     [9]Cell `json:"cells"`
	Status    Status  `json:"status"`
	Free      []int   `json:"free"`
	Moves     int     `json:"moves"`
	LastHuman int     `json:"last_human"`
	LastAI    int     `json:"last_ai"`
}

// Occupied returns the non-empty cells in index order.
func (s *Snapshot) Occupied() []Mark {
	var v []Mark
	for i, c := range s.Cells {
		if c != Empty {
			v = append(v, Mark{Cell: i, Owner: c})
		}
	}
	return v
}

func (s *Snapshot) String() string {
	v := make([]interface{}, 9)
	for i, c := range s.Cells {
		v[i] = []rune(c.String())[0]
	}
	return fmt.Sprintf("<%s [%c%c%c,%c%c%c,%c%c%c] (%s)>", append(append([]interface{}{s.ID}, v...), s.Status)...)
}

func (s *Snapshot) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
