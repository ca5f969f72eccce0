package xoxo

import (
	"fmt"
)

// Strategy picks the AI's cell from the free cells. ok is false when the AI
// does not move.
type Strategy interface {
	Choose(free []int) (cell int, ok bool)
}

// Rand is the randomness a RandomStrategy draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NoOpStrategy never moves.
type NoOpStrategy struct{}

func (NoOpStrategy) Choose([]int) (int, bool) {
	return -1, false
}

// RandomStrategy picks uniformly among all free cells.
type RandomStrategy struct {
	r Rand
}

func NewRandomStrategy(r Rand) *RandomStrategy {
	return &RandomStrategy{r: r}
}

func (s *RandomStrategy) Choose(free []int) (int, bool) {
	switch len(free) {
	case 0:
		return -1, false
	case 1:
		return free[0], true
	}
	return free[s.r.Intn(len(free))], true
}

// StrategyByName returns the strategy for "random" or "none".
func StrategyByName(name string, r Rand) (Strategy, error) {
	switch name {
	case "random", "":
		if r == nil {
			return nil, fmt.Errorf("random strategy needs a source")
		}
		return NewRandomStrategy(r), nil
	case "none":
		return NoOpStrategy{}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, name)
}
