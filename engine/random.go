package engine

import (
	"context"

	"maxconnect4/game"

	"golang.org/x/exp/rand"
)

// RandomAgent plays a uniformly random legal column.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(ctx context.Context, b *game.Board) (Move, error) {
	if err := ctx.Err(); err != nil {
		return Move{}, err
	}

	successors := b.Successors()
	if len(successors) == 0 {
		return Move{}, game.ErrNoLegalMove
	}

	next := successors[a.rng.Intn(len(successors))]
	return Move{Column: next.LastColumn() - 1, Board: next}, nil
}
