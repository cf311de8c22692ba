// Package engine drives a game of Max Connect-Four: agents choose columns
// and a session applies them until the board is full.
package engine

import (
	"context"

	"maxconnect4/game"
	"maxconnect4/searcher"
)

// Move is a chosen column together with the board it produces.
type Move struct {
	Column int // 0-indexed
	Board  *game.Board
	Value  int  // Search value, 0 for agents that do not search
	Cached bool // Column came from the move cache
	Metric searcher.SearchMetric
}

type Agent interface {
	// FindMove chooses a column for the player to move on b. A board without
	// legal moves yields game.ErrNoLegalMove.
	FindMove(ctx context.Context, b *game.Board) (Move, error)
}
