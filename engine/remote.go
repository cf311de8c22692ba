package engine

import (
	"context"
	"fmt"

	"maxconnect4/communication/client"
	"maxconnect4/game"
)

// RemoteAgent lets a move server choose columns.
type RemoteAgent struct {
	client *client.Client
	depth  int // 0 uses the server default
}

func NewRemoteAgent(c *client.Client, depth int) *RemoteAgent {
	return &RemoteAgent{client: c, depth: depth}
}

func (a *RemoteAgent) FindMove(ctx context.Context, b *game.Board) (Move, error) {
	if !b.HasLegalMove() {
		return Move{}, game.ErrNoLegalMove
	}

	resp, err := a.client.RequestMove(ctx, b, a.depth)
	if err != nil {
		return Move{}, err
	}

	// Replay the column locally rather than trusting the returned rows
	next, err := b.DropPiece(resp.Column - 1)
	if err != nil {
		return Move{}, fmt.Errorf("server chose column %d: %w", resp.Column, err)
	}
	return Move{
		Column: resp.Column - 1,
		Board:  next,
		Value:  resp.Value,
		Cached: resp.Cached,
	}, nil
}
