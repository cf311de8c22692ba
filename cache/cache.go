// Package cache remembers chosen columns for positions already searched.
package cache

import (
	"context"
	"fmt"

	"maxconnect4/game"
)

// MoveCache maps a search key to the 0-indexed column that was chosen.
type MoveCache interface {
	Get(ctx context.Context, key string) (column int, ok bool, err error)
	Set(ctx context.Context, key string, column int) error
}

// Key identifies a search: the position, the depth and the evaluation policy
// all influence the chosen column.
func Key(b *game.Board, depth int, evaluator string) string {
	return fmt.Sprintf("maxconnect4:%016x:%d:%s", uint64(b.Hash()), depth, evaluator)
}
