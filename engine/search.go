package engine

import (
	"context"
	"fmt"

	"maxconnect4/cache"
	"maxconnect4/game"
	"maxconnect4/searcher"

	"github.com/rs/zerolog/log"
)

// SearchAgent picks columns with alpha-beta search, consulting an optional
// move cache first. Cache failures only cost a search.
type SearchAgent struct {
	searcher  *searcher.AlphaBeta
	evaluator string // Evaluator name, part of the cache key
	cache     cache.MoveCache
}

func NewSearchAgent(s *searcher.AlphaBeta, evaluator string, c cache.MoveCache) *SearchAgent {
	return &SearchAgent{
		searcher:  s,
		evaluator: evaluator,
		cache:     c,
	}
}

func (a *SearchAgent) FindMove(ctx context.Context, b *game.Board) (Move, error) {
	if err := ctx.Err(); err != nil {
		return Move{}, err
	}
	if !b.HasLegalMove() {
		return Move{}, game.ErrNoLegalMove
	}

	var key string
	if a.cache != nil {
		key = cache.Key(b, a.searcher.Depth(), a.evaluator)
		if move, ok := a.cached(ctx, b, key); ok {
			return move, nil
		}
	}

	result, metric, err := a.searcher.Search(b)
	if err != nil {
		return Move{}, err
	}
	if result.Column < 0 {
		return Move{}, fmt.Errorf("search at depth %d does not choose a column", a.searcher.Depth())
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, result.Column); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to store move in cache")
		}
	}

	return Move{
		Column: result.Column,
		Board:  result.Board,
		Value:  result.Value,
		Metric: metric,
	}, nil
}

func (a *SearchAgent) cached(ctx context.Context, b *game.Board, key string) (Move, bool) {
	column, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("move cache lookup failed")
		return Move{}, false
	}
	if !ok {
		return Move{}, false
	}

	next, err := b.DropPiece(column)
	if err != nil { // Stale or foreign entry
		log.Warn().Err(err).Str("key", key).Msg("ignoring unusable cached move")
		return Move{}, false
	}

	log.Debug().Str("key", key).Msgf("cache hit: column %d", column+1)
	return Move{Column: column, Board: next, Cached: true}, true
}
