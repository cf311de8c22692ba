package searcher

import (
	"fmt"

	"maxconnect4/game"
	"maxconnect4/meta"
)

// Search bounds. Every evaluation lies strictly between them.
const (
	PosInfinity = meta.POS_INFINITY
	NegInfinity = meta.NEG_INFINITY
)

type Option func(s *AlphaBeta)

// WithDepth sets the number of tree levels searched, counting the root.
// NewAlphaBeta panics on a depth below 1.
func WithDepth(depth int) Option {
	return func(s *AlphaBeta) {
		s.depth = depth
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *AlphaBeta) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

// WithParallelExpansion generates each tree level's successors concurrently.
// The resulting tree is identical to a sequential expansion.
func WithParallelExpansion(parallel bool) Option {
	return func(s *AlphaBeta) {
		s.parallel = parallel
	}
}

// WithoutPruning turns the search into plain minimax over the same tree.
func WithoutPruning() Option {
	return func(s *AlphaBeta) {
		s.prune = false
	}
}

func WithMetrics() Option {
	return func(s *AlphaBeta) {
		s.metrics = NewCollector()
	}
}

// Result is the move chosen by a search.
type Result struct {
	Board  *game.Board // Board after the chosen move
	Column int         // 0-indexed column played, -1 when no move was searched
	Value  int         // Minimax value propagated to the chosen child
	Trace  []int       // 1-indexed columns from the searched root
}

func (r Result) String() string {
	return fmt.Sprintf("column %d (value %d)", r.Column+1, r.Value)
}
