package searcher

import (
	"fmt"

	"maxconnect4/game"
	"maxconnect4/meta"

	"github.com/rs/zerolog/log"
)

// AlphaBeta is a depth-limited minimax search with alpha-beta pruning over a
// fully materialized tree. Children are visited in column order and only a
// strictly better value replaces the current best, so the first of several
// equally good moves wins.
type AlphaBeta struct {
	depth    int
	evaluate game.Evaluate
	parallel bool
	prune    bool
	metrics  Collector
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	s := &AlphaBeta{ // Default values
		depth:    meta.DEPTH,
		evaluate: game.EvaluateFirstInformative,
		prune:    true,
		metrics:  NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	if s.depth < 1 {
		panic(fmt.Sprintf("search depth must be at least 1, got %d", s.depth))
	}
	return s
}

func (s *AlphaBeta) Depth() int { return s.depth }

// Search expands the tree below root and returns the chosen child. A board
// without legal moves yields game.ErrNoLegalMove. At depth 1 nothing is
// expanded and the root itself is evaluated and returned with Column -1.
func (s *AlphaBeta) Search(root *game.Board) (Result, SearchMetric, error) {
	if !root.HasLegalMove() {
		return Result{}, SearchMetric{}, game.ErrNoLegalMove
	}

	s.metrics.Start(s.depth)
	tree := NewTree(root)
	s.metrics.AddNodes(tree.Expand(s.depth, s.parallel))

	best := s.SearchTree(tree, s.depth)
	metric := s.metrics.Complete()

	value, _ := tree.Value(best)
	result := Result{
		Board:  tree.Board(best),
		Column: -1,
		Value:  value,
		Trace:  tree.Trace(best),
	}
	if best != tree.Root() {
		result.Column = result.Board.LastColumn() - 1
	}

	log.Debug().Msgf("searched %d nodes to depth %d: chose %v", tree.Len(), s.depth, result)
	return result, metric, nil
}

// SearchTree runs the search over an already expanded tree and returns the
// index of the chosen root child, the root itself on a cutoff, or -1 if no
// child could be chosen.
func (s *AlphaBeta) SearchTree(t *Tree, depth int) int {
	return s.maxValue(t, t.Root(), NegInfinity, PosInfinity, depth)
}

func (s *AlphaBeta) maxValue(t *Tree, id int, alpha, beta, depth int) int {
	if s.isCutoff(t, id, depth) {
		return s.evaluateLeaf(t, id)
	}

	v := NegInfinity
	best := -1
	for _, child := range t.Children(id) {
		reply := s.minValue(t, child, alpha, beta, depth-1)
		if value, _ := t.Value(reply); best == -1 || value > v {
			t.setValue(child, value)
			v = value
			best = child
		}

		if s.prune && v >= beta {
			s.metrics.AddPrune()
			return best
		}

		alpha = max(alpha, v)
	}

	return best
}

func (s *AlphaBeta) minValue(t *Tree, id int, alpha, beta, depth int) int {
	if s.isCutoff(t, id, depth) {
		return s.evaluateLeaf(t, id)
	}

	v := PosInfinity
	best := -1
	for _, child := range t.Children(id) {
		reply := s.maxValue(t, child, alpha, beta, depth-1)
		if value, _ := t.Value(reply); best == -1 || value < v {
			t.setValue(child, value)
			v = value
			best = child
		}

		if s.prune && v <= alpha {
			s.metrics.AddPrune()
			return best
		}

		beta = min(beta, v)
	}

	return best
}

// isCutoff stops at the depth limit, or earlier when fewer moves remain than
// the depth allows.
func (s *AlphaBeta) isCutoff(t *Tree, id int, depth int) bool {
	return depth <= 1 || len(t.Children(id)) == 0
}

func (s *AlphaBeta) evaluateLeaf(t *Tree, id int) int {
	t.setValue(id, s.evaluate(t.Board(id)))
	s.metrics.AddLeaf()
	return id
}
