package searcher

import (
	"runtime"

	"maxconnect4/game"

	"golang.org/x/sync/errgroup"
)

// Tree is an arena of boards reachable from a root. Node 0 is the root.
type Tree struct {
	nodes []node
}

func NewTree(root *game.Board) *Tree {
	return &Tree{nodes: []node{{board: root, parent: noParent}}}
}

func (t *Tree) Root() int { return 0 }

func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) Board(id int) *game.Board { return t.nodes[id].board }

// Children returns the node's successors in ascending column order. Leaves
// have none.
func (t *Tree) Children(id int) []int { return t.nodes[id].children }

// Parent returns the index of the node's parent, or -1 for the root.
func (t *Tree) Parent(id int) int { return t.nodes[id].parent }

// Value returns the utility assigned by the search, if any.
func (t *Tree) Value(id int) (int, bool) {
	return t.nodes[id].value, t.nodes[id].evaluated
}

func (t *Tree) setValue(id, value int) {
	t.nodes[id].value = value
	t.nodes[id].evaluated = true
}

// Trace returns the 1-indexed columns played from the root to reach id.
func (t *Tree) Trace(id int) []int {
	var columns []int
	for n := id; t.nodes[n].parent != noParent; n = t.nodes[n].parent {
		columns = append(columns, t.nodes[n].board.LastColumn())
	}
	for i, j := 0, len(columns)-1; i < j; i, j = i+1, j-1 {
		columns[i], columns[j] = columns[j], columns[i]
	}
	return columns
}

// Expand grows the tree breadth first from the root until depth levels exist,
// counting the root as level 1. It returns the number of nodes added.
func (t *Tree) Expand(depth int, parallel bool) int {
	before := len(t.nodes)
	t.expandLevel([]int{t.Root()}, depth, parallel)
	return len(t.nodes) - before
}

// ExpandFrom grows the tree below the given nodes, which form one level.
// A depth of 1 leaves them untouched.
func (t *Tree) ExpandFrom(level []int, depth int, parallel bool) int {
	before := len(t.nodes)
	t.expandLevel(level, depth, parallel)
	return len(t.nodes) - before
}

func (t *Tree) expandLevel(level []int, depth int, parallel bool) {
	if depth <= 1 || len(level) == 0 {
		return
	}

	var successors [][]*game.Board
	if parallel {
		successors = t.successorsParallel(level)
	} else {
		successors = t.successors(level)
	}

	// Attach in level order so node numbering never depends on scheduling
	next := []int{}
	for i, id := range level {
		for _, board := range successors[i] {
			child := len(t.nodes)
			t.nodes = append(t.nodes, node{board: board, parent: id})
			t.nodes[id].children = append(t.nodes[id].children, child)
			next = append(next, child)
		}
	}

	t.expandLevel(next, depth-1, parallel)
}

func (t *Tree) successors(level []int) [][]*game.Board {
	successors := make([][]*game.Board, len(level))
	for i, id := range level {
		successors[i] = t.nodes[id].board.Successors()
	}
	return successors
}

// Siblings never share boards, so each slot is written by exactly one
// goroutine.
func (t *Tree) successorsParallel(level []int) [][]*game.Board {
	successors := make([][]*game.Board, len(level))
	g := errgroup.Group{}
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, id := range level {
		board := t.nodes[id].board
		g.Go(func() error {
			successors[i] = board.Successors()
			return nil
		})
	}
	g.Wait()
	return successors
}
