package searcher

import "maxconnect4/game"

const noParent = -1

// node is one board in the search tree. Parents are referenced by index
// into the owning Tree so the tree holds no back pointers.
type node struct {
	board     *game.Board
	parent    int
	children  []int
	value     int
	evaluated bool
}
