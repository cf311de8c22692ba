package game

import "maxconnect4/meta"

// Player identifies the owner of a cell, or whose turn it is.
type Player int

const (
	Empty Player = iota
	PlayerOne
	PlayerTwo
)

// Opponent returns the other player. Empty has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return Empty
	}
}

func (p Player) Valid() bool {
	return p == PlayerOne || p == PlayerTwo
}

type StateHash uint64

// Evaluate scores a cutoff board. Larger is better for whoever the policy
// considers the mover. Values should lie strictly between the search
// infinities (meta.NEG_INFINITY and meta.POS_INFINITY).
type Evaluate func(*Board) int

// MaxRunLength is the longest run the evaluator looks for.
const MaxRunLength = meta.CONNECT
