package game

import "maxconnect4/meta"

// Line directions as (row, column) steps: horizontal, vertical, and the two
// diagonals.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

func (b *Board) inBounds(r, c int) bool {
	return r >= 0 && r < b.rows && c >= 0 && c < b.columns
}

// RunLengths returns a histogram of the player's maximal runs: entry L holds
// the number of runs of exactly L discs over every row, column and diagonal.
func (b *Board) RunLengths(player Player) []int {
	histogram := make([]int, max(b.rows, b.columns)+1)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			if b.At(r, c) != player {
				continue
			}
			for _, d := range directions {
				// Only start counting at the first disc of a run
				pr, pc := r-d[0], c-d[1]
				if b.inBounds(pr, pc) && b.At(pr, pc) == player {
					continue
				}
				length := 0
				for nr, nc := r, c; b.inBounds(nr, nc) && b.At(nr, nc) == player; nr, nc = nr+d[0], nc+d[1] {
					length++
				}
				histogram[length]++
			}
		}
	}
	return histogram
}

// RunCount returns the number of maximal runs of exactly length discs.
func (b *Board) RunCount(player Player, length int) int {
	histogram := b.RunLengths(player)
	if length <= 0 || length >= len(histogram) {
		return 0
	}
	return histogram[length]
}

// Score is the published game score: every window of four aligned cells
// owned by the player, overlapping windows counted separately.
func (b *Board) Score(player Player) int {
	score := 0
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			for _, d := range directions {
				endR, endC := r+d[0]*(meta.CONNECT-1), c+d[1]*(meta.CONNECT-1)
				if !b.inBounds(endR, endC) {
					continue
				}
				owned := true
				for i := 0; i < meta.CONNECT; i++ {
					if b.At(r+d[0]*i, c+d[1]*i) != player {
						owned = false
						break
					}
				}
				if owned {
					score++
				}
			}
		}
	}
	return score
}

// Winner compares published scores. Empty means a draw.
func (b *Board) Winner() Player {
	one, two := b.Score(PlayerOne), b.Score(PlayerTwo)
	switch {
	case one > two:
		return PlayerOne
	case two > one:
		return PlayerTwo
	default:
		return Empty
	}
}
