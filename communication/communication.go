// Package communication defines the JSON exchanged with the move server.
package communication

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"maxconnect4/game"
)

// MoveRequest asks for the computer's move on a board. Rows use the board
// file digits, top row first. A zero depth selects the server default.
type MoveRequest struct {
	Rows  []string `json:"rows"`
	Turn  int      `json:"turn"`
	Depth int      `json:"depth,omitempty"`
}

// MoveResponse carries the chosen 1-indexed column and the resulting board.
type MoveResponse struct {
	Column int      `json:"column"`
	Value  int      `json:"value"`
	Cached bool     `json:"cached"`
	Rows   []string `json:"rows"`
	Turn   int      `json:"turn"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// DecodeBoard parses rows and turn with the board file rules.
func DecodeBoard(rows []string, turn int) (*game.Board, error) {
	text := strings.Join(rows, "\n") + "\n" + strconv.Itoa(turn) + "\n"
	return game.ReadBoard(strings.NewReader(text))
}

// EncodeBoard is the inverse of DecodeBoard.
func EncodeBoard(b *game.Board) ([]string, int) {
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		panic(fmt.Sprintf("failed to encode board: %v", err)) // bytes.Buffer does not fail
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	return lines[:len(lines)-1], int(b.Turn())
}
