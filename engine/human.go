package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"maxconnect4/game"
)

// HumanAgent reads 1-indexed columns, one per line, and asks again until the
// column can be played.
type HumanAgent struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewHumanAgent(in io.Reader, out io.Writer) *HumanAgent {
	if out == nil {
		out = io.Discard
	}
	return &HumanAgent{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (a *HumanAgent) FindMove(ctx context.Context, b *game.Board) (Move, error) {
	if !b.HasLegalMove() {
		return Move{}, game.ErrNoLegalMove
	}

	for {
		if err := ctx.Err(); err != nil {
			return Move{}, err
		}

		fmt.Fprintf(a.out, "Enter the column on board to play (1 - %d) : ", b.Columns())
		if !a.scanner.Scan() {
			if err := a.scanner.Err(); err != nil {
				return Move{}, fmt.Errorf("failed to read column: %w", err)
			}
			return Move{}, io.ErrUnexpectedEOF
		}

		column, err := strconv.Atoi(strings.TrimSpace(a.scanner.Text()))
		if err != nil {
			fmt.Fprintln(a.out, "\nInvalid column entry. Please retry.")
			continue
		}

		next, err := b.DropPiece(column - 1)
		if err != nil {
			fmt.Fprintln(a.out, "\nInvalid column entry. Please retry.")
			continue
		}
		return Move{Column: column - 1, Board: next}, nil
	}
}
