package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadBoard parses the text format: one line per row, top row first, with a
// digit per cell (0 empty, 1 and 2 for the players), then a line holding the
// player to move.
func ReadBoard(r io.Reader) (*Board, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	// Drop trailing blank lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, &BoardError{Err: ErrInvalidBoard, Msg: "need at least one row and a turn line"}
	}

	rowLines, turnLine := lines[:len(lines)-1], lines[len(lines)-1]
	cells := make([][]Player, len(rowLines))
	for i, line := range rowLines {
		if line == "" || len(line) != len(rowLines[0]) {
			return nil, &BoardError{Err: ErrInvalidBoard, Line: i + 1, Msg: fmt.Sprintf("row %q has the wrong width", line)}
		}
		cells[i] = make([]Player, len(line))
		for j, ch := range line {
			cell, ok := parseCell(ch)
			if !ok {
				return nil, &BoardError{Err: ErrInvalidBoard, Line: i + 1, Msg: fmt.Sprintf("unexpected cell %q", ch)}
			}
			cells[i][j] = cell
		}
	}

	turn, ok := parseCell([]rune(turnLine)[0])
	if len(turnLine) != 1 || !ok || !turn.Valid() {
		return nil, &BoardError{Err: ErrInvalidBoard, Line: len(lines), Msg: fmt.Sprintf("unexpected turn %q", turnLine)}
	}

	return FromGrid(cells, turn)
}

func parseCell(ch rune) (Player, bool) {
	switch ch {
	case '0':
		return Empty, true
	case '1':
		return PlayerOne, true
	case '2':
		return PlayerTwo, true
	default:
		return Empty, false
	}
}

// LoadBoard reads a board file from disk.
func LoadBoard(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open board file: %w", err)
	}
	defer f.Close()

	b, err := ReadBoard(f)
	if err != nil {
		var boardErr *BoardError
		if errors.As(err, &boardErr) {
			boardErr.File = path
		}
		return nil, err
	}
	return b, nil
}

// WriteTo writes the board in the format accepted by ReadBoard.
func (b *Board) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			sb.WriteByte('0' + byte(b.At(r, c)))
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('0' + byte(b.turn))
	sb.WriteByte('\n')

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// SaveBoard writes the board to a file, replacing any existing content.
func SaveBoard(path string, b *Board) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create board file: %w", err)
	}

	if _, err := b.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write board file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close board file: %w", err)
	}
	return nil
}
