package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"
)

// Board is a snapshot of the grid and whose turn it is. A Board is never
// modified after construction: dropping a piece returns a new Board.
type Board struct {
	rows       int
	columns    int
	grid       []Player // Row-major, row 0 is the top row
	turn       Player   // The player who moves next
	pieces     int      // Non-empty cells
	lastColumn int      // 1-indexed column that produced this board, 0 for a root
}

// NewBoard returns an empty board with the given dimensions.
func NewBoard(rows, columns int, turn Player) *Board {
	if rows <= 0 || columns <= 0 {
		panic(fmt.Sprintf("invalid board dimensions %dx%d", rows, columns))
	}
	if !turn.Valid() {
		panic(fmt.Sprintf("invalid turn %d", turn))
	}
	return &Board{
		rows:    rows,
		columns: columns,
		grid:    make([]Player, rows*columns),
		turn:    turn,
	}
}

// FromGrid builds a board from rows of cells, top row first. The piece count
// is derived from the cells.
func FromGrid(cells [][]Player, turn Player) (*Board, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidBoard)
	}
	if !turn.Valid() {
		return nil, fmt.Errorf("%w: turn %d", ErrInvalidBoard, turn)
	}

	b := NewBoard(len(cells), len(cells[0]), turn)
	for r, row := range cells {
		if len(row) != b.columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r+1, len(row), b.columns)
		}
		for c, cell := range row {
			if cell != Empty && !cell.Valid() {
				return nil, fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidBoard, r+1, c+1, cell)
			}
			b.grid[r*b.columns+c] = cell
			if cell != Empty {
				b.pieces++
			}
		}
	}
	return b, nil
}

func (b *Board) Rows() int       { return b.rows }
func (b *Board) Columns() int    { return b.columns }
func (b *Board) Turn() Player    { return b.turn }
func (b *Board) PieceCount() int { return b.pieces }

// LastColumn is the 1-indexed column played to reach this board, 0 if the
// board was not derived from another.
func (b *Board) LastColumn() int { return b.lastColumn }

// At returns the cell at row r (0 is the top) and column c.
func (b *Board) At(r, c int) Player {
	return b.grid[r*b.columns+c]
}

// Grid returns a copy of the cells, top row first.
func (b *Board) Grid() [][]Player {
	cells := make([][]Player, b.rows)
	for r := range cells {
		cells[r] = make([]Player, b.columns)
		copy(cells[r], b.grid[r*b.columns:(r+1)*b.columns])
	}
	return cells
}

func (b *Board) IsFull() bool {
	return b.pieces >= b.rows*b.columns
}

// ValidMove reports whether a piece can be dropped into column c.
func (b *Board) ValidMove(c int) bool {
	return c >= 0 && c < b.columns && b.At(0, c) == Empty
}

// HasLegalMove reports whether any column can still take a piece.
func (b *Board) HasLegalMove() bool {
	for c := 0; c < b.columns; c++ {
		if b.ValidMove(c) {
			return true
		}
	}
	return false
}

// DropPiece returns the board that results from the current player dropping
// a piece into column c. The receiver is left untouched.
func (b *Board) DropPiece(c int) (*Board, error) {
	if c < 0 || c >= b.columns {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidColumn, c, b.columns)
	}
	if b.At(0, c) != Empty {
		return nil, fmt.Errorf("%w: column %d", ErrColumnFull, c+1)
	}

	next := b.copy()
	for r := b.rows - 1; r >= 0; r-- {
		if next.grid[r*b.columns+c] == Empty {
			next.grid[r*b.columns+c] = b.turn
			break
		}
	}
	next.pieces++
	next.turn = b.turn.Opponent()
	next.lastColumn = c + 1
	return next, nil
}

// Successors returns one board per non-full column in ascending column order.
func (b *Board) Successors() []*Board {
	successors := make([]*Board, 0, b.columns)
	for c := 0; c < b.columns; c++ {
		next, err := b.DropPiece(c)
		if err != nil { // Full column, skip it
			continue
		}
		successors = append(successors, next)
	}
	return successors
}

func (b *Board) copy() *Board {
	grid := make([]Player, len(b.grid))
	copy(grid, b.grid)
	return &Board{
		rows:       b.rows,
		columns:    b.columns,
		grid:       grid,
		turn:       b.turn,
		pieces:     b.pieces,
		lastColumn: b.lastColumn,
	}
}

// Hash identifies the position (cells and turn), ignoring how it was reached.
func (b *Board) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(b.rows))
	binary.Write(hasher, binary.LittleEndian, int64(b.columns))
	binary.Write(hasher, binary.LittleEndian, int64(b.turn))
	for _, cell := range b.grid {
		hasher.Write([]byte{byte(cell)})
	}

	return StateHash(hasher.Sum64())
}

// String renders the board for the console with a column ruler.
func (b *Board) String() string {
	var sb strings.Builder
	border := " " + strings.Repeat("-", b.columns*2+1) + "\n"
	sb.WriteString(border)
	for r := 0; r < b.rows; r++ {
		sb.WriteString(" |")
		for c := 0; c < b.columns; c++ {
			switch b.At(r, c) {
			case PlayerOne:
				sb.WriteString("1")
			case PlayerTwo:
				sb.WriteString("2")
			default:
				sb.WriteString(" ")
			}
			sb.WriteString("|")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(border)
	sb.WriteString("  ")
	for c := 1; c <= b.columns; c++ {
		fmt.Fprintf(&sb, "%d ", c%10)
	}
	sb.WriteString("\n")
	return sb.String()
}
