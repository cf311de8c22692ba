package game

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnFull indicates a drop into a column whose top cell is taken.
	ErrColumnFull = errors.New("column is full")

	// ErrInvalidColumn indicates a column index outside the board.
	ErrInvalidColumn = errors.New("invalid column index")

	// ErrNoLegalMove indicates a search on a board with no successors.
	ErrNoLegalMove = errors.New("no legal move")

	// ErrInvalidBoard indicates a malformed persisted board.
	ErrInvalidBoard = errors.New("invalid board")

	// ErrUnknownEvaluator indicates an evaluation policy name that is not registered.
	ErrUnknownEvaluator = errors.New("unknown evaluator")
)

// BoardError wraps a board parsing failure with the offending line.
type BoardError struct {
	Err  error  // The underlying error
	File string // Source file name (if known)
	Line int    // 1-based line number (0 if not applicable)
	Msg  string
}

func (e *BoardError) Error() string {
	loc := e.File
	if e.Line > 0 {
		if loc != "" {
			loc = fmt.Sprintf("%s:%d", loc, e.Line)
		} else {
			loc = fmt.Sprintf("line %d", e.Line)
		}
	}
	msg := e.Err.Error()
	if e.Msg != "" {
		msg = fmt.Sprintf("%v: %s", e.Err, e.Msg)
	}
	if loc == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", loc, msg)
}

func (e *BoardError) Unwrap() error {
	return e.Err
}
