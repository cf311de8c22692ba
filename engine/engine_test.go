package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"maxconnect4/cache"
	"maxconnect4/game"
	"maxconnect4/searcher"

	"github.com/stretchr/testify/require"
)

func fullBoard(t *testing.T, rows, columns int) *game.Board {
	t.Helper()
	b := game.NewBoard(rows, columns, game.PlayerOne)
	for !b.IsFull() {
		next := b.Successors()
		require.NotEmpty(t, next)
		b = next[0]
	}
	return b
}

type failingCache struct {
	gets, sets int
}

func (c *failingCache) Get(ctx context.Context, key string) (int, bool, error) {
	c.gets++
	return 0, false, errors.New("cache down")
}

func (c *failingCache) Set(ctx context.Context, key string, column int) error {
	c.sets++
	return errors.New("cache down")
}

func TestRandomAgent(t *testing.T) {
	t.Run("same seed plays the same columns", func(t *testing.T) {
		a, b := NewRandomAgent(7), NewRandomAgent(7)
		board := game.NewBoard(6, 7, game.PlayerOne)
		for i := 0; i < 10; i++ {
			moveA, err := a.FindMove(context.Background(), board)
			require.NoError(t, err)
			moveB, err := b.FindMove(context.Background(), board)
			require.NoError(t, err)
			require.Equal(t, moveA.Column, moveB.Column, "move %d", i)
			board = moveA.Board
		}
	})

	t.Run("only legal columns", func(t *testing.T) {
		a := NewRandomAgent(1)
		board := game.NewBoard(2, 3, game.PlayerOne)
		for !board.IsFull() {
			move, err := a.FindMove(context.Background(), board)
			require.NoError(t, err)
			require.True(t, board.ValidMove(move.Column))
			require.Equal(t, board.PieceCount()+1, move.Board.PieceCount())
			board = move.Board
		}
	})

	t.Run("full board", func(t *testing.T) {
		_, err := NewRandomAgent(1).FindMove(context.Background(), fullBoard(t, 2, 3))
		require.ErrorIs(t, err, game.ErrNoLegalMove)
	})
}

func TestHumanAgent(t *testing.T) {
	t.Run("re-prompts until a playable column", func(t *testing.T) {
		var out bytes.Buffer
		a := NewHumanAgent(strings.NewReader("9\nabc\n 3 \n"), &out)

		move, err := a.FindMove(context.Background(), game.NewBoard(6, 7, game.PlayerOne))

		require.NoError(t, err)
		require.Equal(t, 2, move.Column)
		require.Equal(t, 3, move.Board.LastColumn())
		require.Equal(t, 2, strings.Count(out.String(), "Invalid column entry. Please retry."))
		require.Equal(t, 3, strings.Count(out.String(), "Enter the column on board to play (1 - 7) : "))
	})

	t.Run("full column is rejected", func(t *testing.T) {
		board := game.NewBoard(1, 2, game.PlayerOne)
		board, err := board.DropPiece(0)
		require.NoError(t, err)
		var out bytes.Buffer
		a := NewHumanAgent(strings.NewReader("1\n2\n"), &out)

		move, err := a.FindMove(context.Background(), board)

		require.NoError(t, err)
		require.Equal(t, 1, move.Column)
		require.Contains(t, out.String(), "Invalid column entry")
	})

	t.Run("input ends", func(t *testing.T) {
		a := NewHumanAgent(strings.NewReader("0\n"), nil)
		_, err := a.FindMove(context.Background(), game.NewBoard(6, 7, game.PlayerOne))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("full board", func(t *testing.T) {
		a := NewHumanAgent(strings.NewReader("1\n"), nil)
		_, err := a.FindMove(context.Background(), fullBoard(t, 2, 3))
		require.ErrorIs(t, err, game.ErrNoLegalMove)
	})
}

func TestSearchAgent(t *testing.T) {
	board := game.NewBoard(6, 7, game.PlayerOne)

	t.Run("plays the searched column", func(t *testing.T) {
		s := searcher.NewAlphaBeta(searcher.WithDepth(3))
		want, _, err := s.Search(board)
		require.NoError(t, err)

		move, err := NewSearchAgent(s, "first-informative", nil).FindMove(context.Background(), board)

		require.NoError(t, err)
		require.Equal(t, want.Column, move.Column)
		require.Equal(t, want.Value, move.Value)
		require.False(t, move.Cached)
	})

	t.Run("second lookup is served from the cache", func(t *testing.T) {
		c := cache.NewMemory()
		a := NewSearchAgent(searcher.NewAlphaBeta(searcher.WithDepth(3)), "first-informative", c)

		first, err := a.FindMove(context.Background(), board)
		require.NoError(t, err)
		require.Equal(t, 1, c.Len())

		second, err := a.FindMove(context.Background(), board)
		require.NoError(t, err)
		require.True(t, second.Cached)
		require.Equal(t, first.Column, second.Column)
		require.Equal(t, first.Board.Hash(), second.Board.Hash())
	})

	t.Run("unusable cache entry falls back to search", func(t *testing.T) {
		narrow := game.NewBoard(1, 3, game.PlayerOne)
		narrow, err := narrow.DropPiece(0)
		require.NoError(t, err)
		s := searcher.NewAlphaBeta(searcher.WithDepth(2))
		c := cache.NewMemory()
		require.NoError(t, c.Set(context.Background(), cache.Key(narrow, 2, "first-informative"), 0))

		move, err := NewSearchAgent(s, "first-informative", c).FindMove(context.Background(), narrow)

		require.NoError(t, err)
		require.False(t, move.Cached)
		require.NotEqual(t, 0, move.Column)
	})

	t.Run("cache failures only cost a search", func(t *testing.T) {
		c := &failingCache{}
		a := NewSearchAgent(searcher.NewAlphaBeta(searcher.WithDepth(2)), "first-informative", c)

		move, err := a.FindMove(context.Background(), board)

		require.NoError(t, err)
		require.NotNil(t, move.Board)
		require.Equal(t, 1, c.gets)
		require.Equal(t, 1, c.sets)
	})

	t.Run("depth one chooses no column", func(t *testing.T) {
		a := NewSearchAgent(searcher.NewAlphaBeta(searcher.WithDepth(1)), "first-informative", nil)
		_, err := a.FindMove(context.Background(), board)
		require.Error(t, err)
	})

	t.Run("full board", func(t *testing.T) {
		a := NewSearchAgent(searcher.NewAlphaBeta(), "first-informative", nil)
		_, err := a.FindMove(context.Background(), fullBoard(t, 2, 3))
		require.ErrorIs(t, err, game.ErrNoLegalMove)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		a := NewSearchAgent(searcher.NewAlphaBeta(), "first-informative", nil)
		_, err := a.FindMove(ctx, board)
		require.ErrorIs(t, err, context.Canceled)
	})
}
