package cache

import (
	"context"
	"testing"

	"maxconnect4/game"

	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		m := NewMemory()

		_, ok, err := m.Get(ctx, "missing")

		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("storing and reading a column", func(t *testing.T) {
		m := NewMemory()

		require.NoError(t, m.Set(ctx, "k", 3))
		column, ok, err := m.Get(ctx, "k")

		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 3, column)
		require.Equal(t, 1, m.Len())
	})
}

func TestKey(t *testing.T) {
	b := game.NewBoard(6, 7, game.PlayerOne)

	t.Run("depth and evaluator are part of the key", func(t *testing.T) {
		require.NotEqual(t, Key(b, 2, "weighted"), Key(b, 4, "weighted"))
		require.NotEqual(t, Key(b, 4, "weighted"), Key(b, 4, "first-informative"))
	})

	t.Run("equal positions share a key", func(t *testing.T) {
		require.Equal(t, Key(b, 4, "weighted"), Key(game.NewBoard(6, 7, game.PlayerOne), 4, "weighted"))
	})
}
