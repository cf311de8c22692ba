package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateFirstInformative(t *testing.T) {
	t.Run("empty board scores zero", func(t *testing.T) {
		require.Equal(t, 0, EvaluateFirstInformative(NewBoard(6, 7, PlayerOne)))
	})

	t.Run("single opponent disc decides at length one", func(t *testing.T) {
		root := NewBoard(6, 7, PlayerOne)

		for _, child := range root.Successors() {
			// Player two moves next and trails four lone runs to none
			require.Equal(t, -4, EvaluateFirstInformative(child))
		}
	})

	t.Run("mover leading at the longest length scores the lead", func(t *testing.T) {
		b := mustBoard(t, "1",
			"0000000",
			"0000000",
			"0000000",
			"0000000",
			"0000000",
			"1110000",
		)

		require.Equal(t, 1, EvaluateFirstInformative(b))
	})

	t.Run("mover trailing scores the negated opponent count", func(t *testing.T) {
		b := mustBoard(t, "2",
			"0000000",
			"0000000",
			"0000000",
			"0000000",
			"0000002",
			"1110002",
		)

		// Player one leads at length three; player two's vertical pair does not matter
		require.Equal(t, -1, EvaluateFirstInformative(b))
	})

	t.Run("tie at the deciding length penalises the mover", func(t *testing.T) {
		b := mustBoard(t, "1",
			"0000000",
			"0000000",
			"0000000",
			"0000000",
			"2220000",
			"1110000",
		)

		require.Equal(t, -1, EvaluateFirstInformative(b))
	})

	t.Run("longer lengths short-circuit shorter ones", func(t *testing.T) {
		b := mustBoard(t, "2",
			"0000000",
			"0000000",
			"0000000",
			"0000000",
			"2020200",
			"1111220",
		)

		// Player two has more short runs but player one owns the only four
		require.Equal(t, -1, EvaluateFirstInformative(b))
	})
}

func TestEvaluateWeighted(t *testing.T) {
	t.Run("sums weighted runs for the mover", func(t *testing.T) {
		b := mustBoard(t, "1",
			"0000000",
			"0000000",
			"0000000",
			"0000000",
			"0000000",
			"1110000",
		)

		require.Equal(t, 9*1+1*100, EvaluateWeighted(b))
	})
}

func TestEvaluatorByName(t *testing.T) {
	t.Run("known names", func(t *testing.T) {
		for name := range Evaluators {
			evaluate, err := EvaluatorByName(name)
			require.NoError(t, err)
			require.NotNil(t, evaluate)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := EvaluatorByName("sum")
		require.ErrorIs(t, err, ErrUnknownEvaluator)
	})
}
