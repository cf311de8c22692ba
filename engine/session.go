package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"maxconnect4/experiments/metrics"
	"maxconnect4/game"

	"github.com/rs/zerolog/log"
)

// Session plays agents against each other on one board. The move counter
// belongs to the session, so concurrent sessions never share it.
type Session struct {
	board  *game.Board
	agents map[game.Player]Agent
	out    io.Writer
	moves  int
}

func NewSession(b *game.Board, agents map[game.Player]Agent, out io.Writer) *Session {
	for _, p := range []game.Player{game.PlayerOne, game.PlayerTwo} {
		if agents[p] == nil {
			panic(fmt.Sprintf("no agent for player %d", p))
		}
	}
	if out == nil {
		out = io.Discard
	}
	return &Session{
		board:  b,
		agents: agents,
		out:    out,
	}
}

func (s *Session) Board() *game.Board { return s.board }

// Moves is the number of moves played through this session.
func (s *Session) Moves() int { return s.moves }

// Step lets the player to move choose a column and applies it. A board
// without legal moves yields game.ErrNoLegalMove and is left as it is.
func (s *Session) Step(ctx context.Context) (metrics.MoveMetric, error) {
	player := s.board.Turn()
	move, err := s.agents[player].FindMove(ctx, s.board)
	if err != nil {
		return metrics.MoveMetric{}, err
	}

	s.board = move.Board
	s.moves++
	fmt.Fprintf(s.out, "Move: %d, Player: %d, Column: %d\n", s.moves, player, move.Column+1)

	return metrics.MoveMetric{
		Step:         s.moves,
		Player:       int(player),
		Column:       move.Column + 1,
		Value:        move.Value,
		Cached:       move.Cached,
		SearchMetric: move.Metric,
	}, nil
}

// Run plays until no column is left and reports the final scores.
func (s *Session) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(s.board.Turn()),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %d is starting", s.board.Turn())
	for {
		fmt.Fprint(s.out, s.board)
		s.printScores()

		moveMetric, err := s.Step(ctx)
		if errors.Is(err, game.ErrNoLegalMove) {
			break
		}
		if err != nil {
			return gameMetric, moveMetrics, err
		}
		moveMetrics = append(moveMetrics, moveMetric)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = s.moves
	gameMetric.ScoreOne = s.board.Score(game.PlayerOne)
	gameMetric.ScoreTwo = s.board.Score(game.PlayerTwo)
	gameMetric.Winner = int(s.board.Winner())

	s.printGameOver()
	log.Info().Msgf("game over after %d moves: %d - %d", s.moves, gameMetric.ScoreOne, gameMetric.ScoreTwo)
	return gameMetric, moveMetrics, nil
}

// OneMove plays a single move for the player to move and reports whether a
// move was made. A full board is reported, not treated as a failure.
func (s *Session) OneMove(ctx context.Context) (bool, error) {
	fmt.Fprint(s.out, "game state before move:\n", s.board)
	s.printScores()

	if _, err := s.Step(ctx); err != nil {
		if errors.Is(err, game.ErrNoLegalMove) {
			fmt.Fprint(s.out, "\nBoard is Full\n\nGame Over\n")
			return false, nil
		}
		return false, err
	}

	fmt.Fprint(s.out, "Game state after move:\n", s.board)
	s.printScores()
	return true, nil
}

func (s *Session) printScores() {
	fmt.Fprintf(s.out, "Score: Player 1 = %d, Player2 = %d\n\n",
		s.board.Score(game.PlayerOne), s.board.Score(game.PlayerTwo))
}

func (s *Session) printGameOver() {
	fmt.Fprint(s.out, "\nBoard is Full\n\nGame Over\n")
	s.printScores()
	switch s.board.Winner() {
	case game.PlayerOne:
		fmt.Fprintln(s.out, "Congratulations. Player 1 Won.")
	case game.PlayerTwo:
		fmt.Fprintln(s.out, "Congratulations. Player 2 Won.")
	default:
		fmt.Fprintln(s.out, "Its a Draw.")
	}
}
