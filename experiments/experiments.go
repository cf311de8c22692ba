package experiments

import (
	"context"
	"fmt"

	"maxconnect4/config"
	"maxconnect4/engine"
	"maxconnect4/experiments/metrics"
	"maxconnect4/game"
	"maxconnect4/meta"
	"maxconnect4/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Experiment plays every matchup a number of times and records the games.
// Each game starts from a few random opening moves so that deterministic
// agents do not replay the same game.
type Experiment struct {
	Name         string
	Configs      []metrics.AgentConfig
	MatchUps     [][]metrics.AgentConfig
	Games        int // Per matchup
	OpeningMoves int
	Seed         uint64
	Parallel     bool // Parallel tree expansion
}

// DepthExperiment pairs every configured depth against every other, each
// side starting once per pair.
func DepthExperiment(cfg config.ExperimentConfig, evaluator string, parallel bool) Experiment {
	configs := make([]metrics.AgentConfig, len(cfg.Depths))
	for i, depth := range cfg.Depths {
		configs[i] = metrics.AgentConfig{ID: i + 1, Depth: depth, Evaluator: evaluator}
	}

	matchUps := [][]metrics.AgentConfig{}
	for i := range configs {
		for j := i + 1; j < len(configs); j++ {
			matchUps = append(matchUps,
				[]metrics.AgentConfig{configs[i], configs[j]},
				[]metrics.AgentConfig{configs[j], configs[i]},
			)
		}
	}

	return Experiment{
		Name:         "depth",
		Configs:      configs,
		MatchUps:     matchUps,
		Games:        cfg.Games,
		OpeningMoves: cfg.OpeningMoves,
		Seed:         cfg.Seed,
		Parallel:     parallel,
	}
}

// Run plays the experiment and stores its configs and records with the
// recorder.
func (e Experiment) Run(ctx context.Context, recorder metrics.Recorder) ([]metrics.GameRecord, error) {
	rng := rand.New(rand.NewSource(e.Seed))
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", e.Name)

	for mi, matchup := range e.MatchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(e.MatchUps), config1, config2)

		for i := 0; i < e.Games; i++ {
			opening := openingBoard(rng, e.OpeningMoves)
			gameMetric, moveMetrics, err := e.runGame(ctx, opening, config1, config2)
			if err != nil {
				return nil, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d (%d - %d)",
				mi+1, len(e.MatchUps), i+1, gameMetric.Winner, gameMetric.ScoreOne, gameMetric.ScoreTwo)
		}
	}

	log.Info().Msgf("completed %s experiment", e.Name)

	if err := recorder.WriteAgentConfigs(e.Configs); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := recorder.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := recorder.WriteMoveRecords(moveRecords); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return gameRecords, nil
}

// runGame plays one game from opening, config1 moving first.
func (e Experiment) runGame(ctx context.Context, opening *game.Board, config1, config2 metrics.AgentConfig) (metrics.GameMetric, []metrics.MoveMetric, error) {
	first := opening.Turn()
	agents := map[game.Player]engine.Agent{
		first:            e.createAgent(config1),
		first.Opponent(): e.createAgent(config2),
	}
	return engine.NewSession(opening, agents, nil).Run(ctx)
}

func (e Experiment) createAgent(cfg metrics.AgentConfig) engine.Agent {
	evaluate, err := game.EvaluatorByName(cfg.Evaluator)
	if err != nil {
		panic(fmt.Sprintf("agent %d: %v", cfg.ID, err))
	}
	s := searcher.NewAlphaBeta(
		searcher.WithDepth(cfg.Depth),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithParallelExpansion(e.Parallel),
		searcher.WithMetrics(),
	)
	return engine.NewSearchAgent(s, cfg.Evaluator, nil)
}

// openingBoard plays random moves on an empty board. Moves alternate, so the
// player to move afterwards depends on the number of moves.
func openingBoard(rng *rand.Rand, moves int) *game.Board {
	b := game.NewBoard(meta.ROWS, meta.COLUMNS, game.PlayerOne)
	for i := 0; i < moves; i++ {
		successors := b.Successors()
		if len(successors) == 0 {
			break
		}
		b = successors[rng.Intn(len(successors))]
	}
	return b
}
