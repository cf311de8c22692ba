package metrics

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS experiments (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS agent_configs (
	experiment_id INTEGER NOT NULL REFERENCES experiments(id),
	id            INTEGER NOT NULL,
	depth         INTEGER NOT NULL,
	evaluator     TEXT NOT NULL,
	PRIMARY KEY (experiment_id, id)
);
CREATE TABLE IF NOT EXISTS game_records (
	experiment_id   INTEGER NOT NULL REFERENCES experiments(id),
	id              INTEGER NOT NULL,
	agent1          INTEGER NOT NULL,
	agent2          INTEGER NOT NULL,
	starting_player INTEGER NOT NULL,
	winner          INTEGER NOT NULL,
	score1          INTEGER NOT NULL,
	score2          INTEGER NOT NULL,
	start_time      TIMESTAMPTZ NOT NULL,
	end_time        TIMESTAMPTZ NOT NULL,
	duration_ms     BIGINT NOT NULL,
	total_moves     INTEGER NOT NULL,
	PRIMARY KEY (experiment_id, id)
);
CREATE TABLE IF NOT EXISTS move_records (
	experiment_id INTEGER NOT NULL REFERENCES experiments(id),
	game          INTEGER NOT NULL,
	step          INTEGER NOT NULL,
	player        INTEGER NOT NULL,
	col           INTEGER NOT NULL,
	value         INTEGER NOT NULL,
	cached        BOOLEAN NOT NULL,
	depth         INTEGER NOT NULL,
	duration_us   BIGINT NOT NULL,
	nodes         INTEGER NOT NULL,
	leaves        INTEGER NOT NULL,
	prunes        INTEGER NOT NULL,
	PRIMARY KEY (experiment_id, game, step)
);`

// PostgresWriter records an experiment into PostgreSQL tables, creating
// them on first use.
type PostgresWriter struct {
	db           *sql.DB
	experimentID int64
}

func NewPostgresWriter(ctx context.Context, databaseURL, name string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	var id int64
	err = db.QueryRowContext(ctx, `INSERT INTO experiments (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register experiment: %w", err)
	}

	log.Info().Msgf("recording experiment %s as id %d", name, id)
	return &PostgresWriter{db: db, experimentID: id}, nil
}

func (w *PostgresWriter) Close() error {
	return w.db.Close()
}

func (w *PostgresWriter) WriteAgentConfigs(configs []AgentConfig) error {
	return w.insert(len(configs),
		`INSERT INTO agent_configs (experiment_id, id, depth, evaluator) VALUES ($1, $2, $3, $4)`,
		func(i int) []any {
			c := configs[i]
			return []any{w.experimentID, c.ID, c.Depth, c.Evaluator}
		})
}

func (w *PostgresWriter) WriteGameRecords(records []GameRecord) error {
	return w.insert(len(records),
		`INSERT INTO game_records (experiment_id, id, agent1, agent2, starting_player, winner, score1, score2,
			start_time, end_time, duration_ms, total_moves)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		func(i int) []any {
			r := records[i]
			return []any{w.experimentID, r.ID, r.Agent1, r.Agent2, r.StartingPlayer, r.Winner, r.ScoreOne, r.ScoreTwo,
				r.StartTime, r.EndTime, r.Duration.Milliseconds(), r.TotalMoves}
		})
}

func (w *PostgresWriter) WriteMoveRecords(records []MoveRecord) error {
	return w.insert(len(records),
		`INSERT INTO move_records (experiment_id, game, step, player, col, value, cached, depth,
			duration_us, nodes, leaves, prunes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		func(i int) []any {
			r := records[i]
			return []any{w.experimentID, r.Game, r.Step, r.Player, r.Column, r.Value, r.Cached, r.Depth,
				r.Duration.Microseconds(), r.Nodes, r.Leaves, r.Prunes}
		})
}

// insert runs one prepared statement per row inside a transaction.
func (w *PostgresWriter) insert(n int, query string, args func(i int) []any) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.Exec(args(i)...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}
