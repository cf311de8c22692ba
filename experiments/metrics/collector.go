package metrics

import (
	"time"

	"maxconnect4/searcher"
)

type AgentConfig struct {
	ID        int
	Depth     int
	Evaluator string
}

type MoveMetric struct {
	Step   int
	Player int // Player ID
	Column int // 1-indexed
	Value  int
	Cached bool
	searcher.SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, 0 for a draw
	ScoreOne       int
	ScoreTwo       int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID of player one
	Agent2 int // AgentConfig.ID of player two
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Recorder persists the outcome of an experiment.
type Recorder interface {
	WriteAgentConfigs(configs []AgentConfig) error
	WriteGameRecords(records []GameRecord) error
	WriteMoveRecords(records []MoveRecord) error
}
