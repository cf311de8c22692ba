package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"maxconnect4/searcher"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	t.Run("creating a timestamped directory", func(t *testing.T) {
		root := t.TempDir()

		w, err := NewWriter(root, "depth")

		require.NoError(t, err)
		require.DirExists(t, w.Dir())
		require.Equal(t, filepath.Join(root, "depth"), filepath.Dir(w.Dir()))
	})

	t.Run("writing every record kind", func(t *testing.T) {
		w, err := NewWriter(t.TempDir(), "depth")
		require.NoError(t, err)
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

		require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Depth: 2, Evaluator: "weighted"}}))
		require.NoError(t, w.WriteGameRecords([]GameRecord{{
			ID: 1, Agent1: 1, Agent2: 2,
			GameMetric: GameMetric{StartingPlayer: 1, Winner: 2, ScoreOne: 3, ScoreTwo: 5, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 42},
		}}))
		require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
			Game:       1,
			MoveMetric: MoveMetric{Step: 1, Player: 1, Column: 4, Value: -2, SearchMetric: searcher.SearchMetric{Depth: 2, Nodes: 7, Leaves: 7}},
		}}))

		configs := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{{"id", "depth", "evaluator"}, {"1", "2", "weighted"}}, configs)

		games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, games, 2)
		require.Equal(t, []string{"1", "1", "2", "1", "2", "3", "5", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "42"}, games[1])

		moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, moves, 2)
		require.Equal(t, []string{"1", "1", "1", "4", "-2", "false", "2", "0s", "7", "7", "0"}, moves[1])
	})
}

func TestWriterReportsWriteFailures(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	w := &Writer{baseDir: "/dev"}

	err := w.write("full", []string{"id"}, [][]string{{"1"}})

	require.Error(t, err)
}
