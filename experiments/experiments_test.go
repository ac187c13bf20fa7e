package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mcts/config"
	"mcts/engine"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/searcher"

	"github.com/stretchr/testify/require"
)

func smallSeries() Series {
	return Series{
		Name:     "small",
		Board:    3,
		Win:      3,
		Games:    4,
		Parallel: 2,
		Agents: []metrics.AgentConfig{
			{ID: 1, Kind: metrics.KindMCTS, Simulations: 50, Seed: 3},
			{ID: 2, Kind: metrics.KindRandom, Seed: 9},
		},
		Matchups: [][2]int{{1, 2}, {2, 2}},
	}
}

func TestSeriesFromConfig(t *testing.T) {
	cfg := config.Default()

	series := SeriesFromConfig(cfg)

	require.Equal(t, cfg.Experiment.Name, series.Name)
	require.Equal(t, cfg.Board, series.Board)
	require.Equal(t, cfg.Experiment.Games, series.Games)
	require.Equal(t, cfg.Experiment.Matchups, series.Matchups)
}

func TestRun(t *testing.T) {
	t.Run("playing every game", func(t *testing.T) {
		series := smallSeries()

		report, err := Run(context.Background(), series)

		require.NoError(t, err)
		require.Len(t, report.Games, 8)
		require.Len(t, report.Summaries, 2)
		for i, g := range report.Games {
			require.NotEmpty(t, g.ID)
			require.Equal(t, i/4+1, g.Matchup)
			if i%2 == 0 {
				require.Equal(t, game.X, g.First, "Odd games start with X")
			} else {
				require.Equal(t, game.O, g.First)
			}
		}
		moves := 0
		for _, g := range report.Games {
			moves += g.Moves
		}
		require.Len(t, report.Moves, moves)

		for _, s := range report.Summaries {
			require.Equal(t, 4, s.Games)
			require.Equal(t, 4, s.Agent1Wins+s.Agent2Wins+s.Draws)
			require.GreaterOrEqual(t, s.MeanMoves, 5.0, "No game ends before five moves")
		}
		require.Zero(t, report.Summaries[1].MeanSearchMs, "Random players do not search")
	})

	t.Run("rejecting an unknown agent", func(t *testing.T) {
		series := smallSeries()
		series.Matchups = [][2]int{{1, 4}}

		_, err := Run(context.Background(), series)

		require.ErrorIs(t, err, ErrInvalidSeries)
	})

	t.Run("rejecting an unknown kind", func(t *testing.T) {
		series := smallSeries()
		series.Agents[1].Kind = "oracle"

		_, err := Run(context.Background(), series)

		require.ErrorIs(t, err, ErrInvalidSeries)
	})

	t.Run("rejecting a bad mcts budget", func(t *testing.T) {
		series := smallSeries()
		series.Agents[0].Simulations = 0

		_, err := Run(context.Background(), series)

		require.ErrorIs(t, err, searcher.ErrInvalidBudget)
	})

	t.Run("no parallelism", func(t *testing.T) {
		series := smallSeries()
		series.Parallel = 0

		_, err := Run(context.Background(), series)

		require.ErrorIs(t, err, ErrInvalidSeries)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, smallSeries())

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSummarize(t *testing.T) {
	search := func(ms int) engine.MoveMetric {
		return engine.MoveMetric{Search: searcher.SearchMetric{Episodes: 1, Duration: time.Duration(ms) * time.Millisecond}}
	}
	results := []engine.Result{
		{Winner: game.X, Moves: make([]game.Action, 5), Metrics: []engine.MoveMetric{search(2), {}}},
		{Winner: game.O, Moves: make([]game.Action, 7), Metrics: []engine.MoveMetric{search(4)}},
		{Winner: game.Nobody, Moves: make([]game.Action, 9)},
	}

	s := summarize(3, 1, 2, results)

	require.Equal(t, metrics.Summary{
		Matchup:      3,
		Agent1:       1,
		Agent2:       2,
		Games:        3,
		Agent1Wins:   1,
		Agent2Wins:   1,
		Draws:        1,
		MeanMoves:    7,
		StdMoves:     2,
		MeanSearchMs: 3,
		StdSearchMs:  s.StdSearchMs,
	}, s)
	require.InDelta(t, 1.414, s.StdSearchMs, 0.001)
}

func TestMeanStd(t *testing.T) {
	mean, std := meanStd(nil)
	require.Zero(t, mean)
	require.Zero(t, std)

	mean, std = meanStd([]float64{4})
	require.Equal(t, 4.0, mean)
	require.Zero(t, std)
}

func TestWrite(t *testing.T) {
	series := smallSeries()
	series.Games = 2
	report, err := Run(context.Background(), series)
	require.NoError(t, err)

	dir, err := Write(t.TempDir(), series, report)

	require.NoError(t, err)
	for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv", "summaries.csv", "win_rates.html"} {
		_, err := os.Stat(filepath.Join(dir, file))
		require.NoError(t, err, file)
	}
}
