package config

import (
	"os"
	"path/filepath"
	"testing"

	"mcts/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.NoError(t, cfg.ValidateExperiment())
	require.Equal(t, 3, cfg.Board)
	require.Equal(t, 3, cfg.Win)
	require.Equal(t, 1000, cfg.Simulations)
	require.Equal(t, OpponentHuman, cfg.Opponent)
}

func TestLoad(t *testing.T) {
	t.Run("overriding defaults", func(t *testing.T) {
		path := writeConfig(t, `
board: 5
win: 4
opponent: random
seed: 17
experiment:
  games: 3
  agents:
    - {id: 7, kind: mcts, simulations: 50, seed: 1}
    - {id: 8, kind: random}
  matchups: [[7, 8], [8, 7]]
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 5, cfg.Board)
		require.Equal(t, 4, cfg.Win)
		require.Equal(t, OpponentRandom, cfg.Opponent)
		require.Equal(t, uint64(17), cfg.Seed)
		require.Equal(t, 1000, cfg.Simulations, "Missing keys keep defaults")
		require.Equal(t, 3, cfg.Experiment.Games)
		require.Equal(t, "experiments", cfg.Experiment.OutDir)
		require.Equal(t, []metrics.AgentConfig{
			{ID: 7, Kind: metrics.KindMCTS, Simulations: 50, Seed: 1},
			{ID: 8, Kind: metrics.KindRandom},
		}, cfg.Experiment.Agents)
		require.Equal(t, [][2]int{{7, 8}, {8, 7}}, cfg.Experiment.Matchups)
		require.NoError(t, cfg.ValidateExperiment())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Load(writeConfig(t, "board: [1, 2"))

		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"empty board":      func(c *Config) { c.Board = 0 },
		"win too long":     func(c *Config) { c.Win = 4 },
		"win too short":    func(c *Config) { c.Win = 0 },
		"no simulations":   func(c *Config) { c.Simulations = 0 },
		"unknown opponent": func(c *Config) { c.Opponent = "alien" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestValidateExperiment(t *testing.T) {
	cases := map[string]func(c *Config){
		"no games":        func(c *Config) { c.Experiment.Games = 0 },
		"no parallelism":  func(c *Config) { c.Experiment.Parallel = 0 },
		"duplicate agent": func(c *Config) { c.Experiment.Agents[1].ID = 1 },
		"unknown kind":    func(c *Config) { c.Experiment.Agents[1].Kind = "oracle" },
		"mcts no budget":  func(c *Config) { c.Experiment.Agents[0].Simulations = 0 },
		"no matchups":     func(c *Config) { c.Experiment.Matchups = nil },
		"unknown agent":   func(c *Config) { c.Experiment.Matchups = [][2]int{{1, 3}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)

			require.ErrorIs(t, cfg.ValidateExperiment(), ErrInvalid)
		})
	}
}
