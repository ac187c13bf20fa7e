package main

import (
	"os"
	"path/filepath"
	"testing"

	"mcts/config"
	"mcts/game"
	"mcts/player"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, opts, err := parse(nil)

		require.NoError(t, err)
		require.Equal(t, config.Default(), cfg)
		require.False(t, opts.experiment)
	})

	t.Run("shorthands", func(t *testing.T) {
		cfg, _, err := parse([]string{"-b", "4", "-w", "3", "-m", "50", "-f", "-v"})

		require.NoError(t, err)
		require.Equal(t, 4, cfg.Board)
		require.Equal(t, 3, cfg.Win)
		require.Equal(t, 50, cfg.Simulations)
		require.True(t, cfg.First)
		require.True(t, cfg.Verbose)
	})

	t.Run("flags override the config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("board: 5\nwin: 4\nopponent: random\n"), 0o644))

		cfg, opts, err := parse([]string{"-config", path, "-win", "3", "-experiment"})

		require.NoError(t, err)
		require.Equal(t, 5, cfg.Board, "Value from the file")
		require.Equal(t, 3, cfg.Win, "Value from the flag")
		require.Equal(t, config.OpponentRandom, cfg.Opponent)
		require.True(t, opts.experiment)
	})

	t.Run("missing config file", func(t *testing.T) {
		_, _, err := parse([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")})

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestOpponentSeed(t *testing.T) {
	cfg := config.Default()
	require.Zero(t, opponentSeed(cfg), "No seed keeps system seeding")

	cfg.Seed = 5
	require.Equal(t, uint64(6), opponentSeed(cfg))
	require.NotEqual(t, cfg.Seed, opponentSeed(cfg))

	agent := player.NewRandom(cfg.Seed)
	opponent := player.NewRandom(opponentSeed(cfg))
	env, err := game.NewTicTacToe(5, 3)
	require.NoError(t, err)
	differ := false
	for i := 0; i < 20 && !differ; i++ {
		a, err := agent.Move(env, game.X)
		require.NoError(t, err)
		o, err := opponent.Move(env, game.O)
		require.NoError(t, err)
		differ = a != o
	}
	require.True(t, differ, "Agent and opponent should not draw the same stream")
}

func TestPlay(t *testing.T) {
	cfg := config.Default()
	cfg.Opponent = config.OpponentRandom
	cfg.Simulations = 200
	cfg.Seed = 5

	winner, err := play(cfg)

	require.NoError(t, err)
	require.Contains(t, []string{"X", "O", "-"}, winner.String())
}
