package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"mcts/config"
	"mcts/engine"
	"mcts/experiments"
	"mcts/game"
	"mcts/player"
	"mcts/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type options struct {
	config     string
	experiment bool
}

// bind registers every flag on fs with the current value of cfg as default,
// so flags given on the command line override the config file.
func bind(fs *flag.FlagSet, cfg *config.Config, opts *options) {
	fs.StringVar(&opts.config, "config", opts.config, "YAML config file")
	fs.BoolVar(&opts.experiment, "experiment", opts.experiment, "Run the experiment of the config instead of a game")
	fs.IntVar(&cfg.Board, "board", cfg.Board, "Board size")
	fs.IntVar(&cfg.Board, "b", cfg.Board, "Board size (shorthand)")
	fs.IntVar(&cfg.Win, "win", cfg.Win, "Marks in a row needed to win")
	fs.IntVar(&cfg.Win, "w", cfg.Win, "Marks in a row needed to win (shorthand)")
	fs.BoolVar(&cfg.First, "first", cfg.First, "MCTS moves first")
	fs.BoolVar(&cfg.First, "f", cfg.First, "MCTS moves first (shorthand)")
	fs.IntVar(&cfg.Simulations, "mcts", cfg.Simulations, "Simulations per MCTS move")
	fs.IntVar(&cfg.Simulations, "m", cfg.Simulations, "Simulations per MCTS move (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Print the search tree after every MCTS move")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Print the search tree after every MCTS move (shorthand)")
	fs.IntVar(&cfg.Depth, "depth", cfg.Depth, "Plies of the tree printed when verbose, 0 for all")
	fs.StringVar(&cfg.Opponent, "opponent", cfg.Opponent, "Opponent of MCTS: human, random or mcts")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed, 0 seeds from the system")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
}

func parse(args []string) (config.Config, options, error) {
	cfg := config.Default()
	var opts options
	fs := flag.NewFlagSet("mcts", flag.ContinueOnError)
	bind(fs, &cfg, &opts)
	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}
	if opts.config == "" {
		return cfg, opts, nil
	}

	loaded, err := config.Load(opts.config)
	if err != nil {
		return cfg, opts, err
	}
	fs = flag.NewFlagSet("mcts", flag.ContinueOnError)
	bind(fs, &loaded, &opts)
	if err := fs.Parse(args); err != nil {
		return loaded, opts, err
	}
	return loaded, opts, nil
}

func main() {
	cfg, opts, err := parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal().Err(err).Msg("failed to parse arguments")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	if opts.experiment {
		if err := runExperiment(cfg); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	winner, err := play(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("game failed")
	}
	if winner == game.Nobody {
		fmt.Println("Draw !")
	} else {
		fmt.Printf("%s wins\n", winner)
	}
}

// play runs one game with MCTS as X against the configured opponent as O.
func play(cfg config.Config) (game.Player, error) {
	env, err := game.NewTicTacToe(cfg.Board, cfg.Win)
	if err != nil {
		return game.Nobody, err
	}
	color := game.ColorEnabled()

	agent, err := newAgent(cfg, cfg.Seed)
	if err != nil {
		return game.Nobody, err
	}

	var opponent player.Player
	switch cfg.Opponent {
	case config.OpponentHuman:
		opponent = player.NewHuman(os.Stdin, os.Stdout, color)
	case config.OpponentRandom:
		opponent = player.NewRandom(opponentSeed(cfg))
	case config.OpponentMCTS:
		opponent, err = newAgent(cfg, opponentSeed(cfg))
		if err != nil {
			return game.Nobody, err
		}
	}

	first := game.O
	if cfg.First {
		first = game.X
	}
	e, err := engine.NewLocal(env, engine.Players{game.X: agent, game.O: opponent}, first, engine.WithOutput(os.Stdout, color))
	if err != nil {
		return game.Nobody, err
	}
	result, err := e.Run()
	if err != nil {
		return game.Nobody, err
	}
	log.Info().Str("game", result.ID).Dur("duration", result.Duration).Msgf("game over after %d moves", len(result.Moves))
	return result.Winner, nil
}

// opponentSeed keeps the opponent's random stream apart from the agent's.
// Zero still means a seed from the system.
func opponentSeed(cfg config.Config) uint64 {
	if cfg.Seed == 0 {
		return 0
	}
	return cfg.Seed + 1
}

func newAgent(cfg config.Config, seed uint64) (*player.Agent, error) {
	options := []searcher.Option{
		searcher.WithSimulations(cfg.Simulations),
		searcher.WithLogger(log.Logger),
		searcher.WithMetrics(),
	}
	if seed != 0 {
		options = append(options, searcher.WithSeed(seed))
	}
	if cfg.Verbose {
		options = append(options, searcher.WithVerbose(cfg.Depth), searcher.WithTreeWriter(os.Stdout))
	}
	m, err := searcher.NewMCTS(options...)
	if err != nil {
		return nil, err
	}
	return player.NewAgent(m), nil
}

func runExperiment(cfg config.Config) error {
	if err := cfg.ValidateExperiment(); err != nil {
		return err
	}
	series := experiments.SeriesFromConfig(cfg)
	report, err := experiments.Run(context.Background(), series)
	if err != nil {
		return err
	}
	dir, err := experiments.Write(cfg.Experiment.OutDir, series, report)
	if err != nil {
		return err
	}
	for _, s := range report.Summaries {
		log.Info().Msgf("matchup %d: agent %d won %d, agent %d won %d, %d draws", s.Matchup, s.Agent1, s.Agent1Wins, s.Agent2, s.Agent2Wins, s.Draws)
	}
	log.Info().Msgf("results stored in %s", dir)
	return nil
}
