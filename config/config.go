package config

import (
	"errors"
	"fmt"
	"os"

	"mcts/experiments/metrics"

	"gopkg.in/yaml.v3"
)

// Defaults of the command line game.
const (
	BoardSize   = 3
	WinLength   = 3
	Simulations = 1000
	TreeDepth   = 1
)

const (
	OpponentHuman  = "human"
	OpponentRandom = "random"
	OpponentMCTS   = "mcts"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Board       int    `yaml:"board"`
	Win         int    `yaml:"win"`
	Simulations int    `yaml:"simulations"`
	First       bool   `yaml:"first"` // MCTS moves first
	Opponent    string `yaml:"opponent"`
	Verbose     bool   `yaml:"verbose"`
	Depth       int    `yaml:"depth"` // plies of the tree dumped when verbose
	Seed        uint64 `yaml:"seed"`  // 0 seeds from the system
	LogLevel    string `yaml:"log_level"`

	Experiment Experiment `yaml:"experiment"`
}

type Experiment struct {
	Name     string                `yaml:"name"`
	Games    int                   `yaml:"games"` // per matchup
	Parallel int                   `yaml:"parallel"`
	OutDir   string                `yaml:"out_dir"`
	Agents   []metrics.AgentConfig `yaml:"agents"`
	Matchups [][2]int              `yaml:"matchups"` // pairs of agent IDs
}

func Default() Config {
	return Config{
		Board:       BoardSize,
		Win:         WinLength,
		Simulations: Simulations,
		Opponent:    OpponentHuman,
		Depth:       TreeDepth,
		LogLevel:    "info",
		Experiment: Experiment{
			Name:     "mcts_vs_random",
			Games:    10,
			Parallel: 1,
			OutDir:   "experiments",
			Agents: []metrics.AgentConfig{
				{ID: 1, Kind: metrics.KindMCTS, Simulations: Simulations},
				{ID: 2, Kind: metrics.KindRandom},
			},
			Matchups: [][2]int{{1, 2}},
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Board < 1 {
		return fmt.Errorf("%w: board size %d", ErrInvalid, c.Board)
	}
	if c.Win < 1 || c.Win > c.Board {
		return fmt.Errorf("%w: win length %d must be in [1, %d]", ErrInvalid, c.Win, c.Board)
	}
	if c.Simulations < 1 {
		return fmt.Errorf("%w: simulations %d", ErrInvalid, c.Simulations)
	}
	switch c.Opponent {
	case OpponentHuman, OpponentRandom, OpponentMCTS:
	default:
		return fmt.Errorf("%w: unknown opponent %q", ErrInvalid, c.Opponent)
	}
	return nil
}

// ValidateExperiment checks the experiment section on top of Validate.
func (c Config) ValidateExperiment() error {
	if err := c.Validate(); err != nil {
		return err
	}
	e := c.Experiment
	if e.Games < 1 {
		return fmt.Errorf("%w: games %d", ErrInvalid, e.Games)
	}
	if e.Parallel < 1 {
		return fmt.Errorf("%w: parallel %d", ErrInvalid, e.Parallel)
	}
	agents := make(map[int]bool, len(e.Agents))
	for _, a := range e.Agents {
		if agents[a.ID] {
			return fmt.Errorf("%w: duplicate agent %d", ErrInvalid, a.ID)
		}
		if a.Kind != metrics.KindMCTS && a.Kind != metrics.KindRandom {
			return fmt.Errorf("%w: agent %d has unknown kind %q", ErrInvalid, a.ID, a.Kind)
		}
		if a.Kind == metrics.KindMCTS && a.Simulations < 1 {
			return fmt.Errorf("%w: agent %d needs simulations", ErrInvalid, a.ID)
		}
		agents[a.ID] = true
	}
	if len(e.Matchups) == 0 {
		return fmt.Errorf("%w: no matchups", ErrInvalid)
	}
	for _, m := range e.Matchups {
		if !agents[m[0]] || !agents[m[1]] {
			return fmt.Errorf("%w: matchup %v references an unknown agent", ErrInvalid, m)
		}
	}
	return nil
}
