package experiments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"mcts/config"
	"mcts/engine"
	"mcts/experiments/metrics"
	"mcts/game"
	"mcts/player"
	"mcts/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

var ErrInvalidSeries = errors.New("invalid experiment")

// Series describes a series of games between pairs of agents. Agent1 of a
// matchup always plays X; the side moving first alternates between games.
type Series struct {
	Name     string
	Board    int
	Win      int
	Games    int // per matchup
	Parallel int
	Agents   []metrics.AgentConfig
	Matchups [][2]int
}

type Report struct {
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []metrics.Summary
}

type job struct {
	index   int
	matchup int
	game    int
	agent1  metrics.AgentConfig
	agent2  metrics.AgentConfig
}

func SeriesFromConfig(cfg config.Config) Series {
	return Series{
		Name:     cfg.Experiment.Name,
		Board:    cfg.Board,
		Win:      cfg.Win,
		Games:    cfg.Experiment.Games,
		Parallel: cfg.Experiment.Parallel,
		Agents:   cfg.Experiment.Agents,
		Matchups: cfg.Experiment.Matchups,
	}
}

func (s Series) jobs() ([]job, error) {
	if s.Games < 1 || s.Parallel < 1 {
		return nil, fmt.Errorf("%w: games %d, parallel %d", ErrInvalidSeries, s.Games, s.Parallel)
	}
	agents := make(map[int]metrics.AgentConfig, len(s.Agents))
	for _, a := range s.Agents {
		agents[a.ID] = a
	}

	jobs := make([]job, 0, len(s.Matchups)*s.Games)
	for mi, m := range s.Matchups {
		agent1, ok1 := agents[m[0]]
		agent2, ok2 := agents[m[1]]
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: matchup %v references an unknown agent", ErrInvalidSeries, m)
		}
		for i := 0; i < s.Games; i++ {
			jobs = append(jobs, job{
				index:   len(jobs),
				matchup: mi + 1,
				game:    i + 1,
				agent1:  agent1,
				agent2:  agent2,
			})
		}
	}
	return jobs, nil
}

// Run plays every game of series, up to series.Parallel games at a time. Each
// game owns its environment, players and search trees.
func Run(ctx context.Context, series Series) (Report, error) {
	jobs, err := series.jobs()
	if err != nil {
		return Report{}, err
	}

	log.Info().Msgf("starting %s experiment with %d games...", series.Name, len(jobs))

	results := make([]engine.Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(series.Parallel)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := runGame(series, j)
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", j.matchup, j.game, err)
			}
			results[j.index] = result
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", j.matchup, len(series.Matchups), j.game, result.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	log.Info().Msgf("completed %s experiment", series.Name)
	return buildReport(series, jobs, results), nil
}

// runGame executes a single game between two agents
func runGame(series Series, j job) (engine.Result, error) {
	env, err := game.NewTicTacToe(series.Board, series.Win)
	if err != nil {
		return engine.Result{}, err
	}
	x, err := newPlayer(j.agent1, j.index)
	if err != nil {
		return engine.Result{}, err
	}
	o, err := newPlayer(j.agent2, j.index)
	if err != nil {
		return engine.Result{}, err
	}

	first := game.X
	if j.game%2 == 0 {
		first = game.O
	}
	logger := log.With().Int("matchup", j.matchup).Int("game_no", j.game).Logger().Level(zerolog.WarnLevel)
	e, err := engine.NewLocal(env, engine.Players{game.X: x, game.O: o}, first, engine.WithLogger(logger))
	if err != nil {
		return engine.Result{}, err
	}
	return e.Run()
}

func newPlayer(agent metrics.AgentConfig, index int) (player.Player, error) {
	var seed uint64
	if agent.Seed != 0 {
		seed = agent.Seed + uint64(index)
	}

	switch agent.Kind {
	case metrics.KindMCTS:
		options := []searcher.Option{
			searcher.WithSimulations(agent.Simulations),
			searcher.WithMetrics(),
		}
		if seed != 0 {
			options = append(options, searcher.WithSeed(seed))
		}
		m, err := searcher.NewMCTS(options...)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", agent.ID, err)
		}
		return player.NewAgent(m), nil
	case metrics.KindRandom:
		return player.NewRandom(seed), nil
	default:
		return nil, fmt.Errorf("%w: agent %d has unknown kind %q", ErrInvalidSeries, agent.ID, agent.Kind)
	}
}

func buildReport(series Series, jobs []job, results []engine.Result) Report {
	report := Report{
		Games: make([]metrics.GameRecord, 0, len(results)),
	}
	for i, result := range results {
		j := jobs[i]
		report.Games = append(report.Games, metrics.NewGameRecord(j.matchup, j.agent1.ID, j.agent2.ID, result))
		report.Moves = append(report.Moves, metrics.NewMoveRecords(result)...)
	}

	for mi := range series.Matchups {
		var matchup []engine.Result
		var first job
		for i, j := range jobs {
			if j.matchup == mi+1 {
				if len(matchup) == 0 {
					first = j
				}
				matchup = append(matchup, results[i])
			}
		}
		report.Summaries = append(report.Summaries, summarize(mi+1, first.agent1.ID, first.agent2.ID, matchup))
	}
	return report
}

func summarize(matchup, agent1, agent2 int, results []engine.Result) metrics.Summary {
	s := metrics.Summary{
		Matchup: matchup,
		Agent1:  agent1,
		Agent2:  agent2,
		Games:   len(results),
	}

	moves := make([]float64, 0, len(results))
	var searches []float64
	for _, r := range results {
		switch r.Winner {
		case game.X:
			s.Agent1Wins++
		case game.O:
			s.Agent2Wins++
		default:
			s.Draws++
		}
		moves = append(moves, float64(len(r.Moves)))
		for _, m := range r.Metrics {
			if m.Search.Episodes > 0 {
				searches = append(searches, float64(m.Search.Duration.Microseconds())/1000)
			}
		}
	}

	s.MeanMoves, s.StdMoves = meanStd(moves)
	s.MeanSearchMs, s.StdSearchMs = meanStd(searches)
	return s
}

func meanStd(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	mean, std := stat.MeanStdDev(x, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

// Write stores the configuration, records, summaries and chart of a run
// under outDir and returns the directory used.
func Write(outDir string, series Series, report Report) (string, error) {
	writer, err := metrics.NewWriter(outDir, series.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(series.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(report.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteSummaries(report.Summaries); err != nil {
		return "", fmt.Errorf("failed to write summaries: %w", err)
	}
	if err := writer.WriteWinRateChart(series.Name, report.Summaries); err != nil {
		return "", fmt.Errorf("failed to write chart: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored summaries")
	return writer.Dir(), nil
}
