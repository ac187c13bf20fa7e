package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"mcts/game"
	"mcts/player"
	"mcts/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrTooManyMoves = errors.New("game did not end")
)

// Players assigns a move provider to each side.
type Players map[game.Player]player.Player

type Option func(e *LocalEngine)

// WithOutput draws the board on w after every move.
func WithOutput(w io.Writer, color bool) Option {
	return func(e *LocalEngine) {
		e.out = w
		e.color = color
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *LocalEngine) {
		e.logger = logger
	}
}

func WithMaxMoves(n int) Option {
	return func(e *LocalEngine) {
		if n > 0 {
			e.maxMoves = n
		}
	}
}

var _ Engine = (*LocalEngine)(nil)

type LocalEngine struct {
	env      game.Environment
	players  Players
	first    game.Player
	out      io.Writer
	color    bool
	logger   zerolog.Logger
	maxMoves int
}

func NewLocal(env game.Environment, players Players, first game.Player, options ...Option) (*LocalEngine, error) {
	if players[game.X] == nil || players[game.O] == nil {
		return nil, errors.New("need a player for X and O")
	}
	if first != game.X && first != game.O {
		return nil, fmt.Errorf("%w: first player %d", game.ErrInvalidPlayer, first)
	}

	e := &LocalEngine{
		env:      env,
		players:  players,
		first:    first,
		logger:   log.Logger,
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run resets the environment and alternates the players, starting with
// first, until the environment reports the end of the game.
func (e *LocalEngine) Run() (Result, error) {
	e.env.Reset()
	result := Result{
		ID:        uuid.NewString(),
		First:     e.first,
		StartTime: time.Now(),
	}
	logger := e.logger.With().Str("game", result.ID).Logger()
	logger.Info().Msgf("player %s is starting", e.first)

	current := e.first
	signal := game.InProgress
	done := false
	for step := 1; !done; step++ {
		if step > e.maxMoves {
			return result, fmt.Errorf("%w after %d moves", ErrTooManyMoves, e.maxMoves)
		}

		start := time.Now()
		action, err := e.players[current].Move(e.env.Clone(), current)
		if err != nil {
			return result, fmt.Errorf("step %d, player %s: %w", step, current, err)
		}
		if !game.IsLegal(e.env, action) {
			return result, fmt.Errorf("step %d, player %s: %w %d", step, current, ErrIllegalMove, action)
		}
		metric := MoveMetric{
			Step:     step,
			Player:   current,
			Action:   action,
			Duration: time.Since(start),
		}
		if m, ok := e.players[current].(player.Metered); ok {
			metric.Search = m.LastMetric()
		}

		_, signal, done, err = e.env.Step(action, current)
		if err != nil {
			return result, fmt.Errorf("step %d, player %s: %w", step, current, err)
		}
		result.Moves = append(result.Moves, action)
		result.Metrics = append(result.Metrics, metric)

		logger.Info().
			Int("step", step).
			Str("player", current.String()).
			Int("action", int(action)).
			Dur("elapsed", metric.Duration).
			Msg("move played")
		e.render(metric)

		if !done {
			current = current.Opponent()
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	winner, err := searcher.DetermineWinner(current, signal)
	if err != nil {
		return result, fmt.Errorf("final move by %s: %w", current, err)
	}
	result.Winner = winner
	logger.Info().Str("winner", winner.String()).Int("moves", len(result.Moves)).Msgf("final signal %s", signal)
	return result, nil
}

func (e *LocalEngine) render(metric MoveMetric) {
	if e.out == nil {
		return
	}
	if metric.Search.Episodes > 0 {
		fmt.Fprintf(e.out, "%s searched %d episodes in %v\n", metric.Player, metric.Search.Episodes, metric.Search.Duration)
	}
	if r, ok := e.env.(game.Renderer); ok {
		fmt.Fprintln(e.out, r.Render(e.color))
	}
}
