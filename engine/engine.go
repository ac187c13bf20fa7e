package engine

import (
	"time"

	"mcts/game"
	"mcts/searcher"
)

// MaxMoves bounds a game in case an environment never reports the end.
const MaxMoves = 10000

type Engine interface {
	// Run plays one game from the initial state until it is over.
	Run() (Result, error)
}

// MoveMetric describes one played move. Search is zero for players that do
// not search.
type MoveMetric struct {
	Step     int
	Player   game.Player
	Action   game.Action
	Duration time.Duration
	Search   searcher.SearchMetric
}

type Result struct {
	ID        string
	First     game.Player
	Winner    game.Player // Nobody on a draw
	Moves     []game.Action
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Metrics   []MoveMetric
}
