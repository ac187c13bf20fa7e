package searcher

import (
	"errors"
	"fmt"

	"mcts/game"
)

var (
	// ErrInvalidTerminalSignal is returned when a finished game reports a
	// code that is neither a win nor a draw.
	ErrInvalidTerminalSignal = errors.New("invalid terminal signal")
	// ErrNoLegalActions is returned when a game that is not over offers no
	// action to expand or play.
	ErrNoLegalActions  = errors.New("no legal actions in a non-terminal state")
	ErrAlreadyExpanded = errors.New("node already expanded")
	ErrInvalidBudget   = errors.New("simulation budget must be positive")
	ErrNoAction        = errors.New("search produced no visited action")
)

// DetermineWinner interprets the signal of the step that ended a game.
// player is the one who made that step. A draw has no winner.
func DetermineWinner(player game.Player, signal game.Signal) (game.Player, error) {
	switch signal {
	case game.Draw:
		return game.Nobody, nil
	case game.Win:
		return player, nil
	default:
		return game.Nobody, fmt.Errorf("%w: %d (%s)", ErrInvalidTerminalSignal, signal, signal)
	}
}

// valueFor converts a winner into a value from player's point of view.
func valueFor(winner, player game.Player) float64 {
	switch winner {
	case game.Nobody:
		return 0
	case player:
		return 1
	default:
		return -1
	}
}
