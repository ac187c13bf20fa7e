package searcher

import (
	"fmt"

	"mcts/game"

	"golang.org/x/exp/rand"
)

// rollout plays uniformly random legal actions on env, starting with start
// and alternating players, until the game ends. It returns the player who made
// the final step, the terminal signal and the number of plies played.
func rollout(env game.Environment, start game.Player, rng *rand.Rand) (game.Player, game.Signal, int, error) {
	player := start
	plies := 0
	for {
		moves := env.LegalActions()
		if len(moves) == 0 {
			return game.Nobody, game.InProgress, plies, fmt.Errorf("rollout after %d plies: %w", plies, ErrNoLegalActions)
		}

		move := moves[rng.Intn(len(moves))] // Random rollout policy
		_, signal, done, err := env.Step(move, player)
		if err != nil {
			return game.Nobody, signal, plies, fmt.Errorf("rollout step %d by %s: %w", move, player, err)
		}
		plies++

		if done {
			return player, signal, plies, nil
		}
		player = player.Opponent()
	}
}
