package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"mcts/game"
	"mcts/searcher"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

var ErrNoMoves = errors.New("no legal moves")

// Player chooses the next action of p in env. env may be a copy of the
// game; implementations must not rely on mutating it.
type Player interface {
	Move(env game.Environment, p game.Player) (game.Action, error)
}

// Metered is implemented by players that search, exposing the metric of
// their most recent move.
type Metered interface {
	LastMetric() searcher.SearchMetric
}

// Random plays a uniformly random legal action.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a random player. A zero seed draws one from the system.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Move(env game.Environment, _ game.Player) (game.Action, error) {
	moves := env.LegalActions()
	if len(moves) == 0 {
		return 0, ErrNoMoves
	}
	return moves[r.rng.Intn(len(moves))], nil
}

// Human asks for moves on out and reads them from in, one integer per line,
// until a legal one is given.
type Human struct {
	in    *bufio.Scanner
	out   io.Writer
	color bool
}

func NewHuman(in io.Reader, out io.Writer, color bool) *Human {
	return &Human{
		in:    bufio.NewScanner(in),
		out:   out,
		color: color,
	}
}

func (h *Human) Move(env game.Environment, p game.Player) (game.Action, error) {
	moves := env.LegalActions()
	if len(moves) == 0 {
		return 0, ErrNoMoves
	}
	if r, ok := env.(game.Renderer); ok {
		fmt.Fprint(h.out, r.Render(h.color))
	}

	for {
		fmt.Fprintf(h.out, "Your move as %s %v: ", p, moves)
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return 0, fmt.Errorf("reading move: %w", err)
			}
			return 0, fmt.Errorf("reading move: %w", io.ErrUnexpectedEOF)
		}

		text := strings.TrimSpace(h.in.Text())
		n, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintf(h.out, "%q is not a number\n", text)
			continue
		}
		if !game.IsLegal(env, game.Action(n)) {
			fmt.Fprintf(h.out, "%d is not a legal move\n", n)
			continue
		}
		return game.Action(n), nil
	}
}

// Agent plays the action recommended by an MCTS search.
type Agent struct {
	mcts *searcher.MCTS
	last searcher.SearchMetric
}

func NewAgent(mcts *searcher.MCTS) *Agent {
	return &Agent{mcts: mcts}
}

func (a *Agent) Move(env game.Environment, p game.Player) (game.Action, error) {
	action, metric, err := a.mcts.Search(env, p)
	a.last = metric
	if err != nil {
		return 0, fmt.Errorf("searching move for %s: %w", p, err)
	}
	return action, nil
}

func (a *Agent) LastMetric() searcher.SearchMetric {
	return a.last
}
