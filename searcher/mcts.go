package searcher

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"mcts/game"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Option func(mcts *MCTS)

// MCTS searches for the best action of one player with plain UCB1 Monte
// Carlo tree search. Each Search builds a fresh tree and runs a fixed number
// of simulations sequentially.
type MCTS struct {
	simulations int
	rand        *rand.Rand
	verbose     bool
	depth       int
	treeWriter  io.Writer
	logger      zerolog.Logger
	metrics     Collector
	keepTree    bool
	root        *node // last tree, only with WithKeepTree
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

// WithSeed makes rollouts reproducible.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rand = rand.New(rand.NewSource(seed))
	}
}

func WithRand(r *rand.Rand) Option {
	return func(m *MCTS) {
		if r != nil {
			m.rand = r
		}
	}
}

// WithVerbose dumps the tree after every search down to depth plies
// (everything if depth <= 0).
func WithVerbose(depth int) Option {
	return func(m *MCTS) {
		m.verbose = true
		m.depth = depth
	}
}

// WithTreeWriter sets where verbose tree dumps are written. Without it the
// dump only goes to the logger at debug level.
func WithTreeWriter(w io.Writer) Option {
	return func(m *MCTS) {
		m.treeWriter = w
	}
}

// WithKeepTree holds on to the tree of the last search so PrintTree can show
// it later. Without it every tree is dropped when Search returns.
func WithKeepTree() Option {
	return func(m *MCTS) {
		m.keepTree = true
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *MCTS) {
		m.logger = logger
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = NewCollector()
	}
}

func NewMCTS(options ...Option) (*MCTS, error) {
	m := &MCTS{ // Default values
		depth:   1,
		logger:  zerolog.Nop(),
		metrics: NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.simulations <= 0 {
		return nil, ErrInvalidBudget
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}
	return m, nil
}

// RunMCTS searches budget simulations for actor from the state of env and
// returns the recommended action. env is not modified. With verbose the top
// of the tree is printed to stdout.
//
// When no child of the root was visited, as with a budget of 1, there is no
// recommendation and the error is ErrNoAction. Callers treat it as "none"
// rather than as a failed search.
func RunMCTS(env game.Environment, actor game.Player, budget int, verbose bool) (game.Action, error) {
	if budget <= 0 {
		return 0, ErrInvalidBudget
	}
	options := []Option{WithSimulations(budget)}
	if verbose {
		options = append(options, WithVerbose(1), WithTreeWriter(os.Stdout))
	}
	m, err := NewMCTS(options...)
	if err != nil {
		return 0, err
	}
	action, _, err := m.Search(env, actor)
	return action, err
}

func (m *MCTS) Simulations() int {
	return m.simulations
}

// Search runs the simulation budget for actor, who is about to move in env,
// and returns the visited root action with the best win rate, or ErrNoAction
// if no root action was visited.
func (m *MCTS) Search(env game.Environment, actor game.Player) (game.Action, SearchMetric, error) {
	root := newNode(nil, actor.Opponent())
	m.root = nil

	m.metrics.Start(m.simulations)
	for i := 0; i < m.simulations; i++ {
		if err := m.simulate(root, env.Clone()); err != nil {
			return 0, m.metrics.Complete(), fmt.Errorf("simulation %d of %d: %w", i+1, m.simulations, err)
		}
		m.metrics.AddEpisode()
	}
	metric := m.metrics.Complete()

	if m.verbose {
		m.dumpTree(root)
	}
	if m.keepTree {
		m.root = root
	}

	action, ok := root.selectRealAction()
	if !ok {
		return 0, metric, ErrNoAction
	}
	m.logger.Debug().
		Int("action", int(action)).
		Str("player", actor.String()).
		Int("root_visits", root.visits).
		Dur("duration", metric.Duration).
		Msg("search completed")
	return action, metric, nil
}

// simulate runs one selection, expansion, rollout and backpropagation pass
// on env, a scratch copy of the searched state.
func (m *MCTS) simulate(root *node, env game.Environment) error {
	leaf, signal, done, err := descend(root, env)
	if err != nil {
		return err
	}

	var winner game.Player
	if done {
		m.metrics.AddTerminalHit()
		if winner, err = DetermineWinner(leaf.player, signal); err != nil {
			return err
		}
	} else {
		if err := leaf.expand(env); err != nil {
			return err
		}
		m.metrics.AddNodes(len(leaf.children))

		player, final, plies, err := rollout(env, leaf.player.Opponent(), m.rand)
		if err != nil {
			return err
		}
		m.metrics.AddFullPlayout(plies)
		if winner, err = DetermineWinner(player, final); err != nil {
			return err
		}
	}

	leaf.backpropagate(valueFor(winner, leaf.player))
	return nil
}

// descend follows selectAction from root, replaying every chosen action on
// env, until it reaches a leaf or the game ends.
func descend(root *node, env game.Environment) (*node, game.Signal, bool, error) {
	cur := root
	signal := game.InProgress
	done := false
	for !done {
		i := cur.pickChild()
		if i < 0 {
			break
		}
		var err error
		_, signal, done, err = env.Step(cur.actions[i], cur.player.Opponent())
		if err != nil {
			return nil, signal, false, fmt.Errorf("replaying action %d: %w", cur.actions[i], err)
		}
		cur = cur.children[i]
	}
	return cur, signal, done, nil
}

// PrintTree writes the tree of the last search down to maxDepth plies. It
// writes nothing unless the searcher was built WithKeepTree.
func (m *MCTS) PrintTree(w io.Writer, maxDepth int) error {
	if m.root == nil {
		return nil
	}
	return printTree(w, m.root, maxDepth)
}

func (m *MCTS) dumpTree(root *node) {
	var sb strings.Builder
	_ = printTree(&sb, root, m.depth)
	m.logger.Debug().Msg("search tree\n" + sb.String())
	if m.treeWriter != nil {
		if _, err := io.WriteString(m.treeWriter, sb.String()); err != nil {
			m.logger.Warn().Err(err).Msg("failed to write search tree")
		}
	}
}
