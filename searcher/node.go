package searcher

import (
	"fmt"

	"mcts/game"
)

// node is one vertex of the search tree. It keeps statistics and the actions
// leading to its children but never the game state; the driver replays the
// actions on a scratch environment instead.
type node struct {
	parent   *node       // nil for the root
	player   game.Player // player whose move produced this node
	actions  []game.Action
	children []*node // children[i] is reached by actions[i], in insertion order
	winnings float64
	visits   int
}

func newNode(parent *node, player game.Player) *node {
	return &node{
		parent: parent,
		player: player,
	}
}

func (n *node) expanded() bool {
	return len(n.children) > 0
}

// expand adds one child per legal action of env, which must hold the state
// n stands for. Children are created once and never replaced.
func (n *node) expand(env game.Environment) error {
	if n.expanded() {
		return ErrAlreadyExpanded
	}

	actions := env.LegalActions()
	if len(actions) == 0 {
		return fmt.Errorf("expanding node of player %s: %w", n.player, ErrNoLegalActions)
	}

	n.actions = make([]game.Action, len(actions))
	copy(n.actions, actions)
	n.children = make([]*node, len(actions))
	for i := range actions {
		n.children[i] = newNode(n, n.player.Opponent())
	}
	return nil
}

// update records one simulation outcome from this node's point of view and
// returns the parent.
func (n *node) update(value float64) *node {
	switch {
	case value > 0:
		n.winnings += WinScore
	case value == 0:
		n.winnings += DrawScore
	default:
		n.winnings += LossScore
	}
	n.visits++
	return n.parent
}

// backpropagate walks to the root, negating value at every ply since each
// parent was produced by the other player.
func (n *node) backpropagate(value float64) {
	cur := n
	for cur != nil {
		parent := cur.update(value)
		cur = parent
		value = -value
	}
}

// selection descends by UCB1 until it reaches a node without children.
func (n *node) selection() *node {
	cur := n
	for {
		i := cur.pickChild()
		if i < 0 {
			return cur
		}
		cur = cur.children[i]
	}
}

// selectAction returns the action of the child with the highest UCB1 score,
// or false for a leaf.
func (n *node) selectAction() (game.Action, bool) {
	i := n.pickChild()
	if i < 0 {
		return 0, false
	}
	return n.actions[i], true
}

// selectRealAction returns the action of the visited child with the best
// empirical win rate, or false if no child has been visited.
func (n *node) selectRealAction() (game.Action, bool) {
	i := n.pickBest()
	if i < 0 {
		return 0, false
	}
	return n.actions[i], true
}
