package searcher

import "math"

// Hyperparameters for MCTS

// C is the UCB1 exploration constant.
const C = math.Sqrt2

// Winnings credited to a node per simulation outcome, from the point of view
// of the player who moved into it.
const (
	WinScore  = 1.0
	DrawScore = 0.5
	LossScore = 0.0
)

// ucb1 scores a child with winnings w over v visits under a parent visited
// n times. Both denominators are shifted by one, so an unvisited child gets
// a finite bonus C*sqrt(ln(n+1)) instead of the infinite priority of classic
// UCT. Changing this changes how wide the search explores.
func ucb1(w float64, v, n int) float64 {
	d := float64(v + 1)
	return w/d + C*math.Sqrt(math.Log(float64(n+1))/d)
}

// pickChild returns the index of the child with the maximum UCB1 score, or -1
// if n has no children. Ties go to the first inserted child.
func (n *node) pickChild() int {
	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		score := ucb1(child.winnings, child.visits, n.visits)
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// pickBest returns the index of the visited child with the highest win rate,
// or -1 if none was visited. Ties go to the first inserted child.
func (n *node) pickBest() int {
	maxIndex := -1
	maxRate := math.Inf(-1)
	for i, child := range n.children {
		if child.visits == 0 {
			continue
		}
		rate := child.winnings / float64(child.visits)
		if rate > maxRate {
			maxRate = rate
			maxIndex = i
		}
	}
	return maxIndex
}
