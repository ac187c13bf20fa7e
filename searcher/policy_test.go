package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUCB1(t *testing.T) {
	t.Run("computing UCB1 value", func(t *testing.T) {
		got := ucb1(5.0, 9, 99)

		expected := 5.0/10 + math.Sqrt2*math.Sqrt(math.Log(100)/10)
		require.InDelta(t, expected, got, 1e-9,
			"Should compute w/(v+1) + C*sqrt(ln(N+1)/(v+1))")
	})

	t.Run("unvisited child under unvisited parent", func(t *testing.T) {
		require.Zero(t, ucb1(0, 0, 0), "ln(1) should cancel the exploration term")
	})

	t.Run("unvisited child gets a finite bonus", func(t *testing.T) {
		got := ucb1(0, 0, 1000)

		require.False(t, math.IsInf(got, 1), "Unvisited children should not get infinite priority")
		require.InDelta(t, math.Sqrt2*math.Sqrt(math.Log(1001)), got, 1e-9)
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		require.Greater(t, ucb1(5, 10, 1000), ucb1(5, 10, 100),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		require.Greater(t, ucb1(0, 10, 100), ucb1(0, 20, 100),
			"More child visits should decrease exploration term")
	})
}

func TestPickChild(t *testing.T) {
	t.Run("no children", func(t *testing.T) {
		require.Equal(t, -1, newNode(nil, 0).pickChild())
	})

	t.Run("equal scores keep first index", func(t *testing.T) {
		n := withChildren(4, [2]float64{1, 2}, [2]float64{1, 2}, [2]float64{1, 2})

		require.Equal(t, 0, n.pickChild())
	})
}

func TestPickBest(t *testing.T) {
	t.Run("no children", func(t *testing.T) {
		require.Equal(t, -1, newNode(nil, 0).pickBest())
	})

	t.Run("exploitation only", func(t *testing.T) {
		// The rarely visited child would win under UCB1 but not on win rate.
		n := withChildren(101, [2]float64{60, 100}, [2]float64{0, 1})

		require.Equal(t, 0, n.pickBest())
		require.Equal(t, 1, n.pickChild())
	})
}
