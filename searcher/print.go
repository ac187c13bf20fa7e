package searcher

import (
	"fmt"
	"io"
	"strings"
)

// printTree writes the subtree under root, one visited child per line with
// its winnings, visits, win rate and player. maxDepth <= 0 prints everything.
func printTree(w io.Writer, root *node, maxDepth int) error {
	if _, err := fmt.Fprintf(w, "root (%g/%d) %s\n", root.winnings, root.visits, root.player); err != nil {
		return err
	}
	return printChildren(w, root, 0, maxDepth)
}

func printChildren(w io.Writer, n *node, depth, maxDepth int) error {
	indent := strings.Repeat("\t", depth)
	for i, child := range n.children {
		if child.visits == 0 {
			continue
		}
		_, err := fmt.Fprintf(w, "%s├ %d (%g/%d) %.3f %s\n",
			indent, n.actions[i], child.winnings, child.visits,
			child.winnings/float64(child.visits), child.player)
		if err != nil {
			return err
		}
		if maxDepth <= 0 || depth+1 < maxDepth {
			if err := printChildren(w, child, depth+1, maxDepth); err != nil {
				return err
			}
		}
	}
	return nil
}
