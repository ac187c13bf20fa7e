package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize      = errors.New("invalid board size")
	ErrActionOutOfRange = errors.New("action out of range")
	ErrInvalidPlayer    = errors.New("invalid player")
)

// directions scanned for a line: row, column, diagonal, anti-diagonal
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// TicTacToe is an m,n,k game on a size x size board where win marks in a
// row (horizontally, vertically or diagonally) win.
type TicTacToe struct {
	size  int
	win   int
	board []Player
	empty int
	done  bool
}

func NewTicTacToe(size, win int) (*TicTacToe, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidSize, size)
	}
	if win < 1 || win > size {
		return nil, fmt.Errorf("%w: win length %d on a %dx%d board", ErrInvalidSize, win, size, size)
	}
	t := &TicTacToe{size: size, win: win}
	t.Reset()
	return t, nil
}

func (t *TicTacToe) Size() int {
	return t.size
}

func (t *TicTacToe) WinLength() int {
	return t.win
}

func (t *TicTacToe) Done() bool {
	return t.done
}

func (t *TicTacToe) Reset() {
	t.board = make([]Player, t.size*t.size)
	t.empty = len(t.board)
	t.done = false
}

func (t *TicTacToe) Step(action Action, player Player) ([]Player, Signal, bool, error) {
	if action < 0 || int(action) >= len(t.board) {
		return t.StateVector(), Invalid, t.done, fmt.Errorf("%w: %d not in [0, %d)", ErrActionOutOfRange, action, len(t.board))
	}
	if player != X && player != O {
		return t.StateVector(), Invalid, t.done, fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	if t.done || t.board[action] != Nobody {
		// Playing on after the end or onto a taken cell aborts the game.
		t.done = true
		return t.StateVector(), Invalid, true, nil
	}

	t.board[action] = player
	t.empty--

	if t.completesLine(int(action), player) {
		t.done = true
		return t.StateVector(), Win, true, nil
	}
	if t.empty == 0 {
		t.done = true
		return t.StateVector(), Draw, true, nil
	}
	return t.StateVector(), InProgress, false, nil
}

func (t *TicTacToe) StateVector() []Player {
	state := make([]Player, len(t.board))
	copy(state, t.board)
	return state
}

func (t *TicTacToe) LegalActions() []Action {
	if t.done {
		return nil
	}
	actions := make([]Action, 0, t.empty)
	for i, cell := range t.board {
		if cell == Nobody {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

func (t *TicTacToe) Clone() Environment {
	clone := *t
	clone.board = t.StateVector()
	return &clone
}

// completesLine checks whether the mark just placed at cell belongs to a run
// of at least t.win marks of player.
func (t *TicTacToe) completesLine(cell int, player Player) bool {
	row, col := cell/t.size, cell%t.size
	for _, d := range directions {
		count := 1 + t.run(row, col, d[0], d[1], player) + t.run(row, col, -d[0], -d[1], player)
		if count >= t.win {
			return true
		}
	}
	return false
}

func (t *TicTacToe) run(row, col, dr, dc int, player Player) int {
	n := 0
	for r, c := row+dr, col+dc; r >= 0 && r < t.size && c >= 0 && c < t.size; r, c = r+dr, c+dc {
		if t.board[r*t.size+c] != player {
			break
		}
		n++
	}
	return n
}
