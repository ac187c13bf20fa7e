package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/muesli/termenv"
)

// ColorEnabled reports whether the terminal accepts ANSI colors, honouring
// NO_COLOR and CLICOLOR.
func ColorEnabled() bool {
	if termenv.EnvNoColor() {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// Render draws the board one row per line. Free cells show their action
// index so a human can read off legal moves.
func (t *TicTacToe) Render(color bool) string {
	au := aurora.NewAurora(color)
	width := len(strconv.Itoa(len(t.board) - 1))

	var sb strings.Builder
	for row := 0; row < t.size; row++ {
		for col := 0; col < t.size; col++ {
			if col > 0 {
				sb.WriteString(fmt.Sprint(au.White("|")))
			}
			i := row*t.size + col
			cell := fmt.Sprintf("%*s", width, t.board[i].String())
			switch t.board[i] {
			case X:
				sb.WriteString(fmt.Sprint(au.Red(cell)))
			case O:
				sb.WriteString(fmt.Sprint(au.Blue(cell)))
			default:
				sb.WriteString(fmt.Sprint(au.Faint(fmt.Sprintf("%*d", width, i))))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
