package game

// Action identifies a move independently of the state it is played from.
// For board games it is the index of the claimed cell, so an action stored in
// a search tree stays meaningful at any depth.
type Action int

// Player identifies one side of a two-player game. The zero value is the
// neutral "no one" used for draws.
type Player int8

const (
	Nobody Player = 0
	X      Player = -1
	O      Player = 1
)

// Opponent returns the other side. Nobody is treated like X, so its
// opponent is O.
func (p Player) Opponent() Player {
	if p == O {
		return X
	}
	return O
}

func (p Player) String() string {
	switch p {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "-"
	}
}

// Signal is the terminal code reported by Environment.Step.
type Signal int

const (
	InProgress Signal = 0
	Draw       Signal = 10
	Win        Signal = 20
	Invalid    Signal = -10
)

func (s Signal) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Draw:
		return "draw"
	case Win:
		return "win"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Environment is a simulated two-player game. Implementations must support
// deep copies through Clone so a search can branch without touching the
// caller's instance.
type Environment interface {
	// Reset restores the initial state.
	Reset()
	// Step applies action as player's move. The returned state is a copy of
	// the state vector; err is only set when the action cannot be applied at
	// all (e.g. out of range), in which case the state is unchanged.
	Step(action Action, player Player) (state []Player, signal Signal, done bool, err error)
	// StateVector returns a copy of the board, Nobody marking free cells.
	StateVector() []Player
	// LegalActions returns the free cells in ascending order, or nothing once
	// the game is over.
	LegalActions() []Action
	Clone() Environment
}

// Renderer is implemented by environments that can draw themselves.
type Renderer interface {
	Render(color bool) string
}

// IsLegal reports whether action is one of env's legal actions.
func IsLegal(env Environment, action Action) bool {
	for _, a := range env.LegalActions() {
		if a == action {
			return true
		}
	}
	return false
}
