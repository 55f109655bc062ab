package gridworld

import "fmt"

// Action is one of the four directional moves.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the size of the action set.
const NumActions = 4

var actionNames = [NumActions]string{"up", "down", "left", "right"}

// Actions returns the full action set in enumeration order. The slice is
// freshly allocated so callers may consume it.
func Actions() []Action {
	return []Action{Up, Down, Left, Right}
}

func (a Action) Valid() bool {
	return a >= Up && a <= Right
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction accepts the long names and the single-letter forms u/d/l/r.
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if s == name || s == name[:1] {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// Position is a cell on the grid. Up decreases Y, Down increases it.
type Position struct {
	X int
	Y int
}

// Move returns the neighbouring cell in direction a without bounds checks.
func (p Position) Move(a Action) Position {
	switch a {
	case Up:
		return Position{p.X, p.Y - 1}
	case Down:
		return Position{p.X, p.Y + 1}
	case Left:
		return Position{p.X - 1, p.Y}
	case Right:
		return Position{p.X + 1, p.Y}
	default:
		panic(fmt.Sprintf("unexpected action %d", int(a)))
	}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Manhattan returns the L1 distance between two cells.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
