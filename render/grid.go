// Package render draws grid layouts for the terminal and experiment charts.
package render

import (
	"fmt"
	"strings"

	"gridmcts/gridworld"

	"github.com/logrusorgru/aurora"
)

// Cell glyphs
const (
	Empty        = "."
	AgentCell    = "A"
	GoalCell     = "G"
	ObstacleCell = "#"
	CrashCell    = "X" // agent on an obstacle
	ArrivalCell  = "*" // agent on the goal
	TrailCell    = "o" // agent's previous cell
	DriftCell    = "+" // an obstacle's previous cell
)

// Grid formats a layout as one line per row, top row first.
type Grid struct {
	au aurora.Aurora
}

func NewGrid(colors bool) Grid {
	return Grid{au: aurora.NewAurora(colors)}
}

// Frame draws state. Cells the agent and obstacles left since prev are
// marked faintly so movement is visible between frames.
func (g Grid) Frame(size int, prev, state gridworld.GridState) string {
	var b strings.Builder
	b.WriteString(g.border(size))
	for y := 0; y < size; y++ {
		b.WriteString("|")
		for x := 0; x < size; x++ {
			b.WriteString(" ")
			b.WriteString(g.cell(gridworld.Position{X: x, Y: y}, prev, state))
		}
		b.WriteString(" |\n")
	}
	b.WriteString(g.border(size))
	return b.String()
}

func (g Grid) border(size int) string {
	return "+" + strings.Repeat("-", 2*size+1) + "+\n"
}

func (g Grid) cell(p gridworld.Position, prev, state gridworld.GridState) string {
	onObstacle := state.HasObstacle(p)
	switch {
	case p == state.Agent && onObstacle:
		return g.au.Red(CrashCell).String()
	case p == state.Agent && p == state.Goal:
		return g.au.Green(ArrivalCell).String()
	case p == state.Agent:
		return g.au.Blue(AgentCell).String()
	case p == state.Goal:
		return g.au.Green(GoalCell).String()
	case onObstacle:
		return g.au.Bold(ObstacleCell).String()
	case p == prev.Agent:
		return g.au.Cyan(TrailCell).String()
	case prev.HasObstacle(p):
		return g.au.Gray(12, DriftCell).String()
	default:
		return Empty
	}
}

// Caption is the status line printed under a live frame.
func Caption(step int, prev, state gridworld.GridState) string {
	return fmt.Sprintf("step %d: agent %v -> %v, goal %v", step, prev.Agent, state.Agent, state.Goal)
}
