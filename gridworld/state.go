package gridworld

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/zeebo/xxh3"
)

type StateHash uint64

// GridState is a snapshot of the agent, goal and obstacle positions.
// Obstacles keep their spawn order so snapshots compare deterministically.
type GridState struct {
	Agent     Position
	Goal      Position
	Obstacles []Position
}

// Clone returns a copy that shares no memory with s.
func (s GridState) Clone() GridState {
	return GridState{
		Agent:     s.Agent,
		Goal:      s.Goal,
		Obstacles: slices.Clone(s.Obstacles),
	}
}

func (s GridState) Equal(other GridState) bool {
	return s.Agent == other.Agent && s.Goal == other.Goal && slices.Equal(s.Obstacles, other.Obstacles)
}

// Hash identifies a state for outcome matching and tree reuse.
func (s GridState) Hash() StateHash {
	buf := make([]byte, 0, 8*(4+2*len(s.Obstacles)))
	for _, p := range append([]Position{s.Agent, s.Goal}, s.Obstacles...) {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(p.X))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(p.Y))
	}
	return StateHash(xxh3.Hash(buf))
}

// HasObstacle reports whether any obstacle occupies p.
func (s GridState) HasObstacle(p Position) bool {
	return slices.Contains(s.Obstacles, p)
}

// IsTerminal reports whether the agent reached the goal or hit an obstacle.
func (s GridState) IsTerminal() bool {
	return s.Agent == s.Goal || s.HasObstacle(s.Agent)
}

// IsTerminal is the free-function form of GridState.IsTerminal.
func IsTerminal(state GridState) bool {
	return state.IsTerminal()
}

func (s GridState) String() string {
	return fmt.Sprintf("agent=%v goal=%v obstacles=%v", s.Agent, s.Goal, s.Obstacles)
}
