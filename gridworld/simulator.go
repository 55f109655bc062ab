// Package gridworld implements the stochastic grid navigation environment.
package gridworld

import (
	"fmt"
	"slices"

	"golang.org/x/exp/rand"
)

// NewRand returns the seedable random source shared by one trial.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Simulator owns one GridState and applies the stochastic transition
// function to it. It is not safe for concurrent use; clones share the random
// source of their origin unless created with CloneWithRand.
type Simulator struct {
	dynamics *Dynamics
	rng      *rand.Rand
	state    GridState
	history  []GridState
}

// NewSimulator validates the dynamics and resets a fresh simulator.
func NewSimulator(dynamics Dynamics, rng *rand.Rand) (*Simulator, error) {
	if err := dynamics.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("simulator requires a random source")
	}
	s := &Simulator{
		dynamics: &dynamics,
		rng:      rng,
	}
	s.Reset()
	return s, nil
}

// Reset places the agent at the top-left corner, the goal at the opposite
// corner and samples obstacles on the remaining cells.
func (s *Simulator) Reset() GridState {
	last := s.dynamics.Size - 1
	s.state = GridState{
		Agent: Position{0, 0},
		Goal:  Position{last, last},
	}
	s.state.Obstacles = s.generateObstacles()
	s.assertInvariants()
	s.history = []GridState{s.state.Clone()}
	return s.state.Clone()
}

func (s *Simulator) generateObstacles() []Position {
	obstacles := make([]Position, 0, s.dynamics.NumObstacles)
	for len(obstacles) < s.dynamics.NumObstacles {
		p := Position{s.rng.Intn(s.dynamics.Size), s.rng.Intn(s.dynamics.Size)}
		if p == s.state.Agent || p == s.state.Goal {
			continue
		}
		if !slices.Contains(obstacles, p) {
			obstacles = append(obstacles, p)
		}
	}
	return obstacles
}

// Obstacles are never spawned on the agent or goal; anything else is a bug.
func (s *Simulator) assertInvariants() {
	for _, o := range s.state.Obstacles {
		if o == s.state.Agent || o == s.state.Goal {
			panic(fmt.Sprintf("obstacle spawned on agent or goal: %v", s.state))
		}
		if !s.dynamics.InBounds(o) {
			panic(fmt.Sprintf("obstacle spawned out of bounds: %v", s.state))
		}
	}
}

// Restore replaces the current state, e.g. to set up a scenario. History
// restarts from the restored state.
func (s *Simulator) Restore(state GridState) error {
	for _, p := range append([]Position{state.Agent, state.Goal}, state.Obstacles...) {
		if !s.dynamics.InBounds(p) {
			return fmt.Errorf("failed to restore state: %v is out of bounds", p)
		}
	}
	s.state = state.Clone()
	s.history = []GridState{s.state.Clone()}
	return nil
}

// Step applies action. With probability SlipProb the executed action is
// redrawn uniformly from the full action set. The agent moves first, then
// each obstacle, then the goal; the outcome is judged on the final layout.
func (s *Simulator) Step(action Action) (GridState, float64, bool) {
	if !action.Valid() {
		panic(fmt.Sprintf("unexpected action %d", int(action)))
	}

	if s.rng.Float64() < s.dynamics.SlipProb {
		action = Action(s.rng.Intn(NumActions))
	}

	s.state.Agent = s.dynamics.Clamp(s.state.Agent, action)
	s.moveObstacles()
	s.moveGoal()

	reward, done := s.outcome()
	s.history = append(s.history, s.state.Clone())
	return s.state.Clone(), reward, done
}

// Obstacles may overlap each other but never step onto the agent or goal.
func (s *Simulator) moveObstacles() {
	for i, o := range s.state.Obstacles {
		if s.rng.Float64() >= s.dynamics.ObstacleMoveProb {
			continue
		}
		next := o.Move(Action(s.rng.Intn(NumActions)))
		if s.dynamics.InBounds(next) && next != s.state.Agent && next != s.state.Goal {
			s.state.Obstacles[i] = next
		}
	}
}

func (s *Simulator) moveGoal() {
	if s.rng.Float64() >= s.dynamics.GoalMoveProb {
		return
	}
	next := s.state.Goal.Move(Action(s.rng.Intn(NumActions)))
	if s.dynamics.InBounds(next) && next != s.state.Agent && !s.state.HasObstacle(next) {
		s.state.Goal = next
	}
}

func (s *Simulator) outcome() (float64, bool) {
	switch {
	case s.state.HasObstacle(s.state.Agent):
		return s.dynamics.ObstaclePenalty, true
	case s.state.Agent == s.state.Goal:
		return s.dynamics.GoalReward, true
	default:
		return s.dynamics.MovementReward, false
	}
}

// Clone returns an independent simulator sharing the dynamics and random
// source. The clone's history starts empty.
func (s *Simulator) Clone() *Simulator {
	return s.CloneWithRand(s.rng)
}

// CloneWithRand is Clone with a separate random stream.
func (s *Simulator) CloneWithRand(rng *rand.Rand) *Simulator {
	return &Simulator{
		dynamics: s.dynamics,
		rng:      rng,
		state:    s.state.Clone(),
	}
}

// State returns a copy of the current state.
func (s *Simulator) State() GridState {
	return s.state.Clone()
}

func (s *Simulator) IsTerminal() bool {
	return s.state.IsTerminal()
}

func (s *Simulator) Dynamics() Dynamics {
	return *s.dynamics
}

// Rand exposes the trial's random source to policies acting on this simulator.
func (s *Simulator) Rand() *rand.Rand {
	return s.rng
}

// History returns the states observed since the last Reset or Restore.
func (s *Simulator) History() []GridState {
	out := make([]GridState, len(s.history))
	for i, st := range s.history {
		out[i] = st.Clone()
	}
	return out
}
