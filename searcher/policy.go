package searcher

import (
	"gridmcts/gridworld"
	"gridmcts/utils"
)

// ActionPolicy picks the next action for a simulator during a rollout. It may
// draw from the simulator's random source but must not step it.
type ActionPolicy interface {
	Choose(sim *gridworld.Simulator) gridworld.Action
}

// Uniform picks any of the actions with equal probability.
type Uniform struct{}

func (Uniform) Choose(sim *gridworld.Simulator) gridworld.Action {
	return randomAction(sim)
}

// EpsilonGreedy picks a uniformly random action with probability Epsilon.
// Otherwise it moves towards the goal, avoiding cells currently holding an
// obstacle. Ties go to the earlier action in gridworld.Actions order.
type EpsilonGreedy struct {
	Epsilon float64
}

func (p EpsilonGreedy) Choose(sim *gridworld.Simulator) gridworld.Action {
	if sim.Rand().Float64() < p.Epsilon {
		return randomAction(sim)
	}

	state := sim.State()
	dynamics := sim.Dynamics()
	safe := make([]gridworld.Action, 0, gridworld.NumActions)
	for _, action := range gridworld.Actions() {
		if !state.HasObstacle(dynamics.Clamp(state.Agent, action)) {
			safe = append(safe, action)
		}
	}
	if len(safe) == 0 { // Boxed in
		return randomAction(sim)
	}

	i := utils.ArgMin(safe, func(action gridworld.Action) float64 {
		return float64(gridworld.Manhattan(dynamics.Clamp(state.Agent, action), state.Goal))
	})
	return safe[i]
}

func randomAction(sim *gridworld.Simulator) gridworld.Action {
	return gridworld.Action(sim.Rand().Intn(gridworld.NumActions))
}
