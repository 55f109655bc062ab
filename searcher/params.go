package searcher

import (
	"math"

	"gridmcts/config"
)

// Params is the structured parameter set supplied by the experiment driver.
type Params struct {
	Iterations          int     // search budget per decision
	ExplorationConstant float64 // UCT C
	RolloutDepth        int     // max rollout steps
	RolloutPolicy       string  // config.EpsilonGreedy or config.TreeGuided
	Epsilon             float64 // random-action probability for epsilon-greedy
}

func DefaultParams() Params {
	return Params{
		Iterations:          500,
		ExplorationConstant: math.Sqrt2,
		RolloutDepth:        50,
		RolloutPolicy:       config.EpsilonGreedy,
		Epsilon:             0.1,
	}
}

func ParamsFromConfig(cfg config.Config) Params {
	return Params{
		Iterations:          cfg.MCTSIterations,
		ExplorationConstant: cfg.MCTSUCBC,
		RolloutDepth:        cfg.MCTSRolloutDepth,
		RolloutPolicy:       cfg.RolloutPolicy,
		Epsilon:             cfg.Epsilon,
	}
}

func (p Params) Validate() error {
	if p.Iterations <= 0 {
		return config.Invalid("iterations", p.Iterations, "must be positive")
	}
	if p.ExplorationConstant < 0 || math.IsNaN(p.ExplorationConstant) || math.IsInf(p.ExplorationConstant, 0) {
		return config.Invalid("exploration_constant", p.ExplorationConstant, "must be a finite non-negative number")
	}
	if p.RolloutDepth < 0 {
		return config.Invalid("rollout_depth", p.RolloutDepth, "must not be negative")
	}
	if p.RolloutPolicy != config.EpsilonGreedy && p.RolloutPolicy != config.TreeGuided {
		return config.Invalid("rollout_policy", p.RolloutPolicy, "must be epsilon-greedy or tree-guided")
	}
	return config.Probability("epsilon", p.Epsilon)
}
