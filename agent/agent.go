// Package agent adapts the baselines and the search engine to the trial loop.
package agent

import (
	"fmt"

	"gridmcts/config"
	"gridmcts/experiments/metrics"
	"gridmcts/gridworld"
	"gridmcts/searcher"
	"gridmcts/utils"
)

// Agent names accepted by New.
const (
	RandomName     = "random"
	GreedyName     = "greedy"
	MCTSName       = "mcts" // rollout policy taken from the config
	MCTSRandomName = "mcts-random"
	MCTSUCTName    = "mcts-uct"
)

// Agent picks the next action for the live simulator. It must not step sim.
type Agent interface {
	Name() string
	FindAction(sim *gridworld.Simulator) (gridworld.Action, metrics.SearchMetric)
}

// Resetter is implemented by agents that keep state between decisions of a
// trial.
type Resetter interface {
	Reset()
}

// Names lists every agent New knows.
func Names() []string {
	return []string{RandomName, GreedyName, MCTSName, MCTSRandomName, MCTSUCTName}
}

// New builds the named agent from the search and engine sections of cfg.
// The search agents differ only in their rollout policy.
func New(name string, cfg config.Config) (Agent, error) {
	switch name {
	case RandomName:
		return Random{}, nil
	case GreedyName:
		return Greedy{}, nil
	case MCTSName:
		return newSearchAgent(name, cfg, cfg.RolloutPolicy)
	case MCTSRandomName:
		return newSearchAgent(name, cfg, config.EpsilonGreedy)
	case MCTSUCTName:
		return newSearchAgent(name, cfg, config.TreeGuided)
	default:
		return nil, config.Invalid("agents", name, fmt.Sprintf("must be one of %v", Names()))
	}
}

// Random picks uniformly among all actions.
type Random struct{}

func (Random) Name() string {
	return RandomName
}

func (Random) FindAction(sim *gridworld.Simulator) (gridworld.Action, metrics.SearchMetric) {
	return searcher.Uniform{}.Choose(sim), metrics.SearchMetric{}
}

// Greedy moves to the neighbouring cell closest to the goal, ignoring
// obstacles. Ties go to the earlier action.
type Greedy struct{}

func (Greedy) Name() string {
	return GreedyName
}

func (Greedy) FindAction(sim *gridworld.Simulator) (gridworld.Action, metrics.SearchMetric) {
	state := sim.State()
	dynamics := sim.Dynamics()
	actions := gridworld.Actions()
	i := utils.ArgMin(actions, func(action gridworld.Action) float64 {
		return float64(gridworld.Manhattan(dynamics.Clamp(state.Agent, action), state.Goal))
	})
	return actions[i], metrics.SearchMetric{}
}

type searchAgent struct {
	name string
	mcts *searcher.MCTS
}

func newSearchAgent(name string, cfg config.Config, rolloutPolicy string) (Agent, error) {
	params := searcher.ParamsFromConfig(cfg)
	params.RolloutPolicy = rolloutPolicy

	options := []searcher.Option{searcher.WithMetrics()}
	if cfg.Transitions == config.ChanceTransitions {
		options = append(options, searcher.WithChanceNodes())
	}
	if cfg.TreeReuse {
		options = append(options, searcher.WithTreeReuse())
	}
	if cfg.MaxNodes > 0 {
		options = append(options, searcher.WithMaxNodes(cfg.MaxNodes))
	}

	mcts, err := searcher.NewMCTS(params, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s agent: %w", name, err)
	}
	return &searchAgent{name: name, mcts: mcts}, nil
}

func (a *searchAgent) Name() string {
	return a.name
}

func (a *searchAgent) FindAction(sim *gridworld.Simulator) (gridworld.Action, metrics.SearchMetric) {
	return a.mcts.Search(sim)
}

func (a *searchAgent) Reset() {
	a.mcts.Reset()
}
