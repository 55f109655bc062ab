package searcher

import (
	"gridmcts/config"
	"gridmcts/experiments/metrics"
	"gridmcts/gridworld"
)

// rollout estimates the value of leaf. It returns the node the sample is
// credited to together with the reward collected below leaf.
type rollout interface {
	run(m *MCTS, leaf *decision) (Node, float64)
}

// heuristic plays policy on a private clone of the leaf's simulator.
type heuristic struct {
	policy ActionPolicy
}

func (h heuristic) run(m *MCTS, leaf *decision) (Node, float64) {
	sim := leaf.sim.Clone()
	return leaf, playout(sim, h.policy, m.params.RolloutDepth, m.metrics)
}

// treeGuided keeps applying selection and expansion while it is inside the
// tree, extending the tree as it goes. Once descent stops it finishes the
// remaining depth with uniformly random actions.
type treeGuided struct{}

func (treeGuided) run(m *MCTS, leaf *decision) (Node, float64) {
	node := leaf
	total := 0.0
	depth := 0
	for depth < m.params.RolloutDepth {
		next, reward, moved, _ := m.descend(node)
		if !moved {
			break
		}
		total += reward
		node = next
		depth++
	}

	if node.terminal {
		if depth > 0 {
			m.metrics.AddFullPlayout()
		}
		return node, total
	}
	sim := node.sim.Clone()
	return node, total + playout(sim, Uniform{}, m.params.RolloutDepth-depth, m.metrics)
}

func newRollout(params Params) rollout {
	if params.RolloutPolicy == config.TreeGuided {
		return treeGuided{}
	}
	return heuristic{policy: EpsilonGreedy{Epsilon: params.Epsilon}}
}

// playout steps sim with policy until it terminates or depth actions were
// taken, summing the rewards exactly as returned by Step.
func playout(sim *gridworld.Simulator, policy ActionPolicy, depth int, collector metrics.Collector) float64 {
	total := 0.0
	for i := 0; i < depth && !sim.IsTerminal(); i++ {
		_, reward, done := sim.Step(policy.Choose(sim))
		total += reward
		if done {
			collector.AddFullPlayout()
		}
	}
	return total
}
