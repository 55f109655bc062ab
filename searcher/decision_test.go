package searcher

import (
	"testing"

	"gridmcts/gridworld"

	"github.com/stretchr/testify/require"
)

func TestDecisionExpansion(t *testing.T) {
	t.Run("popping untried actions last first", func(t *testing.T) {
		sim := newTestSim(t, calmDynamics(3), 1, cornerState(3))
		node := newDecision(nil, 0, sim, 0)

		require.Equal(t, gridworld.Actions(), node.untried, "New node should have every action untried")
		require.Equal(t, gridworld.Right, node.popUntried(), "Last listed action should be expanded first")
		require.Equal(t, gridworld.Left, node.popUntried(), "Expansion should continue backwards")
		require.Len(t, node.untried, 2, "Popped actions should be removed")
	})

	t.Run("fixing the sampled outcome on the new child", func(t *testing.T) {
		sim := newTestSim(t, calmDynamics(3), 1, cornerState(3))
		node := newDecision(nil, 0, sim, 0)

		child := node.addChild(gridworld.Down)

		require.Equal(t, []Node{child}, node.children, "Child should be attached to its parent")
		require.Same(t, node, child.parent, "Child should link to its parent")
		require.Equal(t, gridworld.Down, child.Action(), "Child should record its action")
		require.Equal(t, -1.0, child.reward, "Edge should carry the movement reward")
		require.Equal(t, gridworld.Position{X: 0, Y: 1}, child.sim.State().Agent, "Child snapshot should hold the successor")
		require.Equal(t, gridworld.Position{X: 0, Y: 0}, node.sim.State().Agent, "Parent snapshot should not change")
		require.Equal(t, child.sim.State().Hash(), child.hash, "Child should cache its state hash")
	})

	t.Run("marking terminal successors", func(t *testing.T) {
		state := cornerState(2)
		state.Agent = gridworld.Position{X: 1, Y: 0}
		sim := newTestSim(t, calmDynamics(2), 1, state)
		node := newDecision(nil, 0, sim, 0)

		child := node.addChild(gridworld.Down)

		require.True(t, child.terminal, "Reaching the goal should be terminal")
		require.Equal(t, 100.0, child.reward, "Edge should carry the goal reward")
	})
}

func TestDecisionPickChild(t *testing.T) {
	t.Run("trying unvisited children first", func(t *testing.T) {
		visited := &decision{rewards: 1000, visits: 1}
		unvisited := &decision{}
		node := &decision{children: []Node{visited, unvisited}, visits: 1}

		require.Equal(t, 1, node.pickChild(1), "Unvisited child should win over any visited child")
	})

	t.Run("breaking ties by insertion order", func(t *testing.T) {
		node := &decision{
			children: []Node{&decision{}, &decision{}},
			visits:   3,
		}

		require.Equal(t, 0, node.pickChild(1), "First of the tied children should be picked")
	})

	t.Run("balancing mean and exploration", func(t *testing.T) {
		often := &decision{rewards: 10, visits: 10}  // mean 1
		rarely := &decision{rewards: 0.9, visits: 1} // mean 0.9, larger bonus
		node := &decision{children: []Node{often, rarely}, visits: 11}

		require.Equal(t, 1, node.pickChild(1), "Exploration bonus should favour the rarely visited child")
		require.Equal(t, 0, node.pickChild(0), "Without exploration the higher mean should win")
	})
}

func TestDecisionBestChild(t *testing.T) {
	t.Run("choosing the highest mean", func(t *testing.T) {
		popular := &decision{action: gridworld.Up, rewards: 50, visits: 10}
		better := &decision{action: gridworld.Left, rewards: 12, visits: 2}
		node := &decision{children: []Node{popular, better}}

		best, ok := node.bestChild()

		require.True(t, ok, "Node with children should have a best child")
		require.Equal(t, gridworld.Left, best.Action(), "Mean, not visit count, should decide")
	})

	t.Run("ignoring unvisited children", func(t *testing.T) {
		visited := &decision{action: gridworld.Down, rewards: -10, visits: 2}
		node := &decision{children: []Node{&decision{action: gridworld.Up}, visited}}

		best, _ := node.bestChild()

		require.Equal(t, gridworld.Down, best.Action(), "Unvisited child should not be chosen")
	})

	t.Run("breaking ties by insertion order", func(t *testing.T) {
		node := &decision{children: []Node{
			&decision{action: gridworld.Right, rewards: 4, visits: 2},
			&decision{action: gridworld.Down, rewards: 2, visits: 1},
		}}

		best, _ := node.bestChild()

		require.Equal(t, gridworld.Right, best.Action(), "First of the tied children should be chosen")
	})

	t.Run("reporting a childless node", func(t *testing.T) {
		_, ok := (&decision{}).bestChild()

		require.False(t, ok, "Childless node should have no best child")
	})
}
