package searcher

import (
	"gridmcts/gridworld"
	"gridmcts/utils"
)

// decision is a node that owns a simulator snapshot. Its children are either
// decisions (fixed transitions) or chance nodes (one per tried action).
type decision struct {
	parent   Node
	action   gridworld.Action
	sim      *gridworld.Simulator
	hash     gridworld.StateHash
	reward   float64 // reward of the transition that produced this node
	terminal bool
	untried  []gridworld.Action
	children []Node
	rewards  float64
	visits   int
}

func newDecision(parent Node, action gridworld.Action, sim *gridworld.Simulator, reward float64) *decision {
	return &decision{
		parent:   parent,
		action:   action,
		sim:      sim,
		hash:     sim.State().Hash(),
		reward:   reward,
		terminal: sim.IsTerminal(),
		untried:  gridworld.Actions(),
		children: make([]Node, 0, gridworld.NumActions),
	}
}

func (d *decision) Action() gridworld.Action {
	return d.action
}

func (d *decision) Backup(reward float64) Node {
	d.rewards += reward
	d.visits++
	return d.parent
}

func (d *decision) stats() (float64, int) {
	return d.rewards, d.visits
}

func (d *decision) size() int {
	n := 1
	for _, child := range d.children {
		n += child.size()
	}
	return n
}

func (d *decision) expandable() bool {
	return len(d.untried) > 0
}

// popUntried removes the most recently listed untried action (LIFO).
func (d *decision) popUntried() gridworld.Action {
	last := len(d.untried) - 1
	action := d.untried[last]
	d.untried = d.untried[:last]
	return action
}

// addChild applies action to a clone of the snapshot; the sampled outcome is
// fixed on the new edge from then on.
func (d *decision) addChild(action gridworld.Action) *decision {
	sim := d.sim.Clone()
	_, reward, _ := sim.Step(action)
	child := newDecision(d, action, sim, reward)
	d.children = append(d.children, child)
	return child
}

// pickChild returns the index of the child with the highest UCT score, the
// first one on ties.
func (d *decision) pickChild(c float64) int {
	policy := newUCT(c, d.visits)
	return utils.ArgMax(d.children, func(child Node) float64 {
		return policy.evaluate(child.stats())
	})
}

// bestChild returns the child with the highest mean reward, the first one on
// ties, or false when nothing was expanded.
func (d *decision) bestChild() (Node, bool) {
	i := utils.ArgMax(d.children, func(child Node) float64 {
		return mean(child.stats())
	})
	if i < 0 {
		return nil, false
	}
	return d.children[i], true
}
