package searcher

import "gridmcts/gridworld"

// chance stands for one action taken from its parent decision. Each visit
// resamples the transition from the parent's snapshot; distinct outcomes
// become distinct decision children.
type chance struct {
	parent   *decision
	action   gridworld.Action
	children []*decision
	rewards  float64
	visits   int
}

func newChance(parent *decision, action gridworld.Action) *chance {
	return &chance{
		parent: parent,
		action: action,
	}
}

func (c *chance) Action() gridworld.Action {
	return c.action
}

func (c *chance) Backup(reward float64) Node {
	c.rewards += reward
	c.visits++
	return c.parent
}

func (c *chance) stats() (float64, int) {
	return c.rewards, c.visits
}

func (c *chance) size() int {
	n := 1
	for _, child := range c.children {
		n += child.size()
	}
	return n
}

// sample draws one outcome. A known outcome selects the matching child;
// an unknown one expands a new child, attached only when attach is set.
func (c *chance) sample(attach bool) (child *decision, reward float64, expanded bool) {
	sim := c.parent.sim.Clone()
	state, reward, _ := sim.Step(c.action)

	if child := c.selects(state); child != nil {
		return child, reward, false
	}

	child = newDecision(c, c.action, sim, reward)
	if attach {
		c.children = append(c.children, child)
	}
	return child, reward, true
}

func (c *chance) selects(state gridworld.GridState) *decision {
	expected := state.Hash()
	for _, child := range c.children {
		if child.hash == expected && child.sim.State().Equal(state) {
			return child
		}
	}
	return nil
}
