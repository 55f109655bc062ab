package searcher

import (
	"gridmcts/experiments/metrics"
	"gridmcts/gridworld"

	"github.com/rs/zerolog/log"
)

type Option func(mcts *MCTS)

type MCTS struct {
	params   Params
	rollout  rollout
	chance   bool
	reuse    bool
	maxNodes int
	root     *decision
	retained Node // chosen root child kept for the next search
	nodes    int
	metrics  metrics.Collector
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

// WithChanceNodes resamples transitions on every visit instead of fixing one
// sampled outcome per edge.
func WithChanceNodes() Option {
	return func(m *MCTS) {
		m.chance = true
	}
}

// WithTreeReuse keeps the subtree under the chosen action and searches from it
// next time if it matches the live state.
func WithTreeReuse() Option {
	return func(m *MCTS) {
		m.reuse = true
	}
}

// WithMaxNodes caps the tree size. Zero means unlimited.
func WithMaxNodes(n int) Option {
	return func(m *MCTS) {
		if n > 0 {
			m.maxNodes = n
		}
	}
}

func NewMCTS(params Params, options ...Option) (*MCTS, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	m := &MCTS{
		params:  params,
		rollout: newRollout(params),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

// SelectAction searches from the state of sim and returns the chosen action.
// sim itself is never stepped.
func (m *MCTS) SelectAction(sim *gridworld.Simulator) gridworld.Action {
	action, _ := m.Search(sim)
	return action
}

func (m *MCTS) Search(sim *gridworld.Simulator) (gridworld.Action, metrics.SearchMetric) {
	m.metrics.Start()
	m.findRoot(sim)

	for i := 0; i < m.params.Iterations; i++ {
		m.simulate()
		m.metrics.AddIteration()
	}

	best, ok := m.root.bestChild()
	var action gridworld.Action
	if ok {
		action = best.Action()
	} else {
		action = m.fallback(sim)
	}
	if m.reuse && ok {
		m.retained = best
	} else {
		m.retained = nil
	}

	return action, m.metrics.Complete()
}

// Reset drops any retained subtree.
func (m *MCTS) Reset() {
	m.root = nil
	m.retained = nil
	m.nodes = 0
}

func (m *MCTS) fallback(sim *gridworld.Simulator) gridworld.Action {
	action := randomAction(sim)
	log.Warn().
		Str("state", sim.State().String()).
		Bool("terminal", m.root.terminal).
		Msgf("search produced no root children, falling back to random action %s", action)
	m.metrics.SetFallback()
	return action
}

func (m *MCTS) findRoot(sim *gridworld.Simulator) {
	if root := m.traverse(sim.State()); root != nil {
		root.parent = nil
		root.sim = sim.Clone()
		m.root = root
		m.nodes = root.size()
		m.metrics.SetTreeReused(true)
		log.Debug().Int("nodes", m.nodes).Msg("reusing search subtree")
	} else {
		m.root = newDecision(nil, 0, sim.Clone(), 0)
		m.nodes = 1
		m.metrics.AddNode()
		m.metrics.SetTreeReused(false)
	}
	m.retained = nil
}

// traverse returns the retained node whose snapshot matches state, if any.
func (m *MCTS) traverse(state gridworld.GridState) *decision {
	switch node := m.retained.(type) {
	case *decision:
		if node.hash != state.Hash() || !node.sim.State().Equal(state) {
			log.Debug().Msg("retained subtree does not match the live state")
			return nil
		}
		return node
	case *chance:
		return node.selects(state)
	default:
		return nil
	}
}

func (m *MCTS) simulate() {
	leaf, reward := m.selectThenExpand(m.root)
	credited, rolloutReward := m.rollout.run(m, leaf)
	backup(credited, reward+rolloutReward)
}

// selectThenExpand walks down from root until it expands a node or can go no
// further. It returns the node reached and the rewards on the edges walked.
func (m *MCTS) selectThenExpand(root *decision) (*decision, float64) {
	node := root
	total := 0.0
	for {
		next, reward, moved, expanded := m.descend(node)
		if !moved {
			return node, total
		}
		total += reward
		node = next
		if expanded {
			return node, total
		}
	}
}

// descend takes one step down from node: expand an untried action if the tree
// has room, otherwise follow the child with the highest UCT score. It returns
// the node reached, the edge reward, whether it moved and whether it expanded.
// It does not move at terminal nodes or at expandable nodes when the tree is
// full.
func (m *MCTS) descend(node *decision) (*decision, float64, bool, bool) {
	if node.terminal {
		return node, 0, false, false
	}

	if node.expandable() {
		if !m.hasCapacity() {
			return node, 0, false, false
		}
		action := node.popUntried()
		if !m.chance {
			child := node.addChild(action)
			m.addNode()
			return child, child.reward, true, true
		}
		c := newChance(node, action)
		node.children = append(node.children, c)
		m.addNode()
		child, reward, _ := m.sample(c)
		return child, reward, true, true
	}

	if len(node.children) == 0 {
		return node, 0, false, false
	}

	switch child := node.children[node.pickChild(m.params.ExplorationConstant)].(type) {
	case *decision:
		return child, child.reward, true, false
	case *chance:
		next, reward, expanded := m.sample(child)
		return next, reward, true, expanded
	default:
		panic("unexpected node type")
	}
}

// sample draws an outcome of c. New outcomes join the tree only while there is
// room; past that they are returned detached and serve a single iteration.
func (m *MCTS) sample(c *chance) (*decision, float64, bool) {
	attach := m.hasCapacity()
	child, reward, expanded := c.sample(attach)
	if expanded && attach {
		m.addNode()
	}
	return child, reward, expanded
}

func (m *MCTS) hasCapacity() bool {
	return m.maxNodes == 0 || m.nodes < m.maxNodes
}

func (m *MCTS) addNode() {
	m.nodes++
	m.metrics.AddNode()
}
