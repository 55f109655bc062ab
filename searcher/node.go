package searcher

import "gridmcts/gridworld"

// Node is a vertex of the search tree. Children are owned by their parent;
// the parent link is only walked during backup.
type Node interface {
	Action() gridworld.Action
	Backup(reward float64) Node
	stats() (rewards float64, visits int)
	size() int
}

// backup credits reward to node and every ancestor up to the root.
func backup(node Node, reward float64) {
	for node != nil {
		node = node.Backup(reward)
	}
}
