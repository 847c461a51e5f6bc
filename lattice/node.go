package lattice

import "math"

// InvalidStep marks a step index that points at no step. It is the preceding
// step of the BOS node and the argument that turns a wildcard constraint
// element into the "match anything" star.
const InvalidStep = -1

type nodeKind uint8

const (
	nodeBos nodeKind = iota
	nodeEos
	nodeMiddle
)

// Node is a lattice vertex: BOS, EOS, or a middle node projected from a
// vocabulary entry.
//
// A node records the step its span starts at (precedingStep), the edge costs
// from every node of that step (shared with its sibling nodes, never mutated
// after publication), the index of the cheapest of those nodes, its own cost
// and the cumulative best path cost:
//
//	pathCost == precedingNodes[best].pathCost + precedingEdgeCosts[best] + nodeCost
//
// under saturating addition where math.MaxInt32 is absorptive.
type Node struct {
	kind               nodeKind
	key                Input
	value              any
	indexInStep        int
	precedingStep      int
	precedingEdgeCosts []int32
	bestPrecedingNode  int
	nodeCost           int32
	pathCost           int32
}

// BosNode returns the BOS node that seeds step 0 of every lattice.
func BosNode(precedingEdgeCosts []int32) Node {
	return Node{
		kind:               nodeBos,
		indexInStep:        0,
		precedingStep:      InvalidStep,
		precedingEdgeCosts: precedingEdgeCosts,
		bestPrecedingNode:  InvalidStep,
	}
}

// EosNode returns an EOS node closing a lattice at the given step.
func EosNode(precedingStep int, precedingEdgeCosts []int32, bestPrecedingNode int, pathCost int32) Node {
	return Node{
		kind:               nodeEos,
		indexInStep:        0,
		precedingStep:      precedingStep,
		precedingEdgeCosts: precedingEdgeCosts,
		bestPrecedingNode:  bestPrecedingNode,
		pathCost:           pathCost,
	}
}

// NewNode creates a middle node from its raw parts.
func NewNode(
	key Input,
	value any,
	indexInStep int,
	precedingStep int,
	precedingEdgeCosts []int32,
	bestPrecedingNode int,
	nodeCost int32,
	pathCost int32,
) Node {
	return Node{
		kind:               nodeMiddle,
		key:                key,
		value:              value,
		indexInStep:        indexInStep,
		precedingStep:      precedingStep,
		precedingEdgeCosts: precedingEdgeCosts,
		bestPrecedingNode:  bestPrecedingNode,
		nodeCost:           nodeCost,
		pathCost:           pathCost,
	}
}

// NewNodeFromEntry creates a middle node carrying an entry's key, value and
// cost. It fails with ErrBosOrEosEntryNotAllowed for the BOS/EOS sentinel;
// sentinels enter a lattice only through BosNode and EosNode.
func NewNodeFromEntry(
	entry EntryView,
	indexInStep int,
	precedingStep int,
	precedingEdgeCosts []int32,
	bestPrecedingNode int,
	pathCost int32,
) (Node, error) {
	if entry.IsBosEos() {
		return Node{}, ErrBosOrEosEntryNotAllowed
	}
	return NewNode(
		entry.Key(),
		entry.Value(),
		indexInStep,
		precedingStep,
		precedingEdgeCosts,
		bestPrecedingNode,
		entry.Cost(),
		pathCost,
	), nil
}

// IsBos reports whether this node is the BOS sentinel.
func (n *Node) IsBos() bool {
	return n.kind == nodeBos
}

// IsEos reports whether this node is an EOS sentinel.
func (n *Node) IsEos() bool {
	return n.kind == nodeEos
}

// Key returns the key, or nil for BOS/EOS.
func (n *Node) Key() Input {
	return n.key
}

// Value returns the opaque value, or nil for BOS/EOS.
func (n *Node) Value() any {
	return n.value
}

// IndexInStep returns the node's index within its graph step.
func (n *Node) IndexInStep() int {
	return n.indexInStep
}

// PrecedingStep returns the index of the step the node's span starts at,
// or InvalidStep for BOS.
func (n *Node) PrecedingStep() int {
	return n.precedingStep
}

// PrecedingEdgeCosts returns the edge costs from the preceding step's nodes,
// indexed by their position in that step.
func (n *Node) PrecedingEdgeCosts() []int32 {
	return n.precedingEdgeCosts
}

// BestPrecedingNode returns the index of the cheapest preceding node.
func (n *Node) BestPrecedingNode() int {
	return n.bestPrecedingNode
}

// NodeCost returns the node's own cost.
func (n *Node) NodeCost() int32 {
	return n.nodeCost
}

// PathCost returns the cumulative best path cost from BOS to this node.
func (n *Node) PathCost() int32 {
	return n.pathCost
}

// equalTo reports structural equality: same key, preceding step, best
// preceding node, node cost and path cost. Values are opaque and not
// compared.
func (n *Node) equalTo(other *Node) bool {
	if n.kind != other.kind {
		return false
	}
	if (n.key == nil) != (other.key == nil) {
		return false
	}
	if n.key != nil && !n.key.EqualTo(other.key) {
		return false
	}
	return n.precedingStep == other.precedingStep &&
		n.bestPrecedingNode == other.bestPrecedingNode &&
		n.nodeCost == other.nodeCost &&
		n.pathCost == other.pathCost
}

// addCost adds two path costs; math.MaxInt32 is absorptive.
func addCost(one, another int32) int32 {
	if one == math.MaxInt32 || another == math.MaxInt32 {
		return math.MaxInt32
	}
	return one + another
}
