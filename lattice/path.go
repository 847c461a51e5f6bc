package lattice

// Path is a complete route through a lattice: a node sequence from BOS to
// EOS and its total cost.
type Path struct {
	nodes []Node
	cost  int32
}

// NewPath creates a path.
func NewPath(nodes []Node, cost int32) Path {
	return Path{nodes: nodes, cost: cost}
}

// Empty reports whether the path holds no nodes.
func (p Path) Empty() bool {
	return len(p.nodes) == 0
}

// Nodes returns the nodes in BOS-to-EOS order.
func (p Path) Nodes() []Node {
	return p.nodes
}

// Cost returns the total path cost.
func (p Path) Cost() int32 {
	return p.cost
}
