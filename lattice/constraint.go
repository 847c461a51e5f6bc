package lattice

// ConstraintElement matches one position of a constraint pattern against a
// node. Matches returns 0 on a match that consumes the element, a positive
// value when the node is absorbed but the element may also match nodes
// further toward BOS, and a negative value on a mismatch.
type ConstraintElement interface {
	Matches(node *Node) int
}

// NodeConstraintElement anchors one pattern position to a concrete node.
// A node matches iff it is structurally equal to the anchor: same key,
// preceding step, best preceding node, node cost and path cost.
type NodeConstraintElement struct {
	node Node
}

// NewNodeConstraintElement creates a node constraint element.
func NewNodeConstraintElement(node Node) *NodeConstraintElement {
	return &NodeConstraintElement{node: node}
}

// Matches returns 0 when node equals the anchor, -1 otherwise.
func (e *NodeConstraintElement) Matches(node *Node) int {
	if node.equalTo(&e.node) {
		return 0
	}
	return -1
}

// WildcardConstraintElement matches a run of nodes by their preceding step.
//
// A wildcard created with a concrete step s absorbs nodes whose preceding
// step is greater than s (positive return), consumes the one whose preceding
// step equals s (zero), and rejects nodes before s (negative); the BOS node
// is always rejected. A wildcard created with InvalidStep is the star: it
// consumes BOS and absorbs everything else.
type WildcardConstraintElement struct {
	precedingStep int
}

// NewWildcardConstraintElement creates a wildcard constraint element.
// Pass InvalidStep for the star wildcard.
func NewWildcardConstraintElement(precedingStep int) *WildcardConstraintElement {
	return &WildcardConstraintElement{precedingStep: precedingStep}
}

// Matches implements the ordering described on the type.
func (e *WildcardConstraintElement) Matches(node *Node) int {
	if e.precedingStep == InvalidStep {
		if node.PrecedingStep() == InvalidStep {
			return 0
		}
		return 1
	}
	if node.PrecedingStep() == InvalidStep {
		return -1
	}
	return node.PrecedingStep() - e.precedingStep
}

// Constraint filters enumerated paths with an ordered pattern of anchor
// nodes and wildcards. The empty constraint matches any path.
type Constraint struct {
	pattern []ConstraintElement
}

// NewConstraint creates an empty constraint matching any path.
func NewConstraint() *Constraint {
	return &Constraint{}
}

// NewConstraintWithPattern creates a constraint over a pattern, ordered
// BOS-side first.
func NewConstraintWithPattern(pattern []ConstraintElement) *Constraint {
	return &Constraint{pattern: pattern}
}

// Matches reports whether the path, given in reverse (EOS-side first),
// consumes the whole pattern.
func (c *Constraint) Matches(reversePath []Node) bool {
	remaining, ok := c.matches(reversePath)
	return ok && remaining == 0
}

// MatchesTail reports whether the reverse tail of a path is a valid prefix
// of the pattern's tail, i.e. whether some completion toward BOS could still
// match.
func (c *Constraint) MatchesTail(reverseTailPath []Node) bool {
	_, ok := c.matches(reverseTailPath)
	return ok
}

func (c *Constraint) matches(reversePath []Node) (remaining int, ok bool) {
	if len(c.pattern) == 0 {
		return 0, true
	}

	patternIndex := len(c.pattern)
	for i := range reversePath {
		if patternIndex == 0 {
			break
		}
		switch m := c.pattern[patternIndex-1].Matches(&reversePath[i]); {
		case m < 0:
			return 0, false
		case m == 0:
			patternIndex--
		}
	}
	return patternIndex, true
}
