package lattice

type graphStep struct {
	inputTail          int
	nodes              []Node
	precedingEdgeCosts [][]int32
}

// Lattice is an append-only layered DAG of word candidates over an
// accumulated input.
//
// Step 0 holds the single BOS node. Each PushBack appends the segment to the
// accumulated input and adds one step holding every candidate node whose key
// spans from some earlier step's end to the new input end. Settle closes the
// lattice with an EOS node.
//
// A lattice borrows its vocabulary for its whole lifetime and never mutates
// it. A single lattice must not be mutated from multiple goroutines.
type Lattice struct {
	vocabulary Vocabulary
	input      Input
	graph      []graphStep
}

// NewLattice creates a lattice over a vocabulary, seeded with the BOS step.
func NewLattice(vocabulary Vocabulary) *Lattice {
	l := &Lattice{vocabulary: vocabulary}
	l.graph = append(l.graph, bosStep())
	return l
}

func bosStep() graphStep {
	edgeCosts := [][]int32{{}}
	return graphStep{
		inputTail:          0,
		nodes:              []Node{BosNode(edgeCosts[0])},
		precedingEdgeCosts: edgeCosts,
	}
}

// StepCount returns the number of graph steps, including the BOS step.
func (l *Lattice) StepCount() int {
	return len(l.graph)
}

// NodesAt returns the nodes of step index, or ErrStepIsTooLarge when the
// index is out of range.
func (l *Lattice) NodesAt(step int) ([]Node, error) {
	if step < 0 || step >= len(l.graph) {
		return nil, ErrStepIsTooLarge
	}
	return l.graph[step].nodes, nil
}

// Input returns the accumulated input, or nil before the first PushBack.
func (l *Lattice) Input() Input {
	return l.input
}

// PushBack appends an input segment and builds the next graph step.
//
// For every existing step, the remaining input from that step's end is
// looked up in the vocabulary; each found entry becomes a candidate node
// whose best preceding node and path cost follow the Viterbi recurrence,
// ties broken toward the smallest preceding index. When no step yields a
// candidate the push fails with ErrNoNodeIsFoundForTheInput.
func (l *Lattice) PushBack(input Input) error {
	if l.input == nil {
		l.input = input
	} else if err := l.input.Append(input); err != nil {
		return err
	}

	var nodes []Node
	var stepEdgeCosts [][]int32
	for i := range l.graph {
		step := &l.graph[i]

		nodeKey, err := l.input.Subrange(step.inputTail, l.input.Length()-step.inputTail)
		if err != nil {
			return err
		}
		found := l.vocabulary.FindEntries(nodeKey)

		for _, entry := range found {
			edgeCosts := l.precedingEdgeCosts(step, entry)
			stepEdgeCosts = append(stepEdgeCosts, edgeCosts)

			best := bestPrecedingNodeIndex(step, edgeCosts)
			bestPathCost := addCost(step.nodes[best].PathCost(), edgeCosts[best])
			node, err := NewNodeFromEntry(
				entry,
				len(nodes),
				i,
				edgeCosts,
				best,
				addCost(bestPathCost, entry.Cost()),
			)
			if err != nil {
				return err
			}
			nodes = append(nodes, node)
		}
	}
	if len(nodes) == 0 {
		return ErrNoNodeIsFoundForTheInput
	}

	l.graph = append(l.graph, graphStep{
		inputTail:          l.input.Length(),
		nodes:              nodes,
		precedingEdgeCosts: stepEdgeCosts,
	})
	return nil
}

// Settle closes the lattice and returns its EOS node. The EOS node carries
// the edge costs from every node of the last step, so the N-best iterator
// can expand it like any other node. The returned node stays valid until
// the next mutation of the lattice.
func (l *Lattice) Settle() (Node, error) {
	if l.input == nil {
		return Node{}, ErrNoInput
	}

	lastStep := &l.graph[len(l.graph)-1]
	edgeCosts := l.precedingEdgeCosts(lastStep, BosEos())
	best := bestPrecedingNodeIndex(lastStep, edgeCosts)
	pathCost := addCost(lastStep.nodes[best].PathCost(), edgeCosts[best])
	return EosNode(len(l.graph)-1, edgeCosts, best, pathCost), nil
}

func (l *Lattice) precedingEdgeCosts(step *graphStep, nextEntry EntryView) []int32 {
	costs := make([]int32, len(step.nodes))
	for i := range step.nodes {
		costs[i] = l.vocabulary.FindConnection(&step.nodes[i], nextEntry).Cost()
	}
	return costs
}

func bestPrecedingNodeIndex(step *graphStep, edgeCosts []int32) int {
	minIndex := 0
	for i := 1; i < len(step.nodes); i++ {
		if addCost(step.nodes[i].PathCost(), edgeCosts[i]) <
			addCost(step.nodes[minIndex].PathCost(), edgeCosts[minIndex]) {
			minIndex = i
		}
	}
	return minIndex
}
