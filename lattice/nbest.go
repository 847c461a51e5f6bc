package lattice

import (
	"container/heap"
	"math"
	"slices"
)

// pathCap is a partial path suffix awaiting expansion, ordered by the best
// whole-path cost it can complete to.
type pathCap struct {
	tailPath      []Node
	tailPathCost  int32
	wholePathCost int32
}

type capHeap []*pathCap

func (h capHeap) Len() int           { return len(h) }
func (h capHeap) Less(i, j int) bool { return h[i].wholePathCost < h[j].wholePathCost }
func (h capHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *capHeap) Push(x any)        { *h = append(*h, x.(*pathCap)) }

func (h *capHeap) Pop() any {
	old := *h
	n := len(old)
	top := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return top
}

// NBestIterator lazily enumerates the complete paths of a settled lattice in
// nondecreasing total cost order, Eppstein-style: each delivered path is the
// best completion of the cheapest pending cap, and expanding a node pushes
// one deviation cap per non-best preceding sibling.
//
// A constraint prunes deviations as soon as a tail stops being completable,
// so constrained enumeration stays lazy.
type NBestIterator struct {
	lattice    *Lattice
	caps       capHeap
	constraint *Constraint
}

// NewNBestIterator creates an iterator from a lattice, its settled EOS node
// and a constraint. Use NewConstraint for unconstrained enumeration.
func NewNBestIterator(lattice *Lattice, eosNode Node, constraint *Constraint) *NBestIterator {
	it := &NBestIterator{lattice: lattice, constraint: constraint}
	heap.Push(&it.caps, &pathCap{
		tailPath:      []Node{eosNode},
		tailPathCost:  eosNode.NodeCost(),
		wholePathCost: eosNode.PathCost(),
	})
	return it
}

// Next returns the next cheapest conforming path. The second result is
// false when the enumeration is exhausted.
func (it *NBestIterator) Next() (Path, bool) {
	for len(it.caps) > 0 {
		opened := heap.Pop(&it.caps).(*pathCap)

		path := opened.tailPath
		tailPathCost := opened.tailPathCost
		nonconforming := false
		node := &path[len(path)-1]
		for !node.IsBos() {
			precedingNodes, err := it.lattice.NodesAt(node.PrecedingStep())
			if err != nil {
				panic("preceding step must be within the lattice")
			}
			for i := range precedingNodes {
				if i == node.BestPrecedingNode() {
					continue
				}
				capTailPath := append(slices.Clone(path), precedingNodes[i])
				if !it.constraint.MatchesTail(capTailPath) {
					continue
				}
				precedingEdgeCost := node.PrecedingEdgeCosts()[i]
				capTailPathCost := addCost(addCost(tailPathCost, precedingEdgeCost), precedingNodes[i].NodeCost())
				if capTailPathCost == math.MaxInt32 {
					continue
				}
				capWholePathCost := addCost(addCost(tailPathCost, precedingEdgeCost), precedingNodes[i].PathCost())
				if capWholePathCost == math.MaxInt32 {
					continue
				}
				heap.Push(&it.caps, &pathCap{
					tailPath:      capTailPath,
					tailPathCost:  capTailPathCost,
					wholePathCost: capWholePathCost,
				})
			}

			best := node.BestPrecedingNode()
			bestPrecedingEdgeCost := node.PrecedingEdgeCosts()[best]
			path = append(path, precedingNodes[best])
			if !it.constraint.MatchesTail(path) {
				nonconforming = true
				break
			}
			tailPathCost = addCost(tailPathCost, addCost(bestPrecedingEdgeCost, precedingNodes[best].NodeCost()))
			node = &path[len(path)-1]
		}

		if !nonconforming {
			slices.Reverse(path)
			return NewPath(path, opened.wholePathCost), true
		}
	}
	return Path{}, false
}
