package lattice

// Vocabulary is the read-only lookup surface a lattice is built against.
type Vocabulary interface {
	// FindEntries returns every entry whose stored key equals key. An empty
	// result is legal and means no candidate spans this range.
	FindEntries(key Input) []EntryView

	// FindConnection returns the cost of the edge between a preceding node
	// and a candidate entry. An absent pair yields cost math.MaxInt32. The
	// BOS/EOS sentinel participates on both sides: a BOS node against a
	// middle entry and a middle node against the EOS sentinel entry are both
	// lookupable.
	FindConnection(from *Node, to EntryView) Connection
}
