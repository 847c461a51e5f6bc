package lattice

import "math"

// EntryHash hashes an entry view. Supplied by the caller because entry
// values are opaque to the vocabulary.
type EntryHash func(view EntryView) uint64

// EntryEqualTo compares two entry views for equality. Must be consistent
// with the EntryHash supplied alongside it.
type EntryEqualTo func(one, another EntryView) bool

// EntryGroup associates a lookup key string with the entries stored under it.
type EntryGroup struct {
	Key     string
	Entries []Entry
}

// EntryConnection is one (from, to) entry pair and its edge cost.
type EntryConnection struct {
	From Entry
	To   Entry
	Cost int32
}

type connectionCell struct {
	from Entry
	to   Entry
	cost int32
}

// HashMapVocabulary is the hash-map reference Vocabulary. Entries are stored
// by their string key; connections are bucketed by the caller-supplied hash
// and resolved with the caller-supplied equality. Lookups are O(1) expected.
type HashMapVocabulary struct {
	entryMap      map[string][]Entry
	connectionMap map[uint64][]connectionCell
	hash          EntryHash
	equalTo       EntryEqualTo
}

// NewHashMapVocabulary creates a hash map vocabulary from entry groups and
// connection costs. The hash and equality callbacks route all connection
// keying, so callers decide which parts of an entry identify it.
func NewHashMapVocabulary(
	entries []EntryGroup,
	connections []EntryConnection,
	hash EntryHash,
	equalTo EntryEqualTo,
) *HashMapVocabulary {
	v := &HashMapVocabulary{
		entryMap:      make(map[string][]Entry, len(entries)),
		connectionMap: make(map[uint64][]connectionCell, len(connections)),
		hash:          hash,
		equalTo:       equalTo,
	}
	for _, group := range entries {
		v.entryMap[group.Key] = group.Entries
	}
	for _, connection := range connections {
		h := v.pairHash(connection.From, connection.To)
		v.connectionMap[h] = append(v.connectionMap[h], connectionCell{
			from: connection.From,
			to:   connection.To,
			cost: connection.Cost,
		})
	}
	return v
}

func (v *HashMapVocabulary) pairHash(from, to EntryView) uint64 {
	return v.hash(from)*31 + v.hash(to)
}

// FindEntries returns the entries stored under a key. Only string inputs can
// match; any other input yields no entries.
func (v *HashMapVocabulary) FindEntries(key Input) []EntryView {
	stringKey, ok := key.(*StringInput)
	if !ok {
		return nil
	}
	found := v.entryMap[stringKey.Value()]
	views := make([]EntryView, len(found))
	copy(views, found)
	return views
}

// FindConnection returns the edge cost between a preceding node and an
// entry, or math.MaxInt32 when the pair is absent.
func (v *HashMapVocabulary) FindConnection(from *Node, to EntryView) Connection {
	fromView := BosEos()
	if !from.IsBos() && !from.IsEos() {
		fromView = NewEntry(from.Key(), from.Value(), from.NodeCost())
	}
	for _, cell := range v.connectionMap[v.pairHash(fromView, to)] {
		if v.equalTo(cell.from, fromView) && v.equalTo(cell.to, to) {
			return NewConnection(cell.cost)
		}
	}
	return NewConnection(math.MaxInt32)
}
