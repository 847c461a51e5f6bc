package trie

import (
	"bytes"
	"sort"
)

// DefaultDensityFactor is the density factor used when callers have no
// layout preference. Larger factors start the base search closer to the
// parent cell, which takes fewer collision retries but leaves more vacant
// cells; a factor of 1 starts every search at the head of the array and
// packs it densest.
const DefaultDensityFactor = 1000

// DoubleArrayElement is one builder input: a serialized key and the int32
// stored at its leaf, typically a value array index.
type DoubleArrayElement struct {
	Key   []byte
	Value int32
}

// BuildingObserverSet carries optional callbacks fired while a double array
// is laid out: Adding once per distinct key, in ascending key order (for
// equal keys, with the first element), and Done once the layout is complete.
// Nil callbacks are skipped.
type BuildingObserverSet struct {
	Adding func(key []byte, value int32)
	Done   func()
}

func (o *BuildingObserverSet) adding(key []byte, value int32) {
	if o != nil && o.Adding != nil {
		o.Adding(key, value)
	}
}

func (o *BuildingObserverSet) done() {
	if o != nil && o.Done != nil {
		o.Done()
	}
}

// buildDoubleArray lays the elements out into storage. Elements are sorted
// by key; the layout recursion walks key prefixes, choosing for every
// parent a base that collides with no sibling subtree and that no other
// parent uses.
func buildDoubleArray[T any](
	elements []DoubleArrayElement,
	storage Storage[T],
	observer *BuildingObserverSet,
	densityFactor int,
) error {
	if densityFactor <= 0 {
		return ErrInvalidDensityFactor
	}

	sorted := make([]DoubleArrayElement, len(elements))
	copy(sorted, elements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0
	})

	if len(sorted) > 0 {
		baseUniquer := make(map[int32]struct{})
		if err := buildSubtree(sorted, 0, storage, 0, baseUniquer, observer, densityFactor); err != nil {
			return err
		}
	}
	observer.done()
	return nil
}

func buildSubtree[T any](
	elements []DoubleArrayElement,
	keyOffset int,
	storage Storage[T],
	baseCheckIndex int,
	baseUniquer map[int32]struct{},
	observer *BuildingObserverSet,
	densityFactor int,
) error {
	firsts := childrenFirsts(elements, keyOffset)

	base, err := calcBase(elements, firsts, keyOffset, storage, baseCheckIndex, densityFactor, baseUniquer)
	if err != nil {
		return err
	}
	if err := storage.SetBaseAt(baseCheckIndex, base); err != nil {
		return err
	}

	// Claim every child cell before descending so sibling subtrees see them
	// as occupied.
	for group := 0; group < len(firsts)-1; group++ {
		charCode := charCodeAt(elements[firsts[group]].Key, keyOffset)
		if err := storage.SetCheckAt(int(base)+int(charCode), charCode); err != nil {
			return err
		}
	}

	for group := 0; group < len(firsts)-1; group++ {
		first := firsts[group]
		charCode := charCodeAt(elements[first].Key, keyOffset)
		nextBaseCheckIndex := int(base) + int(charCode)
		if charCode == KeyTerminator {
			observer.adding(elements[first].Key, elements[first].Value)
			if err := storage.SetBaseAt(nextBaseCheckIndex, elements[first].Value); err != nil {
				return err
			}
			continue
		}
		err := buildSubtree(
			elements[first:firsts[group+1]],
			keyOffset+1,
			storage,
			nextBaseCheckIndex,
			baseUniquer,
			observer,
			densityFactor,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// calcBase finds the smallest base at or above the density heuristic start
// such that every child cell is vacant and no other parent already owns the
// base.
func calcBase[T any](
	elements []DoubleArrayElement,
	firsts []int,
	keyOffset int,
	storage Storage[T],
	baseCheckIndex int,
	densityFactor int,
	baseUniquer map[int32]struct{},
) (int32, error) {
	start := int32(baseCheckIndex-baseCheckIndex/densityFactor) -
		int32(charCodeAt(elements[0].Key, keyOffset)) + 1

	for base := start; ; base++ {
		occupied := false
		for group := 0; group < len(firsts)-1; group++ {
			charCode := charCodeAt(elements[firsts[group]].Key, keyOffset)
			check, err := storage.CheckAt(int(base) + int(charCode))
			if err != nil {
				return 0, err
			}
			if check != VacantCheckValue {
				occupied = true
				break
			}
		}
		if occupied {
			continue
		}
		if _, taken := baseUniquer[base]; taken {
			continue
		}
		baseUniquer[base] = struct{}{}
		return base, nil
	}
}

// childrenFirsts returns the indices where the byte at keyOffset changes,
// bracketed by 0 and len(elements). A key exhausted at keyOffset
// contributes the terminator byte.
func childrenFirsts(elements []DoubleArrayElement, keyOffset int) []int {
	firsts := []int{0}
	for i := 0; i < len(elements); {
		charCode := charCodeAt(elements[i].Key, keyOffset)
		j := i + 1
		for j < len(elements) && charCodeAt(elements[j].Key, keyOffset) == charCode {
			j++
		}
		firsts = append(firsts, j)
		i = j
	}
	return firsts
}

func charCodeAt(key []byte, index int) byte {
	if index < len(key) {
		return key[index]
	}
	return KeyTerminator
}
