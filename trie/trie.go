package trie

import (
	"bytes"
	"sort"
)

// TrieElement is one key-value pair to build a Trie from.
type TrieElement[K any, V any] struct {
	Key   K
	Value V
}

// Trie is the user-facing ordered key-value map over a double array. Keys
// pass through a Serializer into the byte strings the double array stores;
// values live in the storage's value array, addressed by the int32 at each
// leaf.
type Trie[K any, V any] struct {
	doubleArray   *DoubleArray[V]
	keySerializer Serializer[K]
}

// BuildTrie builds a trie from elements. Keys are serialized and laid out
// in ascending byte order; the observer's Adding callback fires once per
// distinct serialized key in that order, and Done fires when the
// layout is complete. Values are stored in key order, so the value array
// index of an element equals its key rank.
func BuildTrie[K any, V any](
	elements []TrieElement[K, V],
	keySerializer Serializer[K],
	observer *BuildingObserverSet,
	densityFactor int,
) (*Trie[K, V], error) {
	type serializedElement struct {
		key   []byte
		value V
	}
	serialized := make([]serializedElement, len(elements))
	for i, element := range elements {
		serialized[i] = serializedElement{
			key:   keySerializer.Serialize(element.Key),
			value: element.Value,
		}
	}
	sort.SliceStable(serialized, func(i, j int) bool {
		return bytes.Compare(serialized[i].key, serialized[j].key) < 0
	})

	storage := NewMemoryStorage[V]()
	doubleArrayElements := make([]DoubleArrayElement, len(serialized))
	for i, element := range serialized {
		doubleArrayElements[i] = DoubleArrayElement{Key: element.key, Value: int32(i)}
		if err := storage.AddValueAt(i, element.value); err != nil {
			return nil, err
		}
	}

	if err := buildDoubleArray(doubleArrayElements, storage, observer, densityFactor); err != nil {
		return nil, err
	}
	return &Trie[K, V]{
		doubleArray:   NewDoubleArrayWithStorage[V](storage, 0),
		keySerializer: keySerializer,
	}, nil
}

// NewTrieWithStorage wraps an existing storage, typically deserialized or
// mmap, as a trie rooted at cell 0.
func NewTrieWithStorage[K any, V any](storage Storage[V], keySerializer Serializer[K]) *Trie[K, V] {
	return &Trie[K, V]{
		doubleArray:   NewDoubleArrayWithStorage(storage, 0),
		keySerializer: keySerializer,
	}
}

// Empty reports whether the trie stores no values.
func (t *Trie[K, V]) Empty() bool {
	return t.Size() == 0
}

// Size returns the number of stored values.
func (t *Trie[K, V]) Size() int {
	storage := t.doubleArray.Storage()
	size := 0
	for i := 0; i < storage.ValueCount(); i++ {
		value, err := storage.ValueAt(i)
		if err == nil && value != nil {
			size++
		}
	}
	return size
}

// Find returns the value stored under key, or nil when the key is absent.
func (t *Trie[K, V]) Find(key K) (*V, error) {
	valueIndex, found, err := t.doubleArray.Find(t.keySerializer.Serialize(key))
	if err != nil || !found {
		return nil, err
	}
	return t.doubleArray.Storage().ValueAt(int(valueIndex))
}

// Subtrie returns a view of the subtree under prefix, sharing this trie's
// storage. Iterating the view yields the values of all keys extending the
// prefix, in key order. The second result is false when no key extends the
// prefix.
func (t *Trie[K, V]) Subtrie(prefix K) (*Trie[K, V], bool, error) {
	subtree, found, err := t.doubleArray.Subtree(t.keySerializer.Serialize(prefix))
	if err != nil || !found {
		return nil, false, err
	}
	return &Trie[K, V]{doubleArray: subtree, keySerializer: t.keySerializer}, true, nil
}

// Iterator returns a key-order iterator over the stored values.
func (t *Trie[K, V]) Iterator() *TrieIterator[V] {
	return newTrieIterator(t.doubleArray.Iterator(), t.doubleArray.Storage())
}

// DoubleArray returns the underlying double array.
func (t *Trie[K, V]) DoubleArray() *DoubleArray[V] {
	return t.doubleArray
}

// Storage returns the underlying storage, e.g. for serialization.
func (t *Trie[K, V]) Storage() Storage[V] {
	return t.doubleArray.Storage()
}
