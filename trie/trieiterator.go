package trie

// TrieIterator yields a trie's stored values in ascending key order by
// resolving the double array iterator's leaf indices through the value
// array.
type TrieIterator[V any] struct {
	doubleArrayIterator *DoubleArrayIterator[V]
	storage             Storage[V]
	err                 error
}

func newTrieIterator[V any](doubleArrayIterator *DoubleArrayIterator[V], storage Storage[V]) *TrieIterator[V] {
	return &TrieIterator[V]{doubleArrayIterator: doubleArrayIterator, storage: storage}
}

// Next returns the next stored value. The second result is false when the
// iteration is exhausted or a storage error occurred; see Err.
func (it *TrieIterator[V]) Next() (*V, bool) {
	if it.err != nil {
		return nil, false
	}
	for {
		valueIndex, ok := it.doubleArrayIterator.Next()
		if !ok {
			it.err = it.doubleArrayIterator.Err()
			return nil, false
		}
		value, err := it.storage.ValueAt(int(valueIndex))
		if err != nil {
			it.err = err
			return nil, false
		}
		if value != nil {
			return value, true
		}
	}
}

// Err returns the storage error that ended the iteration, if any.
func (it *TrieIterator[V]) Err() error {
	return it.err
}
