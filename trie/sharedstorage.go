package trie

import "io"

var _ Storage[any] = (*SharedStorage[any])(nil)

type sharedStorageEntity[T any] struct {
	storage *MemoryStorage[T]
	holders int
}

// SharedStorage is a reference-counted handle over a MemoryStorage. Clones
// share the entity; reads are always allowed, while mutations require the
// handle to be the sole holder and fail with ErrStorageShared otherwise —
// there is no silent copy-on-write.
type SharedStorage[T any] struct {
	entity *sharedStorageEntity[T]
}

// NewSharedStorage creates a shared storage over a fresh memory storage.
func NewSharedStorage[T any]() *SharedStorage[T] {
	return &SharedStorage[T]{
		entity: &sharedStorageEntity[T]{storage: NewMemoryStorage[T](), holders: 1},
	}
}

// NewSharedStorageFromReader creates a shared storage from a serialized
// double array.
func NewSharedStorageFromReader[T any](
	reader io.Reader,
	valueDeserializer *ValueDeserializer[T],
) (*SharedStorage[T], error) {
	storage, err := NewMemoryStorageFromReader(reader, valueDeserializer)
	if err != nil {
		return nil, err
	}
	return &SharedStorage[T]{
		entity: &sharedStorageEntity[T]{storage: storage, holders: 1},
	}, nil
}

// Clone returns a new handle sharing this storage's entity.
func (s *SharedStorage[T]) Clone() *SharedStorage[T] {
	s.entity.holders++
	return &SharedStorage[T]{entity: s.entity}
}

// Release drops this handle's hold on the entity. Further use of a released
// handle is a caller bug.
func (s *SharedStorage[T]) Release() {
	if s.entity.holders > 0 {
		s.entity.holders--
	}
}

func (s *SharedStorage[T]) exclusive() bool {
	return s.entity.holders <= 1
}

// BaseCheckSize returns the number of base-check cells.
func (s *SharedStorage[T]) BaseCheckSize() int {
	return s.entity.storage.BaseCheckSize()
}

// BaseAt returns the base at a cell.
func (s *SharedStorage[T]) BaseAt(baseCheckIndex int) (int32, error) {
	return s.entity.storage.BaseAt(baseCheckIndex)
}

// SetBaseAt stores a base when this handle is the sole holder.
func (s *SharedStorage[T]) SetBaseAt(baseCheckIndex int, base int32) error {
	if !s.exclusive() {
		return ErrStorageShared
	}
	return s.entity.storage.SetBaseAt(baseCheckIndex, base)
}

// CheckAt returns the check byte at a cell.
func (s *SharedStorage[T]) CheckAt(baseCheckIndex int) (byte, error) {
	return s.entity.storage.CheckAt(baseCheckIndex)
}

// SetCheckAt stores a check byte when this handle is the sole holder.
func (s *SharedStorage[T]) SetCheckAt(baseCheckIndex int, check byte) error {
	if !s.exclusive() {
		return ErrStorageShared
	}
	return s.entity.storage.SetCheckAt(baseCheckIndex, check)
}

// ValueCount returns the length of the value array.
func (s *SharedStorage[T]) ValueCount() int {
	return s.entity.storage.ValueCount()
}

// ValueAt returns the value at an index, or nil for absent slots.
func (s *SharedStorage[T]) ValueAt(valueIndex int) (*T, error) {
	return s.entity.storage.ValueAt(valueIndex)
}

// AddValueAt stores a value when this handle is the sole holder.
func (s *SharedStorage[T]) AddValueAt(valueIndex int, value T) error {
	if !s.exclusive() {
		return ErrStorageShared
	}
	return s.entity.storage.AddValueAt(valueIndex, value)
}

// FillingRate returns the fraction of cells in use.
func (s *SharedStorage[T]) FillingRate() (float64, error) {
	return s.entity.storage.FillingRate()
}

// Serialize writes the storage in the big-endian binary format.
func (s *SharedStorage[T]) Serialize(writer io.Writer, valueSerializer *ValueSerializer[T]) error {
	return s.entity.storage.Serialize(writer, valueSerializer)
}
