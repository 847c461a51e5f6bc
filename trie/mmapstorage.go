package trie

import (
	"fmt"
	"io"

	"github.com/kaorut/pathkit/internal/wire"
)

var _ Storage[any] = (*MmapStorage[any])(nil)

// MmapStorage reads a serialized double array directly from a mapped file
// region without materializing it. Only the fixed-value-size format is
// supported; values are decoded on access at
// valueArrayOffset + index*fixedValueSize.
//
// The region must stay mapped and unchanged for the storage's lifetime.
// Mutations fail with ErrStorageReadOnly.
type MmapStorage[T any] struct {
	region            []byte
	contentOffset     int
	contentSize       int
	valueDeserializer *ValueDeserializer[T]
	baseCheckCount    int
	valueCount        int
	fixedValueSize    int
	valueArrayOffset  int
}

// NewMmapStorage creates an mmap storage over the serialized double array
// at region[contentOffset : contentOffset+contentSize]. It fails with
// ErrOutOfMmap when the content range leaves the region, with
// ErrInvalidSerializedBytes when the header is truncated or describes a
// variable-size value array.
func NewMmapStorage[T any](
	region []byte,
	contentOffset int,
	contentSize int,
	valueDeserializer *ValueDeserializer[T],
) (*MmapStorage[T], error) {
	if contentOffset < 0 || contentSize < 0 || contentOffset+contentSize > len(region) {
		return nil, ErrOutOfMmap
	}
	s := &MmapStorage[T]{
		region:            region,
		contentOffset:     contentOffset,
		contentSize:       contentSize,
		valueDeserializer: valueDeserializer,
	}

	baseCheckCount, err := s.u32At(0)
	if err != nil {
		return nil, fmt.Errorf("%w: base check count out of content", ErrInvalidSerializedBytes)
	}
	s.baseCheckCount = int(baseCheckCount)

	valueCountOffset := 4 + 4*s.baseCheckCount
	valueCount, err := s.u32At(valueCountOffset)
	if err != nil {
		return nil, fmt.Errorf("%w: value count out of content", ErrInvalidSerializedBytes)
	}
	s.valueCount = int(valueCount)

	fixedValueSize, err := s.u32At(valueCountOffset + 4)
	if err != nil {
		return nil, fmt.Errorf("%w: fixed value size out of content", ErrInvalidSerializedBytes)
	}
	if fixedValueSize == 0 {
		return nil, fmt.Errorf("%w: mmap storage requires a fixed value size", ErrInvalidSerializedBytes)
	}
	s.fixedValueSize = int(fixedValueSize)
	s.valueArrayOffset = valueCountOffset + 8

	if s.valueArrayOffset+s.valueCount*s.fixedValueSize > s.contentSize {
		return nil, fmt.Errorf("%w: value array out of content", ErrInvalidSerializedBytes)
	}
	return s, nil
}

// u32At reads a big-endian u32 at a content-relative offset.
func (s *MmapStorage[T]) u32At(offset int) (uint32, error) {
	if offset < 0 || offset+4 > s.contentSize {
		return 0, ErrOutOfMmap
	}
	return wire.U32(s.region, s.contentOffset+offset), nil
}

func (s *MmapStorage[T]) cellAt(baseCheckIndex int) (uint32, error) {
	if baseCheckIndex < 0 || baseCheckIndex >= s.baseCheckCount {
		return 0, ErrOutOfMmap
	}
	return s.u32At(4 + 4*baseCheckIndex)
}

// BaseCheckSize returns the number of base-check cells.
func (s *MmapStorage[T]) BaseCheckSize() int {
	return s.baseCheckCount
}

// BaseAt returns the base at a cell, or ErrOutOfMmap beyond the array.
func (s *MmapStorage[T]) BaseAt(baseCheckIndex int) (int32, error) {
	cell, err := s.cellAt(baseCheckIndex)
	if err != nil {
		return 0, err
	}
	return cellBase(cell), nil
}

// SetBaseAt fails with ErrStorageReadOnly.
func (s *MmapStorage[T]) SetBaseAt(int, int32) error {
	return ErrStorageReadOnly
}

// CheckAt returns the check byte at a cell, or ErrOutOfMmap beyond the
// array.
func (s *MmapStorage[T]) CheckAt(baseCheckIndex int) (byte, error) {
	cell, err := s.cellAt(baseCheckIndex)
	if err != nil {
		return 0, err
	}
	return cellCheck(cell), nil
}

// SetCheckAt fails with ErrStorageReadOnly.
func (s *MmapStorage[T]) SetCheckAt(int, byte) error {
	return ErrStorageReadOnly
}

// ValueCount returns the length of the value array.
func (s *MmapStorage[T]) ValueCount() int {
	return s.valueCount
}

// ValueAt decodes and returns the value at an index, or nil when the index
// is out of range.
func (s *MmapStorage[T]) ValueAt(valueIndex int) (*T, error) {
	if valueIndex < 0 || valueIndex >= s.valueCount {
		return nil, nil
	}
	offset := s.contentOffset + s.valueArrayOffset + valueIndex*s.fixedValueSize
	payload := s.region[offset : offset+s.fixedValueSize]
	value, err := s.valueDeserializer.Deserialize(payload)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// AddValueAt fails with ErrStorageReadOnly.
func (s *MmapStorage[T]) AddValueAt(int, T) error {
	return ErrStorageReadOnly
}

// FillingRate returns the fraction of cells in use.
func (s *MmapStorage[T]) FillingRate() (float64, error) {
	filled := 0
	for i := 0; i < s.baseCheckCount; i++ {
		check, err := s.CheckAt(i)
		if err != nil {
			return 0, err
		}
		if check != VacantCheckValue {
			filled++
		}
	}
	return float64(filled) / float64(s.baseCheckCount), nil
}

// Serialize copies the raw content region to the writer; the stored bytes
// are already in the serialized format.
func (s *MmapStorage[T]) Serialize(writer io.Writer, _ *ValueSerializer[T]) error {
	content := s.region[s.contentOffset : s.contentOffset+s.contentSize]
	_, err := writer.Write(content)
	return err
}
