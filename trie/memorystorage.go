package trie

import (
	"fmt"
	"io"

	"github.com/kaorut/pathkit/internal/wire"
)

var _ Storage[any] = (*MemoryStorage[any])(nil)

// MemoryStorage is the growable, heap-resident Storage.
type MemoryStorage[T any] struct {
	baseCheck []uint32
	values    []*T
}

// NewMemoryStorage creates a memory storage holding just the vacant root
// cell.
func NewMemoryStorage[T any]() *MemoryStorage[T] {
	return &MemoryStorage[T]{baseCheck: []uint32{vacantCell}}
}

// NewMemoryStorageFromReader parses a serialized double array, restoring
// values through the supplied deserializer. Truncated or malformed input
// fails with ErrInvalidSerializedBytes.
func NewMemoryStorageFromReader[T any](
	reader io.Reader,
	valueDeserializer *ValueDeserializer[T],
) (*MemoryStorage[T], error) {
	baseCheckCount, err := wire.ReadU32(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: base check count: %w", ErrInvalidSerializedBytes, err)
	}
	baseCheck := make([]uint32, baseCheckCount)
	for i := range baseCheck {
		if baseCheck[i], err = wire.ReadU32(reader); err != nil {
			return nil, fmt.Errorf("%w: base check array: %w", ErrInvalidSerializedBytes, err)
		}
	}

	valueCount, err := wire.ReadU32(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: value count: %w", ErrInvalidSerializedBytes, err)
	}
	fixedValueSize, err := wire.ReadU32(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: fixed value size: %w", ErrInvalidSerializedBytes, err)
	}

	values := make([]*T, valueCount)
	for i := range values {
		payloadLength := fixedValueSize
		if fixedValueSize == 0 {
			if payloadLength, err = wire.ReadU32(reader); err != nil {
				return nil, fmt.Errorf("%w: value length: %w", ErrInvalidSerializedBytes, err)
			}
			if payloadLength == 0 {
				continue
			}
		}
		payload := make([]byte, payloadLength)
		if _, err := io.ReadFull(reader, payload); err != nil {
			return nil, fmt.Errorf("%w: value payload: %w", ErrInvalidSerializedBytes, err)
		}
		value, err := valueDeserializer.Deserialize(payload)
		if err != nil {
			return nil, err
		}
		values[i] = &value
	}

	return &MemoryStorage[T]{baseCheck: baseCheck, values: values}, nil
}

// BaseCheckSize returns the number of base-check cells.
func (s *MemoryStorage[T]) BaseCheckSize() int {
	return len(s.baseCheck)
}

// BaseAt returns the base at a cell; cells beyond the current size read as
// vacant.
func (s *MemoryStorage[T]) BaseAt(baseCheckIndex int) (int32, error) {
	if baseCheckIndex < 0 || baseCheckIndex >= len(s.baseCheck) {
		return cellBase(vacantCell), nil
	}
	return cellBase(s.baseCheck[baseCheckIndex]), nil
}

// SetBaseAt stores a base, growing the array with vacant cells as needed.
func (s *MemoryStorage[T]) SetBaseAt(baseCheckIndex int, base int32) error {
	s.ensureSize(baseCheckIndex + 1)
	s.baseCheck[baseCheckIndex] = packBase(s.baseCheck[baseCheckIndex], base)
	return nil
}

// CheckAt returns the check byte at a cell; cells beyond the current size
// read as vacant.
func (s *MemoryStorage[T]) CheckAt(baseCheckIndex int) (byte, error) {
	if baseCheckIndex < 0 || baseCheckIndex >= len(s.baseCheck) {
		return VacantCheckValue, nil
	}
	return cellCheck(s.baseCheck[baseCheckIndex]), nil
}

// SetCheckAt stores a check byte, growing the array with vacant cells as
// needed.
func (s *MemoryStorage[T]) SetCheckAt(baseCheckIndex int, check byte) error {
	s.ensureSize(baseCheckIndex + 1)
	s.baseCheck[baseCheckIndex] = packCheck(s.baseCheck[baseCheckIndex], check)
	return nil
}

func (s *MemoryStorage[T]) ensureSize(size int) {
	for len(s.baseCheck) < size {
		s.baseCheck = append(s.baseCheck, vacantCell)
	}
}

// ValueCount returns the length of the value array.
func (s *MemoryStorage[T]) ValueCount() int {
	return len(s.values)
}

// ValueAt returns the value at an index, or nil for absent slots.
func (s *MemoryStorage[T]) ValueAt(valueIndex int) (*T, error) {
	if valueIndex < 0 || valueIndex >= len(s.values) {
		return nil, nil
	}
	return s.values[valueIndex], nil
}

// AddValueAt stores a value, filling any gap with absent slots.
func (s *MemoryStorage[T]) AddValueAt(valueIndex int, value T) error {
	for len(s.values) <= valueIndex {
		s.values = append(s.values, nil)
	}
	s.values[valueIndex] = &value
	return nil
}

// FillingRate returns the fraction of cells whose check is not vacant.
func (s *MemoryStorage[T]) FillingRate() (float64, error) {
	filled := 0
	for _, cell := range s.baseCheck {
		if cellCheck(cell) != VacantCheckValue {
			filled++
		}
	}
	return float64(filled) / float64(len(s.baseCheck)), nil
}

// Serialize writes the storage in the big-endian binary format: the
// base-check array, the value count, the fixed value size and the value
// payloads. With a variable value size every payload is preceded by its
// length, where 0 marks an absent slot; with a fixed size every serialized
// value must be exactly that long, and absent slots are written as zero
// bytes.
func (s *MemoryStorage[T]) Serialize(writer io.Writer, valueSerializer *ValueSerializer[T]) error {
	if err := wire.WriteU32(writer, uint32(len(s.baseCheck))); err != nil {
		return err
	}
	for _, cell := range s.baseCheck {
		if err := wire.WriteU32(writer, cell); err != nil {
			return err
		}
	}

	if err := wire.WriteU32(writer, uint32(len(s.values))); err != nil {
		return err
	}
	fixedValueSize := valueSerializer.FixedValueSize()
	if err := wire.WriteU32(writer, uint32(fixedValueSize)); err != nil {
		return err
	}

	for _, value := range s.values {
		if fixedValueSize == 0 {
			if value == nil {
				if err := wire.WriteU32(writer, 0); err != nil {
					return err
				}
				continue
			}
			payload := valueSerializer.Serialize(*value)
			if err := wire.WriteU32(writer, uint32(len(payload))); err != nil {
				return err
			}
			if _, err := writer.Write(payload); err != nil {
				return err
			}
			continue
		}

		if value == nil {
			if _, err := writer.Write(make([]byte, fixedValueSize)); err != nil {
				return err
			}
			continue
		}
		payload := valueSerializer.Serialize(*value)
		if len(payload) != fixedValueSize {
			return fmt.Errorf("trie: serialized value has %d bytes, want fixed %d", len(payload), fixedValueSize)
		}
		if _, err := writer.Write(payload); err != nil {
			return err
		}
	}
	return nil
}
