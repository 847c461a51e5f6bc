package trie

import "unsafe"

// Integer constrains the fixed-width integer types the integer serializer
// accepts.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

func integerSize[T Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// IntegerSerializer serializes a fixed-width integer big-endian.
//
// With feEscape enabled the serialized bytes never contain 0x00, so the
// result is usable as a double array key:
//
//	original  serialized
//	0x00      0xFE
//	0x01-0xFC unchanged
//	0xFD      0xFD 0xFD
//	0xFE      0xFD 0xFE
//	0xFF      unchanged
type IntegerSerializer[T Integer] struct {
	feEscape bool
}

// NewIntegerSerializer creates an integer serializer. Pass true to escape
// 0x00 bytes out of the serialized form.
func NewIntegerSerializer[T Integer](feEscape bool) *IntegerSerializer[T] {
	return &IntegerSerializer[T]{feEscape: feEscape}
}

// Serialize returns the big-endian serialized form of value.
func (s *IntegerSerializer[T]) Serialize(value T) []byte {
	plain := integerToBytes(value)
	if !s.feEscape {
		return plain
	}
	escaped := make([]byte, 0, len(plain))
	for _, b := range plain {
		switch b {
		case 0x00:
			escaped = append(escaped, 0xFE)
		case 0xFD, 0xFE:
			escaped = append(escaped, 0xFD, b)
		default:
			escaped = append(escaped, b)
		}
	}
	return escaped
}

func integerToBytes[T Integer](value T) []byte {
	size := integerSize[T]()
	bytes := make([]byte, size)
	for i := size - 1; i >= 0; i-- {
		bytes[i] = byte(value)
		value >>= 8
	}
	return bytes
}

// IntegerDeserializer restores a fixed-width integer serialized by
// IntegerSerializer with the same feEscape setting.
type IntegerDeserializer[T Integer] struct {
	feEscape bool
}

// NewIntegerDeserializer creates an integer deserializer.
func NewIntegerDeserializer[T Integer](feEscape bool) *IntegerDeserializer[T] {
	return &IntegerDeserializer[T]{feEscape: feEscape}
}

// Deserialize restores an integer from its serialized form. It fails with
// ErrInvalidSerializedLength when the length is outside
// [size, 2*size] for the integer's byte size, and with
// ErrInvalidSerializedContent on an impossible escape sequence.
func (d *IntegerDeserializer[T]) Deserialize(serialized []byte) (T, error) {
	size := integerSize[T]()
	if len(serialized) < size || len(serialized) > 2*size {
		return 0, ErrInvalidSerializedLength
	}

	var value T
	if !d.feEscape {
		for _, b := range serialized {
			value <<= 8
			value |= T(b)
		}
		return value, nil
	}

	for i := 0; i < len(serialized); i++ {
		value <<= 8
		switch b := serialized[i]; b {
		case 0xFD:
			i++
			if i >= len(serialized) {
				return 0, ErrInvalidSerializedContent
			}
			if serialized[i] != 0xFD && serialized[i] != 0xFE {
				return 0, ErrInvalidSerializedContent
			}
			value |= T(serialized[i])
		case 0xFE:
			// escaped 0x00
		default:
			value |= T(b)
		}
	}
	return value, nil
}
