package trie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaorut/pathkit/trie"
)

func TestIntegerSerializerWithoutEscape(t *testing.T) {
	serializer := trie.NewIntegerSerializer[int32](false)

	assert.Equal(t, []byte{0x00, 0x12, 0x34, 0xAB}, serializer.Serialize(0x001234AB))
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, serializer.Serialize(0))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, serializer.Serialize(-1))

	wide := trie.NewIntegerSerializer[uint32](false)
	assert.Equal(t, []byte{0xFC, 0xFD, 0xFE, 0xFF}, wide.Serialize(0xFCFDFEFF))
}

func TestIntegerSerializerWithEscape(t *testing.T) {
	serializer := trie.NewIntegerSerializer[int32](true)

	serialized := serializer.Serialize(0x001234AB)
	assert.Equal(t, []byte{0xFE, 0x12, 0x34, 0xAB}, serialized)
	assert.NotContains(t, serialized, trie.KeyTerminator)

	wide := trie.NewIntegerSerializer[uint32](true)
	serialized = wide.Serialize(0xFCFDFEFF)
	assert.Equal(t, []byte{0xFC, 0xFD, 0xFD, 0xFD, 0xFE, 0xFF}, serialized)
	assert.NotContains(t, serialized, trie.KeyTerminator)
}

func TestIntegerDeserializerWithoutEscape(t *testing.T) {
	deserializer := trie.NewIntegerDeserializer[int32](false)

	value, err := deserializer.Deserialize([]byte{0x00, 0x12, 0x34, 0xAB})
	require.NoError(t, err)
	assert.Equal(t, int32(0x001234AB), value)

	negative, err := trie.NewIntegerDeserializer[int32](false).Deserialize([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, int32(-1), negative)

	_, err = deserializer.Deserialize([]byte{0x12, 0x34})
	assert.ErrorIs(t, err, trie.ErrInvalidSerializedLength)
	_, err = deserializer.Deserialize(make([]byte, 9))
	assert.ErrorIs(t, err, trie.ErrInvalidSerializedLength)
}

func TestIntegerDeserializerWithEscape(t *testing.T) {
	deserializer := trie.NewIntegerDeserializer[uint32](true)

	value, err := deserializer.Deserialize([]byte{0xFC, 0xFD, 0xFD, 0xFD, 0xFE, 0xFF})
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFCFDFEFF), value)

	zero, err := deserializer.Deserialize([]byte{0xFE, 0xFE, 0xFE, 0xFE})
	require.NoError(t, err)
	assert.Equal(t, uint32(0), zero)

	// 0xFD must be followed by 0xFD or 0xFE.
	_, err = deserializer.Deserialize([]byte{0xFC, 0xFD, 0xFD, 0xFD, 0xFE, 0xFD})
	assert.ErrorIs(t, err, trie.ErrInvalidSerializedContent)
	_, err = deserializer.Deserialize([]byte{0xFC, 0xFD, 0x01, 0x02, 0x03, 0x04})
	assert.ErrorIs(t, err, trie.ErrInvalidSerializedContent)
}

func TestIntegerSerializerRoundTrip(t *testing.T) {
	for _, feEscape := range []bool{false, true} {
		serializer := trie.NewIntegerSerializer[uint32](feEscape)
		deserializer := trie.NewIntegerDeserializer[uint32](feEscape)
		for _, value := range []uint32{0, 1, 0xFC, 0xFD, 0xFE, 0xFF, 0x001234AB, 0xFCFDFEFF, 0xFFFFFFFF} {
			serialized := serializer.Serialize(value)
			if feEscape {
				assert.NotContains(t, serialized, trie.KeyTerminator)
			}
			restored, err := deserializer.Deserialize(serialized)
			require.NoError(t, err)
			assert.Equal(t, value, restored)
		}
	}
}

func TestIntegerSerializerOtherWidths(t *testing.T) {
	oneByte := trie.NewIntegerSerializer[uint8](false)
	assert.Equal(t, []byte{0x42}, oneByte.Serialize(0x42))

	eightBytes := trie.NewIntegerSerializer[uint64](false)
	assert.Equal(
		t,
		[]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF},
		eightBytes.Serialize(0x0123456789ABCDEF),
	)

	restored, err := trie.NewIntegerDeserializer[uint64](false).
		Deserialize([]byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF})
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0123456789ABCDEF), restored)
}
