package trie_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaorut/pathkit/trie"
)

func stringValueSerializer() *trie.ValueSerializer[string] {
	return trie.NewValueSerializer(func(value string) []byte {
		return []byte(value)
	}, 0)
}

func stringValueDeserializer() *trie.ValueDeserializer[string] {
	return trie.NewValueDeserializer(func(serialized []byte) (string, error) {
		return string(serialized), nil
	})
}

// serializedFixture is the storage with base 42 at cell 0, base 0xFE and
// check 24 at cell 1, and values piyo, fuga and hoge at indices 1, 2 and 4.
func serializedFixture() []byte {
	return []byte{
		0x00, 0x00, 0x00, 0x02, // base check count
		0x00, 0x00, 0x2A, 0xFF, // cell 0: base 42, vacant check
		0x00, 0x00, 0xFE, 0x18, // cell 1: base 0xFE, check 24
		0x00, 0x00, 0x00, 0x05, // value count
		0x00, 0x00, 0x00, 0x00, // variable value size
		0x00, 0x00, 0x00, 0x00, // value 0: absent
		0x00, 0x00, 0x00, 0x04, 0x70, 0x69, 0x79, 0x6F, // value 1: piyo
		0x00, 0x00, 0x00, 0x04, 0x66, 0x75, 0x67, 0x61, // value 2: fuga
		0x00, 0x00, 0x00, 0x00, // value 3: absent
		0x00, 0x00, 0x00, 0x04, 0x68, 0x6F, 0x67, 0x65, // value 4: hoge
	}
}

func fixtureStorage(t *testing.T) *trie.MemoryStorage[string] {
	t.Helper()
	storage := trie.NewMemoryStorage[string]()
	require.NoError(t, storage.SetBaseAt(0, 42))
	require.NoError(t, storage.SetBaseAt(1, 0xFE))
	require.NoError(t, storage.SetCheckAt(1, 24))
	require.NoError(t, storage.AddValueAt(1, "piyo"))
	require.NoError(t, storage.AddValueAt(2, "fuga"))
	require.NoError(t, storage.AddValueAt(4, "hoge"))
	return storage
}

func TestNewMemoryStorage(t *testing.T) {
	storage := trie.NewMemoryStorage[string]()

	assert.Equal(t, 1, storage.BaseCheckSize())
	base, err := storage.BaseAt(0)
	require.NoError(t, err)
	assert.Equal(t, int32(0), base)
	check, err := storage.CheckAt(0)
	require.NoError(t, err)
	assert.Equal(t, trie.VacantCheckValue, check)
	assert.Equal(t, 0, storage.ValueCount())
}

func TestMemoryStorageBaseCheck(t *testing.T) {
	storage := trie.NewMemoryStorage[string]()

	// Cells beyond the current size read as vacant.
	base, err := storage.BaseAt(41)
	require.NoError(t, err)
	assert.Equal(t, int32(0), base)
	check, err := storage.CheckAt(41)
	require.NoError(t, err)
	assert.Equal(t, trie.VacantCheckValue, check)

	require.NoError(t, storage.SetBaseAt(41, 0xBE))
	require.NoError(t, storage.SetCheckAt(41, 0x42))
	assert.Equal(t, 42, storage.BaseCheckSize())

	base, err = storage.BaseAt(41)
	require.NoError(t, err)
	assert.Equal(t, int32(0xBE), base)
	check, err = storage.CheckAt(41)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), check)

	// The base is sign-extended from its 24 stored bits.
	require.NoError(t, storage.SetBaseAt(41, -24))
	base, err = storage.BaseAt(41)
	require.NoError(t, err)
	assert.Equal(t, int32(-24), base)
	check, err = storage.CheckAt(41)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), check)
}

func TestMemoryStorageValues(t *testing.T) {
	storage := trie.NewMemoryStorage[string]()

	value, err := storage.ValueAt(0)
	require.NoError(t, err)
	assert.Nil(t, value)

	require.NoError(t, storage.AddValueAt(2, "hoge"))
	assert.Equal(t, 3, storage.ValueCount())
	value, err = storage.ValueAt(2)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, "hoge", *value)

	// Gaps stay absent.
	value, err = storage.ValueAt(1)
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestMemoryStorageFillingRate(t *testing.T) {
	storage := trie.NewMemoryStorage[string]()
	for i := 0; i < 9; i++ {
		if i%3 == 0 {
			require.NoError(t, storage.SetCheckAt(i, byte(i)))
		} else {
			require.NoError(t, storage.SetBaseAt(i, int32(i)))
		}
	}

	rate, err := storage.FillingRate()
	require.NoError(t, err)
	assert.InDelta(t, 3.0/9.0, rate, 0.001)
}

func TestMemoryStorageSerialize(t *testing.T) {
	storage := fixtureStorage(t)

	var buffer bytes.Buffer
	require.NoError(t, storage.Serialize(&buffer, stringValueSerializer()))

	assert.Equal(t, serializedFixture(), buffer.Bytes())
	assert.Equal(t, 52, buffer.Len())
}

func TestNewMemoryStorageFromReader(t *testing.T) {
	storage, err := trie.NewMemoryStorageFromReader(
		bytes.NewReader(serializedFixture()), stringValueDeserializer())
	require.NoError(t, err)

	assert.Equal(t, 2, storage.BaseCheckSize())
	base, err := storage.BaseAt(0)
	require.NoError(t, err)
	assert.Equal(t, int32(42), base)
	base, err = storage.BaseAt(1)
	require.NoError(t, err)
	assert.Equal(t, int32(0xFE), base)
	check, err := storage.CheckAt(1)
	require.NoError(t, err)
	assert.Equal(t, byte(24), check)

	assert.Equal(t, 5, storage.ValueCount())
	for index, want := range map[int]string{1: "piyo", 2: "fuga", 4: "hoge"} {
		value, err := storage.ValueAt(index)
		require.NoError(t, err)
		require.NotNil(t, value)
		assert.Equal(t, want, *value)
	}
	for _, index := range []int{0, 3} {
		value, err := storage.ValueAt(index)
		require.NoError(t, err)
		assert.Nil(t, value)
	}

	// The round trip is bit-exact.
	var buffer bytes.Buffer
	require.NoError(t, storage.Serialize(&buffer, stringValueSerializer()))
	assert.Equal(t, serializedFixture(), buffer.Bytes())
}

func TestNewMemoryStorageFromReaderTruncated(t *testing.T) {
	fixture := serializedFixture()
	for _, size := range []int{0, 3, 10, 17, 25} {
		_, err := trie.NewMemoryStorageFromReader(
			bytes.NewReader(fixture[:size]), stringValueDeserializer())
		assert.ErrorIs(t, err, trie.ErrInvalidSerializedBytes)
	}
}

func TestMemoryStorageSerializeFixedSize(t *testing.T) {
	storage := trie.NewMemoryStorage[uint32]()
	require.NoError(t, storage.SetBaseAt(0, 42))
	require.NoError(t, storage.AddValueAt(0, 0x12345678))
	require.NoError(t, storage.AddValueAt(1, 0x9ABCDEF0))

	serializer := trie.NewValueSerializer(func(value uint32) []byte {
		return trie.NewIntegerSerializer[uint32](false).Serialize(value)
	}, 4)

	var buffer bytes.Buffer
	require.NoError(t, storage.Serialize(&buffer, serializer))

	expected := []byte{
		0x00, 0x00, 0x00, 0x01, // base check count
		0x00, 0x00, 0x2A, 0xFF, // cell 0
		0x00, 0x00, 0x00, 0x02, // value count
		0x00, 0x00, 0x00, 0x04, // fixed value size
		0x12, 0x34, 0x56, 0x78,
		0x9A, 0xBC, 0xDE, 0xF0,
	}
	assert.Equal(t, expected, buffer.Bytes())

	deserializer := trie.NewValueDeserializer(func(serialized []byte) (uint32, error) {
		return trie.NewIntegerDeserializer[uint32](false).Deserialize(serialized)
	})
	restored, err := trie.NewMemoryStorageFromReader(bytes.NewReader(expected), deserializer)
	require.NoError(t, err)
	value, err := restored.ValueAt(1)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, uint32(0x9ABCDEF0), *value)
}

func TestMemoryStorageSerializeValueError(t *testing.T) {
	storage := trie.NewMemoryStorage[string]()
	require.NoError(t, storage.AddValueAt(0, "too long for the fixed size"))

	fixedSerializer := trie.NewValueSerializer(func(value string) []byte {
		return []byte(value)
	}, 4)

	var buffer bytes.Buffer
	err := storage.Serialize(&buffer, fixedSerializer)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "fixed"))
}
