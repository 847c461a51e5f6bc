package trie_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaorut/pathkit/trie"
)

func TestSharedStorageExclusiveMutation(t *testing.T) {
	storage := trie.NewSharedStorage[string]()

	require.NoError(t, storage.SetBaseAt(0, 42))
	require.NoError(t, storage.SetCheckAt(1, 24))
	require.NoError(t, storage.AddValueAt(0, "hoge"))

	base, err := storage.BaseAt(0)
	require.NoError(t, err)
	assert.Equal(t, int32(42), base)
}

func TestSharedStorageRejectsSharedMutation(t *testing.T) {
	storage := trie.NewSharedStorage[string]()
	require.NoError(t, storage.SetBaseAt(0, 42))

	clone := storage.Clone()

	// Reads stay legal on both handles while shared.
	base, err := clone.BaseAt(0)
	require.NoError(t, err)
	assert.Equal(t, int32(42), base)

	assert.ErrorIs(t, storage.SetBaseAt(0, 24), trie.ErrStorageShared)
	assert.ErrorIs(t, clone.SetCheckAt(1, 1), trie.ErrStorageShared)
	assert.ErrorIs(t, clone.AddValueAt(0, "fuga"), trie.ErrStorageShared)

	// No silent copy-on-write happened.
	base, err = storage.BaseAt(0)
	require.NoError(t, err)
	assert.Equal(t, int32(42), base)

	// Releasing the clone restores exclusive access.
	clone.Release()
	require.NoError(t, storage.SetBaseAt(0, 24))
	base, err = storage.BaseAt(0)
	require.NoError(t, err)
	assert.Equal(t, int32(24), base)
}

func TestSharedStorageFromReader(t *testing.T) {
	storage, err := trie.NewSharedStorageFromReader(
		bytes.NewReader(serializedFixture()), stringValueDeserializer())
	require.NoError(t, err)

	assert.Equal(t, 2, storage.BaseCheckSize())
	assert.Equal(t, 5, storage.ValueCount())
	value, err := storage.ValueAt(4)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, "hoge", *value)

	var buffer bytes.Buffer
	require.NoError(t, storage.Serialize(&buffer, stringValueSerializer()))
	assert.Equal(t, serializedFixture(), buffer.Bytes())
}
