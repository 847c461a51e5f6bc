package trie

import "errors"

var (
	// ErrInvalidDensityFactor indicates a zero density factor was passed to
	// the double array builder.
	ErrInvalidDensityFactor = errors.New("trie: invalid density factor")

	// ErrInvalidSerializedBytes indicates a serialized double array stream
	// was truncated or structurally malformed.
	ErrInvalidSerializedBytes = errors.New("trie: invalid serialized bytes")

	// ErrInvalidSerializedLength indicates a serialized integer had a length
	// outside the accepted range for its width.
	ErrInvalidSerializedLength = errors.New("trie: invalid serialized length")

	// ErrInvalidSerializedContent indicates a serialized integer contained
	// an impossible escape sequence, or a serialized UTF-16 string could not
	// be decoded.
	ErrInvalidSerializedContent = errors.New("trie: invalid serialized content")

	// ErrInvalidUtf8 indicates a serialized string was not valid UTF-8.
	ErrInvalidUtf8 = errors.New("trie: invalid UTF-8 sequence")

	// ErrOutOfMmap indicates an access beyond the mapped file region.
	ErrOutOfMmap = errors.New("trie: access out of the mmap region")

	// ErrStorageShared indicates a mutation was attempted on a shared
	// storage while more than one holder exists.
	ErrStorageShared = errors.New("trie: storage is shared")

	// ErrStorageReadOnly indicates a mutation was attempted on a read-only
	// storage variant.
	ErrStorageReadOnly = errors.New("trie: storage is read-only")
)
