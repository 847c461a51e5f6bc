package trie

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// StringSerializer serializes a string as its UTF-8 bytes unchanged.
type StringSerializer struct{}

// NewStringSerializer creates a string serializer.
func NewStringSerializer() *StringSerializer {
	return &StringSerializer{}
}

// Serialize returns the string's bytes.
func (s *StringSerializer) Serialize(value string) []byte {
	return []byte(value)
}

// StringDeserializer restores a string from its UTF-8 bytes.
type StringDeserializer struct{}

// NewStringDeserializer creates a string deserializer.
func NewStringDeserializer() *StringDeserializer {
	return &StringDeserializer{}
}

// Deserialize returns the bytes as a string, or ErrInvalidUtf8 when they
// are not valid UTF-8.
func (d *StringDeserializer) Deserialize(serialized []byte) (string, error) {
	if !utf8.Valid(serialized) {
		return "", ErrInvalidUtf8
	}
	return string(serialized), nil
}

var utf16BigEndian = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// Utf16StringSerializer serializes a string as big-endian UTF-16, for
// dictionaries whose stored form must interoperate with UTF-16 consumers.
type Utf16StringSerializer struct{}

// NewUtf16StringSerializer creates a UTF-16 string serializer.
func NewUtf16StringSerializer() *Utf16StringSerializer {
	return &Utf16StringSerializer{}
}

// Serialize returns the big-endian UTF-16 encoding of value.
func (s *Utf16StringSerializer) Serialize(value string) []byte {
	encoded, err := utf16BigEndian.NewEncoder().Bytes([]byte(value))
	if err != nil {
		// The encoder replaces unmappable runes rather than failing.
		return nil
	}
	return encoded
}

// Utf16StringDeserializer restores a string from big-endian UTF-16 bytes.
type Utf16StringDeserializer struct{}

// NewUtf16StringDeserializer creates a UTF-16 string deserializer.
func NewUtf16StringDeserializer() *Utf16StringDeserializer {
	return &Utf16StringDeserializer{}
}

// Deserialize decodes big-endian UTF-16 bytes. It fails with
// ErrInvalidSerializedContent on an odd length or undecodable content.
func (d *Utf16StringDeserializer) Deserialize(serialized []byte) (string, error) {
	if len(serialized)%2 != 0 {
		return "", ErrInvalidSerializedContent
	}
	decoded, err := utf16BigEndian.NewDecoder().Bytes(serialized)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSerializedContent, err)
	}
	return string(decoded), nil
}
