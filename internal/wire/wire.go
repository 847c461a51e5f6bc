package wire

import (
	"encoding/binary"
	"io"
)

// Binary encoding utilities for big-endian integers.
//
// The double array storage format is big-endian throughout; this package
// provides the helpers shared by the in-memory codec and the mmap reader.
// encoding/binary.BigEndian is already optimized well by the compiler, so
// these are thin wrappers rather than hand-rolled bit twiddling.

// PutU32 writes a uint32 value to the buffer at the specified offset in big-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}

// U32 reads a uint32 value from the buffer at the specified offset in big-endian format.
func U32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+4])
}

// WriteU32 writes a uint32 value to the writer in big-endian format.
func WriteU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadU32 reads a uint32 value from the reader in big-endian format.
func ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}
