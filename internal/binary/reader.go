// Package binary provides low-level binary I/O operations for OMNIC file parsing.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrTruncated is returned when fewer bytes are available than requested.
var ErrTruncated = errors.New("truncated read")

// OMNIC files are little-endian throughout.
var order = binary.LittleEndian

// Reader provides positioned reads against a seekable byte source.
// Every read takes an absolute file offset; no cursor state is kept
// between calls.
type Reader struct {
	r    io.ReaderAt
	size int64
}

// NewReader creates a binary reader over r with the given total size.
func NewReader(r io.ReaderAt, size int64) *Reader {
	return &Reader{r: r, size: size}
}

// Size returns the total size of the underlying source in bytes.
func (r *Reader) Size() int64 {
	return r.size
}

// Bytes reads exactly n bytes starting at offset.
func (r *Reader) Bytes(offset int64, n int) ([]byte, error) {
	if n < 0 || offset < 0 || offset+int64(n) > r.size {
		return nil, fmt.Errorf("%w: %d bytes at offset %d (size %d)", ErrTruncated, n, offset, r.size)
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := r.r.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("%w: %d bytes at offset %d: %v", ErrTruncated, n, offset, err)
	}
	return buf, nil
}

// Uint8 reads an unsigned 8-bit integer at offset.
func (r *Reader) Uint8(offset int64) (uint8, error) {
	buf, err := r.Bytes(offset, 1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Int8 reads a signed 8-bit integer at offset.
func (r *Reader) Int8(offset int64) (int8, error) {
	v, err := r.Uint8(offset)
	return int8(v), err
}

// Uint16 reads an unsigned 16-bit integer at offset.
func (r *Reader) Uint16(offset int64) (uint16, error) {
	buf, err := r.Bytes(offset, 2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(buf), nil
}

// Int16 reads a signed 16-bit integer at offset.
func (r *Reader) Int16(offset int64) (int16, error) {
	v, err := r.Uint16(offset)
	return int16(v), err
}

// Uint32 reads an unsigned 32-bit integer at offset.
func (r *Reader) Uint32(offset int64) (uint32, error) {
	buf, err := r.Bytes(offset, 4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(buf), nil
}

// Float32 reads a 32-bit IEEE float at offset.
func (r *Reader) Float32(offset int64) (float32, error) {
	v, err := r.Uint32(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Float32s reads count consecutive 32-bit floats starting at offset.
func (r *Reader) Float32s(offset int64, count int) ([]float32, error) {
	buf, err := r.Bytes(offset, count*4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, count)
	for i := range out {
		out[i] = math.Float32frombits(order.Uint32(buf[i*4:]))
	}
	return out, nil
}
