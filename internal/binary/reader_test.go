package binary

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func newTestReader(data []byte) *Reader {
	return NewReader(bytes.NewReader(data), int64(len(data)))
}

func TestReaderUint8(t *testing.T) {
	r := newTestReader([]byte{0x42, 0xFF, 0x00})

	v, err := r.Uint8(0)
	if err != nil {
		t.Fatalf("Uint8 failed: %v", err)
	}
	if v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02x", v)
	}

	v, err = r.Uint8(1)
	if err != nil {
		t.Fatalf("Uint8 failed: %v", err)
	}
	if v != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02x", v)
	}
}

func TestReaderInt8(t *testing.T) {
	r := newTestReader([]byte{0xFF})
	v, err := r.Int8(0)
	if err != nil {
		t.Fatalf("Int8 failed: %v", err)
	}
	if v != -1 {
		t.Errorf("expected -1, got %d", v)
	}
}

func TestReaderUint16(t *testing.T) {
	// Little-endian: 0x0102 stored as [0x02, 0x01]
	r := newTestReader([]byte{0x02, 0x01, 0xFF, 0xFF})

	v, err := r.Uint16(0)
	if err != nil {
		t.Fatalf("Uint16 failed: %v", err)
	}
	if v != 0x0102 {
		t.Errorf("expected 0x0102, got 0x%04x", v)
	}

	v, err = r.Uint16(2)
	if err != nil {
		t.Fatalf("Uint16 failed: %v", err)
	}
	if v != 0xFFFF {
		t.Errorf("expected 0xFFFF, got 0x%04x", v)
	}
}

func TestReaderInt16(t *testing.T) {
	r := newTestReader([]byte{0xFE, 0xFF})
	v, err := r.Int16(0)
	if err != nil {
		t.Fatalf("Int16 failed: %v", err)
	}
	if v != -2 {
		t.Errorf("expected -2, got %d", v)
	}
}

func TestReaderUint32(t *testing.T) {
	r := newTestReader([]byte{0x78, 0x56, 0x34, 0x12})
	v, err := r.Uint32(0)
	if err != nil {
		t.Fatalf("Uint32 failed: %v", err)
	}
	if v != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08x", v)
	}
}

func TestReaderFloat32(t *testing.T) {
	data := make([]byte, 8)
	order.PutUint32(data, math.Float32bits(4000.5))
	order.PutUint32(data[4:], math.Float32bits(-1.25))

	r := newTestReader(data)
	v, err := r.Float32(0)
	if err != nil {
		t.Fatalf("Float32 failed: %v", err)
	}
	if v != 4000.5 {
		t.Errorf("expected 4000.5, got %g", v)
	}

	vs, err := r.Float32s(0, 2)
	if err != nil {
		t.Fatalf("Float32s failed: %v", err)
	}
	if len(vs) != 2 || vs[0] != 4000.5 || vs[1] != -1.25 {
		t.Errorf("unexpected values %v", vs)
	}
}

func TestReaderTruncated(t *testing.T) {
	r := newTestReader([]byte{0x01, 0x02})

	if _, err := r.Uint32(0); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
	if _, err := r.Uint8(5); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated past end, got %v", err)
	}
	if _, err := r.Uint16(-1); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated for negative offset, got %v", err)
	}
	if _, err := r.Float32s(0, 10); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated for oversized slice, got %v", err)
	}
}

func TestReaderZeroBytes(t *testing.T) {
	r := newTestReader([]byte{0x01})
	buf, err := r.Bytes(0, 0)
	if err != nil {
		t.Fatalf("Bytes(0, 0) failed: %v", err)
	}
	if buf != nil {
		t.Errorf("expected nil for zero-length read, got %v", buf)
	}
}
