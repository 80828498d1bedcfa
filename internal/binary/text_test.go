package binary

import (
	"bytes"
	"testing"
)

func TestFixedTextCollapsesNULRuns(t *testing.T) {
	raw := []byte("\x00first line\x00\x00\x00second line\x00\x00")
	r := newTestReader(raw)

	text, err := r.FixedText(0, len(raw))
	if err != nil {
		t.Fatalf("FixedText failed: %v", err)
	}
	if text != "first line\nsecond line" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestFixedTextLatin1Fallback(t *testing.T) {
	// "réflectance" in Latin-1: 0xE9 is not valid UTF-8 on its own.
	raw := []byte{'r', 0xE9, 'f', 'l', 'e', 'c', 't', 'a', 'n', 'c', 'e'}
	r := newTestReader(raw)

	text, err := r.FixedText(0, len(raw))
	if err != nil {
		t.Fatalf("FixedText failed: %v", err)
	}
	if text != "réflectance" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestTermText(t *testing.T) {
	raw := append([]byte("collected on test bench"), 0x00, 'x', 'y')
	r := newTestReader(raw)

	text, err := r.TermText(0)
	if err != nil {
		t.Fatalf("TermText failed: %v", err)
	}
	if text != "collected on test bench" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestTermTextLong(t *testing.T) {
	// The terminator sits past the first read chunk.
	raw := append(bytes.Repeat([]byte{'a'}, 700), 0x00)
	r := newTestReader(raw)

	text, err := r.TermText(0)
	if err != nil {
		t.Fatalf("TermText failed: %v", err)
	}
	if len(text) != 700 {
		t.Errorf("expected 700 characters, got %d", len(text))
	}
}

func TestTermTextUnterminated(t *testing.T) {
	raw := []byte("runs to the end")
	r := newTestReader(raw)

	text, err := r.TermText(0)
	if err != nil {
		t.Fatalf("TermText failed: %v", err)
	}
	if text != "runs to the end" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestLatin1Text(t *testing.T) {
	raw := []byte{'c', 'a', 'f', 0xE9, ' ', 0x00, 'x'}
	r := newTestReader(raw)

	text, err := r.Latin1Text(0, 5)
	if err != nil {
		t.Fatalf("Latin1Text failed: %v", err)
	}
	if text != "café " {
		t.Errorf("unexpected text %q", text)
	}
}
