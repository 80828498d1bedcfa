package binary

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// FixedText reads a text field of exactly length bytes at offset and
// cleans it up: runs of NUL bytes become single newline separators, one
// leading and one trailing separator are stripped, and the bytes are
// decoded as UTF-8, falling back to Latin-1 and finally to UTF-8 with
// invalid sequences dropped.
func (r *Reader) FixedText(offset int64, length int) (string, error) {
	buf, err := r.Bytes(offset, length)
	if err != nil {
		return "", err
	}
	return decodeText(buf), nil
}

// TermText reads a NUL-terminated text field starting at offset. The
// terminator is not included. Text running to the end of the source
// without a terminator is returned whole.
func (r *Reader) TermText(offset int64) (string, error) {
	const chunk = 256

	var raw []byte
	for pos := offset; pos < r.size; pos += chunk {
		n := chunk
		if remaining := r.size - pos; remaining < chunk {
			n = int(remaining)
		}
		buf, err := r.Bytes(pos, n)
		if err != nil {
			return "", err
		}
		if i := bytes.IndexByte(buf, 0); i >= 0 {
			raw = append(raw, buf[:i]...)
			return decodeText(raw), nil
		}
		raw = append(raw, buf...)
	}
	return decodeText(raw), nil
}

// Latin1Text reads length bytes at offset and decodes them as Latin-1,
// without separator cleanup. OMNIC user comments are stored this way.
func (r *Reader) Latin1Text(offset int64, length int) (string, error) {
	buf, err := r.Bytes(offset, length)
	if err != nil {
		return "", err
	}
	s, derr := charmap.ISO8859_1.NewDecoder().Bytes(buf)
	if derr != nil {
		return string(buf), nil
	}
	return string(s), nil
}

// decodeText normalizes NUL separators and decodes the byte content.
func decodeText(raw []byte) string {
	var b []byte
	inRun := false
	for _, c := range raw {
		if c == 0 {
			if !inRun {
				b = append(b, '\n')
				inRun = true
			}
			continue
		}
		inRun = false
		b = append(b, c)
	}
	b = bytes.TrimPrefix(b, []byte{'\n'})
	b = bytes.TrimSuffix(b, []byte{'\n'})

	if utf8.Valid(b) {
		return string(b)
	}
	if s, err := charmap.ISO8859_1.NewDecoder().Bytes(b); err == nil {
		return string(s)
	}
	return strings.ToValidUTF8(string(b), "")
}
