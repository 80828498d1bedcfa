package omnic

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-spectro/omnic/internal/binary"
)

// source is one opened byte source with its resolved format. It is owned
// by a single decode call and closed on every exit path.
type source struct {
	reader *binary.Reader
	closer io.Closer // nil for in-memory sources
	name   string    // display name, may be empty for raw bytes
	format Format
}

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// resolvePath opens a filesystem path and resolves its format from the
// extension, falling back to the option hint when the path has none.
func resolvePath(p string, o *options) (*source, error) {
	ext := filepath.Ext(p)
	if ext == "" && o.suffix == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingFormat, p)
	}

	if _, err := os.Stat(p); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}

	if ext == "" {
		ext = o.suffix
	}
	format, err := ParseFormat(ext)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", p, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", p, err)
	}

	return &source{
		reader: binary.NewReader(f, st.Size()),
		closer: f,
		name:   filepath.Base(p),
		format: format,
	}, nil
}

// resolveBytes wraps an in-memory buffer. An explicit option hint wins;
// the name's extension is the fallback.
func resolveBytes(name string, data []byte, o *options) (*source, error) {
	ext := o.suffix
	if ext == "" && name != "" {
		ext = path.Ext(name)
	}
	if ext == "" {
		return nil, fmt.Errorf("%w: bytes content requires a suffix or protocol option", ErrMissingFormat)
	}
	format, err := ParseFormat(ext)
	if err != nil {
		return nil, err
	}

	return &source{
		reader: binary.NewReader(bytes.NewReader(data), int64(len(data))),
		name:   name,
		format: format,
	}, nil
}

// resolveURL fetches remote content and resolves the format from the URL
// path's extension, with the option hint overriding an unrecognized one.
func resolveURL(rawURL string, o *options) (*source, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	name := path.Base(u.Path)

	ext := path.Ext(u.Path)
	if _, perr := ParseFormat(ext); perr != nil && o.suffix != "" {
		ext = o.suffix
	}
	if ext == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingFormat, rawURL)
	}
	format, err := ParseFormat(ext)
	if err != nil {
		return nil, err
	}

	data, err := fetch(rawURL)
	if err != nil {
		return nil, err
	}

	return &source{
		reader: binary.NewReader(bytes.NewReader(data), int64(len(data))),
		name:   name,
		format: format,
	}, nil
}

// stem returns name without its extension.
func stem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
