package omnic

import (
	"errors"
	"fmt"

	"github.com/go-spectro/omnic/internal/binary"
)

// Open decodes the file at path. The format is taken from the file
// extension (case-insensitive), or from WithSuffix/WithProtocol when the
// path has none.
//
// A nil Dataset with a nil error means the requested sub-record (an
// interferogram or a series background) is absent or not decodable; this
// is an expected outcome, not a failure.
func Open(path string, opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)
	src, err := resolvePath(path, o)
	if err != nil {
		return nil, err
	}
	return decode(src, o)
}

// OpenBytes decodes raw file content. The format must be supplied with
// WithSuffix or WithProtocol.
func OpenBytes(data []byte, opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)
	src, err := resolveBytes("", data, o)
	if err != nil {
		return nil, err
	}
	return decode(src, o)
}

// OpenNamed decodes raw file content carrying a display name. The format
// is taken from the name's extension, falling back to the option hint.
func OpenNamed(name string, data []byte, opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)
	src, err := resolveBytes(name, data, o)
	if err != nil {
		return nil, err
	}
	return decode(src, o)
}

// OpenURL fetches a remote file and decodes it. The fetch blocks for at
// most ten seconds; a timeout or non-2xx status fails with ErrFetch.
func OpenURL(url string, opts ...Option) (*Dataset, error) {
	o := applyOptions(opts)
	src, err := resolveURL(url, o)
	if err != nil {
		return nil, err
	}
	return decode(src, o)
}

// decode dispatches on the resolved format tag. It owns src and closes it
// on every path.
func decode(src *source, o *options) (*Dataset, error) {
	defer src.Close()

	switch src.format {
	case FormatSPG:
		return decodeSPG(src, o)
	case FormatSRS:
		return decodeSRS(src, o)
	default:
		// spa and the Surface Optics variants share one layout.
		return decodeSPA(src, o)
	}
}

// wrapRecord converts low-level truncation errors into ErrMalformedRecord
// with context, leaving already-classified errors untouched.
func wrapRecord(err error, what string) error {
	if errors.Is(err, binary.ErrTruncated) {
		return fmt.Errorf("%w: %s: %v", ErrMalformedRecord, what, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}
