// Package block locates data and metadata blocks inside OMNIC containers.
//
// Single-spectrum (.spa) and collection (.spg) files carry a flat table of
// 16-byte entries starting at a fixed offset. Each entry opens with a key
// byte identifying what the entry points at, followed by an absolute
// position field and, for sized blocks, a length field. Series (.srs)
// files have no usable table; they are located by searching the raw file
// content for one of a small set of fixed byte signatures.
package block

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-spectro/omnic/internal/binary"
)

// Keys of interest in the block table. Unknown keys are skipped.
const (
	KeyEnd           = 0 // terminator
	KeyAlt           = 1 // alternate terminator
	KeyHeader        = 2
	KeyIntensity     = 3
	KeyUserText      = 4
	KeyHistory       = 27
	KeySampleIFG     = 102
	KeyBackgroundIFG = 103
	KeyTitle         = 107 // spectrum title, acquisition date at +256
)

// Block table geometry.
const (
	countOffset = 294 // uint16 total entry count (.spg)
	tableStart  = 304
	stride      = 16
)

// Errors reported by the series signature search.
var (
	ErrNoSignature     = errors.New("no recognized series signature")
	ErrOccurrenceCount = errors.New("unexpected series signature occurrence count")
)

// Entry is one 16-byte block-table record.
type Entry struct {
	Key uint8
	Pos int64 // absolute offset of the table entry itself
}

// Pointer reads the absolute position field of the entry.
func (e Entry) Pointer(r *binary.Reader) (int64, error) {
	v, err := r.Uint32(e.Pos + 2)
	return int64(v), err
}

// Length reads the byte-length field of the entry.
func (e Entry) Length(r *binary.Reader) (int64, error) {
	v, err := r.Uint32(e.Pos + 6)
	return int64(v), err
}

// ScanTable reads the full block table of a collection file. The entry
// count is taken from the fixed count field.
func ScanTable(r *binary.Reader) ([]Entry, error) {
	n, err := r.Uint16(countOffset)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, n)
	for i := 0; i < int(n); i++ {
		pos := int64(tableStart + i*stride)
		key, err := r.Uint8(pos)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Pos: pos})
	}
	return entries, nil
}

// ScanUntilEnd walks the block table of a single-spectrum file until a
// terminator key is seen. The terminator entry is not returned.
func ScanUntilEnd(r *binary.Reader) ([]Entry, error) {
	var entries []Entry
	for pos := int64(tableStart); ; pos += stride {
		key, err := r.Uint8(pos)
		if err != nil {
			return nil, err
		}
		if key == KeyEnd || key == KeyAlt {
			return entries, nil
		}
		entries = append(entries, Entry{Key: key, Pos: pos})
	}
}

// Select returns the entries carrying the given key, in table order.
func Select(entries []Entry, key uint8) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Key == key {
			out = append(out, e)
		}
	}
	return out
}

// SeriesVariant identifies the sub-format of a .srs file.
type SeriesVariant int

const (
	RapidScan SeriesVariant = iota
	HighSpeed
	TGA
)

// String returns the variant name used in logs and provenance.
func (v SeriesVariant) String() string {
	switch v {
	case RapidScan:
		return "rapid-scan"
	case HighSpeed:
		return "high-speed"
	case TGA:
		return "TGA/GC"
	default:
		return "unknown"
	}
}

// Series signatures. The TGA/GC prefix also matches the two longer
// signatures, so it must be tried last.
var (
	sigRapidScan = []byte{0x02, 0x00, 0x00, 0x00, 0x18, 0x00, 0x00, 0x00, 0x00, 0x00, 0x48, 0x43, 0x00, 0x50, 0x43, 0x47}
	sigHighSpeed = []byte{0x02, 0x00, 0x00, 0x00, 0x18, 0x00, 0x00, 0x00, 0x00, 0x00, 0x48, 0x43, 0x00, 0xC8, 0xAF, 0x47}
	sigTGA       = []byte{0x02, 0x00, 0x00, 0x00, 0x18, 0x00, 0x00, 0x00, 0x00, 0x00}
)

// SeriesOffsets are the absolute offsets derived from the signature
// match positions.
type SeriesOffsets struct {
	SeriesHeader     int64
	BackgroundHeader int64
	Secondary        int64 // high-speed only; purpose unknown
	Data             int64
}

// FindSeries identifies the series sub-variant of content and derives the
// header and data offsets from the signature match positions. It returns
// ErrNoSignature when no variant matches and ErrOccurrenceCount when the
// matched signature does not occur the expected number of times.
func FindSeries(content []byte) (SeriesVariant, SeriesOffsets, error) {
	for _, c := range []struct {
		variant SeriesVariant
		sig     []byte
	}{
		{RapidScan, sigRapidScan},
		{HighSpeed, sigHighSpeed},
		{TGA, sigTGA},
	} {
		// Matches at offset 0 do not count, as in the original format
		// the signature never legitimately opens the file.
		positions := findAll(content, c.sig)
		if len(positions) == 0 {
			continue
		}
		off, err := seriesOffsets(c.variant, positions)
		if err != nil {
			return c.variant, SeriesOffsets{}, err
		}
		return c.variant, off, nil
	}
	return 0, SeriesOffsets{}, ErrNoSignature
}

// seriesOffsets applies the per-variant fixed deltas to the signature
// match positions.
func seriesOffsets(v SeriesVariant, positions []int64) (SeriesOffsets, error) {
	want := 3
	if v == HighSpeed {
		want = 4
	}
	if len(positions) != want {
		return SeriesOffsets{}, fmt.Errorf("%w: got %d, want %d (%s)",
			ErrOccurrenceCount, len(positions), want, v)
	}

	off := SeriesOffsets{
		SeriesHeader:     positions[0] - 152,
		BackgroundHeader: positions[1] - 152,
	}
	if v == HighSpeed {
		off.Secondary = positions[2]
		off.Data = positions[3] + 60
	} else {
		off.Data = positions[2] + 60
	}
	return off, nil
}

// findAll returns every match position of sig in content, starting the
// search at offset 1.
func findAll(content, sig []byte) []int64 {
	var positions []int64
	pos := int64(1)
	for {
		i := bytes.Index(content[pos:], sig)
		if i < 0 {
			return positions
		}
		pos += int64(i)
		positions = append(positions, pos)
		pos++
	}
}
