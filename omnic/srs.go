package omnic

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/go-spectro/omnic/internal/binary"
	"github.com/go-spectro/omnic/internal/block"
	"github.com/go-spectro/omnic/internal/header"
)

// Rapid-scan series carry a marker byte distinguishing pristine files
// from ones reprocessed in OMNIC.
const (
	reprocessOffset  = 292
	markerPristine   = 39
	markerReprocess  = 15
	bgDataOffset     = 208 // background intensities relative to its header
	seriesNameLength = 84
	seriesRowGap     = 16
)

// Reprocessed rapid-scan files relocate their history text to just after
// this marker; high-speed files use their own.
var (
	reprocessHistoryMark = bytes.Repeat([]byte{0xFF}, 16)
	highSpeedHistoryMark = []byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF}
)

// decodeSRS decodes a kinetic series file, or its background record when
// requested. The sub-variant (rapid-scan, high-speed, TGA/GC) is located
// by signature search rather than by block table.
func decodeSRS(src *source, o *options) (*Dataset, error) {
	r := src.reader

	content, err := r.Bytes(0, int(r.Size()))
	if err != nil {
		return nil, wrapRecord(err, "reading file content")
	}

	variant, offsets, err := block.FindSeries(content)
	switch {
	case errors.Is(err, block.ErrNoSignature):
		return nil, fmt.Errorf("%w: not a Rapid Scan, High Speed Real Time, GC or TGA srs file", ErrUnsupportedFormat)
	case errors.Is(err, block.ErrOccurrenceCount):
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	case err != nil:
		return nil, err
	}

	reprocessed := false
	if variant == block.RapidScan {
		key, err := r.Uint8(reprocessOffset)
		if err != nil {
			return nil, wrapRecord(err, "reading reprocess marker")
		}
		switch key {
		case markerPristine:
		case markerReprocess:
			reprocessed = true
		default:
			return nil, fmt.Errorf("%w: unrecognized rapid-scan marker %d", ErrMalformedRecord, key)
		}
	}

	if o.background {
		return decodeSRSBackground(src, offsets)
	}

	info, err := header.Decode(r, offsets.SeriesHeader, true)
	if err != nil {
		return nil, wrapRecord(err, "decoding series header")
	}
	logUnknownKinds(info, true)

	names, data, err := readSeriesRows(r, offsets.Data, int(info.NY), int(info.NX))
	if err != nil {
		return nil, wrapRecord(err, "reading series rows")
	}

	history := seriesHistory(r, content, variant, info, reprocessed)

	if o.reverseX {
		for _, row := range data {
			reverse(row)
		}
	}

	y := linspace(info.FirstY, info.LastY, int(info.NY))
	for i, v := range y {
		y[i] = math.Round(v*1000) / 1000
	}

	ds := &Dataset{
		Data:       data,
		Units:      info.Units,
		Title:      info.Title,
		X:          linspace(info.FirstX, info.LastX, int(info.NX)),
		XTitle:     info.XTitle,
		XUnits:     info.XUnits,
		Y:          y,
		YTimestamp: minFloat(y),
		YTitle:     "Time",
		YUnits:     "minute",
		YLabels:    names,
		Origin:     "omnic",
		Name:       info.Name,
	}
	fillSeriesCommon(ds, src, info)

	if history != "" {
		ds.AppendHistory("Omnic 'DATA PROCESSING HISTORY' :\n--------------------------------\n" + history)
	}
	ds.finalize(fmt.Sprintf("imported from srs file %s", ds.Filename))
	return ds, nil
}

// decodeSRSBackground extracts the background record of a series. Short
// headers point at a plain float block; long headers announce an
// interferogram-shaped record this reader cannot decode yet.
func decodeSRSBackground(src *source, offsets block.SeriesOffsets) (*Dataset, error) {
	r := src.reader

	info, err := header.Decode(r, offsets.BackgroundHeader, true)
	if err != nil {
		return nil, wrapRecord(err, "decoding background header")
	}

	if info.HasBackground {
		// Long header: the header describes a spectrum but the data are
		// an interferogram. Not decodable until more samples exist.
		logger.Info("series background is an interferogram record, decode returns nil",
			"name", info.BackgroundName)
		return nil, nil
	}

	row, err := r.Float32s(offsets.BackgroundHeader+bgDataOffset, int(info.NX))
	if err != nil {
		return nil, wrapRecord(err, "reading background intensities")
	}

	ds := &Dataset{
		Data:       [][]float64{toFloat64(row)},
		Units:      info.Units,
		Title:      info.Title,
		X:          linspace(info.FirstX, info.LastX, int(info.NX)),
		XTitle:     info.XTitle,
		XUnits:     info.XUnits,
		Y:          []float64{0},
		YTimestamp: 0,
		Origin:     "omnic",
	}
	fillSeriesCommon(ds, src, info)
	ds.Name = stem(ds.Filename)

	ds.finalize(fmt.Sprintf("imported from srs file %s", ds.Filename))
	return ds, nil
}

// fillSeriesCommon sets the fields shared by series and background output.
func fillSeriesCommon(ds *Dataset, src *source, info *header.Info) {
	ds.Filename = src.name
	if ds.Filename == "" {
		ds.Filename = "unknown"
	}
	if ds.Name == "" {
		ds.Name = stem(ds.Filename)
	}
	ds.LaserFrequency = info.ReferenceFrequency
	ds.LaserFrequencyUnits = "cm^-1"
	ds.CollectionLength = info.CollectionLength
	ds.CollectionLengthUnits = "s"

	// A unitless datapoint axis means the rows are raw interferograms.
	if ds.XUnits == "" && ds.XTitle == "data points" {
		ds.Interferogram = "interferogram"
	}
}

// seriesHistory returns the data-processing history for a series,
// following the variant-specific relocation rules.
func seriesHistory(r *binary.Reader, content []byte, variant block.SeriesVariant, info *header.Info, reprocessed bool) string {
	switch variant {
	case block.RapidScan:
		if !reprocessed {
			return info.History
		}
		// Reprocessing moves the updated history past the 16-byte 0xFF
		// marker.
		pos := bytes.Index(content, reprocessHistoryMark)
		if pos < 0 {
			return info.History
		}
		text, err := r.TermText(int64(pos + len(reprocessHistoryMark)))
		if err != nil {
			return info.History
		}
		return text

	case block.HighSpeed:
		// The in-header history of high-speed files is overwritten by
		// post-processing; the usable text follows its own marker.
		pos := bytes.Index(content, highSpeedHistoryMark)
		if pos < 0 {
			return ""
		}
		text, err := r.TermText(int64(pos + len(highSpeedHistoryMark)))
		if err != nil {
			return ""
		}
		return text

	default:
		// TGA/GC series carry no history.
		return ""
	}
}

// readSeriesRows extracts every named row of a series. Rows repeat as a
// name field followed by the intensity data, with a 16-byte gap between
// consecutive rows.
func readSeriesRows(r *binary.Reader, dataOffset int64, ny, nx int) ([]string, [][]float64, error) {
	names := make([]string, ny)
	data := make([][]float64, ny)

	pos := dataOffset
	for i := 0; i < ny; i++ {
		if i > 0 {
			pos += seriesRowGap
		}
		name, err := r.FixedText(pos, seriesNameLength)
		if err != nil {
			return nil, nil, err
		}
		names[i] = name
		pos += seriesNameLength

		row, err := r.Float32s(pos, nx)
		if err != nil {
			return nil, nil, err
		}
		data[i] = toFloat64(row)
		pos += int64(nx) * 4
	}
	return names, data, nil
}

func reverse(row []float64) {
	for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
		row[i], row[j] = row[j], row[i]
	}
}
