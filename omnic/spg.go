package omnic

import (
	"fmt"
	"time"

	"github.com/go-spectro/omnic/internal/binary"
	"github.com/go-spectro/omnic/internal/block"
	"github.com/go-spectro/omnic/internal/header"
)

// nameOffset is where the original file name is stored in spa/spg files,
// a 256-byte text field. It is the name the file was first saved under
// and survives renaming in the OS.
const (
	nameOffset = 30
	nameLength = 256
)

// decodeSPG decodes a spectrum collection: every header in the block
// table is read and checked for consistency, then the matrix is filled
// row by row from the intensity blocks.
func decodeSPG(src *source, o *options) (*Dataset, error) {
	r := src.reader

	groupName, err := r.FixedText(nameOffset, nameLength)
	if err != nil {
		return nil, wrapRecord(err, "reading group name")
	}

	entries, err := block.ScanTable(r)
	if err != nil {
		return nil, wrapRecord(err, "scanning block table")
	}

	headerEntries := block.Select(entries, block.KeyHeader)
	if len(headerEntries) == 0 {
		return nil, fmt.Errorf("%w: no information markers found", ErrMalformedRecord)
	}
	nspec := len(headerEntries)

	infos := make([]*header.Info, nspec)
	for i, e := range headerEntries {
		pos, err := e.Pointer(r)
		if err != nil {
			return nil, wrapRecord(err, "reading header position")
		}
		info, err := header.Decode(r, pos, false)
		if err != nil {
			return nil, wrapRecord(err, fmt.Sprintf("decoding header %d", i))
		}
		logUnknownKinds(info, i == 0)
		infos[i] = info
	}

	if err := checkConsistency(infos); err != nil {
		return nil, err
	}
	first := infos[0]
	nx := int(first.NX)

	intensityEntries := block.Select(entries, block.KeyIntensity)
	if len(intensityEntries) < nspec {
		return nil, fmt.Errorf("%w: %d intensity blocks for %d spectra",
			ErrMalformedRecord, len(intensityEntries), nspec)
	}

	data := make([][]float64, nspec)
	for i := 0; i < nspec; i++ {
		row, err := readIntensities(r, intensityEntries[i])
		if err != nil {
			return nil, wrapRecord(err, fmt.Sprintf("reading intensities %d", i))
		}
		if len(row) != nx {
			return nil, fmt.Errorf("%w: spectrum %d has %d intensities, header says %d",
				ErrMalformedRecord, i, len(row), nx)
		}
		data[i] = row
	}

	// Title blocks give each spectrum's saved name and acquisition date.
	titleEntries := block.Select(entries, block.KeyTitle)
	if len(titleEntries) < nspec {
		return nil, fmt.Errorf("%w: %d title blocks for %d spectra",
			ErrMalformedRecord, len(titleEntries), nspec)
	}

	names := make([]string, nspec)
	dates := make([]time.Time, nspec)
	timestamps := make([]float64, nspec)
	for i := 0; i < nspec; i++ {
		pos, err := titleEntries[i].Pointer(r)
		if err != nil {
			return nil, wrapRecord(err, "reading title position")
		}
		if names[i], err = r.FixedText(pos, nameLength); err != nil {
			return nil, wrapRecord(err, "reading spectrum title")
		}
		secs, err := r.Uint32(pos + nameLength)
		if err != nil {
			return nil, wrapRecord(err, "reading acquisition date")
		}
		dates[i] = omnicEpoch.Add(time.Duration(secs) * time.Second)
		timestamps[i] = float64(dates[i].Unix())
	}

	ds := &Dataset{
		Data:         data,
		Units:        first.Units,
		Title:        first.Title,
		X:            linspace(first.FirstX, first.LastX, nx),
		XTitle:       first.XTitle,
		XUnits:       first.XUnits,
		Y:            timestamps,
		YTimestamp:   minFloat(timestamps),
		YTitle:       "acquisition timestamp (GMT)",
		YUnits:       "s",
		YLabels:      names,
		YDates:       dates,
		Origin:       "omnic",
		OriginalName: groupName,
	}

	ds.Filename = src.name
	if ds.Filename == "" {
		ds.Filename = groupName
	}
	ds.Name = stem(ds.Filename)

	ds.finalize(fmt.Sprintf("imported from spg file %s", ds.Filename))
	return ds, nil
}

// checkConsistency verifies all spectra of a collection share one axis
// and one data unit.
func checkConsistency(infos []*header.Info) error {
	first := infos[0]
	for _, info := range infos[1:] {
		switch {
		case info.NX != first.NX:
			return fmt.Errorf("%w: number of points per spectrum should be identical", ErrInconsistentDataset)
		case info.FirstX != first.FirstX:
			return fmt.Errorf("%w: the x axis should start at same value", ErrInconsistentDataset)
		case info.LastX != first.LastX:
			return fmt.Errorf("%w: the x axis should end at same value", ErrInconsistentDataset)
		case info.XUnits != first.XUnits:
			return fmt.Errorf("%w: x axis units should be identical", ErrInconsistentDataset)
		case info.Units != first.Units:
			return fmt.Errorf("%w: data units should be identical", ErrInconsistentDataset)
		}
	}
	return nil
}

// readIntensities follows an intensity block entry to its float data.
// The entry holds the absolute position and the byte length of the block.
func readIntensities(r *binary.Reader, e block.Entry) ([]float64, error) {
	pos, err := e.Pointer(r)
	if err != nil {
		return nil, err
	}
	size, err := e.Length(r)
	if err != nil {
		return nil, err
	}
	row, err := r.Float32s(pos, int(size/4))
	if err != nil {
		return nil, err
	}
	return toFloat64(row), nil
}

// logUnknownKinds reports unrecognized axis or data kind bytes. The data
// kind message is suppressed past the first header of a batch.
func logUnknownKinds(info *header.Info, first bool) {
	if info.UnknownXAxis {
		logger.Info("the nature of x data is not recognized, xtitle is set to 'xaxis'")
	}
	if info.UnknownData && first {
		logger.Info("the nature of data is not recognized, title set to 'intensity'",
			"key", info.UnknownDataKey)
	}
}

func minFloat(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
