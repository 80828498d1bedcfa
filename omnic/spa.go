package omnic

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-spectro/omnic/internal/block"
	"github.com/go-spectro/omnic/internal/header"
)

// acquisition date position in spa files, seconds since the OMNIC epoch.
const spaDateOffset = 296

// decodeSPA decodes a single spectrum file, or one of its interferograms
// when requested. The Surface Optics variants (ddr, hdr, sdr) share this
// layout and differ only in the provenance label.
func decodeSPA(src *source, o *options) (*Dataset, error) {
	r := src.reader

	spaName, err := r.FixedText(nameOffset, nameLength)
	if err != nil {
		return nil, wrapRecord(err, "reading spectrum name")
	}

	secs, err := r.Uint32(spaDateOffset)
	if err != nil {
		return nil, wrapRecord(err, "reading acquisition date")
	}
	acqDate := omnicEpoch.Add(time.Duration(secs) * time.Second)

	entries, err := block.ScanUntilEnd(r)
	if err != nil {
		return nil, wrapRecord(err, "scanning block table")
	}

	var (
		info        *header.Info
		intensities []float64
		haveIFG     bool
		comments    []string
		historyText string
		haveHistory bool
	)

	for _, e := range entries {
		switch e.Key {
		case block.KeyHeader:
			pos, err := e.Pointer(r)
			if err != nil {
				return nil, wrapRecord(err, "reading header position")
			}
			if info, err = header.Decode(r, pos, false); err != nil {
				return nil, wrapRecord(err, "decoding header")
			}
			logUnknownKinds(info, true)

		case block.KeyIntensity:
			if o.interferogram != "" {
				continue
			}
			if intensities, err = readIntensities(r, e); err != nil {
				return nil, wrapRecord(err, "reading intensities")
			}

		case block.KeyUserText:
			pos, err := e.Pointer(r)
			if err != nil {
				return nil, wrapRecord(err, "reading comment position")
			}
			size, err := e.Length(r)
			if err != nil {
				return nil, wrapRecord(err, "reading comment length")
			}
			comment, err := r.Latin1Text(pos, int(size))
			if err != nil {
				return nil, wrapRecord(err, "reading comment")
			}
			comments = append(comments, comment)

		case block.KeyHistory:
			pos, err := e.Pointer(r)
			if err != nil {
				return nil, wrapRecord(err, "reading history position")
			}
			size, err := e.Length(r)
			if err != nil {
				return nil, wrapRecord(err, "reading history length")
			}
			if historyText, err = r.FixedText(pos, int(size)); err != nil {
				return nil, wrapRecord(err, "reading history")
			}
			haveHistory = true

		case block.KeySampleIFG:
			if o.interferogram != SampleIFG {
				continue
			}
			if intensities, err = readIntensities(r, e); err != nil {
				return nil, wrapRecord(err, "reading sample interferogram")
			}
			haveIFG = true

		case block.KeyBackgroundIFG:
			if o.interferogram != BackgroundIFG {
				continue
			}
			if intensities, err = readIntensities(r, e); err != nil {
				return nil, wrapRecord(err, "reading background interferogram")
			}
			haveIFG = true
		}
	}

	if o.interferogram != "" && !haveIFG {
		logger.Info("no interferogram found, decode returns nil", "kind", o.interferogram)
		return nil, nil
	}
	if info == nil {
		return nil, fmt.Errorf("%w: no header block found", ErrMalformedRecord)
	}

	ds := &Dataset{
		Data:         [][]float64{intensities},
		Y:            []float64{float64(acqDate.Unix())},
		YTimestamp:   float64(acqDate.Unix()),
		YUnits:       "s",
		YLabels:      []string{spaName},
		YDates:       []time.Time{acqDate},
		Origin:       "omnic",
		OriginalName: spaName,
	}

	if o.interferogram == BackgroundIFG {
		// The background acquisition date is not recorded; the sample's
		// is the closest available.
		ds.YTitle = "sample acquisition timestamp (GMT)"
	} else {
		ds.YTitle = "acquisition timestamp (GMT)"
	}

	if o.interferogram == "" {
		nx := int(info.NX)
		if len(intensities) != nx {
			return nil, fmt.Errorf("%w: %d intensities, header says %d",
				ErrMalformedRecord, len(intensities), nx)
		}
		ds.Units = info.Units
		ds.Title = info.Title
		ds.X = linspace(info.FirstX, info.LastX, nx)
		ds.XTitle = info.XTitle
		ds.XUnits = info.XUnits
	} else {
		ds.Interferogram = o.interferogram + " IFG"
		ds.Units = "V"
		ds.Title = "detector signal"
		ds.X = linspace(0, float64(len(intensities)-1), len(intensities))
		ds.XTitle = "data points"
		ds.XUnits = ""
	}

	ds.Filename = src.name
	if ds.Filename == "" {
		ds.Filename = spaName
	}
	// OMNIC itself displays the embedded name, not the on-disk one.
	ds.Name = spaName

	ds.CollectionLength = info.CollectionLength / 100 // centiseconds to seconds
	ds.CollectionLengthUnits = "s"
	ds.OpticalVelocity = info.OpticalVelocity
	ds.LaserFrequency = info.ReferenceFrequency
	ds.LaserFrequencyUnits = "cm^-1"

	if len(comments) > 1 {
		var b strings.Builder
		b.WriteString(ds.Description)
		b.WriteString("# Comments from Omnic:\n")
		for _, c := range comments {
			b.WriteString(c)
			b.WriteString("\n---------------------\n")
		}
		ds.Description = b.String()
	}

	// A history block overrides the default provenance whenever it is
	// present, even when its text is blank.
	provenance := fmt.Sprintf("imported from %s file(s)", src.format)
	if haveHistory {
		provenance = "Data processing history from Omnic :\n------------------------------------\n" + historyText
	}
	ds.finalize(provenance)
	return ds, nil
}
