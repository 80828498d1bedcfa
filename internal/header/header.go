// Package header handles parsing of OMNIC spectral and series headers.
//
// A header is a fixed-layout record describing one spectrum's (or one
// series') axis and acquisition metadata. All field positions are fixed
// byte deltas from the header base offset; there is no self-describing
// schema in the format.
package header

import (
	"strings"

	"github.com/go-spectro/omnic/internal/binary"
)

// Field offsets relative to the header base.
const (
	offNX               = 4
	offXKind            = 8
	offDataKind         = 12
	offFirstX           = 16
	offLastX            = 20
	offScanPoints       = 28
	offZPD              = 32
	offNScan            = 36
	offNBkgScan         = 52
	offCollectionLength = 68
	offRefFrequency     = 80
	offOpticalVelocity  = 188
	offHistory          = 208

	// Series-only fields.
	offSeriesName       = 938
	offSeriesCollection = 1002
	offLastY            = 1006
	offFirstY           = 1010
	offNY               = 1026
	offSeriesHistory    = 1200
)

// backgroundMarker prefixes the text field of a series background header.
const backgroundMarker = "Background"

// Info holds the decoded fields of one header record.
type Info struct {
	NX       uint32
	XUnits   string // empty when the axis is unitless (datapoints)
	XTitle   string
	Units    string
	Title    string
	FirstX   float64
	LastX    float64
	ScanPts  uint32
	ZPD      uint32
	NScan    uint32
	NBkgScan uint32

	// CollectionLength is in centiseconds for spectrum headers and in
	// seconds for series headers (stored as minutes in the file).
	CollectionLength float64

	ReferenceFrequency float64
	OpticalVelocity    float64
	History            string

	// UnknownXAxis and UnknownData report lookup misses so the caller
	// can log them once per batch.
	UnknownXAxis   bool
	UnknownData    bool
	UnknownDataKey uint8

	// Series-only fields.
	Name           string
	FirstY         float64
	LastY          float64
	NY             uint32
	BackgroundName string
	HasBackground  bool
}

// Decode parses a header record at the given base offset. Series headers
// carry additional fields and use a relocated history block.
func Decode(r *binary.Reader, base int64, series bool) (*Info, error) {
	info := &Info{}

	nx, err := r.Uint32(base + offNX)
	if err != nil {
		return nil, err
	}
	info.NX = nx

	xkind, err := r.Uint8(base + offXKind)
	if err != nil {
		return nil, err
	}
	info.XUnits, info.XTitle, info.UnknownXAxis = xAxisKind(xkind)

	dkind, err := r.Uint8(base + offDataKind)
	if err != nil {
		return nil, err
	}
	info.Units, info.Title, info.UnknownData = dataKind(dkind)
	info.UnknownDataKey = dkind

	firstx, err := r.Float32(base + offFirstX)
	if err != nil {
		return nil, err
	}
	lastx, err := r.Float32(base + offLastX)
	if err != nil {
		return nil, err
	}
	info.FirstX = float64(firstx)
	info.LastX = float64(lastx)

	if info.ScanPts, err = r.Uint32(base + offScanPoints); err != nil {
		return nil, err
	}
	if info.ZPD, err = r.Uint32(base + offZPD); err != nil {
		return nil, err
	}
	if info.NScan, err = r.Uint32(base + offNScan); err != nil {
		return nil, err
	}
	if info.NBkgScan, err = r.Uint32(base + offNBkgScan); err != nil {
		return nil, err
	}

	clen, err := r.Uint32(base + offCollectionLength)
	if err != nil {
		return nil, err
	}
	info.CollectionLength = float64(clen)

	reffreq, err := r.Float32(base + offRefFrequency)
	if err != nil {
		return nil, err
	}
	info.ReferenceFrequency = float64(reffreq)

	optvel, err := r.Float32(base + offOpticalVelocity)
	if err != nil {
		return nil, err
	}
	info.OpticalVelocity = float64(optvel)

	if !series {
		if info.History, err = r.TermText(base + offHistory); err != nil {
			return nil, err
		}
		return info, nil
	}

	return decodeSeries(r, base, info)
}

// decodeSeries parses the series-specific tail of a header.
func decodeSeries(r *binary.Reader, base int64, info *Info) (*Info, error) {
	// Interferogram series collected in rapid-scan mode store the axis
	// bounds reversed.
	if info.NBkgScan == 0 && info.FirstX > info.LastX {
		info.FirstX, info.LastX = info.LastX, info.FirstX
	}

	name, err := r.FixedText(base+offSeriesName, 256)
	if err != nil {
		return nil, err
	}
	// The name field is NUL-separated garbage after the first line.
	info.Name, _, _ = strings.Cut(name, "\n")

	clen, err := r.Float32(base + offSeriesCollection)
	if err != nil {
		return nil, err
	}
	info.CollectionLength = float64(clen) * 60 // minutes to seconds

	lasty, err := r.Float32(base + offLastY)
	if err != nil {
		return nil, err
	}
	firsty, err := r.Float32(base + offFirstY)
	if err != nil {
		return nil, err
	}
	info.LastY = float64(lasty)
	info.FirstY = float64(firsty)

	if info.NY, err = r.Uint32(base + offNY); err != nil {
		return nil, err
	}
	if info.History, err = r.TermText(base + offSeriesHistory); err != nil {
		return nil, err
	}

	// A background header announces itself in the text field at +208.
	text, err := r.FixedText(base+offHistory, 256)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(text, backgroundMarker) {
		info.HasBackground = true
		info.BackgroundName = text[len(backgroundMarker):]
	}

	return info, nil
}

// xAxisKind maps the axis-kind byte to (units, title). The unknown flag
// is set for keys outside the known table.
func xAxisKind(key uint8) (units, title string, unknown bool) {
	switch key {
	case 1:
		return "cm^-1", "wavenumbers", false
	case 2:
		return "", "data points", false
	case 3:
		return "nm", "wavelengths", false
	case 4:
		return "um", "wavelengths", false
	case 32:
		return "cm^-1", "raman shift", false
	default:
		return "", "xaxis", true
	}
}

// dataKind maps the data-kind byte to (units, title).
func dataKind(key uint8) (units, title string, unknown bool) {
	switch key {
	case 11:
		return "percent", "reflectance", false
	case 12:
		return "", "log(1/R)", false
	case 15:
		return "", "single beam", false
	case 16:
		return "percent", "transmittance", false
	case 17:
		return "absorbance", "absorbance", false
	case 20:
		return "Kubelka_Munk", "Kubelka-Munk", false
	case 21:
		return "", "reflectance", false
	case 22:
		return "V", "detector signal", false
	case 26:
		return "", "photoacoustic", false
	case 31:
		return "", "Raman intensity", false
	default:
		return "", "intensity", true
	}
}
