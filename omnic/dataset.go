package omnic

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
)

// omnicEpoch is the zero point of OMNIC acquisition timestamps, stored in
// files as seconds since 1899-12-31 00:00 UTC.
var omnicEpoch = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)

// Dataset is the decoded result of one file: a 2-D intensity matrix with
// row and column axes plus acquisition metadata. Rows are spectra or time
// points, columns are axis samples.
type Dataset struct {
	// Data holds the intensity matrix. Mask marks not-a-number positions.
	Data [][]float64
	Mask [][]bool

	// Data kind.
	Units string
	Title string

	// Column axis.
	X      []float64
	XTitle string
	XUnits string

	// Row axis. YLabels carries per-row names; YDates per-row acquisition
	// dates where the format records them.
	Y          []float64
	YTimestamp float64
	YTitle     string
	YUnits     string
	YLabels    []string
	YDates     []time.Time

	// Identity and free-text metadata.
	Name         string
	Filename     string
	Origin       string
	OriginalName string
	Description  string

	// Acquisition parameters.
	CollectionLength      float64
	CollectionLengthUnits string
	OpticalVelocity       float64
	LaserFrequency        float64
	LaserFrequencyUnits   string

	// Interferogram is empty for processed spectra, "sample IFG" or
	// "background IFG" for extracted interferograms, and "interferogram"
	// for series holding raw detector data.
	Interferogram string

	// Date is the UTC decode time, second precision.
	Date time.Time

	history []historyEntry
}

type historyEntry struct {
	at   time.Time
	text string
}

// String returns a short summary of the dataset.
func (d *Dataset) String() string {
	rows, cols := d.Shape()
	return fmt.Sprintf("%s (%d, %d)", d.Filename, rows, cols)
}

// Shape returns the matrix dimensions as (rows, columns).
func (d *Dataset) Shape() (rows, cols int) {
	rows = len(d.Data)
	if rows > 0 {
		cols = len(d.Data[0])
	}
	return rows, cols
}

// AppendHistory adds a timestamped provenance entry.
func (d *Dataset) AppendHistory(text string) {
	d.history = append(d.history, historyEntry{at: utcNow(), text: text})
}

// ReplaceHistory discards the log and appends only the first element of
// entries, timestamped now. Keeping just the first element mirrors the
// original reader; an empty slice clears the log.
func (d *Dataset) ReplaceHistory(entries []string) {
	d.history = nil
	if len(entries) == 0 {
		return
	}
	d.AppendHistory(entries[0])
}

// History renders the log, one entry per line, as
// "<timestamp>> <Capitalized text>".
func (d *Dataset) History() []string {
	out := make([]string, len(d.history))
	for i, e := range d.history {
		out[i] = fmt.Sprintf("%s> %s",
			e.at.Format("2006-01-02 15:04:05-07:00"), capitalize(e.text))
	}
	return out
}

// finalize fills the derived fields common to all decoders.
func (d *Dataset) finalize(provenance string) {
	d.Mask = nanMask(d.Data)
	d.Date = utcNow()
	d.AppendHistory(provenance)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// linspace returns n evenly spaced values from first to last inclusive.
func linspace(first, last float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = first
		return out
	}
	step := (last - first) / float64(n-1)
	for i := range out {
		out[i] = first + float64(i)*step
	}
	return out
}

// nanMask marks the not-a-number positions of data.
func nanMask(data [][]float64) [][]bool {
	mask := make([][]bool, len(data))
	for i, row := range data {
		mask[i] = make([]bool, len(row))
		for j, v := range row {
			mask[i][j] = math.IsNaN(v)
		}
	}
	return mask
}

// toFloat64 widens a row of file floats to the matrix element type.
func toFloat64(row []float32) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = float64(v)
	}
	return out
}
