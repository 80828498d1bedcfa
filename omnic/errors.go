// Package omnic provides a pure Go reader for Thermo Nicolet OMNIC
// spectroscopy files (.spa, .spg, .srs) and the compatible Surface Optics
// Corp. variants (.ddr, .hdr, .sdr).
package omnic

import "errors"

// Common errors
var (
	ErrNotFound            = errors.New("file not found")
	ErrMissingFormat       = errors.New("no file suffix and no format hint provided")
	ErrUnsupportedFormat   = errors.New("unsupported file format")
	ErrMalformedRecord     = errors.New("malformed record")
	ErrInconsistentDataset = errors.New("inconsistent data set")
	ErrFetch               = errors.New("remote fetch failed")
)
