package omnic

import (
	"fmt"
	"strings"
)

// Format identifies one of the supported container formats. The Surface
// Optics variants (ddr, hdr, sdr) share the spa layout and differ only in
// the provenance label.
type Format string

// Supported formats.
const (
	FormatSPA Format = "spa"
	FormatSPG Format = "spg"
	FormatSRS Format = "srs"
	FormatDDR Format = "ddr"
	FormatHDR Format = "hdr"
	FormatSDR Format = "sdr"
)

// Formats lists every supported format tag.
var Formats = []Format{FormatSPA, FormatSPG, FormatSRS, FormatDDR, FormatHDR, FormatSDR}

// ParseFormat resolves a file suffix or protocol name (".SPG", "spg", ...)
// to a Format. It returns ErrUnsupportedFormat for anything outside the
// closed set.
func ParseFormat(s string) (Format, error) {
	tag := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	for _, f := range Formats {
		if tag == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %v)", ErrUnsupportedFormat, s, Formats)
}
