package omnic

import "sync"

// Option configures a decode call.
type Option func(*options)

type options struct {
	suffix        string // explicit format hint
	interferogram string // "sample" or "background" (.spa and variants)
	background    bool   // extract the series background (.srs)
	reverseX      bool   // reverse column order (.srs)

	// Deprecated aliases, resolved after all options are applied.
	returnIFG string
	returnBG  bool
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	// The canonical options win over their deprecated aliases regardless
	// of the order they were given in.
	if o.interferogram == "" {
		o.interferogram = o.returnIFG
	}
	if o.returnBG {
		o.background = true
	}
	return o
}

// WithSuffix sets an explicit format tag (e.g. ".spg" or "spg") for
// sources that carry no usable file extension. Byte-buffer sources always
// require one.
func WithSuffix(suffix string) Option {
	return func(o *options) {
		o.suffix = suffix
	}
}

// WithProtocol is equivalent to WithSuffix, kept for parity with the
// original reader's option naming.
func WithProtocol(protocol string) Option {
	return WithSuffix(protocol)
}

// Interferogram kinds accepted by WithInterferogram.
const (
	SampleIFG     = "sample"
	BackgroundIFG = "background"
)

// WithInterferogram requests the named interferogram of a single-spectrum
// file instead of the processed spectrum. When the file carries no such
// record the decode returns a nil Dataset and no error.
func WithInterferogram(kind string) Option {
	return func(o *options) {
		o.interferogram = kind
	}
}

// WithBackground requests the background record of a series file instead
// of the series itself.
func WithBackground() Option {
	return func(o *options) {
		o.background = true
	}
}

// WithReverseX reverses the column order of series output. Most series
// store intensities from high to low wavenumber; set this for files
// stored low to high.
func WithReverseX() Option {
	return func(o *options) {
		o.reverseX = true
	}
}

var (
	returnIFGOnce sync.Once
	returnBGOnce  sync.Once
)

// WithReturnIFG is a deprecated alias of WithInterferogram.
//
// Deprecated: use WithInterferogram.
func WithReturnIFG(kind string) Option {
	return func(o *options) {
		returnIFGOnce.Do(func() {
			logger.Warn("the return_ifg option is deprecated, use interferogram instead")
		})
		o.returnIFG = kind
	}
}

// WithReturnBG is a deprecated alias of WithBackground.
//
// Deprecated: use WithBackground.
func WithReturnBG() Option {
	return func(o *options) {
		returnBGOnce.Do(func() {
			logger.Warn("the return_bg option is deprecated, use background instead")
		})
		o.returnBG = true
	}
}
