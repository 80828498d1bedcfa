package omnic

import "path"

// PluginInfo describes the reader to a host application's plugin
// registry.
type PluginInfo struct {
	Identifier   string
	Description  string
	Extensions   []string
	ReaderMethod string
}

// Describe returns the registration descriptor for this reader.
func Describe() PluginInfo {
	exts := make([]string, len(Formats))
	for i, f := range Formats {
		exts[i] = string(f)
	}
	return PluginInfo{
		Identifier:   "omnic",
		Description:  "Nicolet OMNIC files and series (*.spa *.spg *.srs)",
		Extensions:   exts,
		ReaderMethod: "read_omnic",
	}
}

// CanRead reports whether every named file carries a supported extension.
func CanRead(names []string) bool {
	for _, name := range names {
		if _, err := ParseFormat(path.Ext(name)); err != nil {
			return false
		}
	}
	return len(names) > 0
}

// Source names one input of a batch decode: a filesystem path, a URL, or
// an in-memory buffer with an optional display name.
type Source struct {
	Path  string
	URL   string
	Name  string
	Bytes []byte
}

// DecodeAll decodes a batch of sources. The result and error slices are
// parallel to sources: a nil Dataset with a nil error marks an expected
// empty result (absent interferogram or background), and one source's
// failure does not abort its siblings. Filtering nils is the caller's
// decision.
func DecodeAll(sources []Source, opts ...Option) ([]*Dataset, []error) {
	datasets := make([]*Dataset, len(sources))
	errs := make([]error, len(sources))
	for i, s := range sources {
		switch {
		case s.Path != "":
			datasets[i], errs[i] = Open(s.Path, opts...)
		case s.URL != "":
			datasets[i], errs[i] = OpenURL(s.URL, opts...)
		case s.Name != "":
			datasets[i], errs[i] = OpenNamed(s.Name, s.Bytes, opts...)
		default:
			datasets[i], errs[i] = OpenBytes(s.Bytes, opts...)
		}
	}
	return datasets, errs
}
