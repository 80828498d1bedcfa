package omnic

import (
	"encoding/binary"
	"math"
)

// image builds synthetic OMNIC file content for tests.
type image struct {
	buf []byte
}

func newImage(size int) *image {
	return &image{buf: make([]byte, size)}
}

func (m *image) ensure(end int) {
	if end > len(m.buf) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
}

func (m *image) putBytes(off int, b []byte) {
	m.ensure(off + len(b))
	copy(m.buf[off:], b)
}

func (m *image) putU8(off int, v uint8) {
	m.ensure(off + 1)
	m.buf[off] = v
}

func (m *image) putU16(off int, v uint16) {
	m.ensure(off + 2)
	binary.LittleEndian.PutUint16(m.buf[off:], v)
}

func (m *image) putU32(off int, v uint32) {
	m.ensure(off + 4)
	binary.LittleEndian.PutUint32(m.buf[off:], v)
}

func (m *image) putF32(off int, v float32) {
	m.putU32(off, math.Float32bits(v))
}

func (m *image) putText(off int, s string) {
	m.putBytes(off, []byte(s))
}

// putHeader writes a spectrum header at base with the common fields used
// by the decoders.
func (m *image) putHeader(base, nx int, xkind, dkind uint8, firstx, lastx float32) {
	m.putU32(base+4, uint32(nx))
	m.putU8(base+8, xkind)
	m.putU8(base+12, dkind)
	m.putF32(base+16, firstx)
	m.putF32(base+20, lastx)
	m.putU32(base+28, uint32(nx))  // scan points
	m.putU32(base+32, 128)         // zpd
	m.putU32(base+36, 16)          // nscan
	m.putU32(base+52, 8)           // nbkgscan
	m.putU32(base+68, 1200)        // collection length, centiseconds
	m.putF32(base+80, 15798.0)     // reference frequency
	m.putF32(base+188, 0.4747)     // optical velocity
	m.ensure(base + 512)
}

// tableEntry writes one 16-byte block-table record.
func (m *image) tableEntry(index int, key uint8, pointer, length uint32) {
	pos := 304 + index*16
	m.putU8(pos, key)
	m.putU32(pos+2, pointer)
	m.putU32(pos+6, length)
	m.ensure(pos + 16)
}

// buildSPG assembles a collection image with nspec identical spectra of
// nx points each.
func buildSPG(nspec, nx int) []byte {
	m := newImage(1024)
	m.putText(30, "saved-group.spg")

	headerBase := 4096
	intensBase := headerBase + nspec*512
	titleBase := intensBase + nspec*nx*4

	m.putU16(294, uint16(3*nspec))
	for i := 0; i < nspec; i++ {
		hdr := headerBase + i*512
		intens := intensBase + i*nx*4
		title := titleBase + i*300

		m.putHeader(hdr, nx, 1, 17, 4000, 400)
		m.putText(hdr+208, "collected on test bench")

		for j := 0; j < nx; j++ {
			m.putF32(intens+j*4, float32(i)+float32(j)/100)
		}

		m.putText(title, "spectrum")
		m.putU32(title+256, uint32(3_000_000_000+i*60))

		m.tableEntry(3*i, 2, uint32(hdr), 0)
		m.tableEntry(3*i+1, 3, uint32(intens), uint32(nx*4))
		m.tableEntry(3*i+2, 107, uint32(title), 0)
	}
	return m.buf
}

// buildSPA assembles a single-spectrum image. With ifg set, a sample
// interferogram block of nifg points is appended.
func buildSPA(nx int, ifg bool, nifg int, comments []string, history string) []byte {
	m := newImage(1024)
	m.putText(30, "saved-spectrum.spa")
	m.putU32(296, 3_100_000_000)

	headerBase := 4096
	intensBase := headerBase + 512

	m.putHeader(headerBase, nx, 1, 17, 4000, 400)
	m.putText(headerBase+208, "collected on test bench")
	for j := 0; j < nx; j++ {
		m.putF32(intensBase+j*4, float32(j)/10)
	}

	next := intensBase + nx*4
	idx := 0
	m.tableEntry(idx, 2, uint32(headerBase), 0)
	idx++
	m.tableEntry(idx, 3, uint32(intensBase), uint32(nx*4))
	idx++

	for _, c := range comments {
		m.putText(next, c)
		m.tableEntry(idx, 4, uint32(next), uint32(len(c)))
		next += len(c) + 16
		idx++
	}

	if history != "" {
		m.putText(next, history)
		m.tableEntry(idx, 27, uint32(next), uint32(len(history)))
		next += len(history) + 16
		idx++
	}

	if ifg {
		for j := 0; j < nifg; j++ {
			m.putF32(next+j*4, float32(j))
		}
		m.tableEntry(idx, 102, uint32(next), uint32(nifg*4))
		next += nifg * 4
		idx++
	}

	// terminator
	m.tableEntry(idx, 0, 0, 0)
	return m.buf
}

var (
	testSigRapid = []byte{0x02, 0x00, 0x00, 0x00, 0x18, 0x00, 0x00, 0x00, 0x00, 0x00, 0x48, 0x43, 0x00, 0x50, 0x43, 0x47}
	testSigHigh  = []byte{0x02, 0x00, 0x00, 0x00, 0x18, 0x00, 0x00, 0x00, 0x00, 0x00, 0x48, 0x43, 0x00, 0xC8, 0xAF, 0x47}
	// The TGA/GC prefix, completed with bytes matching neither long
	// signature.
	testSigTGA = []byte{0x02, 0x00, 0x00, 0x00, 0x18, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x01}
)

// buildSRS assembles a rapid-scan series image with ny rows of nx points.
// Reprocessed images relocate the history text past a 16-byte 0xFF marker
// at the end of the file.
func buildSRS(ny, nx int, reprocessed bool) []byte {
	const (
		p1 = 400  // series header at p1-152
		p2 = 2000 // background header at p2-152
		p3 = 4000 // row data at p3+60
	)
	m := newImage(8192)

	marker := uint8(39)
	if reprocessed {
		marker = 15
	}
	m.putU8(292, marker)

	m.putBytes(p1, testSigRapid)
	m.putBytes(p2, testSigRapid)
	m.putBytes(p3, testSigRapid)

	// Series header.
	base := p1 - 152
	m.putHeader(base, nx, 1, 17, 4000, 400)
	m.putText(base+938, "kinetics run\x00trailing garbage")
	m.putF32(base+1002, 2.5) // collection length, minutes
	m.putF32(base+1006, 12)  // last y
	m.putF32(base+1010, 0)   // first y
	m.putU32(base+1026, uint32(ny))
	m.putText(base+1200, "initial series history")

	// Background header and its float block at +208.
	bg := p2 - 152
	m.putHeader(bg, nx, 1, 17, 4000, 400)
	for j := 0; j < nx; j++ {
		m.putF32(bg+208+j*4, 1+float32(j)/100)
	}

	// Row data.
	pos := p3 + 60
	for i := 0; i < ny; i++ {
		if i > 0 {
			pos += 16
		}
		m.putText(pos, "row")
		pos += 84
		for j := 0; j < nx; j++ {
			m.putF32(pos+j*4, float32(i*nx+j))
		}
		pos += nx * 4
	}

	if reprocessed {
		markPos := len(m.buf)
		m.putBytes(markPos, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
		m.putText(markPos+16, "reprocessed series history")
		m.ensure(markPos + 16 + 64)
	}
	return m.buf
}

// buildSRSTGA assembles a TGA/GC series image (three occurrences of the
// short signature, same offset deltas as rapid-scan, no reprocess marker
// and no history).
func buildSRSTGA(ny, nx int) []byte {
	const (
		p1 = 400
		p2 = 2000
		p3 = 4000
	)
	m := newImage(8192)

	m.putBytes(p1, testSigTGA)
	m.putBytes(p2, testSigTGA)
	m.putBytes(p3, testSigTGA)

	base := p1 - 152
	m.putHeader(base, nx, 1, 17, 4000, 400)
	m.putText(base+938, "tga run")
	m.putF32(base+1002, 0.5)
	m.putF32(base+1006, 6)
	m.putF32(base+1010, 0)
	m.putU32(base+1026, uint32(ny))

	pos := p3 + 60
	for i := 0; i < ny; i++ {
		if i > 0 {
			pos += 16
		}
		m.putText(pos, "row")
		pos += 84
		for j := 0; j < nx; j++ {
			m.putF32(pos+j*4, float32(i*nx+j))
		}
		pos += nx * 4
	}
	return m.buf
}

// buildSRSHighSpeed assembles a high-speed series image (four signature
// occurrences, data after the fourth).
func buildSRSHighSpeed(ny, nx int) []byte {
	const (
		p1 = 400
		p2 = 2000
		p3 = 3000
		p4 = 4000
	)
	m := newImage(8192)

	m.putBytes(p1, testSigHigh)
	m.putBytes(p2, testSigHigh)
	m.putBytes(p3, testSigHigh)
	m.putBytes(p4, testSigHigh)

	base := p1 - 152
	m.putHeader(base, nx, 1, 17, 4000, 400)
	m.putText(base+938, "high speed run")
	m.putF32(base+1002, 1.0)
	m.putF32(base+1006, 5)
	m.putF32(base+1010, 0)
	m.putU32(base+1026, uint32(ny))

	pos := p4 + 60
	for i := 0; i < ny; i++ {
		if i > 0 {
			pos += 16
		}
		m.putText(pos, "row")
		pos += 84
		for j := 0; j < nx; j++ {
			m.putF32(pos+j*4, float32(i*nx+j))
		}
		pos += nx * 4
	}
	return m.buf
}
