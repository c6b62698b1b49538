package dic

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// Magic is the signature at the start of every dictionary file.
const Magic = "JMORPHD\x00"

// FormatVersion is the version of the file layout written by Builder.
const FormatVersion uint32 = 1

// HeaderSize is the size of the fixed header preceding the section table.
const HeaderSize = 64

const (
	sectionEntrySize = 16
	maxSections      = 64
	maxStringLen     = 0xffff
	maxSplitLen      = 0xff
)

// POSDepth is the number of levels of a part-of-speech tuple.
const POSDepth = 6

// InhibitedConnection is the connection cost marking two words as never adjacent.
const InhibitedConnection int16 = 0x7fff

type sectionID uint32

const (
	secMeta sectionID = iota + 1
	secPOS
	secConnection
	secTrie
	secWordLists
	secParams
	secInfoIndex
	secInfoData
)

var requiredSections = []sectionID{
	secMeta, secPOS, secConnection, secTrie, secWordLists, secParams, secInfoIndex, secInfoData,
}

func (id sectionID) String() string {
	switch id {
	case secMeta:
		return "meta"
	case secPOS:
		return "pos"
	case secConnection:
		return "connection"
	case secTrie:
		return "trie"
	case secWordLists:
		return "wordlists"
	case secParams:
		return "params"
	case secInfoIndex:
		return "infoindex"
	case secInfoData:
		return "infodata"
	}
	return fmt.Sprintf("section(%d)", uint32(id))
}

// Errors returned when opening or reading dictionaries.
var (
	ErrEmpty              = errors.New("dic: empty dictionary file")
	ErrInvalidMagic       = errors.New("dic: not a dictionary file (invalid magic)")
	ErrUnsupportedVersion = errors.New("dic: unsupported dictionary format version")
	ErrCorrupt            = errors.New("dic: corrupt dictionary")
	ErrClosed             = errors.New("dic: dictionary storage closed")
	ErrNoSuchWord         = errors.New("dic: no such word")
)

type section struct {
	offset, length uint32
}

// Header is the parsed fixed header of a dictionary file.
type Header struct {
	Version  uint32
	Created  time.Time
	sections map[sectionID]section
}

func parseHeader(data []byte) (Header, error) {
	h := Header{}
	if len(data) < HeaderSize {
		return h, fmt.Errorf("%w: file too small: %d bytes (minimum %d bytes required)",
			ErrCorrupt, len(data), HeaderSize)
	}
	if string(data[0:8]) != Magic {
		return h, ErrInvalidMagic
	}
	h.Version = binary.LittleEndian.Uint32(data[8:12])
	if h.Version != FormatVersion {
		return h, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, h.Version, FormatVersion)
	}
	n := binary.LittleEndian.Uint32(data[12:16])
	if n > maxSections {
		return h, fmt.Errorf("%w: %d sections", ErrCorrupt, n)
	}
	h.Created = time.Unix(int64(binary.LittleEndian.Uint64(data[16:24])), 0) //nolint:gosec
	tableEnd := HeaderSize + int(n)*sectionEntrySize
	if tableEnd > len(data) {
		return h, fmt.Errorf("%w: section table extends beyond file", ErrCorrupt)
	}
	h.sections = make(map[sectionID]section, n)
	for i := 0; i < int(n); i++ {
		e := data[HeaderSize+i*sectionEntrySize:]
		id := sectionID(binary.LittleEndian.Uint32(e[0:4]))
		s := section{
			offset: binary.LittleEndian.Uint32(e[4:8]),
			length: binary.LittleEndian.Uint32(e[8:12]),
		}
		if uint64(s.offset)+uint64(s.length) > uint64(len(data)) || int(s.offset) < tableEnd {
			return h, fmt.Errorf("%w: section %s out of bounds", ErrCorrupt, id)
		}
		h.sections[id] = s
	}
	for _, id := range requiredSections {
		if _, ok := h.sections[id]; !ok {
			return h, fmt.Errorf("%w: missing section %s", ErrCorrupt, id)
		}
	}
	return h, nil
}

func (h Header) slice(data []byte, id sectionID) []byte {
	s := h.sections[id]
	return data[s.offset : s.offset+s.length]
}

// --- Decoding helpers -------------------------------------------------

// decoder reads little-endian values from a byte slice. Reading beyond the
// end of the slice does not panic, but records ErrCorrupt; all subsequent
// reads return zero values.
type decoder struct {
	buf []byte
	pos int
	err error
}

func newDecoder(buf []byte, pos int) *decoder {
	d := &decoder{buf: buf, pos: pos}
	if pos < 0 || pos > len(buf) {
		d.err = fmt.Errorf("%w: offset %d out of range", ErrCorrupt, pos)
	}
	return d
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || d.pos+n > len(d.buf) {
		d.err = fmt.Errorf("%w: read of %d bytes at offset %d exceeds %d", ErrCorrupt, n, d.pos, len(d.buf))
		return nil
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b
}

func (d *decoder) u8() uint8 {
	if b := d.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *decoder) u16() uint16 {
	if b := d.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (d *decoder) u32() uint32 {
	if b := d.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (d *decoder) i16() int16 { return int16(d.u16()) } //nolint:gosec

func (d *decoder) i32() int32 { return int32(d.u32()) } //nolint:gosec

// str reads a length-prefixed string and copies it out of the buffer.
func (d *decoder) str() string {
	n := int(d.u16())
	if b := d.take(n); b != nil {
		return string(b)
	}
	return ""
}

// --- Encoding helpers -------------------------------------------------

func appendU16(b []byte, v uint16) []byte { return binary.LittleEndian.AppendUint16(b, v) }
func appendU32(b []byte, v uint32) []byte { return binary.LittleEndian.AppendUint32(b, v) }
func appendI16(b []byte, v int16) []byte  { return appendU16(b, uint16(v)) } //nolint:gosec
func appendI32(b []byte, v int32) []byte  { return appendU32(b, uint32(v)) } //nolint:gosec

func appendStr(b []byte, s string) ([]byte, error) {
	if len(s) > maxStringLen {
		return b, fmt.Errorf("dic: string too long (%d bytes): %.20q…", len(s), s)
	}
	b = appendU16(b, uint16(len(s)))
	return append(b, s...), nil
}
