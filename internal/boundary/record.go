package boundary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/jmorph"
)

// Field is an optional string value of a record. An absent field crosses
// the C boundary as a NULL pointer.
type Field struct {
	text    string
	present bool
}

// Absent is the field without a value.
var Absent = Field{}

// Some creates a present field.
func Some(s string) Field {
	return Field{text: s, present: true}
}

// Get returns the field's value and whether it is present.
func (f Field) Get() (string, bool) {
	return f.text, f.present
}

// IsAbsent is true for a field without a value.
func (f Field) IsAbsent() bool {
	return !f.present
}

func (f Field) String() string {
	if !f.present {
		return "<absent>"
	}
	return f.text
}

// MarshalJSON writes an absent field as null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.present {
		return []byte("null"), nil
	}
	return json.Marshal(f.text)
}

// Record is a morpheme flattened for clients outside of Go.
// Surface is mandatory, all other string fields may be absent.
// POS holds the part-of-speech tuple as a JSON array of strings.
type Record struct {
	Surface        string `json:"surface"`
	Reading        Field  `json:"reading"`
	DictionaryForm Field  `json:"dictionaryForm"`
	NormalizedForm Field  `json:"normalizedForm"`
	POS            Field  `json:"pos"`
	Begin          int32  `json:"begin"`
	End            int32  `json:"end"`
}

// Marshal converts morphemes to records, keeping their order.
//
// Strings are passed on as NUL-terminated C strings, therefore they must not
// contain NUL bytes. A morpheme whose surface contains NUL is dropped; any
// other field containing NUL becomes absent. Offsets which do not fit into
// an int32 fail the whole conversion, as does a morpheme ending before it
// begins.
//
// The result is never nil, even for an empty input.
func Marshal(morphemes []jmorph.Morpheme) ([]Record, error) {
	records := make([]Record, 0, len(morphemes))
	for i, m := range morphemes {
		surface := m.Surface()
		if strings.IndexByte(surface, 0) >= 0 {
			tracer().Debugf("dropping morpheme #%d: surface contains NUL", i)
			continue
		}
		begin, err := offset32(m.Begin())
		if err != nil {
			return nil, err
		}
		end, err := offset32(m.End())
		if err != nil {
			return nil, err
		}
		if end < begin {
			return nil, fmt.Errorf("%w: [%d,%d)", ErrMalformedSpan, begin, end)
		}
		records = append(records, Record{
			Surface:        surface,
			Reading:        cstring(m.ReadingForm()),
			DictionaryForm: cstring(m.DictionaryForm()),
			NormalizedForm: cstring(m.NormalizedForm()),
			POS:            posJSON(m.PartOfSpeech()),
			Begin:          begin,
			End:            end,
		})
	}
	return records, nil
}

func offset32(off int) (int32, error) {
	if off < 0 || int64(off) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrOffsetOverflow, off)
	}
	return int32(off), nil //nolint:gosec
}

func cstring(s string) Field {
	if strings.IndexByte(s, 0) >= 0 {
		return Absent
	}
	return Some(s)
}

// posJSON encodes a part-of-speech tuple, e.g. ["名詞","普通名詞","一般","*","*","*"].
// Non-ASCII characters are written unescaped.
func posJSON(pos []string) Field {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(pos); err != nil {
		tracer().Errorf("cannot encode part-of-speech %v: %v", pos, err)
		return Absent
	}
	return cstring(strings.TrimSuffix(buf.String(), "\n"))
}
