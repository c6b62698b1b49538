package chardef

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// A Folder normalizes text for analysis: lower-casing followed by NFKC.
// Full-width Latin letters and digits thus become ASCII, half-width katakana
// become full-width katakana.
//
// Folders are not safe for concurrent use; create one per goroutine.
type Folder struct {
	lower cases.Caser
}

// NewFolder creates a new Folder.
func NewFolder() *Folder {
	return &Folder{lower: cases.Lower(language.Und)}
}

// Fold normalizes a string. The result is never empty for a non-empty input.
func (f *Folder) Fold(s string) string {
	if s == "" {
		return s
	}
	folded := norm.NFKC.String(f.lower.String(s))
	if folded == "" {
		return s
	}
	return folded
}

// Fold normalizes a string with a temporary Folder.
func Fold(s string) string {
	return NewFolder().Fold(s)
}

// Chunks splits a string into folding units, i.e. grapheme clusters as
// defined by UAX #29. Folding a cluster as a whole keeps composition intact,
// e.g. 'ｶ' 'ﾞ' → 'ガ' or the conjoining jamo 'ᄀ' 'ᅡ' → '가'. fn is called for
// every chunk with its byte position within s. Invalid UTF-8 bytes and NUL
// form chunks of their own.
func Chunks(s string, fn func(pos int, chunk string)) {
	grapheme.SetupGraphemeClasses()
	for pos := 0; pos < len(s); {
		n := clusterable(s[pos:])
		if n == 0 {
			fn(pos, s[pos:pos+1])
			pos++
			continue
		}
		clusters(s[pos:pos+n], pos, fn)
		pos += n
	}
}

// clusterable returns the length of the prefix of s which may be handed to
// the grapheme breaker: valid UTF-8 without NUL, which it treats as end of text.
func clusterable(s string) int {
	for i, r := range s {
		if r == 0 {
			return i
		}
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return len(s)
}

func clusters(s string, offset int, fn func(pos int, chunk string)) {
	seg := segment.NewSegmenter(grapheme.NewBreaker(1))
	seg.BreakOnZero(true, false)
	seg.Init(strings.NewReader(s))
	pos := 0
	for seg.Next() {
		n := len(seg.Bytes())
		if n == 0 || pos+n > len(s) {
			break
		}
		fn(offset+pos, s[pos:pos+n])
		pos += n
	}
	if err := seg.Err(); err != nil {
		tracer().Errorf("grapheme segmenting: %v", err)
	}
	if pos < len(s) {
		fn(offset+pos, s[pos:])
	}
}

// FoldKey folds a string chunk by chunk, exactly the way analyzed text is
// folded. Dictionary keys have to be created with FoldKey, otherwise lookups
// may miss them.
func (f *Folder) FoldKey(s string) string {
	var sb strings.Builder
	Chunks(s, func(_ int, chunk string) {
		sb.WriteString(f.Fold(chunk))
	})
	return sb.String()
}
