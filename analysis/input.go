package analysis

import (
	"unicode/utf8"

	"github.com/npillmayer/jmorph/chardef"
)

// inputText is the folded form of an analyzed text.
//
// Positions are byte positions within the folded text. Words may only begin
// at a chunk start (see chardef.Chunks) which satisfies the word-begin policy;
// these positions are word boundaries, as is the end of the text.
type inputText struct {
	original string
	folded   []byte
	orig     []int  // orig[p] is the position within original of folded position p
	boundary []bool // boundary[p]: a word may begin (or end) at p
}

// prepare folds text and computes the offset map and the word boundaries.
// It re-uses the buffers of in.
func (in *inputText) prepare(text string, folder *chardef.Folder) {
	in.original = text
	in.folded = in.folded[:0]
	in.orig = in.orig[:0]
	in.boundary = in.boundary[:0]
	var prev chardef.Category
	chardef.Chunks(text, func(pos int, chunk string) {
		f := folder.Fold(chunk)
		first, _ := utf8.DecodeRuneInString(f)
		cur := chardef.CategoryOf(first)
		isBoundary := len(in.folded) == 0 || chardef.CanBeginWord(prev, cur)
		for i := 0; i < len(f); i++ {
			in.orig = append(in.orig, pos)
			in.boundary = append(in.boundary, i == 0 && isBoundary)
		}
		in.folded = append(in.folded, f...)
		last, _ := utf8.DecodeLastRuneInString(f)
		prev = chardef.CategoryOf(last)
	})
	in.orig = append(in.orig, len(text))
	in.boundary = append(in.boundary, true)
}

// size is the length of the folded text.
func (in *inputText) size() int {
	return len(in.folded)
}

// isBoundary is true for positions where a word may begin or end.
func (in *inputText) isBoundary(p int) bool {
	return p >= 0 && p < len(in.boundary) && in.boundary[p]
}

// candidateEnd returns the first boundary after p, i.e. the end of an
// unknown word starting at p.
func (in *inputText) candidateEnd(p int) int {
	for q := p + 1; q < len(in.boundary); q++ {
		if in.boundary[q] {
			return q
		}
	}
	return len(in.folded)
}

// originalOffset maps a folded position to a position within the original text.
func (in *inputText) originalOffset(p int) int {
	if p >= len(in.orig) {
		return len(in.original)
	}
	return in.orig[p]
}

// surface returns the original text for the folded range [begin,end).
func (in *inputText) surface(begin, end int) string {
	return in.original[in.originalOffset(begin):in.originalOffset(end)]
}
