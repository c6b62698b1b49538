package analysis

import (
	"fmt"

	"github.com/npillmayer/jmorph"
)

// morpheme is a unit of analyzed text. No string refers to the mapped
// dictionary, so morphemes stay valid after the engine has been released.
type morpheme struct {
	surface        string
	reading        string
	dictionaryForm string
	normalizedForm string
	pos            []string
	begin, end     int
	oov            bool
}

var _ jmorph.Morpheme = (*morpheme)(nil)

func (m *morpheme) Surface() string        { return m.surface }
func (m *morpheme) ReadingForm() string    { return m.reading }
func (m *morpheme) DictionaryForm() string { return m.dictionaryForm }
func (m *morpheme) NormalizedForm() string { return m.normalizedForm }
func (m *morpheme) Begin() int             { return m.begin }
func (m *morpheme) End() int               { return m.end }
func (m *morpheme) IsOOV() bool            { return m.oov }

// PartOfSpeech returns a copy of the part-of-speech tuple.
func (m *morpheme) PartOfSpeech() []string {
	return append([]string(nil), m.pos...)
}

func (m *morpheme) String() string {
	return fmt.Sprintf("%s[%d:%d]", m.surface, m.begin, m.end)
}
