package jmorph

// Morpheme is a minimal meaningful unit found in an input text.
//
// Begin and End are byte offsets into the text given to the tokenizer,
// forming the half-open range [Begin, End). Surface is always the input text
// within that range, even if analysis has been performed on a normalized
// version of the input.
type Morpheme interface {
	Surface() string
	ReadingForm() string
	DictionaryForm() string
	NormalizedForm() string
	PartOfSpeech() []string // six-element tuple, unused levels are "*"
	Begin() int
	End() int
	IsOOV() bool // out-of-vocabulary, i.e. not found in the dictionary
}

// Tokenizer splits a text into morphemes.
//
// Morphemes are returned in input order. They do not overlap and, taken
// together, cover the complete input. Implementations are expected to be safe
// for concurrent use by multiple goroutines.
type Tokenizer interface {
	Tokenize(text string, mode Mode) ([]Morpheme, error)
}
