package analysis

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unicode/utf8"

	"github.com/npillmayer/jmorph"
	"github.com/npillmayer/jmorph/dic"
)

// Errors returned by tokenizers.
var (
	ErrClosed      = errors.New("analysis: tokenizer closed")
	ErrInvalidText = errors.New("analysis: text is not valid UTF-8")
)

// StatelessTokenizer analyzes texts with an engine. It keeps no state between
// calls to Tokenize and may be used by multiple goroutines.
type StatelessTokenizer struct {
	engine *Engine
	closed atomic.Bool
}

var _ jmorph.Tokenizer = (*StatelessTokenizer)(nil)

// NewStatelessTokenizer creates a tokenizer holding a reference to engine.
func NewStatelessTokenizer(engine *Engine) (*StatelessTokenizer, error) {
	if engine == nil || !engine.TryRetain() {
		return nil, ErrReleased
	}
	return &StatelessTokenizer{engine: engine}, nil
}

// Close releases the tokenizer's reference to the engine. Further calls to
// Close do nothing.
func (t *StatelessTokenizer) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	return t.engine.Release()
}

// Tokenize analyzes text as a whole, without splitting it into sentences,
// and returns its morphemes in text order.
//
// Offsets of the morphemes are byte positions within text. They are
// contiguous: the first morpheme begins at 0, every morpheme begins where
// its predecessor ends and the last one ends at len(text).
func (t *StatelessTokenizer) Tokenize(text string, mode jmorph.Mode) ([]jmorph.Morpheme, error) {
	if t.closed.Load() {
		return nil, ErrClosed
	}
	switch mode {
	case jmorph.ModeA, jmorph.ModeB, jmorph.ModeC:
	default:
		return nil, fmt.Errorf("%w: %s", jmorph.ErrInvalidMode, mode)
	}
	if !utf8.ValidString(text) {
		return nil, ErrInvalidText
	}
	e := t.engine
	if !e.TryRetain() { // keep the dictionary mapped while we are working
		return nil, ErrReleased
	}
	defer func() { _ = e.Release() }()
	//
	l := borrowLattice()
	defer l.releaseIntoPool()
	l.input.prepare(text, l.folder)
	if err := l.build(e); err != nil {
		return nil, err
	}
	path, err := l.bestPath(e.grammar)
	if err != nil {
		tracer().Debugf("no path for text of %d bytes", len(text))
		return nil, err
	}
	morphemes := make([]jmorph.Morpheme, 0, len(path))
	for _, j := range path {
		if morphemes, err = e.appendMorphemes(morphemes, &l.input, &l.nodes[j], mode); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("tokenized %d bytes into %d morphemes (mode %s)", len(text), len(morphemes), mode)
	return morphemes, nil
}

// appendMorphemes converts a node of the best path to morphemes, splitting
// compounds according to mode.
func (e *Engine) appendMorphemes(ms []jmorph.Morpheme, in *inputText, n *lnode, mode jmorph.Mode) (
	[]jmorph.Morpheme, error) {
	//
	if n.oov {
		surface := in.surface(n.begin, n.end)
		pos, _ := e.POS(e.oovPOSID)
		return append(ms, &morpheme{
			surface:        surface,
			dictionaryForm: surface,
			normalizedForm: surface,
			pos:            pos,
			begin:          in.originalOffset(n.begin),
			end:            in.originalOffset(n.end),
			oov:            true,
		}), nil
	}
	wi, err := e.lexicon.WordInfo(n.wordID)
	if err != nil {
		return ms, err
	}
	var split []uint32
	switch mode {
	case jmorph.ModeA:
		split = wi.ASplit
	case jmorph.ModeB:
		split = wi.BSplit
	}
	if len(split) == 0 {
		return append(ms, e.wordMorpheme(in, &wi, n.begin, n.end)), nil
	}
	begin := n.begin
	for i, id := range split {
		sub, err := e.lexicon.WordInfo(id)
		if err != nil {
			return ms, err
		}
		end := begin + sub.HeadwordLength
		if i == len(split)-1 || end > n.end {
			end = n.end
		}
		ms = append(ms, e.wordMorpheme(in, &sub, begin, end))
		begin = end
	}
	return ms, nil
}

func (e *Engine) wordMorpheme(in *inputText, wi *dic.WordInfo, begin, end int) *morpheme {
	pos, ok := e.POS(int(wi.POSID))
	if !ok {
		tracer().Errorf("word %q has unknown part-of-speech #%d", wi.Headword, wi.POSID)
	}
	return &morpheme{
		surface:        in.surface(begin, end),
		reading:        wi.ReadingForm,
		dictionaryForm: wi.DictionaryForm,
		normalizedForm: wi.NormalizedForm,
		pos:            pos,
		begin:          in.originalOffset(begin),
		end:            in.originalOffset(end),
	}
}
