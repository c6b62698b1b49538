package boundary

import (
	"fmt"
	"sync/atomic"
	"unicode/utf8"

	"github.com/npillmayer/jmorph"
	"github.com/npillmayer/jmorph/analysis"
	"github.com/npillmayer/jmorph/dic"
)

// Handle owns a reference to an analysis engine and a stateless tokenizer
// bound to the same engine. Handles are created by Load and must be closed
// exactly once. Tokenize may be called concurrently; Close must not race
// with other calls by contract, though an analysis running during Close
// keeps the dictionary mapped until it is done.
type Handle struct {
	engine *analysis.Engine
	tok    *analysis.StatelessTokenizer
	closed atomic.Bool
}

// Load opens the dictionary file at path, maps it into memory and builds an
// engine with the default configuration: one out-of-vocabulary rule and
// embedded character definitions.
func Load(path string) (*Handle, error) {
	return LoadWithConfig(path, analysis.DefaultConfig())
}

// LoadWithConfig is Load with an explicit engine configuration.
func LoadWithConfig(path string, cfg analysis.Config) (*Handle, error) {
	if path == "" {
		return nil, ErrInvalidArgument
	}
	dict, err := dic.Open(path)
	if err != nil {
		tracer().Errorf("cannot load dictionary: %v", err)
		return nil, err
	}
	engine, err := analysis.NewEngineWithEmbeddedCharDef(cfg, dict)
	if err != nil {
		_ = dict.Close()
		tracer().Errorf("cannot create analysis engine for %s: %v", path, err)
		return nil, err
	}
	tok, err := analysis.NewStatelessTokenizer(engine)
	if err != nil {
		_ = engine.Release()
		tracer().Errorf("cannot create tokenizer for %s: %v", path, err)
		return nil, err
	}
	h := &Handle{engine: engine, tok: tok}
	tracer().Infof("loaded %s", h)
	return h, nil
}

// Close releases the tokenizer and the engine reference. The dictionary is
// unmapped as soon as no analysis uses it any more. Calling Close on a closed
// handle does nothing.
func (h *Handle) Close() error {
	if h == nil || !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := h.tok.Close()
	if rerr := h.engine.Release(); err == nil {
		err = rerr
	}
	tracer().Debugf("closed handle for %s", h.engine)
	return err
}

// Tokenize analyzes text and returns its morphemes as records. text has to
// be UTF-8; it is not repaired.
func (h *Handle) Tokenize(text []byte, mode jmorph.Mode) ([]Record, error) {
	if h == nil || text == nil {
		return nil, ErrInvalidArgument
	}
	if !utf8.Valid(text) {
		return nil, ErrInvalidEncoding
	}
	morphemes, err := h.tok.Tokenize(string(text), mode)
	if err != nil {
		return nil, err
	}
	return Marshal(morphemes)
}

// Morphemes analyzes text like Tokenize, but returns the morphemes unchanged.
func (h *Handle) Morphemes(text string, mode jmorph.Mode) ([]jmorph.Morpheme, error) {
	if h == nil {
		return nil, ErrInvalidArgument
	}
	return h.tok.Tokenize(text, mode)
}

// Engine returns the shared engine of the handle.
func (h *Handle) Engine() *analysis.Engine {
	return h.engine
}

// Dictionary returns the dictionary of the handle's engine.
func (h *Handle) Dictionary() *dic.Dictionary {
	return h.engine.Dictionary()
}

func (h *Handle) String() string {
	return fmt.Sprintf("handle[%s]", h.engine)
}
