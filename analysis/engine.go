package analysis

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/jmorph/chardef"
	"github.com/npillmayer/jmorph/dic"
)

// ErrReleased is returned when an engine is used after its last reference
// has been released.
var ErrReleased = errors.New("analysis: engine has been released")

// Engine is a dictionary together with the analysis configuration.
// Engines are immutable after construction and may be shared between
// goroutines.
type Engine struct {
	dict     *dic.Dictionary
	grammar  *dic.Grammar
	lexicon  *dic.Lexicon
	oov      oovParams
	oovPOSID int
	extraPOS [][]string // parts-of-speech not in the dictionary grammar
	refs     atomic.Int32
	once     sync.Once
	closeErr error
}

// NewEngineWithEmbeddedCharDef creates an engine for a dictionary. Character
// categories are taken from package chardef, not from a character definition
// file.
//
// On success the engine owns dict and holds one reference, which the caller
// has to Release. On failure dict is left open.
func NewEngineWithEmbeddedCharDef(cfg Config, dict *dic.Dictionary) (*Engine, error) {
	if dict == nil {
		return nil, errors.New("analysis: no dictionary")
	}
	chardef.SetupCategories()
	e := &Engine{
		dict:    dict,
		grammar: dict.Grammar(),
		lexicon: dict.Lexicon(),
	}
	var err error
	if e.oov, err = cfg.validate(e.grammar); err != nil {
		return nil, err
	}
	if id, ok := e.grammar.POSID(e.oov.pos); ok {
		e.oovPOSID = id
	} else {
		e.extraPOS = append(e.extraPOS, e.oov.pos)
		e.oovPOSID = e.grammar.POSCount()
		tracer().Debugf("OOV part-of-speech %v not in dictionary, registered as #%d", e.oov.pos, e.oovPOSID)
	}
	e.refs.Store(1)
	tracer().Infof("analysis engine created for dictionary %q", dict.Description())
	return e, nil
}

// Retain acquires an additional reference. The engine must not have been
// released; use TryRetain if that is not guaranteed.
func (e *Engine) Retain() {
	if !e.TryRetain() {
		panic("analysis: Retain on released engine")
	}
}

// TryRetain acquires an additional reference, unless the last reference has
// already been released. A released engine is never revived.
func (e *Engine) TryRetain() bool {
	for {
		n := e.refs.Load()
		if n <= 0 {
			return false
		}
		if e.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Release gives up a reference. Releasing the last reference closes the
// dictionary; the error of closing it is returned to the releasing caller.
func (e *Engine) Release() error {
	for {
		n := e.refs.Load()
		if n <= 0 {
			return ErrReleased
		}
		if !e.refs.CompareAndSwap(n, n-1) {
			continue
		}
		if n == 1 {
			e.once.Do(func() {
				e.closeErr = e.dict.Close()
				tracer().Debugf("analysis engine released, dictionary closed")
			})
			return e.closeErr
		}
		return nil
	}
}

// Refs returns the current number of references.
func (e *Engine) Refs() int {
	return int(e.refs.Load())
}

// Dictionary returns the dictionary of the engine.
func (e *Engine) Dictionary() *dic.Dictionary {
	return e.dict
}

// POS returns the part-of-speech tuple for an id. Ids beyond the grammar of
// the dictionary refer to parts-of-speech introduced by the configuration.
func (e *Engine) POS(id int) ([]string, bool) {
	if pos, ok := e.grammar.POS(id); ok {
		return pos, true
	}
	inx := id - e.grammar.POSCount()
	if inx < 0 || inx >= len(e.extraPOS) {
		return nil, false
	}
	return append([]string(nil), e.extraPOS[inx]...), true
}

// POSCount returns the number of parts-of-speech known to the engine.
func (e *Engine) POSCount() int {
	return e.grammar.POSCount() + len(e.extraPOS)
}

func (e *Engine) String() string {
	return fmt.Sprintf("Engine[%q, refs=%d]", e.dict.Description(), e.Refs())
}
