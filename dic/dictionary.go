package dic

import (
	"fmt"
)

// Dictionary is a loaded binary dictionary: grammar plus lexicon, backed by
// a Storage.
type Dictionary struct {
	storage     *Storage
	header      Header
	grammar     *Grammar
	lexicon     *Lexicon
	wordCount   int
	description string
}

// Load interprets a storage as a dictionary. The dictionary takes ownership
// of the storage: closing the dictionary closes the storage.
// If Load fails, the storage is left untouched and the caller has to close it.
func Load(st *Storage) (*Dictionary, error) {
	if st == nil || st.Closed() {
		return nil, ErrClosed
	}
	data := st.Bytes()
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	dict := &Dictionary{storage: st, header: h}
	d := newDecoder(h.slice(data, secMeta), 0)
	dict.wordCount = int(d.u32())
	dict.description = d.str()
	if d.err != nil {
		return nil, fmt.Errorf("reading dictionary meta data: %w", d.err)
	}
	if dict.grammar, err = loadGrammar(h.slice(data, secPOS), h.slice(data, secConnection)); err != nil {
		return nil, err
	}
	if dict.lexicon, err = loadLexicon(h, data, dict.wordCount); err != nil {
		return nil, err
	}
	tracer().P("path", st.Path()).Infof("dictionary loaded: %d words, version %d", dict.wordCount, h.Version)
	return dict, nil
}

// Open maps a dictionary file and loads it.
//
// Important: Always call Close() when done to unmap the file.
func Open(path string) (*Dictionary, error) {
	st, err := Map(path)
	if err != nil {
		return nil, err
	}
	dict, err := Load(st)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return dict, nil
}

// Grammar returns the grammar of the dictionary.
func (dict *Dictionary) Grammar() *Grammar {
	return dict.grammar
}

// Lexicon returns the lexicon of the dictionary.
func (dict *Dictionary) Lexicon() *Lexicon {
	return dict.lexicon
}

// Header returns the file header.
func (dict *Dictionary) Header() Header {
	return dict.header
}

// Description returns the free-text description stored with the dictionary.
func (dict *Dictionary) Description() string {
	return dict.description
}

// WordCount returns the number of words of the dictionary.
func (dict *Dictionary) WordCount() int {
	return dict.wordCount
}

// Storage returns the backing storage.
func (dict *Dictionary) Storage() *Storage {
	return dict.storage
}

// Close releases the storage. The dictionary must not be used afterwards.
func (dict *Dictionary) Close() error {
	return dict.storage.Close()
}
