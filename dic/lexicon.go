package dic

import (
	"encoding/binary"
	"fmt"
)

// WordParams are the parameters of a word for lattice construction.
type WordParams struct {
	LeftID  uint16
	RightID uint16
	Cost    int16
}

// WordInfo carries the linguistic information of a dictionary word.
//
// HeadwordLength is the byte length of the word's folded key, i.e. the length
// the word occupies within (folded) analyzed text.
type WordInfo struct {
	Headword             string
	HeadwordLength       int
	POSID                uint16
	NormalizedForm       string
	DictionaryFormWordID int32 // -1 if the headword is the dictionary form
	DictionaryForm       string
	ReadingForm          string
	ASplit               []uint32 // word ids for split mode A, empty if no split
	BSplit               []uint32 // word ids for split mode B, empty if no split
}

// Lexicon provides lookup of words in a dictionary.
// All methods are safe for concurrent use.
type Lexicon struct {
	trie      Trie
	wordLists []byte
	params    []byte
	infoIndex []byte
	infoData  []byte
	wordCount int
}

const wordParamsSize = 6

func loadLexicon(h Header, data []byte, wordCount int) (*Lexicon, error) {
	lx := &Lexicon{
		wordLists: h.slice(data, secWordLists),
		params:    h.slice(data, secParams),
		infoIndex: h.slice(data, secInfoIndex),
		infoData:  h.slice(data, secInfoData),
		wordCount: wordCount,
	}
	var err error
	if lx.trie, err = loadTrie(h.slice(data, secTrie)); err != nil {
		return nil, err
	}
	if len(lx.params) != wordCount*wordParamsSize {
		return nil, fmt.Errorf("%w: %d words, but %d bytes of parameters", ErrCorrupt, wordCount, len(lx.params))
	}
	if len(lx.infoIndex) != wordCount*4 {
		return nil, fmt.Errorf("%w: %d words, but %d bytes of info index", ErrCorrupt, wordCount, len(lx.infoIndex))
	}
	tracer().Debugf("lexicon: %d words, trie of %d units", wordCount, lx.trie.Size())
	return lx, nil
}

// WordCount returns the number of words in the lexicon.
func (lx *Lexicon) WordCount() int {
	return lx.wordCount
}

// CommonPrefixSearch looks up all words whose (folded) key is a prefix of
// key[from:]. For every word found, fn is called with the word id and the end
// position of the word within key. Words are reported by ascending length.
//
// An error is returned if the dictionary references a malformed word list;
// words reported before the error remain valid.
func (lx *Lexicon) CommonPrefixSearch(key []byte, from int, fn func(wordID uint32, end int)) error {
	var err error
	lx.trie.CommonPrefixSearch(key, from, func(value int32, end int) {
		if err != nil {
			return
		}
		d := newDecoder(lx.wordLists, int(value))
		n := int(d.u16())
		for i := 0; i < n && d.err == nil; i++ {
			id := d.u32()
			if d.err == nil {
				fn(id, end)
			}
		}
		err = d.err
	})
	return err
}

// Params returns the lattice parameters of a word.
func (lx *Lexicon) Params(wordID uint32) (WordParams, error) {
	if int(wordID) >= lx.wordCount {
		return WordParams{}, fmt.Errorf("%w: %d", ErrNoSuchWord, wordID)
	}
	p := lx.params[int(wordID)*wordParamsSize:]
	return WordParams{
		LeftID:  binary.LittleEndian.Uint16(p[0:2]),
		RightID: binary.LittleEndian.Uint16(p[2:4]),
		Cost:    int16(binary.LittleEndian.Uint16(p[4:6])), //nolint:gosec
	}, nil
}

// WordInfo returns the linguistic information of a word. All strings are
// copies, independent of the storage.
func (lx *Lexicon) WordInfo(wordID uint32) (WordInfo, error) {
	wi, err := lx.rawWordInfo(wordID)
	if err != nil {
		return wi, err
	}
	wi.DictionaryForm = wi.Headword
	if wi.DictionaryFormWordID >= 0 {
		base, err := lx.rawWordInfo(uint32(wi.DictionaryFormWordID))
		if err != nil {
			return wi, fmt.Errorf("dictionary form of word %d: %w", wordID, err)
		}
		wi.DictionaryForm = base.Headword
	}
	return wi, nil
}

func (lx *Lexicon) rawWordInfo(wordID uint32) (WordInfo, error) {
	wi := WordInfo{}
	if int(wordID) >= lx.wordCount {
		return wi, fmt.Errorf("%w: %d", ErrNoSuchWord, wordID)
	}
	offset := binary.LittleEndian.Uint32(lx.infoIndex[int(wordID)*4:])
	d := newDecoder(lx.infoData, int(offset))
	wi.Headword = d.str()
	wi.HeadwordLength = int(d.u16())
	wi.POSID = d.u16()
	wi.NormalizedForm = d.str()
	wi.DictionaryFormWordID = d.i32()
	wi.ReadingForm = d.str()
	wi.ASplit = readSplit(d)
	wi.BSplit = readSplit(d)
	if d.err != nil {
		return WordInfo{}, fmt.Errorf("word info %d: %w", wordID, d.err)
	}
	return wi, nil
}

func readSplit(d *decoder) []uint32 {
	n := int(d.u8())
	if n == 0 {
		return nil
	}
	split := make([]uint32, n)
	for i := range split {
		split[i] = d.u32()
	}
	return split
}
