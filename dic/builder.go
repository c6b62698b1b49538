package dic

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/jmorph/chardef"
)

// Entry is a word as it is fed to a Builder.
//
// Empty strings for Reading, Normalized and DictionaryForm default to the
// surface. ASplit and BSplit list the surfaces of the words a compound
// consists of; every one of them must itself be added to the builder.
type Entry struct {
	Surface        string
	LeftID         uint16
	RightID        uint16
	Cost           int16
	POS            []string
	Reading        string
	Normalized     string
	DictionaryForm string
	ASplit         []string
	BSplit         []string
}

// ErrBuild is returned for inconsistent builder input.
var ErrBuild = errors.New("dic: cannot build dictionary")

// Builder collects grammar and lexicon data and writes a dictionary image.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	description string
	created     time.Time
	pos         [][]string
	posIndex    map[string]int
	numLeft     int
	numRight    int
	matrix      []int16
	entries     []Entry
	posIDs      []uint16
	keys        []string          // folded key per entry
	byHeadword  map[string]uint32 // first word id per surface
	folder      *chardef.Folder
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		created:    time.Now(),
		posIndex:   make(map[string]int),
		byHeadword: make(map[string]uint32),
		folder:     chardef.NewFolder(),
	}
}

// SetDescription sets the free-text description stored in the dictionary.
func (b *Builder) SetDescription(desc string) {
	b.description = desc
}

// SetCreated overrides the creation time written to the header.
func (b *Builder) SetCreated(t time.Time) {
	b.created = t
}

// AddPOS registers a part-of-speech tuple and returns its id. Registering a
// tuple twice returns the id of the first registration.
func (b *Builder) AddPOS(pos []string) (uint16, error) {
	if len(pos) != POSDepth {
		return 0, fmt.Errorf("%w: part-of-speech %v has %d levels, need %d", ErrBuild, pos, len(pos), POSDepth)
	}
	key := posKey(pos)
	if id, ok := b.posIndex[key]; ok {
		return uint16(id), nil //nolint:gosec
	}
	if len(b.pos) >= 0xffff {
		return 0, fmt.Errorf("%w: too many parts-of-speech", ErrBuild)
	}
	for _, p := range pos {
		if len(p) > maxStringLen {
			return 0, fmt.Errorf("%w: part-of-speech name too long", ErrBuild)
		}
	}
	tuple := make([]string, POSDepth)
	copy(tuple, pos)
	b.pos = append(b.pos, tuple)
	b.posIndex[key] = len(b.pos) - 1
	return uint16(len(b.pos) - 1), nil //nolint:gosec
}

// SetMatrixSize dimensions the connection matrix. All costs are initially 0.
func (b *Builder) SetMatrixSize(numLeft, numRight int) error {
	if numLeft <= 0 || numRight <= 0 || numLeft > 0xffff || numRight > 0xffff {
		return fmt.Errorf("%w: invalid matrix size %d×%d", ErrBuild, numRight, numLeft)
	}
	b.numLeft, b.numRight = numLeft, numRight
	b.matrix = make([]int16, numLeft*numRight)
	return nil
}

// SetConnection sets the cost of a word with right-id rightID followed by a
// word with left-id leftID.
func (b *Builder) SetConnection(rightID, leftID int, cost int16) error {
	if b.matrix == nil {
		return fmt.Errorf("%w: matrix size not set", ErrBuild)
	}
	if rightID < 0 || rightID >= b.numRight || leftID < 0 || leftID >= b.numLeft {
		return fmt.Errorf("%w: connection (%d,%d) outside of %d×%d matrix",
			ErrBuild, rightID, leftID, b.numRight, b.numLeft)
	}
	b.matrix[rightID*b.numLeft+leftID] = cost
	return nil
}

// AddWord adds a word to the lexicon and returns its id.
func (b *Builder) AddWord(e Entry) (uint32, error) {
	if e.Surface == "" {
		return 0, fmt.Errorf("%w: word with empty surface", ErrBuild)
	}
	if len(e.ASplit) > maxSplitLen || len(e.BSplit) > maxSplitLen {
		return 0, fmt.Errorf("%w: split of %q too long", ErrBuild, e.Surface)
	}
	posID, err := b.AddPOS(e.POS)
	if err != nil {
		return 0, fmt.Errorf("word %q: %w", e.Surface, err)
	}
	key := b.folder.FoldKey(e.Surface)
	if len(key) > maxStringLen || len(e.Surface) > maxStringLen {
		return 0, fmt.Errorf("%w: word %.20q… too long", ErrBuild, e.Surface)
	}
	if e.Reading == "" {
		e.Reading = e.Surface
	}
	if e.Normalized == "" {
		e.Normalized = e.Surface
	}
	id := uint32(len(b.entries)) //nolint:gosec
	b.entries = append(b.entries, e)
	b.posIDs = append(b.posIDs, posID)
	b.keys = append(b.keys, key)
	if _, ok := b.byHeadword[e.Surface]; !ok {
		b.byHeadword[e.Surface] = id
	}
	return id, nil
}

// WordCount returns the number of words added so far.
func (b *Builder) WordCount() int {
	return len(b.entries)
}

// Build creates the dictionary image.
func (b *Builder) Build() ([]byte, error) {
	if b.matrix == nil {
		return nil, fmt.Errorf("%w: matrix size not set", ErrBuild)
	}
	sections := make(map[sectionID][]byte, len(requiredSections))
	var err error
	if sections[secMeta], err = b.meta(); err != nil {
		return nil, err
	}
	if sections[secPOS], err = b.posTable(); err != nil {
		return nil, err
	}
	sections[secConnection] = b.connection()
	if sections[secTrie], sections[secWordLists], err = b.trieAndLists(); err != nil {
		return nil, err
	}
	if sections[secParams], err = b.params(); err != nil {
		return nil, err
	}
	if sections[secInfoIndex], sections[secInfoData], err = b.infos(); err != nil {
		return nil, err
	}
	return b.assemble(sections), nil
}

// WriteTo builds the dictionary image and writes it to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	image, err := b.Build()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(image)
	return int64(n), err
}

func (b *Builder) meta() ([]byte, error) {
	buf := appendU32(nil, uint32(len(b.entries))) //nolint:gosec
	return appendStr(buf, b.description)
}

func (b *Builder) posTable() ([]byte, error) {
	buf := appendU16(nil, uint16(len(b.pos))) //nolint:gosec
	var err error
	for _, tuple := range b.pos {
		for _, p := range tuple {
			if buf, err = appendStr(buf, p); err != nil {
				return nil, err
			}
		}
	}
	return buf, nil
}

func (b *Builder) connection() []byte {
	buf := make([]byte, 0, 4+2*len(b.matrix))
	buf = appendU16(buf, uint16(b.numLeft))  //nolint:gosec
	buf = appendU16(buf, uint16(b.numRight)) //nolint:gosec
	for _, cost := range b.matrix {
		buf = appendI16(buf, cost)
	}
	return buf
}

// trieAndLists groups word ids by folded key. Keys are iterated in byte-wise
// order, as required for trie construction.
func (b *Builder) trieAndLists() ([]byte, []byte, error) {
	byKey := treemap.NewWithStringComparator()
	for id, key := range b.keys {
		var ids []uint32
		if v, found := byKey.Get(key); found {
			ids = v.([]uint32)
		}
		byKey.Put(key, append(ids, uint32(id))) //nolint:gosec
	}
	keys := make([][]byte, 0, byKey.Size())
	values := make([]int32, 0, byKey.Size())
	var lists []byte
	it := byKey.Iterator()
	for it.Next() {
		ids := it.Value().([]uint32)
		if len(ids) > 0xffff {
			return nil, nil, fmt.Errorf("%w: too many words for key %q", ErrBuild, it.Key())
		}
		keys = append(keys, []byte(it.Key().(string)))
		values = append(values, int32(len(lists))) //nolint:gosec
		lists = appendU16(lists, uint16(len(ids))) //nolint:gosec
		for _, id := range ids {
			lists = appendU32(lists, id)
		}
	}
	units, err := buildTrie(keys, values)
	if err != nil {
		return nil, nil, err
	}
	return units, lists, nil
}

func (b *Builder) params() ([]byte, error) {
	buf := make([]byte, 0, len(b.entries)*wordParamsSize)
	for _, e := range b.entries {
		if int(e.LeftID) >= b.numLeft || int(e.RightID) >= b.numRight {
			return nil, fmt.Errorf("%w: word %q has connection ids (%d,%d) outside of %d×%d matrix",
				ErrBuild, e.Surface, e.LeftID, e.RightID, b.numRight, b.numLeft)
		}
		buf = appendU16(buf, e.LeftID)
		buf = appendU16(buf, e.RightID)
		buf = appendI16(buf, e.Cost)
	}
	return buf, nil
}

func (b *Builder) infos() ([]byte, []byte, error) {
	index := make([]byte, 0, len(b.entries)*4)
	var data []byte
	var err error
	for id, e := range b.entries {
		index = appendU32(index, uint32(len(data))) //nolint:gosec
		if data, err = appendStr(data, e.Surface); err != nil {
			return nil, nil, err
		}
		data = appendU16(data, uint16(len(b.keys[id]))) //nolint:gosec
		data = appendU16(data, b.posIDs[id])
		if data, err = appendStr(data, e.Normalized); err != nil {
			return nil, nil, err
		}
		dictForm := int32(-1)
		if e.DictionaryForm != "" && e.DictionaryForm != e.Surface {
			ref, ok := b.byHeadword[e.DictionaryForm]
			if !ok {
				return nil, nil, fmt.Errorf("%w: dictionary form %q of word %q is not in the lexicon",
					ErrBuild, e.DictionaryForm, e.Surface)
			}
			dictForm = int32(ref) //nolint:gosec
		}
		data = appendI32(data, dictForm)
		if data, err = appendStr(data, e.Reading); err != nil {
			return nil, nil, err
		}
		for _, split := range [][]string{e.ASplit, e.BSplit} {
			if data, err = b.appendSplit(data, e.Surface, split); err != nil {
				return nil, nil, err
			}
		}
	}
	return index, data, nil
}

func (b *Builder) appendSplit(data []byte, surface string, split []string) ([]byte, error) {
	data = append(data, uint8(len(split))) //nolint:gosec
	for _, part := range split {
		ref, ok := b.byHeadword[part]
		if !ok {
			return nil, fmt.Errorf("%w: split %q of word %q is not in the lexicon", ErrBuild, part, surface)
		}
		data = appendU32(data, ref)
	}
	return data, nil
}

// assemble writes header, section table and section bodies. Bodies are
// aligned to 8 bytes.
func (b *Builder) assemble(sections map[sectionID][]byte) []byte {
	tableEnd := HeaderSize + len(requiredSections)*sectionEntrySize
	size := align8(tableEnd)
	for _, id := range requiredSections {
		size = align8(size + len(sections[id]))
	}
	image := make([]byte, 0, size)
	image = append(image, Magic...)
	image = appendU32(image, FormatVersion)
	image = appendU32(image, uint32(len(requiredSections))) //nolint:gosec
	image = appendU32(image, uint32(b.created.Unix()))      //nolint:gosec
	image = appendU32(image, uint32(b.created.Unix()>>32))  //nolint:gosec
	image = image[:HeaderSize]
	offset := align8(tableEnd)
	for _, id := range requiredSections {
		image = appendU32(image, uint32(id))
		image = appendU32(image, uint32(offset))            //nolint:gosec
		image = appendU32(image, uint32(len(sections[id]))) //nolint:gosec
		image = appendU32(image, 0)
		offset = align8(offset + len(sections[id]))
	}
	for _, id := range requiredSections {
		image = image[:align8(len(image))]
		image = append(image, sections[id]...)
	}
	image = image[:align8(len(image))]
	tracer().Infof("dictionary image: %d words, %d bytes", len(b.entries), len(image))
	return image
}

func align8(n int) int {
	return (n + 7) &^ 7
}
