package boundary

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/npillmayer/jmorph"
	"github.com/npillmayer/jmorph/analysis"
	"github.com/npillmayer/jmorph/internal/testutil"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T) *Handle {
	t.Helper()
	h, err := Load(testutil.BuildDictionary(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestLoadAndTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.boundary")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelDebug)
	//
	h := load(t)
	records, err := h.Tokenize([]byte(testutil.Sentence), jmorph.ModeB)
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, int32(0), records[0].Begin)
	assert.Equal(t, int32(len(testutil.Sentence)), records[len(records)-1].End)
	assert.Equal(t, "公務員", records[3].Surface)
	first := records[0]
	assert.Equal(t, "私", first.Surface)
	assert.Equal(t, Some("ワタシ"), first.Reading)
	assert.Equal(t, Some("私"), first.DictionaryForm)
	assert.Equal(t, Some("私"), first.NormalizedForm)
	assert.Equal(t, Some(`["代名詞","*","*","*","*","*"]`), first.POS)
	for i, r := range records {
		assert.LessOrEqual(t, r.Begin, r.End)
		if i > 0 {
			assert.Equal(t, records[i-1].End, r.Begin)
		}
	}
}

func TestLoadFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.boundary")
	defer teardown()
	//
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = Load(filepath.Join(t.TempDir(), "missing.jmd"))
	assert.Error(t, err)
	_, err = Load(testutil.WriteFile(t, "empty.jmd", nil))
	assert.Error(t, err)
	_, err = Load(testutil.WriteFile(t, "garbage.jmd", []byte("JMORPHD\x00 this is not a dictionary")))
	assert.Error(t, err)
	//
	cfg := analysis.DefaultConfig()
	cfg.OOVProviders = nil
	_, err = LoadWithConfig(testutil.BuildDictionary(t), cfg)
	assert.ErrorIs(t, err, analysis.ErrConfig)
}

func TestTokenizeRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.boundary")
	defer teardown()
	//
	h := load(t)
	_, err := h.Tokenize([]byte("私\xff"), jmorph.ModeB)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	_, err = h.Tokenize(nil, jmorph.ModeB)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = h.Tokenize([]byte("私"), jmorph.Mode(9))
	assert.ErrorIs(t, err, jmorph.ErrInvalidMode)
	var none *Handle
	_, err = none.Tokenize([]byte("私"), jmorph.ModeB)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NoError(t, none.Close())
	//
	records, err := h.Tokenize([]byte{}, jmorph.ModeB)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestTokenizeIsRepeatable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.boundary")
	defer teardown()
	//
	h := load(t)
	text := []byte("ＢＡＮＡＮＡは国家公務員ですか？")
	for _, mode := range []jmorph.Mode{jmorph.ModeA, jmorph.ModeB, jmorph.ModeC} {
		first, err := h.Tokenize(text, mode)
		require.NoError(t, err)
		second, err := h.Tokenize(text, mode)
		require.NoError(t, err)
		assert.Equal(t, first, second, "mode %s", mode)
	}
}

func TestClose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.boundary")
	defer teardown()
	//
	h, err := Load(testutil.BuildDictionary(t))
	require.NoError(t, err)
	storage := h.Dictionary().Storage()
	require.NoError(t, h.Close())
	assert.True(t, storage.Closed(), "last owner unmaps the dictionary")
	assert.NoError(t, h.Close())
	_, err = h.Tokenize([]byte("私"), jmorph.ModeB)
	assert.ErrorIs(t, err, analysis.ErrClosed)
}

func TestCloseWaitsForPinnedEngine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.boundary")
	defer teardown()
	//
	h := load(t)
	storage := h.Dictionary().Storage()
	require.True(t, h.Engine().TryRetain(), "running analysis pins the engine")
	require.NoError(t, h.Close())
	assert.False(t, storage.Closed(), "dictionary stays mapped while pinned")
	_, err := h.Tokenize([]byte(testutil.Sentence), jmorph.ModeB)
	assert.ErrorIs(t, err, analysis.ErrClosed)
	require.NoError(t, h.Engine().Release())
	assert.True(t, storage.Closed(), "last release unmaps the dictionary")
	assert.False(t, h.Engine().TryRetain())
}

// --- Marshaling ------------------------------------------------------------

type fakeMorpheme struct {
	surface, reading, dictForm, normForm string
	pos                                  []string
	begin, end                           int
}

func (m fakeMorpheme) Surface() string        { return m.surface }
func (m fakeMorpheme) ReadingForm() string    { return m.reading }
func (m fakeMorpheme) DictionaryForm() string { return m.dictForm }
func (m fakeMorpheme) NormalizedForm() string { return m.normForm }
func (m fakeMorpheme) PartOfSpeech() []string { return m.pos }
func (m fakeMorpheme) Begin() int             { return m.begin }
func (m fakeMorpheme) End() int               { return m.end }
func (m fakeMorpheme) IsOOV() bool            { return false }

func TestMarshalDegradesFields(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.boundary")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelDebug)
	//
	ms := []jmorph.Morpheme{
		fakeMorpheme{surface: "a", reading: "r\x00", dictForm: "a", normForm: "a",
			pos: []string{"x", "y"}, begin: 0, end: 1},
		fakeMorpheme{surface: "b\x00", begin: 1, end: 3},
		fakeMorpheme{surface: "c", reading: "", dictForm: "\x00", normForm: "c",
			pos: []string{"<&>", "\x00"}, begin: 3, end: 4},
	}
	records, err := Marshal(ms)
	require.NoError(t, err)
	require.Len(t, records, 2, "morpheme with NUL in surface is dropped")
	assert.True(t, records[0].Reading.IsAbsent())
	assert.Equal(t, Some("a"), records[0].DictionaryForm)
	assert.Equal(t, Some(`["x","y"]`), records[0].POS)
	assert.Equal(t, "c", records[1].Surface)
	assert.Equal(t, Some(""), records[1].Reading, "empty is not absent")
	assert.True(t, records[1].DictionaryForm.IsAbsent())
	assert.Equal(t, Some(`["<&>","\u0000"]`), records[1].POS)
	assert.Equal(t, [2]int32{3, 4}, [2]int32{records[1].Begin, records[1].End})
	//
	records, err = Marshal(nil)
	require.NoError(t, err)
	assert.NotNil(t, records)
}

func TestMarshalOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.boundary")
	defer teardown()
	//
	large := math.MaxInt32
	_, err := Marshal([]jmorph.Morpheme{fakeMorpheme{surface: "a", begin: 0, end: large}})
	assert.NoError(t, err)
	large++
	_, err = Marshal([]jmorph.Morpheme{fakeMorpheme{surface: "a", begin: 0, end: large}})
	assert.ErrorIs(t, err, ErrOffsetOverflow)
	_, err = Marshal([]jmorph.Morpheme{fakeMorpheme{surface: "a", begin: -1, end: 0}})
	assert.ErrorIs(t, err, ErrOffsetOverflow)
	_, err = Marshal([]jmorph.Morpheme{fakeMorpheme{surface: "a", begin: 5, end: 4}})
	assert.ErrorIs(t, err, ErrMalformedSpan)
}

func TestFieldJSON(t *testing.T) {
	b, err := Some("ガス").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"ガス"`, string(b))
	b, err = Absent.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
	s, ok := Absent.Get()
	assert.False(t, ok)
	assert.Equal(t, "", s)
	assert.Equal(t, "<absent>", Absent.String())
}
