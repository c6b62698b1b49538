package dic_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/npillmayer/jmorph/chardef"
	"github.com/npillmayer/jmorph/dic"
	"github.com/npillmayer/jmorph/internal/testutil"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, lx *dic.Lexicon, key string) []dic.WordInfo {
	t.Helper()
	var infos []dic.WordInfo
	err := lx.CommonPrefixSearch([]byte(key), 0, func(wordID uint32, end int) {
		wi, err := lx.WordInfo(wordID)
		require.NoError(t, err)
		assert.Equal(t, wi.HeadwordLength, end)
		infos = append(infos, wi)
	})
	require.NoError(t, err)
	return infos
}

func TestOpenDictionary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.dic")
	defer teardown()
	//
	dict := testutil.OpenDictionary(t)
	assert.Equal(t, "jmorph test dictionary", dict.Description())
	assert.Equal(t, 13, dict.WordCount())
	assert.Equal(t, 13, dict.Lexicon().WordCount())
	assert.Equal(t, dic.FormatVersion, dict.Header().Version)
	assert.True(t, testutil.Created.Equal(dict.Header().Created))
	assert.True(t, dict.Storage().IsMapped())
	g := dict.Grammar()
	assert.Equal(t, 1, g.LeftIDs())
	assert.Equal(t, 1, g.RightIDs())
	assert.Equal(t, int16(0), g.ConnectCost(0, 0))
	assert.Equal(t, dic.InhibitedConnection, g.ConnectCost(1, 0))
	assert.Equal(t, dic.InhibitedConnection, g.ConnectCost(0, 1))
}

func TestGrammarPOS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.dic")
	defer teardown()
	//
	g := testutil.OpenDictionary(t).Grammar()
	noun := []string{"名詞", "普通名詞", "一般", "*", "*", "*"}
	id, ok := g.POSID(noun)
	require.True(t, ok)
	assert.Equal(t, 0, id, "@pos directive registers first")
	pos, ok := g.POS(id)
	require.True(t, ok)
	assert.Equal(t, noun, pos)
	pos[0] = "changed"
	again, _ := g.POS(id)
	assert.Equal(t, "名詞", again[0], "POS must return a copy")
	_, ok = g.POS(g.POSCount())
	assert.False(t, ok)
	_, ok = g.POSID([]string{"unknown", "*", "*", "*", "*", "*"})
	assert.False(t, ok)
}

func TestLexiconPrefixSearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.dic")
	defer teardown()
	//
	lx := testutil.OpenDictionary(t).Lexicon()
	infos := lookup(t, lx, "国家公務員です")
	require.Len(t, infos, 2)
	assert.Equal(t, "国家", infos[0].Headword)
	assert.Equal(t, "国家公務員", infos[1].Headword)
	assert.Equal(t, "コッカコウムイン", infos[1].ReadingForm)
	assert.Equal(t, "国家公務員", infos[1].DictionaryForm)
	assert.Equal(t, int32(-1), infos[1].DictionaryFormWordID)
	assert.Len(t, infos[1].ASplit, 3)
	require.Len(t, infos[1].BSplit, 2)
	part, err := lx.WordInfo(infos[1].BSplit[1])
	require.NoError(t, err)
	assert.Equal(t, "公務員", part.Headword)
	assert.Empty(t, lookup(t, lx, "す国家"), "no word starts with す")
	assert.Empty(t, lookup(t, lx, ""))
}

func TestLexiconForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.dic")
	defer teardown()
	//
	lx := testutil.OpenDictionary(t).Lexicon()
	infos := lookup(t, lx, "行った")
	require.Len(t, infos, 1)
	assert.Equal(t, "行っ", infos[0].Headword)
	assert.Equal(t, "行く", infos[0].DictionaryForm)
	assert.Equal(t, "イッ", infos[0].ReadingForm)
	infos = lookup(t, lx, "附属")
	require.Len(t, infos, 1)
	assert.Equal(t, "付属", infos[0].NormalizedForm)
	assert.Equal(t, "附属", infos[0].DictionaryForm)
	infos = lookup(t, lx, "私")
	require.Len(t, infos, 1)
	assert.Equal(t, "私", infos[0].NormalizedForm, "normalized form defaults to surface")
	assert.Nil(t, infos[0].ASplit)
}

func TestLexiconParams(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.dic")
	defer teardown()
	//
	lx := testutil.OpenDictionary(t).Lexicon()
	var ids []uint32
	require.NoError(t, lx.CommonPrefixSearch([]byte("国家公務員"), 0, func(wordID uint32, _ int) {
		ids = append(ids, wordID)
	}))
	require.Len(t, ids, 2)
	p, err := lx.Params(ids[0])
	require.NoError(t, err)
	assert.Equal(t, dic.WordParams{LeftID: 0, RightID: 0, Cost: 2000}, p)
	p, err = lx.Params(ids[1])
	require.NoError(t, err)
	assert.Equal(t, int16(3000), p.Cost)
	_, err = lx.Params(uint32(lx.WordCount()))
	assert.ErrorIs(t, err, dic.ErrNoSuchWord)
	_, err = lx.WordInfo(uint32(lx.WordCount()))
	assert.ErrorIs(t, err, dic.ErrNoSuchWord)
}

func TestFoldedKeys(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.dic")
	defer teardown()
	//
	lx := testutil.OpenDictionary(t).Lexicon()
	key := chardef.NewFolder().FoldKey("ｶﾞｽ")
	assert.Equal(t, "ガス", key)
	infos := lookup(t, lx, key)
	require.Len(t, infos, 1)
	assert.Equal(t, 6, infos[0].HeadwordLength)
}

func TestCloseIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.dic")
	defer teardown()
	//
	dict, err := dic.Open(testutil.BuildDictionary(t))
	require.NoError(t, err)
	assert.NoError(t, dict.Close())
	assert.True(t, dict.Storage().Closed())
	assert.NoError(t, dict.Close())
	_, err = dic.Load(dict.Storage())
	assert.ErrorIs(t, err, dic.ErrClosed)
}

func TestOpenFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.dic")
	defer teardown()
	//
	_, err := dic.Open("/nonexistent/path/to/system.jmd")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = dic.Open(t.TempDir())
	assert.Error(t, err)
	_, err = dic.Open(testutil.WriteFile(t, "empty.jmd", nil))
	assert.ErrorIs(t, err, dic.ErrEmpty)
	_, err = dic.Open(testutil.WriteFile(t, "text.jmd", bytes.Repeat([]byte("not a dictionary "), 8)))
	assert.ErrorIs(t, err, dic.ErrInvalidMagic)
	_, err = dic.Open(testutil.WriteFile(t, "short.jmd", []byte(dic.Magic)))
	assert.ErrorIs(t, err, dic.ErrCorrupt)
}

func TestLoadCorruptImages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.dic")
	defer teardown()
	//
	image := testutil.BuildImage(t)
	wrongVersion := append([]byte(nil), image...)
	binary.LittleEndian.PutUint32(wrongVersion[8:], 99)
	_, err := dic.Load(dic.InMemory(wrongVersion))
	assert.ErrorIs(t, err, dic.ErrUnsupportedVersion)
	//
	truncated := image[:len(image)/2]
	_, err = dic.Load(dic.InMemory(truncated))
	assert.ErrorIs(t, err, dic.ErrCorrupt)
	//
	badSection := append([]byte(nil), image...)
	binary.LittleEndian.PutUint32(badSection[dic.HeaderSize+8:], 0xffffff)
	_, err = dic.Load(dic.InMemory(badSection))
	assert.ErrorIs(t, err, dic.ErrCorrupt)
	//
	_, err = dic.Load(dic.InMemory(nil))
	assert.ErrorIs(t, err, dic.ErrEmpty)
	_, err = dic.Load(nil)
	assert.ErrorIs(t, err, dic.ErrClosed)
}

func TestLoadInMemory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.dic")
	defer teardown()
	//
	dict, err := dic.Load(dic.InMemory(testutil.BuildImage(t)))
	require.NoError(t, err)
	defer dict.Close()
	assert.False(t, dict.Storage().IsMapped())
	assert.Len(t, lookup(t, dict.Lexicon(), "私は"), 1)
}
