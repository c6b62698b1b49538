package analysis

import (
	"strings"
	"testing"

	"github.com/npillmayer/jmorph"
	"github.com/npillmayer/jmorph/internal/testutil"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineReferences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.analysis")
	defer teardown()
	//
	dict := testutil.OpenDictionary(t)
	engine, err := NewEngineWithEmbeddedCharDef(DefaultConfig(), dict)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.Refs())
	tok, err := NewStatelessTokenizer(engine)
	require.NoError(t, err)
	assert.Equal(t, 2, engine.Refs())
	engine.Retain()
	assert.Equal(t, 3, engine.Refs())
	require.NoError(t, engine.Release())
	require.NoError(t, engine.Release())
	assert.Equal(t, 1, engine.Refs())
	assert.False(t, dict.Storage().Closed(), "tokenizer still holds a reference")
	//
	ms, err := tok.Tokenize(testutil.Sentence, jmorph.ModeC)
	require.NoError(t, err)
	require.NoError(t, tok.Close())
	assert.Equal(t, 0, engine.Refs())
	assert.True(t, dict.Storage().Closed(), "last release closes the dictionary")
	assert.Equal(t, "国家公務員", ms[2].Surface(), "morphemes outlive the engine")
	//
	assert.False(t, engine.TryRetain())
	assert.Equal(t, 0, engine.Refs(), "a released engine is never revived")
	assert.ErrorIs(t, engine.Release(), ErrReleased)
	assert.Panics(t, engine.Retain)
	_, err = NewStatelessTokenizer(engine)
	assert.ErrorIs(t, err, ErrReleased)
	_, err = NewStatelessTokenizer(nil)
	assert.ErrorIs(t, err, ErrReleased)
}

func TestEngineConfigValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.analysis")
	defer teardown()
	//
	dict := testutil.OpenDictionary(t)
	rule := DefaultConfig().OOVProviders[0]
	withRule := func(modify func(*OOVRule)) Config {
		r := rule
		r.POS = append([]string(nil), rule.POS...)
		modify(&r)
		return Config{OOVProviders: []OOVRule{r}}
	}
	configs := map[string]Config{
		"none":       {},
		"two":        {OOVProviders: []OOVRule{rule, rule}},
		"class":      withRule(func(r *OOVRule) { r.Class = "MeCabOOV" }),
		"pos-short":  withRule(func(r *OOVRule) { r.POS = r.POS[:3] }),
		"left-id":    withRule(func(r *OOVRule) { r.LeftID = 1 }),
		"right-id":   withRule(func(r *OOVRule) { r.RightID = -1 }),
		"cost-range": withRule(func(r *OOVRule) { r.Cost = 40000 }),
	}
	for name, cfg := range configs {
		_, err := NewEngineWithEmbeddedCharDef(cfg, dict)
		assert.ErrorIs(t, err, ErrConfig, name)
	}
	assert.False(t, dict.Storage().Closed(), "failed construction leaves dictionary open")
	_, err := NewEngineWithEmbeddedCharDef(DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestEngineExtendsPOS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.analysis")
	defer teardown()
	//
	dict := testutil.OpenDictionary(t)
	cfg := DefaultConfig()
	cfg.OOVProviders[0].POS = []string{"補助記号", "一般", "*", "*", "*", "*"}
	engine, err := NewEngineWithEmbeddedCharDef(cfg, dict)
	require.NoError(t, err)
	defer engine.Release()
	assert.Equal(t, dict.Grammar().POSCount()+1, engine.POSCount())
	pos, ok := engine.POS(dict.Grammar().POSCount())
	require.True(t, ok)
	assert.Equal(t, cfg.OOVProviders[0].POS, pos)
	_, ok = engine.POS(engine.POSCount())
	assert.False(t, ok)
	//
	tok, err := NewStatelessTokenizer(engine)
	require.NoError(t, err)
	defer tok.Close()
	ms, err := tok.Tokenize("猫", jmorph.ModeB)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, "補助記号", ms[0].PartOfSpeech()[0])
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(strings.NewReader(`{
		"oovProviderPlugin": [
			{ "class": "SimpleOOV", "oovPOS": ["名詞","固有名詞","一般","*","*","*"],
			  "leftId": 0, "rightId": 0, "cost": 20000 }
		]
	}`))
	require.NoError(t, err)
	require.Len(t, cfg.OOVProviders, 1)
	assert.Equal(t, 20000, cfg.OOVProviders[0].Cost)
	assert.Equal(t, "固有名詞", cfg.OOVProviders[0].POS[1])
	//
	cfg, err = ReadConfig(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	_, err = ReadConfig(strings.NewReader(`{"oovProviderPlugin": 7}`))
	assert.ErrorIs(t, err, ErrConfig)
}
