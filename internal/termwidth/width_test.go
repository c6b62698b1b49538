package termwidth

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// 'A' Na, HEBREW POINT METEG N, DIVIDES A, LEFT ANGLE BRACKET W,
// FULLWIDTH LATIN SMALL LETTER A F
var probes = [...]rune{'A', 0x05BD, 0x2223, 0x3008, 0xFF41}

func TestCategories(t *testing.T) {
	cats := [...]Category{Na, N, A, W, F}
	for i, r := range probes {
		assert.Equal(t, cats[i], WidthCategory(r), "%#U", r)
	}
	assert.Equal(t, H, WidthCategory('ｶ'))
	assert.Equal(t, W, WidthCategory(0x9FFE), "unassigned CJK")
	assert.Equal(t, "Na", Na.String())
}

func TestRuneWidth(t *testing.T) {
	latin, eastAsian := 0, 0
	for _, r := range probes {
		latin += RuneWidth(r, LatinContext)
		eastAsian += RuneWidth(r, EastAsianContext)
	}
	assert.Equal(t, 6, latin)
	assert.Equal(t, 7, eastAsian)
	assert.Equal(t, 1, RuneWidth(0x2223, nil))
	assert.Equal(t, 0, RuneWidth('\t', nil))
	assert.Equal(t, 0, RuneWidth(0x3099, nil), "combining voiced sound mark")
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 10, StringWidth("国家公務員", LatinContext))
	assert.Equal(t, 11, StringWidth("ｶﾞｽはbanana", LatinContext))
	assert.Equal(t, 0, StringWidth("", EastAsianContext))
	assert.Equal(t, "私は  |", Pad("私は", 6, nil)+"|")
	assert.Equal(t, "公務員", Pad("公務員", 4, nil))
}

func TestContextForLocale(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.termwidth")
	defer teardown()
	tracer().SetTraceLevel(tracing.LevelDebug)
	//
	for locale, ea := range map[string]bool{
		"ja-JP": true,
		"zh-HK": true,
		"ko":    true,
		"en-US": false,
		"de-AT": false,
		"!!":    false,
	} {
		assert.Equal(t, ea, ContextForLocale(locale).EastAsian, locale)
	}
}

func TestContextFromEnvironment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "jmorph.termwidth")
	defer teardown()
	//
	t.Setenv("LC_ALL", "ja_JP.UTF-8")
	ctx := ContextFromEnvironment()
	assert.Equal(t, "ja-JP", ctx.Locale)
	assert.True(t, ctx.EastAsian)
	//
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "")
	assert.Equal(t, LatinContext, ContextFromEnvironment())
}
