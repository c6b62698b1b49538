package termwidth

import (
	"strings"
	"unicode"

	jj "github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Category is one of 6 char categories as defined in UAX#11.
type Category int8

// East_Asian_Width properties
const (
	N  Category = iota // Neutral (Not East Asian)
	A                  // East Asian Ambiguous
	W                  // East Asian Wide
	Na                 // East Asian Narrow
	H                  // East Asian Halfwidth
	F                  // East Asian Fullwidth
)

func (c Category) String() string {
	switch c {
	case A:
		return "A"
	case W:
		return "W"
	case Na:
		return "Na"
	case H:
		return "H"
	case F:
		return "F"
	}
	return "N"
}

// WidthCategory returns the East_Asian_Width category of a rune.
func WidthCategory(r rune) Category {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianAmbiguous:
		return A
	case width.EastAsianWide:
		return W
	case width.EastAsianNarrow:
		return Na
	case width.EastAsianHalfwidth:
		return H
	case width.EastAsianFullwidth:
		return F
	}
	// Unassigned code points of the CJK blocks and of planes 2 and 3 are wide.
	if unicode.Is(cjkDefaultWide, r) {
		return W
	}
	return N
}

var cjkDefaultWide = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3400, Hi: 0x4dbf, Stride: 1},
		{Lo: 0x4e00, Hi: 0x9fff, Stride: 1},
		{Lo: 0xf900, Hi: 0xfaff, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x20000, Hi: 0x2fffd, Stride: 1},
		{Lo: 0x30000, Hi: 0x3fffd, Stride: 1},
	},
}

// Context represents information about the output environment.
type Context struct {
	EastAsian bool            // ambiguous characters are wide
	Script    language.Script // ISO 15924 script identifier
	Locale    string          // IETF locale string
}

// EastAsianContext is a context for Japanese terminals.
var EastAsianContext = &Context{
	EastAsian: true,
	Script:    language.MustParseScript("Jpan"),
	Locale:    "ja-JP",
}

// LatinContext is a context for western terminals.
var LatinContext = &Context{
	Script: language.MustParseScript("Latn"),
	Locale: "en-US",
}

// ContextFromEnvironment derives a context from the locale of the user.
// If no locale is set, LatinContext is returned.
func ContextFromEnvironment() *Context {
	locale, err := jj.DetectIETF()
	if err != nil {
		tracer().Debugf("no user locale: %v", err)
		return LatinContext
	}
	tracer().Debugf("user locale is %s", locale)
	return ContextForLocale(locale)
}

// ContextForLocale returns a context for an IETF locale like "ja-JP".
func ContextForLocale(locale string) *Context {
	tag, err := language.Parse(locale)
	if err != nil {
		tracer().Debugf("cannot parse locale %q: %v", locale, err)
		return LatinContext
	}
	script, _ := tag.Script()
	return &Context{
		EastAsian: isEastAsian(script, tag),
		Script:    script,
		Locale:    locale,
	}
}

func isEastAsian(script language.Script, tag language.Tag) bool {
	switch script.String() {
	case "Bopo", "Hanb", "Hani", "Hans", "Hant", "Hang", "Hira", "Jpan",
		"Kana", "Kore", "Yiii":
		return true
	}
	_, index, confidence := eastAsianMatcher.Match(tag)
	return index > 0 && confidence != language.No
}

var eastAsianMatcher = language.NewMatcher([]language.Tag{
	language.English, // fallback
	language.Japanese,
	language.Chinese,
	language.Korean,
})

// RuneWidth returns the width of r in terminal cells: 0, 1 or 2.
// A nil context is treated as LatinContext.
func RuneWidth(r rune, ctx *Context) int {
	if r == 0 || unicode.IsControl(r) || unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return 0
	}
	switch WidthCategory(r) {
	case W, F:
		return 2
	case A:
		if ctx != nil && ctx.EastAsian {
			return 2
		}
	}
	return 1
}

// StringWidth returns the width of s in terminal cells.
func StringWidth(s string, ctx *Context) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r, ctx)
	}
	return w
}

// Pad appends blanks to s until it is n cells wide.
func Pad(s string, n int, ctx *Context) string {
	w := StringWidth(s, ctx)
	if w >= n {
		return s
	}
	return s + strings.Repeat(" ", n-w)
}
