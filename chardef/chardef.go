/*
Package chardef holds embedded character definitions for morphological analysis.

Analyzers need to know a little about characters: whether they are kanji,
kana, alphabetic letters and so on. Categories influence where words may
begin and how far an out-of-vocabulary word extends. Other analyzers read this
information from a character definition file; here the categories are
compiled from Unicode range tables, so a dictionary file is all an analyzer
needs at runtime.

Package chardef additionally provides the folding of input text (lower-casing
and NFKC normalization) which has to be applied consistently to dictionary
keys and to analyzed text.

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021–26 Norbert Pillmayer <norbert@pillmayer.com>
*/
package chardef

import (
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/rangetable"
)

// tracer traces to jmorph.chardef .
func tracer() tracing.Trace {
	return tracing.Select("jmorph.chardef")
}

// Category is a set of character categories. A character may belong to more
// than one category, e.g. '一' is KANJI and KANJINUMERIC.
type Category uint32

// Character categories.
const (
	Default Category = 1 << iota
	Space
	Kanji
	Symbol
	Numeric
	Alpha
	Hiragana
	Katakana
	KanjiNumeric
	Greek
	Cyrillic
)

var categoryNames = [...]string{
	"DEFAULT", "SPACE", "KANJI", "SYMBOL", "NUMERIC", "ALPHA",
	"HIRAGANA", "KATAKANA", "KANJINUMERIC", "GREEK", "CYRILLIC",
}

func (c Category) String() string {
	if c == 0 {
		return "NONE"
	}
	var names []string
	for i, name := range categoryNames {
		if c&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// Has is true if c contains all categories of other.
func (c Category) Has(other Category) bool {
	return c&other == other
}

type categoryTable struct {
	cat   Category
	table *unicode.RangeTable
}

var (
	setupOnce sync.Once
	tables    []categoryTable
)

// SetupCategories creates the code-point range tables for all categories.
// (Concurrency-safe).
//
// CategoryOf will call this transparently if it has not been called beforehand.
func SetupCategories() {
	setupOnce.Do(setupCategories)
}

func setupCategories() {
	tables = []categoryTable{
		{Space, unicode.White_Space},
		{Kanji, unicode.Han},
		{KanjiNumeric, rangetable.New('〇', '一', '二', '三', '四', '五', '六', '七', '八',
			'九', '十', '百', '千', '万', '億', '兆')},
		{Hiragana, unicode.Hiragana},
		// prolonged sound marks belong to script Common, but behave as katakana
		{Katakana, rangetable.Merge(unicode.Katakana, rangetable.New('ー', 'ｰ'))},
		{Numeric, unicode.Nd},
		{Alpha, unicode.Latin},
		{Greek, unicode.Greek},
		{Cyrillic, unicode.Cyrillic},
		{Symbol, rangetable.Merge(unicode.P, unicode.S)},
	}
	tracer().Debugf("character categories initialized: %d tables", len(tables))
}

// CategoryOf returns the set of categories for a code-point.
// Code-points without any specific category are of category Default.
func CategoryOf(r rune) Category {
	SetupCategories()
	var c Category
	for _, t := range tables {
		if unicode.Is(t.table, r) {
			c |= t.cat
		}
	}
	if c == 0 {
		return Default
	}
	return c
}

// Categories for which runs of characters form a single word candidate.
const scriptRuns = Alpha | Greek | Cyrillic

// CanBeginWord is true if a word may begin at a character of category cur,
// given its predecessor is of category prev. Words never begin in the middle
// of a run of alphabetic, Greek or Cyrillic letters.
//
// The first character of a text may always begin a word.
func CanBeginWord(prev, cur Category) bool {
	return cur&prev&scriptRuns == 0
}
