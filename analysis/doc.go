/*
Package analysis implements morphological analysis of Japanese text.

An Engine combines a dictionary with a configuration for words not found in
the dictionary (out-of-vocabulary words, OOV). Text is folded (lower-cased
and NFKC-normalized), then a lattice of all candidate words is built and the
path of least cost is searched with the Viterbi algorithm. Costs come from
the words themselves and from the connection matrix of the dictionary.

The best path consists of long units (split mode C). For split modes B and A,
compound words are replaced by the parts listed in the dictionary.

Typical Usage

  dict, err := dic.Open("system.jmd")
  …
  engine, err := analysis.NewEngineWithEmbeddedCharDef(analysis.DefaultConfig(), dict)
  …
  tok, err := analysis.NewStatelessTokenizer(engine)
  engine.Release()  // tok holds its own reference
  defer tok.Close()
  morphemes, err := tok.Tokenize("私は国家公務員です", jmorph.ModeB)

Ownership

Engines are reference counted. The dictionary belongs to the engine as soon
as the engine has been created; it is closed (and its file unmapped) when the
last reference is released. Every tokenization holds a reference for its
duration, therefore releasing an engine never invalidates a running
analysis.

Offsets of morphemes are byte positions within the analyzed string, not
within the folded text.

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021–26 Norbert Pillmayer <norbert@pillmayer.com>
*/
package analysis

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to jmorph.analysis .
func tracer() tracing.Trace {
	return tracing.Select("jmorph.analysis")
}
