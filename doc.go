/*
Package jmorph is about morphological analysis of Japanese text.

Description

Japanese is written without spaces between words. Breaking a Japanese
sentence into words therefore cannot be done by looking at code-point classes
alone (as UAX#29 does for most scripts); reliable detection of word
boundaries requires dictionary lookup. A morphological analyzer looks up
every dictionary word starting at every position of the input, arranges the
candidates in a lattice and selects the cheapest path through it, according
to word costs and connection costs between adjacent parts of speech.

The result is a sequence of morphemes. Each morpheme carries its surface
form (the text as it appears in the input), a reading, a dictionary
(lemma) form, a normalized form, a part-of-speech tuple, and its byte
offsets within the input.

Split Modes

Compound words may be reported at three levels of granularity:

   ModeA   short units     国家 / 公務 / 員
   ModeB   medium units    国家 / 公務員
   ModeC   long units      国家公務員

The dictionary records how each long unit splits into shorter ones; the
analyzer always searches for long units and splits them afterwards.

Contents

Base package jmorph holds the types shared by all sub-packages: split modes,
the Morpheme and Tokenizer interfaces, and the mapping of split modes from
the C ABI. Package dic implements the dictionary file format and its
memory-mapped storage, package chardef the embedded character definitions,
and package analysis the analysis engine itself. The C-callable shared
library lives in cmd/libjmorph, a command line tool in cmd/jmorph.

BSD License

Copyright (c) 2017–26, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package jmorph

// Version is the version of this module, reported through the C ABI.
const Version = "0.3.0"
