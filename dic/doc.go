/*
Package dic implements the binary dictionary format of jmorph.

A dictionary is a single file. It is never read into memory, but memory-mapped
read-only; lookups operate directly on the mapped bytes. Only small tables
(part-of-speech names) are copied into Go memory when a dictionary is loaded,
and strings returned from lookups are always copies, so nothing handed out by
this package refers to the mapping after it has been closed.

File Layout

All integers are little-endian.

   0x00  magic "JMORPHD\x00"
   0x08  uint32 format version
   0x0C  uint32 number of sections n
   0x10  int64  creation time (unix seconds)
   0x18  reserved up to 0x40
   0x40  n × { uint32 id, uint32 offset, uint32 length, uint32 reserved }
   ...   section bodies

Sections are: meta data (word count, description), part-of-speech table,
connection cost matrix, double-array trie, word-id lists, word parameters
(left-id, right-id, cost), word info index and word info data.

Dictionaries are created with a Builder, usually fed from a lexicon source
file by ParseLexicon.

Typical Usage

  dict, err := dic.Open("system.jmd")
  if err != nil {
      ...
  }
  defer dict.Close()
  dict.Lexicon().CommonPrefixSearch(key, 0, func(wordID uint32, end int) {
      ...
  })

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021–26 Norbert Pillmayer <norbert@pillmayer.com>
*/
package dic

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to jmorph.dic .
func tracer() tracing.Trace {
	return tracing.Select("jmorph.dic")
}
