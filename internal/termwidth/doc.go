/*
Package termwidth computes the display width of text on fixed-pitch
terminals, following the East_Asian_Width property of Unicode® Standard
Annex #11.

Some characters, such as the ideographs, are always wide; others are always
narrow. Characters of category “ambiguous” are narrow in western contexts
and wide in East Asian ones, so width calculations need a Context. The
context of the user is derived from the locale environment (LC_ALL, LANG).

Determining the display width is a heuristic. Results depend on terminals
and fonts, and should be treated as an approximation.

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021–26 Norbert Pillmayer <norbert@pillmayer.com>
*/
package termwidth

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to jmorph.termwidth .
func tracer() tracing.Trace {
	return tracing.Select("jmorph.termwidth")
}
