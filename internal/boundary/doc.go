/*
Package boundary prepares analysis results for clients outside of Go.

A Handle bundles an analysis engine with a tokenizer bound to it. Handles
are created from a single dictionary file by Load; no other configuration
files are read. Tokenize returns flat Records instead of morphemes: every
field is a plain string that is either present or absent, and offsets are
narrowed to 32 bits. This is the shape in which results cross the C
boundary of package libjmorph.

Failures are reported as errors. Invalid arguments are returned silently;
failures to acquire resources are additionally traced on level Error, which
is the only diagnostic channel available to C clients.

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021–26 Norbert Pillmayer <norbert@pillmayer.com>
*/
package boundary

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to jmorph.boundary .
func tracer() tracing.Trace {
	return tracing.Select("jmorph.boundary")
}

// Errors returned at the boundary.
var (
	ErrInvalidArgument = errors.New("boundary: invalid argument")
	ErrInvalidEncoding = errors.New("boundary: text is not valid UTF-8")
	ErrOffsetOverflow  = errors.New("boundary: offset not representable as int32")
	ErrMalformedSpan   = errors.New("boundary: morpheme ends before it begins")
)
