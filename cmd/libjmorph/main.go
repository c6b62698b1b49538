/*
Command libjmorph is a C library for Japanese morphological analysis.

Build it with

	go build -buildmode=c-shared -o libjmorph.so ./cmd/libjmorph

(or -buildmode=c-archive for static linking, e.g. on iOS). The generated
header libjmorph.h includes jmorph.h, which has to be shipped with it, and
declares the following functions:

	jmorph_handle jmorph_init(const char *dictionary_path);
	jmorph_token **jmorph_tokenize(jmorph_handle h, const char *text,
	                               jmorph_mode mode, size_t *out_count);
	void jmorph_free_token(jmorph_token *token);
	void jmorph_free_tokens(jmorph_token **tokens, size_t count);
	void jmorph_free_tokenizer(jmorph_handle h);
	const char *jmorph_version(void);

Ownership

Everything returned by jmorph_tokenize belongs to the caller and has to be
released with jmorph_free_tokens (or element-wise with jmorph_free_token and
free(3) for the array). Handles are released with jmorph_free_tokenizer.
The version string is static and must not be freed.

A handle is a number, not a pointer. Once released, a handle never becomes
valid again; using it is harmless and yields the failure value of the
respective function. Releasing a handle while another thread tokenizes with
it is a caller error, but it does not unmap the dictionary under the running
analysis.

Failures are signaled by 0, NULL and a count of 0. Diagnostics are written
to stderr; set JMORPH_LOG_LEVEL=Debug for verbose output.

Strings are UTF-8 and NUL-terminated. Offsets are byte offsets into text.

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021–26 Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

/*
#include <stdlib.h>
#include <string.h>
#include "jmorph.h"
*/
import "C"

import (
	"math"
	"unsafe"

	"github.com/npillmayer/jmorph"
	"github.com/npillmayer/jmorph/internal/boundary"
	"github.com/npillmayer/jmorph/internal/config"
	"github.com/npillmayer/jmorph/internal/handle"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to jmorph.lib .
func tracer() tracing.Trace {
	return tracing.Select("jmorph.lib")
}

// handles holds every live tokenizer handle.
var handles = handle.NewTable[*boundary.Handle]()

// tokenOf copies a record to C memory.
var tokenOf = newToken

// maxTokenCount bounds the number of tokens of a single result. Texts whose
// offsets do not fit into int32 are rejected, so no result comes near it.
const maxTokenCount = math.MaxInt32

// version is never freed.
var version = C.CString(jmorph.Version)

func init() {
	cfg, err := config.Load(config.LoadOptions{Defaults: config.DefaultConfig(), NoFile: true})
	if err == nil {
		err = cfg.SetupTracing()
	}
	if err != nil {
		tracing.Errorf("libjmorph: %v", err)
	}
}

func main() {}

// guard stops a panic from unwinding into C. It has to be deferred directly.
func guard(fn string, onPanic func()) {
	if r := recover(); r != nil {
		tracer().Errorf("%s: internal error: %v", fn, r)
		onPanic()
	}
}

//export jmorph_init
func jmorph_init(path *C.char) (h C.jmorph_handle) {
	if path == nil {
		return 0
	}
	defer guard("jmorph_init", func() { h = 0 })
	bh, err := boundary.Load(C.GoString(path))
	if err != nil {
		return 0
	}
	return C.jmorph_handle(handles.Insert(bh))
}

//export jmorph_tokenize
func jmorph_tokenize(h C.jmorph_handle, text *C.char, mode C.jmorph_mode, outCount *C.size_t) (tokens **C.jmorph_token) {
	if outCount == nil {
		return nil
	}
	*outCount = 0
	if h == 0 || text == nil {
		return nil
	}
	var allocated int
	defer guard("jmorph_tokenize", func() {
		if tokens != nil {
			jmorph_free_tokens(tokens, C.size_t(allocated))
		}
		tokens, *outCount = nil, 0
	})
	bh, ok := handles.Get(handle.Handle(h))
	if !ok {
		tracer().Debugf("jmorph_tokenize: unknown %s", handle.Handle(h))
		return nil
	}
	m, err := jmorph.ModeFromABI(jmorph.ABIMode(mode))
	if err != nil {
		tracer().Debugf("jmorph_tokenize: %v", err)
		return nil
	}
	input := unsafe.Slice((*byte)(unsafe.Pointer(text)), int(C.strlen(text)))
	records, err := bh.Tokenize(input, m)
	if err != nil {
		tracer().Debugf("jmorph_tokenize: %v", err)
		return nil
	}
	if tokens = newTokenArray(len(records)); tokens == nil {
		tracer().Errorf("jmorph_tokenize: out of memory for %d tokens", len(records))
		return nil
	}
	allocated = len(records)
	slots := tokenSlice(tokens, len(records))
	for i := range records {
		if slots[i] = tokenOf(records[i]); slots[i] == nil {
			tracer().Errorf("jmorph_tokenize: out of memory")
			jmorph_free_tokens(tokens, C.size_t(allocated))
			return nil
		}
	}
	*outCount = C.size_t(len(records))
	return tokens
}

//export jmorph_free_token
func jmorph_free_token(token *C.jmorph_token) {
	if token == nil {
		return
	}
	for _, s := range []*C.char{token.surface, token.reading, token.dictionary_form,
		token.normalized_form, token.pos} {
		if s != nil {
			C.free(unsafe.Pointer(s))
		}
	}
	C.free(unsafe.Pointer(token))
}

//export jmorph_free_tokens
func jmorph_free_tokens(tokens **C.jmorph_token, count C.size_t) {
	if tokens == nil {
		return
	}
	if uint64(count) > maxTokenCount {
		// not a count jmorph_tokenize hands out; the elements are lost
		tracer().Errorf("jmorph_free_tokens: count %d out of range, freeing the array only", uint64(count))
		count = 0
	}
	for _, t := range tokenSlice(tokens, int(count)) {
		jmorph_free_token(t) // NULL elements are skipped
	}
	C.free(unsafe.Pointer(tokens))
}

//export jmorph_free_tokenizer
func jmorph_free_tokenizer(h C.jmorph_handle) {
	if h == 0 {
		return
	}
	defer guard("jmorph_free_tokenizer", func() {})
	bh, ok := handles.Remove(handle.Handle(h))
	if !ok {
		return
	}
	if err := bh.Close(); err != nil {
		tracer().Errorf("jmorph_free_tokenizer: %v", err)
	}
}

//export jmorph_version
func jmorph_version() *C.char {
	return version
}
