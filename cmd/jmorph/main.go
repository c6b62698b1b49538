/*
Command jmorph builds dictionaries and analyzes Japanese text.

	jmorph build lexicon.txt -o system.jmd
	jmorph tokenize -d system.jmd -m A 私は国家公務員です
	echo 行った | jmorph tokenize --json
	jmorph info -d system.jmd

Settings may also be given in jmorph.yaml or as JMORPH_* environment
variables, see package internal/config.

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

import (
	"fmt"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
