// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// globMeta are the characters that make an argument a glob pattern.
const globMeta = "*?[{"

// ExpandInputs expands glob patterns in args, keeping the argument order.
// An argument that names an existing path, or that has no glob
// metacharacters, is returned as is.  Matches of one pattern are sorted
// lexically.  A pattern that matches nothing is kept verbatim so that
// opening it reports the missing file.
func ExpandInputs(args []string) ([]string, error) {
	inputs := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.ContainsAny(arg, globMeta) {
			inputs = append(inputs, arg)
			continue
		}
		if _, err := os.Stat(arg); err == nil {
			inputs = append(inputs, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg,
			doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %v: %w", arg, err)
		}
		if len(matches) == 0 {
			inputs = append(inputs, arg)
			continue
		}
		sort.Strings(matches)
		inputs = append(inputs, matches...)
	}
	return inputs, nil
}
