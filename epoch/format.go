// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package epoch

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultFormat is the output template used when none is configured.
const DefaultFormat = "%Y-%m-%d %H:%M:%S"

// modifiers may sit between a '%' and its conversion character, as in %-d,
// %:z or %Ec.
const modifiers = "-_0^#:EO"

// sampleTime is the time directives are rendered at during validation.
var sampleTime = time.Unix(1700000000, 0).UTC()

// ValidateFormat returns an ErrInvalidFormat error when format ends in an
// incomplete directive, contains a directive the formatter leaves
// untouched, or renders a newline.  A newline would turn one input line
// into two output lines.
func ValidateFormat(format string) error {
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		j := i + 1
		for j < len(format) && strings.IndexByte(modifiers, format[j]) >= 0 {
			j++
		}
		if j == len(format) {
			return makeError(ErrInvalidFormat,
				fmt.Sprintf("format %q ends with an incomplete "+
					"directive %q", format, format[i:]), nil)
		}

		// The formatter copies directives it does not know verbatim.
		directive := format[i : j+1]
		if r := render(directive, sampleTime); r == directive || r == "" {
			return makeError(ErrInvalidFormat,
				fmt.Sprintf("format %q: unknown directive %v",
					format, directive), nil)
		}
		i = j
	}

	if strings.Contains(render(format, sampleTime), "\n") {
		return makeError(ErrInvalidFormat,
			fmt.Sprintf("format %q renders a newline", format), nil)
	}
	return nil
}

// render formats t using the strftime style template format.
func render(format string, t time.Time) string {
	return strftime.Format(format, t)
}
