// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package epoch

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error returned by this package.
type ErrorCode int

const (
	// ErrInvalidPattern indicates the match pattern does not compile or
	// does not have exactly one capturing group.
	ErrInvalidPattern ErrorCode = iota

	// ErrInvalidFormat indicates the output template contains a
	// directive the formatter does not understand.
	ErrInvalidFormat

	// ErrCaptureParse indicates the captured text is not a base-10
	// integer.
	ErrCaptureParse

	// ErrTimeRange indicates the captured integer can not be represented
	// as a calendar time.
	ErrTimeRange
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidPattern: "ErrInvalidPattern",
	ErrInvalidFormat:  "ErrInvalidFormat",
	ErrCaptureParse:   "ErrCaptureParse",
	ErrTimeRange:      "ErrTimeRange",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorCode) Error() string {
	return e.String()
}

// Error identifies an error related to pattern configuration or timestamp
// conversion.  It has full support for errors.Is and errors.As, so the
// caller can ascertain the specific reason for the error by checking the
// underlying error code.
type Error struct {
	Code        ErrorCode
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Description, e.Err)
	}
	return e.Description
}

// Unwrap returns the underlying wrapped error if any, otherwise the error
// code.
func (e Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Code
}

// Is reports whether target is the error code of e.
func (e Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

// IsConversionError reports whether err is a per line conversion failure,
// that is a capture that is not an integer or an integer outside the
// calendar range.
func IsConversionError(err error) bool {
	return errors.Is(err, ErrCaptureParse) || errors.Is(err, ErrTimeRange)
}

func makeError(c ErrorCode, desc string, err error) Error {
	return Error{Code: c, Description: desc, Err: err}
}
