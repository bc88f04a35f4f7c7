// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package source turns an ordered list of inputs into a single lazy stream
// of lines.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/decred/depoch/util"
)

const (
	// Stdin is the input name that refers to standard input.
	Stdin = "-"

	// stdinName is how standard input is reported in errors and logs.
	stdinName = "<stdin>"
)

// Opener opens a named input for reading.
type Opener func(name string) (io.ReadCloser, error)

// OpenError is returned when a named input can not be opened.
type OpenError struct {
	Name string
	Err  error
}

// Error satisfies the error interface.
func (e *OpenError) Error() string {
	return fmt.Sprintf("open %v: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// Reader yields the lines of its inputs one at a time, input after input.
// Inputs are opened only once the previous one is exhausted.  A Reader is
// forward only and can not be restarted.
type Reader struct {
	names  []string
	stdin  io.Reader
	opener Opener

	next   int           // Index of the next input to open
	rc     io.ReadCloser // Current input, nil between inputs
	br     *bufio.Reader
	name   string
	lineNo int
	line   string
	err    error
	done   bool
}

// Open returns a Reader over names.  An empty list means standard input
// only.  The name "-" also refers to stdin.  A nil opener opens files with
// util.OpenInput.
func Open(names []string, stdin io.Reader, opener Opener) *Reader {
	if len(names) == 0 {
		names = []string{Stdin}
	}
	if opener == nil {
		opener = util.OpenInput
	}
	return &Reader{
		names:  names,
		stdin:  stdin,
		opener: opener,
	}
}

// openNext opens the next input.  It returns false when there are no more
// inputs or the input could not be opened.
func (r *Reader) openNext() bool {
	if r.next >= len(r.names) {
		r.done = true
		return false
	}
	name := r.names[r.next]
	r.next++

	var rc io.ReadCloser
	if name == Stdin {
		if r.stdin == nil {
			return r.fail(&OpenError{
				Name: stdinName,
				Err:  errors.New("standard input not available"),
			})
		}
		rc = io.NopCloser(r.stdin)
		name = stdinName
	} else {
		var err error
		rc, err = r.opener(name)
		if err != nil {
			return r.fail(&OpenError{Name: name, Err: err})
		}
	}

	log.Debugf("Reading %v", name)

	r.rc = rc
	r.br = bufio.NewReader(rc)
	r.name = name
	r.lineNo = 0
	return true
}

// closeCurrent closes the input being read, if any.
func (r *Reader) closeCurrent() error {
	if r.rc == nil {
		return nil
	}
	err := r.rc.Close()
	log.Tracef("Closed %v after %v lines", r.name, r.lineNo)
	r.rc = nil
	r.br = nil
	return err
}

func (r *Reader) fail(err error) bool {
	r.closeCurrent()
	r.err = err
	r.done = true
	return false
}

// Next advances to the next line, which is then available through Line.
// It returns false once all inputs are exhausted or an error occurred; Err
// tells the two apart.
func (r *Reader) Next() bool {
	for !r.done {
		if r.br == nil {
			if !r.openNext() {
				return false
			}
		}

		s, err := r.br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return r.fail(fmt.Errorf("read %v: %w", r.name, err))
		}
		if len(s) > 0 {
			r.line = strings.TrimSuffix(s, "\n")
			r.lineNo++
			return true
		}

		// Exhausted, move on to the next input.
		if err := r.closeCurrent(); err != nil {
			return r.fail(fmt.Errorf("close %v: %w", r.name, err))
		}
	}
	return false
}

// Line returns the most recent line read by Next without its newline.
func (r *Reader) Line() string {
	return r.line
}

// Name returns the name of the input the current line came from.
func (r *Reader) Name() string {
	return r.name
}

// LineNumber returns the 1-based number of the current line within its
// input.
func (r *Reader) LineNumber() int {
	return r.lineNo
}

// Err returns the error, if any, that stopped iteration.
func (r *Reader) Err() error {
	return r.err
}

// Close releases the input being read and ends iteration.
func (r *Reader) Close() error {
	r.done = true
	return r.closeCurrent()
}
