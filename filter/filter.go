// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package filter drives lines from a source through a transformer and writes
// the results, one output line per input line.
package filter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/decred/depoch/epoch"
)

// State is the run state of a Filter.
type State int

const (
	Ready     State = iota // Configured, nothing read yet
	Streaming              // First line read from an opened input
	Done                   // All inputs exhausted without error
	Failed                 // Stopped by an error
)

var stateStrings = map[State]string{
	Ready:     "ready",
	Streaming: "streaming",
	Done:      "done",
	Failed:    "failed",
}

// String returns the state as a human-readable name.
func (s State) String() string {
	if str, ok := stateStrings[s]; ok {
		return str
	}
	return fmt.Sprintf("unknown state (%d)", int(s))
}

// LineTransformer converts a single line.
type LineTransformer interface {
	Transform(line string) (string, error)
}

// LineSource is a forward only sequence of lines.
type LineSource interface {
	Next() bool
	Line() string
	Name() string
	LineNumber() int
	Err() error
}

// LineError wraps an error with the position of the line that caused it.
type LineError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

// Error satisfies the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("%v:%v: %v: %q", e.Source, e.Line, e.Err, e.Text)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error {
	return e.Err
}

// Stats counts what a run did.
type Stats struct {
	Lines     uint64 // Lines read
	Converted uint64 // Lines with a converted timestamp
	Skipped   uint64 // Lines passed through after a conversion error
}

// Options modify the behavior of a Filter.
type Options struct {
	// SkipInvalid passes lines whose capture can not be converted
	// through unchanged, with a warning, instead of failing the run.
	SkipInvalid bool
}

// Filter writes the transformation of every line of a source.
type Filter struct {
	t     LineTransformer
	w     *bufio.Writer
	opts  Options
	state State
	stats Stats
}

// New returns a Filter in the Ready state that writes to w.
func New(t LineTransformer, w io.Writer, opts Options) *Filter {
	return &Filter{
		t:     t,
		w:     bufio.NewWriter(w),
		opts:  opts,
		state: Ready,
	}
}

// State returns the current run state.
func (f *Filter) State() State {
	return f.state
}

// Stats returns the counters of the run.
func (f *Filter) Stats() Stats {
	return f.stats
}

func (f *Filter) fail(err error) error {
	f.state = Failed
	return err
}

// emit writes line and a newline and flushes it.
func (f *Filter) emit(line string) error {
	if _, err := f.w.WriteString(line); err != nil {
		return err
	}
	if err := f.w.WriteByte('\n'); err != nil {
		return err
	}
	return f.w.Flush()
}

// Run pulls every line from src, transforms it and writes it.  It stops at
// the first error, which is returned.  The filter enters Streaming once src
// yields its first line, so an input that can not be opened moves it from
// Ready straight to Failed.  Run may only be called once.
func (f *Filter) Run(ctx context.Context, src LineSource) error {
	if f.state != Ready {
		return fmt.Errorf("filter can not run in state %v", f.state)
	}

	for src.Next() {
		f.state = Streaming
		if err := ctx.Err(); err != nil {
			return f.fail(err)
		}

		line := src.Line()
		f.stats.Lines++

		out, err := f.t.Transform(line)
		switch {
		case err == nil:
			if out != line {
				f.stats.Converted++
			}
		case f.opts.SkipInvalid && epoch.IsConversionError(err):
			log.Warnf("%v:%v: %v", src.Name(), src.LineNumber(), err)
			f.stats.Skipped++
			out = line
		default:
			return f.fail(&LineError{
				Source: src.Name(),
				Line:   src.LineNumber(),
				Text:   line,
				Err:    err,
			})
		}

		if err := f.emit(out); err != nil {
			return f.fail(fmt.Errorf("write: %w", err))
		}
	}
	if err := src.Err(); err != nil {
		return f.fail(err)
	}

	f.state = Done
	log.Debugf("Lines %v converted %v skipped %v", f.stats.Lines,
		f.stats.Converted, f.stats.Skipped)

	return nil
}
