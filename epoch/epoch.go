// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package epoch locates Unix epoch timestamps in lines of text and replaces
// them with a human readable rendering.
package epoch

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultPattern matches a leading run of digits.
const DefaultPattern = `^(\d+)`

// Calendar years that can be rendered.  Anything outside of this range is
// reported as ErrTimeRange.
const (
	minYear = 1
	maxYear = 9999

	// Seconds bounding the year range with a day of slack for zone
	// offsets.  They keep time.Unix away from int64 overflow.
	minUnix = -62135596800 - 86400
	maxUnix = 253402300799 + 86400
)

// TimezoneMode selects the calendar rules used to convert a timestamp.
type TimezoneMode int

const (
	// UTC converts timestamps with a zero UTC offset.
	UTC TimezoneMode = iota

	// Local converts timestamps using the configured local zone rules,
	// including daylight saving changes.
	Local
)

// String returns the mode as a human-readable name.
func (m TimezoneMode) String() string {
	switch m {
	case UTC:
		return "UTC"
	case Local:
		return "local"
	}
	return fmt.Sprintf("Unknown TimezoneMode (%d)", int(m))
}

// Config describes how lines are transformed.
type Config struct {
	Pattern  string         // Regexp with exactly one capturing group
	Format   string         // strftime style output template
	Mode     TimezoneMode   // UTC or Local
	Location *time.Location // Zone used in Local mode, nil is time.Local
}

// Transformer converts the first timestamp found in a line.  It is
// immutable once created and may be shared.
type Transformer struct {
	re     *regexp.Regexp
	format string
	loc    *time.Location
}

// New validates cfg and returns a Transformer.  Empty Pattern and Format
// fields are replaced by DefaultPattern and DefaultFormat.
func New(cfg Config) (*Transformer, error) {
	pattern := cfg.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	format := cfg.Format
	if format == "" {
		format = DefaultFormat
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, makeError(ErrInvalidPattern,
			fmt.Sprintf("invalid pattern %q", pattern), err)
	}
	if n := re.NumSubexp(); n != 1 {
		return nil, makeError(ErrInvalidPattern,
			fmt.Sprintf("pattern %q has %d capturing groups, want 1",
				pattern, n), nil)
	}
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var loc *time.Location
	switch cfg.Mode {
	case UTC:
		loc = time.UTC
	case Local:
		loc = cfg.Location
		if loc == nil {
			loc = time.Local
		}
	default:
		return nil, fmt.Errorf("invalid timezone mode: %v", cfg.Mode)
	}

	log.Debugf("Pattern %q format %q zone %v", pattern, format, loc)

	return &Transformer{
		re:     re,
		format: format,
		loc:    loc,
	}, nil
}

// Location returns the zone timestamps are converted in.
func (t *Transformer) Location() *time.Location {
	return t.loc
}

// parseCapture converts the captured text into seconds since the epoch.
// Surrounding whitespace and a leading sign are accepted.
func parseCapture(s string) (int64, error) {
	v := strings.TrimSpace(s)
	sec, err := strconv.ParseInt(v, 10, 64)
	if err == nil {
		return sec, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, makeError(ErrTimeRange,
			fmt.Sprintf("timestamp %q out of range", s), nil)
	}
	return 0, makeError(ErrCaptureParse,
		fmt.Sprintf("captured text %q is not an integer", s), nil)
}

// Time converts sec into calendar time using the configured zone.
func (t *Transformer) Time(sec int64) (time.Time, error) {
	if sec >= minUnix && sec <= maxUnix {
		ts := time.Unix(sec, 0).In(t.loc)
		if y := ts.Year(); y >= minYear && y <= maxYear {
			return ts, nil
		}
	}
	return time.Time{}, makeError(ErrTimeRange,
		fmt.Sprintf("timestamp %v is outside years %v-%v", sec,
			minYear, maxYear), nil)
}

// Convert renders sec using the configured template and zone.
func (t *Transformer) Convert(sec int64) (string, error) {
	ts, err := t.Time(sec)
	if err != nil {
		return "", err
	}
	return render(t.format, ts), nil
}

// Transform replaces the first match of the pattern in line with the
// rendered timestamp taken from the capturing group.  A line that does not
// match is returned unchanged.
func (t *Transformer) Transform(line string) (string, error) {
	m := t.re.FindStringSubmatchIndex(line)
	if m == nil {
		return line, nil
	}

	// A group that did not take part in the match, e.g. `(\d+)?`, has
	// no text to convert.
	if m[2] < 0 {
		return "", makeError(ErrCaptureParse,
			"capturing group did not participate in the match", nil)
	}

	sec, err := parseCapture(line[m[2]:m[3]])
	if err != nil {
		return "", err
	}
	s, err := t.Convert(sec)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(line) - (m[1] - m[0]) + len(s))
	b.WriteString(line[:m[0]])
	b.WriteString(s)
	b.WriteString(line[m[1]:])
	return b.String(), nil
}

// Unix parses s, a time rendered with the configured template, back into
// seconds since the epoch.  Templates that have no Go layout equivalent
// can not be parsed.
func (t *Transformer) Unix(s string) (int64, error) {
	layout, err := strftime.Layout(t.format)
	if err != nil {
		return 0, makeError(ErrInvalidFormat,
			fmt.Sprintf("format %q can not be parsed", t.format), err)
	}
	ts, err := time.ParseInLocation(layout, s, t.loc)
	if err != nil {
		return 0, makeError(ErrCaptureParse,
			fmt.Sprintf("%q does not match format %q", s, t.format),
			err)
	}
	return ts.Unix(), nil
}
