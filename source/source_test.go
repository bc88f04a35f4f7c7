// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package source

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

type line struct {
	Name string
	No   int
	Text string
}

// trackedReader records when it is closed.
type trackedReader struct {
	io.Reader
	closed *[]string
	name   string
}

func (r *trackedReader) Close() error {
	*r.closed = append(*r.closed, r.name)
	return nil
}

func collect(r *Reader) []line {
	var lines []line
	for r.Next() {
		lines = append(lines, line{r.Name(), r.LineNumber(), r.Line()})
	}
	return lines
}

func TestReaderStdin(t *testing.T) {
	r := Open(nil, strings.NewReader("a\nb\r\n\nlast"), nil)
	got := collect(r)
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	want := []line{
		{"<stdin>", 1, "a"},
		{"<stdin>", 2, "b\r"},
		{"<stdin>", 3, ""},
		{"<stdin>", 4, "last"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", spew.Sdump(got), spew.Sdump(want))
	}

	// Exhausted readers stay exhausted.
	if r.Next() {
		t.Fatal("Next after end of input")
	}
}

func TestReaderEmptyStdin(t *testing.T) {
	r := Open(nil, strings.NewReader(""), nil)
	if r.Next() {
		t.Fatalf("unexpected line %q", r.Line())
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestReaderNoStdin(t *testing.T) {
	r := Open(nil, nil, nil)
	if r.Next() {
		t.Fatal("unexpected line")
	}
	var oe *OpenError
	if !errors.As(r.Err(), &oe) {
		t.Fatalf("got %v want OpenError", r.Err())
	}
}

func TestReaderOrder(t *testing.T) {
	files := map[string]string{
		"one":   "1\n2\n",
		"two":   "",
		"three": "3",
	}
	var opened, closed []string
	opener := func(name string) (io.ReadCloser, error) {
		// Lazily opened: the previous input must be closed.
		if len(opened) != len(closed) {
			t.Fatalf("opening %v while %v open", name,
				opened[len(opened)-1])
		}
		opened = append(opened, name)
		return &trackedReader{
			Reader: strings.NewReader(files[name]),
			closed: &closed,
			name:   name,
		}, nil
	}

	stdin := strings.NewReader("in\n")
	r := Open([]string{"three", "-", "two", "one"}, stdin, opener)
	got := collect(r)
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	want := []line{
		{"three", 1, "3"},
		{"<stdin>", 1, "in"},
		{"one", 1, "1"},
		{"one", 2, "2"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", spew.Sdump(got), spew.Sdump(want))
	}
	wantNames := []string{"three", "two", "one"}
	if !reflect.DeepEqual(opened, wantNames) ||
		!reflect.DeepEqual(closed, wantNames) {
		t.Fatalf("opened %v closed %v", opened, closed)
	}
}

func TestReaderOpenError(t *testing.T) {
	opener := func(name string) (io.ReadCloser, error) {
		if name == "bad" {
			return nil, fs.ErrPermission
		}
		return io.NopCloser(strings.NewReader(name + "\n")), nil
	}
	r := Open([]string{"good", "bad", "never"}, nil, opener)
	got := collect(r)
	if len(got) != 1 || got[0].Text != "good" {
		t.Fatalf("unexpected lines %v", spew.Sdump(got))
	}
	var oe *OpenError
	if !errors.As(r.Err(), &oe) || oe.Name != "bad" {
		t.Fatalf("got %v want OpenError for bad", r.Err())
	}
	if !errors.Is(r.Err(), fs.ErrPermission) {
		t.Fatalf("got %v want %v", r.Err(), fs.ErrPermission)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("device gone")
}

func TestReaderReadError(t *testing.T) {
	r := Open(nil, errReader{}, nil)
	if r.Next() {
		t.Fatal("unexpected line")
	}
	if r.Err() == nil ||
		!strings.Contains(r.Err().Error(), "device gone") {
		t.Fatalf("unexpected error: %v", r.Err())
	}
}

func TestReaderLongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	r := Open(nil, strings.NewReader(long+"\nshort\n"), nil)
	got := collect(r)
	if len(got) != 2 || got[0].Text != long || got[1].Text != "short" {
		t.Fatalf("unexpected lines: %v", len(got))
	}
}

func TestReaderFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.log")
	b := filepath.Join(dir, "b.log")
	if err := os.WriteFile(a, []byte("a1\na2\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("b1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	r := Open([]string{b, a}, nil, nil)
	defer r.Close()
	var texts []string
	for r.Next() {
		texts = append(texts, r.Line())
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	want := []string{"b1", "a1", "a2"}
	if !reflect.DeepEqual(texts, want) {
		t.Fatalf("got %v want %v", texts, want)
	}

	r = Open([]string{filepath.Join(dir, "missing")}, nil, nil)
	if r.Next() {
		t.Fatal("unexpected line")
	}
	if !errors.Is(r.Err(), fs.ErrNotExist) {
		t.Fatalf("got %v want %v", r.Err(), fs.ErrNotExist)
	}
}

func TestReaderClose(t *testing.T) {
	r := Open(nil, strings.NewReader("a\nb\n"), nil)
	if !r.Next() {
		t.Fatal("no line")
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if r.Next() {
		t.Fatal("Next after Close")
	}
}
