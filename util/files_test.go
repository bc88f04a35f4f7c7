// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const payload = "1700000000 first\n1700000001 second\n"

func gzipBytes(t *testing.T, s string) []byte {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

func zstdBytes(t *testing.T, s string) []byte {
	var b bytes.Buffer
	w, err := zstd.NewWriter(&b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return b.Bytes()
}

func TestOpenInput(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"plain.log", []byte(payload), payload},
		{"empty.log", nil, ""},
		{"short.log", []byte{0x1f}, "\x1f"},
		{"app.log.gz", gzipBytes(t, payload), payload},
		{"app.log.zst", zstdBytes(t, payload), payload},
		// Detection goes by content, not by extension.
		{"renamed.log", gzipBytes(t, payload), payload},
	}
	for _, test := range tests {
		filename := filepath.Join(dir, test.name)
		err := os.WriteFile(filename, test.data, 0600)
		if err != nil {
			t.Fatal(err)
		}

		rc, err := OpenInput(filename)
		if err != nil {
			t.Fatalf("%v: %v", test.name, err)
		}
		got, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("%v: %v", test.name, err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("%v: close: %v", test.name, err)
		}
		if string(got) != test.want {
			t.Errorf("%v: got %q want %q", test.name, got, test.want)
		}
	}
}

func TestOpenInputMissing(t *testing.T) {
	_, err := OpenInput(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("got %v want %v", err, fs.ErrNotExist)
	}
}

func TestOpenInputCorruptGzip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bad.gz")
	err := os.WriteFile(filename, []byte{0x1f, 0x8b, 0x00, 0x00}, 0600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := OpenInput(filename); err == nil {
		t.Fatal("expected error")
	}
}
