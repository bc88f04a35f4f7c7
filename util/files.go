// Copyright (c) 2017-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// inputFile closes both the decoder and the file beneath it.
type inputFile struct {
	io.Reader
	closers []io.Closer
}

// Close closes the decoder first and then the file.
func (f *inputFile) Close() error {
	var errs []error
	for _, c := range f.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenInput opens filename for reading.  Files that start with a gzip or
// zstd header are decompressed transparently.
func OpenInput(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc, err := decompress(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return rc, nil
}

// decompress sniffs the first bytes of f and wraps it with the matching
// decoder.
func decompress(f io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(f)
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &inputFile{Reader: zr, closers: []io.Closer{zr, f}}, nil

	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		rc := zr.IOReadCloser()
		return &inputFile{Reader: rc, closers: []io.Closer{rc, f}}, nil
	}

	return &inputFile{Reader: br, closers: []io.Closer{f}}, nil
}
