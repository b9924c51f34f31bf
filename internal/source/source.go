// Package source adapts the three kinds of input a decode session can be
// backed by — a pull callback, a file, or an in-memory byte slice — into a
// single io.Reader the core decoder's ByteInput consumes.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Source is the interface the decoder's ByteInput pulls from. It is just
// io.Reader: the "pull callback returning bytes written, 0 on clean EOF"
// contract from the spec is exactly Go's io.Reader contract already, so no
// bespoke callable type is introduced.
type Source = io.Reader

// funcSource adapts a raw pull callback of the shape described in the spec
// ("(byte buffer) -> bytes written") to io.Reader. A callback returning 0
// with a nil error is treated as a transient no-progress read and is
// reported as io.ErrNoProgress so callers don't spin; returning 0 with
// io.EOF is the clean end-of-stream signal.
type funcSource struct {
	pull func([]byte) (int, error)
}

// FromFunc wraps a pull callback as a Source.
func FromFunc(pull func([]byte) (int, error)) Source {
	return &funcSource{pull: pull}
}

func (f *funcSource) Read(p []byte) (int, error) {
	n, err := f.pull(p)
	if n == 0 && err == nil {
		return 0, io.ErrNoProgress
	}
	return n, err
}

// FromFile opens path and reads from it in batches. A zero-byte read before
// io.EOF is surfaced as an error, matching the spec's "fails on empty read
// before termination" requirement for the file adapter.
func FromFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %q: %w", path, err)
	}
	return &fileSource{f: f}, nil
}

type fileSource struct {
	f *os.File
}

func (fs *fileSource) Read(p []byte) (int, error) {
	n, err := fs.f.Read(p)
	if n == 0 && err == nil {
		return 0, fmt.Errorf("source: empty read from %q before EOF", fs.f.Name())
	}
	return n, err
}

func (fs *fileSource) Close() error { return fs.f.Close() }

// FromBytes returns successive subranges of b.
func FromBytes(b []byte) Source {
	return bytes.NewReader(b)
}
