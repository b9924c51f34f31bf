// Package sink implements the three output consumers described in the
// spec's "Output sinks" section: a one-chunk-per-call reader, a
// concatenating reader, and a separator-delimited line reader. All three
// work over anything satisfying Stream, so they apply equally to a bare
// internal/deflate.Decoder and to an internal/gzip.Reader.
package sink

import "bytes"

// Stream is the pull interface every sink drives. Both
// internal/deflate.Decoder and internal/gzip.Reader satisfy it.
type Stream interface {
	ParseSome() (bool, error)
	Consume(bytesToKeep int) []byte
	Done() bool
}

// ReadSome yields one chunk of decompressed output per logical call,
// retaining bytesToKeep bytes of window history for future back-references.
// ok is false once the stream is exhausted and no further bytes remain.
func ReadSome(s Stream, bytesToKeep int) (chunk []byte, ok bool, err error) {
	for {
		more, err := s.ParseSome()
		if err != nil {
			return nil, false, err
		}
		if c := s.Consume(bytesToKeep); len(c) > 0 {
			return c, true, nil
		}
		if !more {
			return nil, false, nil
		}
	}
}

// ReadAll drives s to completion and concatenates every chunk produced.
func ReadAll(s Stream) ([]byte, error) {
	var out []byte
	for {
		chunk, ok, err := ReadSome(s, 0)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, chunk...)
	}
}

// ReadByLines calls fn once per '\n'-delimited record, preserving an
// unterminated trailing record (if any) as a final call.
func ReadByLines(s Stream, fn func([]byte) error) error {
	return ReadByLinesSep(s, '\n', fn)
}

// ReadByLinesSep is ReadByLines with a caller-chosen separator byte.
func ReadByLinesSep(s Stream, separator byte, fn func([]byte) error) error {
	var pending []byte
	for {
		// bytesToKeep tracks the length of the currently unterminated run,
		// so the window retains exactly enough history for the next chunk
		// to extend it contiguously.
		chunk, ok, err := ReadSome(s, len(pending))
		if err != nil {
			return err
		}
		if !ok {
			if len(pending) > 0 {
				return fn(pending)
			}
			return nil
		}
		pending = append(pending, chunk...)
		for {
			idx := bytes.IndexByte(pending, separator)
			if idx < 0 {
				break
			}
			if err := fn(pending[:idx]); err != nil {
				return err
			}
			pending = pending[idx+1:]
		}
	}
}
