// Package ioutil implements ByteInput, the refillable byte buffer every
// other core component reads through.
package ioutil

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrUnexpectedEOF is returned when a fixed-width read cannot be satisfied
// because the underlying source is exhausted.
var ErrUnexpectedEOF = errors.New("ioutil: unexpected end of stream")

// Source is whatever a ByteInput pulls bytes from.
type Source = io.Reader

// ByteInput is a refillable byte buffer over a pull-style io.Reader. It
// exposes contiguous byte ranges and fixed-width little-endian integer
// reads, plus a bounded "return bytes" capability so a BitReader can hand
// whole bytes back once it is done with them.
type ByteInput struct {
	src io.Reader
	buf []byte
	pos int // next unread byte
	end int // one past the last valid byte

	eof bool
}

// New returns a ByteInput pulling from src with an internal buffer of size
// bufSize (spec: inputBufferSize, >= 4).
func New(src io.Reader, bufSize int) *ByteInput {
	if bufSize < 4 {
		bufSize = 4
	}
	return &ByteInput{src: src, buf: make([]byte, bufSize)}
}

// refill pulls once into whatever tail space remains, compacting the
// buffer toward the front only once it's actually saturated. Compacting
// lazily (rather than at the halfway mark) keeps already-read bytes intact
// for as long as possible, which is what lets a BitReader that has pulled
// ahead across several refills still hand unused whole bytes back via
// ReturnBytes.
func (bi *ByteInput) refill() error {
	if bi.eof {
		return io.EOF
	}
	if bi.end == len(bi.buf) {
		if bi.pos > 0 {
			n := copy(bi.buf, bi.buf[bi.pos:bi.end])
			bi.end = n
			bi.pos = 0
		} else {
			// Buffer is saturated but still doesn't hold enough: grow it so a
			// single oversized read (e.g. a getInteger(8) spanning a tiny
			// inputBufferSize) can still be satisfied.
			grown := make([]byte, len(bi.buf)*2)
			copy(grown, bi.buf[:bi.end])
			bi.buf = grown
		}
	}
	n, err := bi.src.Read(bi.buf[bi.end:])
	bi.end += n
	if err != nil {
		if err == io.EOF {
			bi.eof = true
		}
		return err
	}
	return nil
}

// getRange returns up to n contiguous bytes, advancing the cursor by the
// returned length. It may return fewer than n bytes if the source is
// exhausted; it never returns an error for a short read, only for a hard
// failure from the underlying source.
func (bi *ByteInput) GetRange(n int) ([]byte, error) {
	for bi.end-bi.pos < n && !bi.eof {
		if err := bi.refill(); err != nil && err != io.EOF {
			return nil, err
		} else if err == io.EOF {
			break
		}
	}
	avail := bi.end - bi.pos
	if avail > n {
		avail = n
	}
	out := bi.buf[bi.pos : bi.pos+avail]
	bi.pos += avail
	return out, nil
}

// GetInteger returns the next width bytes as a little-endian unsigned
// integer, failing with ErrUnexpectedEOF if refill cannot satisfy the read.
func (bi *ByteInput) GetInteger(width int) (uint64, error) {
	if width < 1 || width > 8 {
		return 0, errors.New("ioutil: integer width out of range")
	}
	b, err := bi.GetRange(width)
	if err != nil {
		return 0, err
	}
	if len(b) < width {
		return 0, ErrUnexpectedEOF
	}
	var padded [8]byte
	copy(padded[:], b)
	return binary.LittleEndian.Uint64(padded[:]), nil
}

// ReturnBytes rewinds the cursor by k bytes; k must not exceed the cursor's
// current position. A BitReader calls this at a byte boundary to hand back
// whole bytes it prefetched but never consumed.
func (bi *ByteInput) ReturnBytes(k int) error {
	if k > bi.pos {
		return errors.New("ioutil: returnBytes exceeds cursor position")
	}
	bi.pos -= k
	return nil
}
