// Package deflate implements a streaming RFC 1951 DEFLATE decoder: the
// bit-level reader, canonical Huffman table builder and lookup engine, the
// block state machine, and the sliding-window output buffer.
package deflate

import (
	"github.com/adilg123/gzdecomp/internal/checksum"
	"github.com/adilg123/gzdecomp/internal/ioutil"
)

// blockState is the interface every BTYPE substate implements. step drives
// the block forward until it must yield (the output window is full) or the
// block reaches its end-of-block marker.
type blockState interface {
	step(d *Decoder) (blockDone bool, err error)
	bitReader() *bitReader
}

// Decoder is the top-level DEFLATE state machine (spec §4.7). It reads
// block headers, instantiates the Stored/Fixed/Dynamic substate, drives it
// until it yields or terminates, and signals completion on BFINAL.
type Decoder struct {
	in     *ioutil.ByteInput
	window *outputWindow

	br       *bitReader
	block    blockState
	wasLast  bool
	finished bool
}

// Config bundles the settings a Decoder needs beyond the input source
// itself (spec §6, "Settings contract").
type Config struct {
	MaxOutputBufferSize int
	MinOutputBufferSize int
	InputBufferSize     int
	Checksum            checksum.Trait
}

// New constructs a Decoder reading compressed bytes from src.
func New(src ioutil.Source, cfg Config) *Decoder {
	return NewWithByteInput(ioutil.New(src, cfg.InputBufferSize), cfg)
}

// NewWithByteInput constructs a Decoder over an already-built ByteInput.
// GZIP (and any other future container) needs this: the header and trailer
// are read from the very same byte cursor the DEFLATE stream is read from,
// so they cannot each own an independent ByteInput.
func NewWithByteInput(in *ioutil.ByteInput, cfg Config) *Decoder {
	window := newOutputWindow(cfg.MaxOutputBufferSize, cfg.MinOutputBufferSize, cfg.Checksum)
	return &Decoder{in: in, window: window}
}

// ByteInput exposes the underlying ByteInput so a container (GZIP) can read
// byte-aligned trailer fields once the stream is Done.
func (d *Decoder) ByteInput() *ioutil.ByteInput {
	return d.in
}

// ParseSome drives the decoder forward. It returns true when the output
// window filled before the stream ended (a finished block does not end the
// call; decoding continues with the next block header) and false once the
// stream has been fully decoded. Callers are
// expected to call Consume between calls to ParseSome to make room in the
// output window.
func (d *Decoder) ParseSome() (bool, error) {
	if d.finished {
		return false, nil
	}
	for {
		if d.block != nil {
			yielded, err := d.block.step(d)
			if err != nil {
				return false, err
			}
			if !yielded {
				return true, nil
			}
			d.br = d.block.bitReader()
			d.block = nil
			continue
		}

		if d.wasLast {
			d.window.markDone()
			if d.br != nil {
				if err := d.br.release(); err != nil {
					return false, err
				}
				d.br = nil
			}
			d.finished = true
			return false, nil
		}

		if d.br == nil {
			d.br = newBitReader(d.in)
		}
		bfinal, err := d.br.getBits(1)
		if err != nil {
			return false, err
		}
		btype, err := d.br.getBits(2)
		if err != nil {
			return false, err
		}
		d.wasLast = bfinal == 1

		switch btype {
		case 0:
			if err := d.br.release(); err != nil {
				return false, err
			}
			d.br = nil
			st, err := newStoredBlock(d.in)
			if err != nil {
				return false, err
			}
			d.block = st
		case 2:
			d.block = newFixedBlock(d.br)
			d.br = nil
		case 1:
			st, err := newDynamicBlock(d.br)
			if err != nil {
				return false, err
			}
			d.block = st
			d.br = nil
		default:
			return false, newError(MalformedHeader, "BTYPE 3 is reserved")
		}
	}
}

// Consume returns the bytes produced since the previous Consume call,
// retaining at least bytesToKeep (or the minimum window size, whichever is
// larger) bytes of history for future back-references.
func (d *Decoder) Consume(bytesToKeep int) []byte {
	return d.window.consume(bytesToKeep)
}

// Checksum returns the running digest of every byte emitted so far.
func (d *Decoder) Checksum() uint32 {
	return d.window.sum.Sum32()
}

// TotalProduced returns the cumulative count of decompressed bytes produced
// so far, for containers (GZIP's ISIZE) that verify a byte count modulo
// 2^32.
func (d *Decoder) TotalProduced() uint64 {
	return d.window.producedSoFar()
}

// Done reports whether the stream has been fully decoded.
func (d *Decoder) Done() bool {
	return d.finished
}
