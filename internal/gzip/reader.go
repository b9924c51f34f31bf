package gzip

import (
	"github.com/adilg123/gzdecomp/internal/checksum"
	"github.com/adilg123/gzdecomp/internal/deflate"
	"github.com/adilg123/gzdecomp/internal/ioutil"
)

// Reader is the ContainerDriver (spec §4.8): it parses the GZIP header,
// drives an internal/deflate.Decoder to completion, and on completion reads
// and verifies the trailer (CRC-32 of the decompressed payload, and, per
// the source's own noted open question, ISIZE modulo 2^32).
type Reader struct {
	header  *Header
	in      *ioutil.ByteInput
	decoder *deflate.Decoder

	verifyChecksum bool
	trailerChecked bool
}

// Config mirrors deflate.Config; VerifyChecksum additionally gates trailer
// verification, since a caller that skips the payload CRC (e.g. a
// throughput benchmark) has no use for ISIZE checking either.
type Config struct {
	deflate.Config
	VerifyChecksum bool
}

// NewReader parses the GZIP header from src and prepares a Reader to pump
// the DEFLATE member that follows it.
func NewReader(src ioutil.Source, cfg Config) (*Reader, error) {
	in := ioutil.New(src, cfg.InputBufferSize)
	hdr, err := parseHeader(in)
	if err != nil {
		return nil, err
	}

	sum := cfg.Checksum
	if sum == nil {
		sum = checksum.NewCRC32()
	}
	innerCfg := cfg.Config
	innerCfg.Checksum = sum

	return &Reader{
		header:         hdr,
		in:             in,
		decoder:        deflate.NewWithByteInput(in, innerCfg),
		verifyChecksum: cfg.VerifyChecksum,
	}, nil
}

// Header returns the parsed GZIP member header.
func (r *Reader) Header() *Header {
	return r.header
}

// ParseSome drives the embedded DeflateDecoder, then once it is done and its
// final bytes have been consumed, reads and verifies the 8-byte trailer that
// follows it.
func (r *Reader) ParseSome() (bool, error) {
	wasDone := r.decoder.Done()
	more, err := r.decoder.ParseSome()
	if err != nil {
		return false, err
	}
	if more {
		return true, nil
	}
	if !r.trailerChecked {
		if !wasDone {
			// The decoder just finished: its last bytes are still in the
			// window and not yet folded into the checksum. Let the caller
			// Consume them before the trailer CRC-32 is compared.
			return true, nil
		}
		if err := r.checkTrailer(); err != nil {
			return false, err
		}
		r.trailerChecked = true
	}
	return false, nil
}

func (r *Reader) checkTrailer() error {
	crcField, err := r.in.GetInteger(4)
	if err != nil {
		return deflate.WrapError(deflate.UnexpectedEndOfStream, "reading trailer CRC-32", err)
	}
	sizeField, err := r.in.GetInteger(4)
	if err != nil {
		return deflate.WrapError(deflate.UnexpectedEndOfStream, "reading trailer ISIZE", err)
	}
	if !r.verifyChecksum {
		return nil
	}
	if uint32(crcField) != r.decoder.Checksum() {
		return deflate.NewError(deflate.ChecksumMismatch, "GZIP trailer CRC-32 does not match decompressed payload")
	}
	if uint32(sizeField) != uint32(r.decoder.TotalProduced()) {
		return deflate.NewError(deflate.ChecksumMismatch, "GZIP trailer ISIZE does not match decompressed length")
	}
	return nil
}

// Consume returns decompressed bytes produced since the previous call,
// exactly as internal/deflate.Decoder.Consume.
func (r *Reader) Consume(bytesToKeep int) []byte {
	return r.decoder.Consume(bytesToKeep)
}

// Checksum returns the running CRC-32 of the decompressed payload so far.
func (r *Reader) Checksum() uint32 {
	return r.decoder.Checksum()
}

// Done reports whether the DEFLATE member and trailer have both been fully
// consumed.
func (r *Reader) Done() bool {
	return r.decoder.Done() && r.trailerChecked
}
