// Package gzip implements the RFC 1952 GZIP container: header parsing,
// trailer verification, and the ContainerDriver that pumps an
// internal/deflate.Decoder between the two (spec §4.8).
package gzip

import (
	"hash/crc32"
	"time"

	"github.com/adilg123/gzdecomp/internal/deflate"
	"github.com/adilg123/gzdecomp/internal/ioutil"
)

const (
	magic1        = 0x1f
	magic2        = 0x8b
	methodDeflate = 0x08

	flagFHCRC    = 0x02
	flagFEXTRA   = 0x04
	flagFNAME    = 0x08
	flagFCOMMENT = 0x10
)

// OS byte values named in RFC 1952 §2.3.1, the ones the spec calls out.
const (
	OSWindows = 0
	OSUnix    = 3
)

// Header is the parsed GZIP member header. Name and Comment are kept as
// separate fields (resolving the source's "why separate fields" open
// question): FNAME and FCOMMENT are independent optional fields on the
// wire and callers may want one without the other.
type Header struct {
	Flags      byte
	ModTime    time.Time
	ExtraFlags byte
	OS         byte
	Extra      []byte
	Name       string
	Comment    string
}

// headerReader wraps a ByteInput, folding every byte it reads into a CRC-32
// so the optional FHCRC field can be checked against the bytes read so far.
type headerReader struct {
	in  *ioutil.ByteInput
	crc hash32
}

type hash32 interface {
	Write(p []byte) (int, error)
	Sum32() uint32
}

func (h *headerReader) getRange(n int) ([]byte, error) {
	b, err := h.in.GetRange(n)
	if err != nil {
		return nil, err
	}
	if len(b) < n {
		return nil, ioutil.ErrUnexpectedEOF
	}
	h.crc.Write(b)
	return b, nil
}

func (h *headerReader) getInteger(width int) (uint64, error) {
	b, err := h.getRange(width)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// cString reads bytes up to and including a NUL terminator, returning the
// bytes before it.
func (h *headerReader) cString() (string, error) {
	var out []byte
	for {
		b, err := h.getRange(1)
		if err != nil {
			return "", err
		}
		if b[0] == 0 {
			return string(out), nil
		}
		out = append(out, b[0])
	}
}

// parseHeader reads the GZIP member header from in, per spec §6 "GZIP wire
// format (header parser)".
func parseHeader(in *ioutil.ByteInput) (*Header, error) {
	hr := &headerReader{in: in, crc: crc32.NewIEEE()}

	magic, err := hr.getRange(2)
	if err != nil {
		return nil, err
	}
	if magic[0] != magic1 || magic[1] != magic2 {
		return nil, deflate.WrapError(deflate.MalformedHeader, "bad GZIP magic", nil)
	}
	method, err := hr.getRange(1)
	if err != nil {
		return nil, err
	}
	if method[0] != methodDeflate {
		return nil, deflate.WrapError(deflate.MalformedHeader, "unsupported compression method", nil)
	}
	flagsB, err := hr.getRange(1)
	if err != nil {
		return nil, err
	}
	flags := flagsB[0]

	mtime, err := hr.getInteger(4)
	if err != nil {
		return nil, err
	}
	xflB, err := hr.getRange(1)
	if err != nil {
		return nil, err
	}
	osB, err := hr.getRange(1)
	if err != nil {
		return nil, err
	}

	hdr := &Header{
		Flags:      flags,
		ModTime:    time.Unix(int64(mtime), 0).UTC(),
		ExtraFlags: xflB[0],
		OS:         osB[0],
	}

	if flags&flagFEXTRA != 0 {
		xlen, err := hr.getInteger(2)
		if err != nil {
			return nil, err
		}
		extra, err := hr.getRange(int(xlen))
		if err != nil {
			return nil, err
		}
		hdr.Extra = append([]byte(nil), extra...)
	}
	if flags&flagFNAME != 0 {
		name, err := hr.cString()
		if err != nil {
			return nil, err
		}
		hdr.Name = name
	}
	if flags&flagFCOMMENT != 0 {
		comment, err := hr.cString()
		if err != nil {
			return nil, err
		}
		hdr.Comment = comment
	}
	if flags&flagFHCRC != 0 {
		want := uint16(hr.crc.Sum32())
		got, err := in.GetInteger(2)
		if err != nil {
			return nil, err
		}
		if uint16(got) != want {
			return nil, deflate.WrapError(deflate.MalformedHeader, "FHCRC mismatch", nil)
		}
	}
	return hdr, nil
}
