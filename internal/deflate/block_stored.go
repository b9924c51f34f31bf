package deflate

import "github.com/adilg123/gzdecomp/internal/ioutil"

// storedBlockState drives a BTYPE=00 block. It owns no BitReader: by the
// time it is constructed the enclosing decoder has already byte-aligned
// (released the previous BitReader back to the ByteInput), and every
// remaining read in this block is a byte-aligned ByteInput read.
type storedBlockState struct {
	remaining int
}

// newStoredBlock reads LEN and NLEN directly from in (the decoder has
// already byte-aligned) and validates the NLEN invariant.
func newStoredBlock(in *ioutil.ByteInput) (*storedBlockState, error) {
	lenField, err := in.GetInteger(2)
	if err != nil {
		return nil, wrapError(UnexpectedEndOfStream, "reading stored block LEN", err)
	}
	nlenField, err := in.GetInteger(2)
	if err != nil {
		return nil, wrapError(UnexpectedEndOfStream, "reading stored block NLEN", err)
	}
	length := uint16(lenField)
	nlen := uint16(nlenField)
	if nlen != ^length {
		return nil, newError(CorruptedLiteralBlock, "NLEN does not complement LEN")
	}
	return &storedBlockState{remaining: int(length)}, nil
}

func (s *storedBlockState) bitReader() *bitReader { return nil }

func (s *storedBlockState) step(d *Decoder) (bool, error) {
	for s.remaining > 0 {
		want := s.remaining
		if avail := d.window.available(); avail < want {
			want = avail
		}
		if want == 0 {
			return false, nil // yield: output window full
		}
		b, err := d.in.GetRange(want)
		if err != nil {
			return false, err
		}
		if len(b) == 0 {
			return false, errUnexpectedEOF
		}
		if err := d.window.addBytes(b); err != nil {
			return false, err
		}
		s.remaining -= len(b)
	}
	return true, nil
}
