package deflate

import (
	"math/bits"

	"github.com/adilg123/gzdecomp/internal/ioutil"
)

// bitReader is a bit-level view over a ByteInput, maintaining a 64-bit
// staging register. DEFLATE needs two different bit orderings: Huffman
// codes are packed MSB-first (the first bit read is the most significant
// bit of the code), while multi-bit integer fields (lengths, extra bits,
// HLIT/HDIST/HCLEN, stored-block LEN/NLEN) are packed LSB-first.
type bitReader struct {
	in       *ioutil.ByteInput
	data     uint64
	bitsLeft uint // bits at position >= bitsLeft in data are always zero
}

func newBitReader(in *ioutil.ByteInput) *bitReader {
	return &bitReader{in: in}
}

// refill tops up the staging register whenever it runs low. It pulls up to
// 6 bytes at a time (register width minus 2, leaving headroom so the shift
// below never loses bits) and ORs them in above the bits already held.
func (br *bitReader) refill() error {
	if br.bitsLeft >= 16 {
		return nil
	}
	const maxPull = 8 - 2
	b, err := br.in.GetRange(maxPull)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return nil // source momentarily exhausted; caller decides if that's fatal
	}
	var tmp uint64
	for i, c := range b {
		tmp |= uint64(c) << uint(8*i)
	}
	br.data |= tmp << br.bitsLeft
	br.bitsLeft += uint(8 * len(b))
	return nil
}

// getBits reads the next n (n <= 8) bits in Huffman order: the first bit
// read becomes the most significant bit of the result.
func (br *bitReader) getBits(n uint) (uint8, error) {
	if n == 0 {
		return 0, nil
	}
	if br.bitsLeft < n {
		if err := br.refill(); err != nil {
			return 0, err
		}
		if br.bitsLeft < n {
			return 0, errUnexpectedEOF
		}
	}
	lowByte := byte(br.data)
	rev := bits.Reverse8(lowByte)
	result := rev >> (8 - n)
	br.data >>= n
	br.bitsLeft -= n
	return result, nil
}

// getBitsForwardOrder reads the next n (n <= 16) bits as a little-endian
// integer in stream order (no reversal).
func (br *bitReader) getBitsForwardOrder(n uint) (uint16, error) {
	if n == 0 {
		return 0, nil
	}
	if br.bitsLeft < n {
		if err := br.refill(); err != nil {
			return 0, err
		}
		if br.bitsLeft < n {
			return 0, errUnexpectedEOF
		}
	}
	mask := uint64(1)<<n - 1
	result := uint16(br.data & mask)
	br.data >>= n
	br.bitsLeft -= n
	return result, nil
}

// peekByte returns the next 8 bits in Huffman order without consuming them,
// with zeros in the low-order positions if fewer than 8 bits remain in the
// stream.
func (br *bitReader) peekByte() (byte, error) {
	if br.bitsLeft < 8 {
		if err := br.refill(); err != nil {
			return 0, err
		}
	}
	return bits.Reverse8(byte(br.data)), nil
}

// skip consumes n bits already accounted for by a prior peekByte.
func (br *bitReader) skip(n uint) error {
	if br.bitsLeft < n {
		return errUnexpectedEOF
	}
	br.data >>= n
	br.bitsLeft -= n
	return nil
}

// release hands any whole bytes still held in the staging register back to
// the ByteInput, so the enclosing container can resume byte-aligned reads
// (stored blocks, GZIP trailer). It must be called exactly once, when the
// bitReader is retired at a block boundary.
func (br *bitReader) release() error {
	wholeBytes := int(br.bitsLeft / 8)
	if wholeBytes == 0 {
		return nil
	}
	if err := br.in.ReturnBytes(wholeBytes); err != nil {
		// The bytes were pulled straight from the ByteInput's own buffer by
		// refill, so this can only fail if release is called twice.
		return err
	}
	br.data = 0
	br.bitsLeft = 0
	return nil
}

// bitGroup wraps a partial Huffman-order read so a 7-bit prefix can be
// extended to 8 or 9 bits without re-reading the earlier bits, as required
// by the fixed-Huffman fast path (spec §4.2, §4.5).
type bitGroup struct {
	value  uint32
	length uint
}

func (br *bitReader) readBitGroup(n uint) (bitGroup, error) {
	v, err := br.getBits(n)
	if err != nil {
		return bitGroup{}, err
	}
	return bitGroup{value: uint32(v), length: n}, nil
}

func (bg *bitGroup) extend(br *bitReader) error {
	bit, err := br.getBits(1)
	if err != nil {
		return err
	}
	bg.value = (bg.value << 1) | uint32(bit)
	bg.length++
	return nil
}
