// Package checksum provides the ChecksumTrait contract used by the
// decompressor to fold emitted bytes into a running digest.
package checksum

import "hash/crc32"

// Trait is satisfied by anything that can fold a byte range into internal
// state and report the current digest. The decompressor never cares which
// concrete algorithm backs it.
type Trait interface {
	Update(p []byte)
	Sum32() uint32
}

// Noop never touches its input; used by the minimal profile where
// verification is disabled and folding bytes would be wasted work.
type Noop struct{}

func (Noop) Update(p []byte) {}
func (Noop) Sum32() uint32   { return 0 }

// CRC32 folds each range in a single crc32.Update call over the IEEE
// polynomial table. It is the reference implementation; Slicing16 below must
// agree with it on every prefix (spec §8.4).
type CRC32 struct {
	crc uint32
}

func NewCRC32() *CRC32 { return &CRC32{} }

func (c *CRC32) Update(p []byte) {
	c.crc = crc32.Update(c.crc, crc32.IEEETable, p)
}

func (c *CRC32) Sum32() uint32 { return c.crc }

// Slicing16 feeds each range to crc32.Update in 16-byte chunks, with the
// shorter tail last. It has no slicing tables of its own: every chunk goes
// through the standard library's IEEE implementation, so it computes the
// same digest as CRC32 and differs only in how it splits the input.
type Slicing16 struct {
	h uint32
}

func NewSlicing16() *Slicing16 { return &Slicing16{} }

func (c *Slicing16) Update(p []byte) {
	const chunk = 16
	for len(p) >= chunk {
		c.h = crc32.Update(c.h, crc32.IEEETable, p[:chunk])
		p = p[chunk:]
	}
	if len(p) > 0 {
		c.h = crc32.Update(c.h, crc32.IEEETable, p)
	}
}

func (c *Slicing16) Sum32() uint32 { return c.h }
