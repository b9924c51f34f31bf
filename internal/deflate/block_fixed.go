package deflate

// fixedBlockState drives a BTYPE=01 block using the statically defined
// fixed Huffman codes, decoded inline via the bitGroup extension mechanism
// instead of a built table (spec §4.5).
type fixedBlockState struct {
	br      *bitReader
	pending *pendingCopy
}

func newFixedBlock(br *bitReader) *fixedBlockState {
	return &fixedBlockState{br: br}
}

func (s *fixedBlockState) bitReader() *bitReader { return s.br }

func (s *fixedBlockState) step(d *Decoder) (bool, error) {
	for {
		if s.pending != nil {
			drained, err := d.resumePending(s.pending)
			if err != nil {
				return false, err
			}
			if !drained {
				return false, nil
			}
			s.pending = nil
			continue
		}
		if d.window.available() == 0 {
			return false, nil
		}
		symbol, err := decodeFixedLiteral(s.br)
		if err != nil {
			return false, err
		}
		switch {
		case symbol < 256:
			if err := d.window.addByte(byte(symbol)); err != nil {
				return false, err
			}
		case symbol == 256:
			return true, nil
		default:
			length, err := decodeLength(s.br, symbol)
			if err != nil {
				return false, err
			}
			// The fixed distance code is 5 bits, all of equal length, so
			// its canonical assignment maps code value directly to symbol.
			distSym, err := s.br.getBits(5)
			if err != nil {
				return false, err
			}
			distance, err := decodeDistance(s.br, uint16(distSym))
			if err != nil {
				return false, err
			}
			pending, err := d.applyMatch(length, distance)
			if err != nil {
				return false, err
			}
			if pending != nil {
				s.pending = pending
				return false, nil
			}
		}
	}
}

// decodeFixedLiteral decodes one lit/length symbol using the fixed Huffman
// code: literals 0..143 use 8-bit codes 00110000..10111111; 144..255 use
// 9-bit codes 110010000..111111111; 256..279 use 7-bit codes
// 0000000..0010111; 280..287 use 8-bit codes 11000000..11000111. A 7-bit
// prefix is read first and extended to 8 or 9 bits only when needed.
func decodeFixedLiteral(br *bitReader) (uint16, error) {
	bg, err := br.readBitGroup(7)
	if err != nil {
		return 0, err
	}
	if bg.value < 24 {
		return uint16(256 + bg.value), nil
	}
	if err := bg.extend(br); err != nil {
		return 0, err
	}
	if bg.value < 192 {
		return uint16(bg.value - 48), nil
	}
	if bg.value < 200 {
		return uint16(bg.value - 192 + 280), nil
	}
	if err := bg.extend(br); err != nil {
		return 0, err
	}
	return uint16(bg.value - 400 + 144), nil
}
