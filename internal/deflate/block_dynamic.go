package deflate

// dynamicBlockState drives a BTYPE=10 block using the two Huffman tables
// built from the block's own transmitted code-length metadata (spec §4.5).
type dynamicBlockState struct {
	br      *bitReader
	lit     *huffmanTable
	dist    *huffmanTable
	pending *pendingCopy
}

// newDynamicBlock reads HLIT/HDIST/HCLEN, the code-length metadata, and the
// combined lit/length+distance code-length vector, then builds both tables.
func newDynamicBlock(br *bitReader) (*dynamicBlockState, error) {
	hlitField, err := br.getBitsForwardOrder(5)
	if err != nil {
		return nil, err
	}
	if hlitField > 29 {
		return nil, newError(MalformedHeader, "HLIT out of range")
	}
	hdistField, err := br.getBitsForwardOrder(5)
	if err != nil {
		return nil, err
	}
	hclenField, err := br.getBitsForwardOrder(4)
	if err != nil {
		return nil, err
	}

	hlit := int(hlitField) + 257
	hdist := int(hdistField) + 1
	hclen := int(hclenField) + 4

	cld, err := newCodeLengthDecoder(br, hclen)
	if err != nil {
		return nil, err
	}
	litLengths, distLengths, err := cld.readLengths(br, hlit, hdist)
	if err != nil {
		return nil, err
	}
	litTable, err := buildHuffmanTable(litLengths)
	if err != nil {
		return nil, err
	}
	distTable, err := buildHuffmanTable(distLengths)
	if err != nil {
		return nil, err
	}
	return &dynamicBlockState{br: br, lit: litTable, dist: distTable}, nil
}

func (s *dynamicBlockState) bitReader() *bitReader { return s.br }

func (s *dynamicBlockState) step(d *Decoder) (bool, error) {
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
		symbol, err := s.lit.readWord(s.br)
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
			distSym, err := s.dist.readWord(s.br)
			if err != nil {
				return false, err
			}
			distance, err := decodeDistance(s.br, distSym)
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
