package deflate

// codeLengthDecoder builds the 19-symbol meta-Huffman table used to decode
// the code-length sequences of dynamic blocks, and expands that sequence
// into the literal/length and distance code-length vectors (spec §4.4).
type codeLengthDecoder struct {
	table *huffmanTable
}

// rleRule describes symbols 16, 17 and 18 of the code-length alphabet: how
// many extra bits follow, and the base repeat count they add to.
var rleRule = map[int]rangeCode{
	16: {base: 3, extra: 2},
	17: {base: 3, extra: 3},
	18: {base: 11, extra: 7},
}

// newCodeLengthDecoder reads HCLEN+4 three-bit meta-lengths from br (already
// positioned just past HLIT/HDIST/HCLEN), reshuffles them via
// codeLengthOrder, and builds the meta-Huffman table. Lengths beyond the
// ones transmitted default to 0, per spec.
func newCodeLengthDecoder(br *bitReader, hclen int) (*codeLengthDecoder, error) {
	var metaLengths [19]uint8
	for i := 0; i < hclen; i++ {
		v, err := br.getBitsForwardOrder(3)
		if err != nil {
			return nil, err
		}
		metaLengths[codeLengthOrder[i]] = uint8(v)
	}
	table, err := buildHuffmanTable(metaLengths[:])
	if err != nil {
		return nil, err
	}
	return &codeLengthDecoder{table: table}, nil
}

// readLengths decodes the combined lit/length + distance code-length vector
// (total entries) and splits it into the two halves, sized hlit and hdist.
func (cld *codeLengthDecoder) readLengths(br *bitReader, hlit, hdist int) (litLengths, distLengths []uint8, err error) {
	total := hlit + hdist
	lengths := make([]uint8, 0, total)

	for len(lengths) < total {
		symbol, err := cld.table.readWord(br)
		if err != nil {
			return nil, nil, err
		}
		switch {
		case symbol < 16:
			lengths = append(lengths, uint8(symbol))
		case symbol == 16:
			if len(lengths) == 0 {
				return nil, nil, newError(MalformedHeader, "code 16 with no previous length to repeat")
			}
			rule := rleRule[16]
			extra, err := br.getBitsForwardOrder(rule.extra)
			if err != nil {
				return nil, nil, err
			}
			n := int(rule.base) + int(extra)
			prev := lengths[len(lengths)-1]
			for i := 0; i < n; i++ {
				lengths = append(lengths, prev)
			}
		case symbol == 17 || symbol == 18:
			rule := rleRule[int(symbol)]
			extra, err := br.getBitsForwardOrder(rule.extra)
			if err != nil {
				return nil, nil, err
			}
			n := int(rule.base) + int(extra)
			for i := 0; i < n; i++ {
				lengths = append(lengths, 0)
			}
		default:
			return nil, nil, newError(MalformedHeader, "code-length symbol out of range")
		}
		if len(lengths) > total {
			return nil, nil, newError(MalformedHeader, "code-length run overruns the declared total")
		}
	}
	return lengths[:hlit], lengths[hlit : hlit+hdist], nil
}
