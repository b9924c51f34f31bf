package deflate

// pendingCopy records an LZ77 back-reference copy that straddled an
// output-full yield, so the block substate can resume it on the next
// parseSome call without re-decoding the symbol (spec §3, "Decoder state").
type pendingCopy struct {
	distance  int
	remaining int
}

// decodeLength maps a length symbol (257..285) to its match length,
// consuming any extra bits from br (spec §3, "Length codes").
func decodeLength(br *bitReader, symbol uint16) (int, error) {
	idx := int(symbol) - 257
	if idx < 0 || idx >= len(lengthTable) {
		return 0, newError(MalformedHeader, "length symbol out of range")
	}
	rc := lengthTable[idx]
	if rc.extra == 0 {
		return int(rc.base), nil
	}
	extra, err := br.getBitsForwardOrder(rc.extra)
	if err != nil {
		return 0, err
	}
	return int(rc.base) + int(extra), nil
}

// decodeDistance maps a distance symbol (0..29) to its back-reference
// distance, consuming any extra bits from br (spec §3, "Distance codes").
func decodeDistance(br *bitReader, symbol uint16) (int, error) {
	if int(symbol) >= len(distanceTable) {
		return 0, newError(MalformedHeader, "distance symbol out of range")
	}
	rc := distanceTable[symbol]
	if rc.extra == 0 {
		return int(rc.base), nil
	}
	extra, err := br.getBitsForwardOrder(rc.extra)
	if err != nil {
		return 0, err
	}
	return int(rc.base) + int(extra), nil
}

// applyMatch validates and performs (or partially performs) a back-reference
// copy against the decoder's output window. If the window fills before the
// whole match is copied, it returns a pendingCopy describing the remainder.
func (d *Decoder) applyMatch(length, distance int) (*pendingCopy, error) {
	if distance == 0 {
		return nil, newError(MalformedHeader, "zero back-reference distance")
	}
	if uint64(distance) > d.window.producedSoFar() {
		return nil, newError(BackReferenceOutOfRange, "distance exceeds bytes produced so far")
	}

	avail := d.window.available()
	n := length
	if n > avail {
		n = avail
	}
	if n > 0 {
		if err := d.window.repeatSequence(n, distance); err != nil {
			return nil, err
		}
	}
	if remaining := length - n; remaining > 0 {
		return &pendingCopy{distance: distance, remaining: remaining}, nil
	}
	return nil, nil
}

// resumePending advances a previously-yielded copy as far as output capacity
// allows. It reports whether the copy is now fully drained.
func (d *Decoder) resumePending(p *pendingCopy) (drained bool, err error) {
	avail := d.window.available()
	if avail == 0 {
		return false, nil
	}
	n := p.remaining
	if n > avail {
		n = avail
	}
	if err := d.window.repeatSequence(n, p.distance); err != nil {
		return false, err
	}
	p.remaining -= n
	return p.remaining == 0, nil
}
