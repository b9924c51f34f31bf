package deflate

import "github.com/adilg123/gzdecomp/internal/checksum"

// outputWindow is the sliding-window output buffer: a single contiguous
// byte slice so that both back-reference copies and the slices returned to
// callers are trivially contiguous (spec §4.6, §9 design notes).
type outputWindow struct {
	buf     []byte
	minKeep int // minOutputBufferSize: bytes of history guaranteed addressable

	used     int // write cursor; buf[:used] holds valid produced bytes
	readMark int // buf[readMark:used] hasn't been returned by consume yet

	// A slide owed to the *previous* consume call's returned slice is
	// applied at the start of the next one, once the caller has had that
	// slice to itself — never inside the same call that hands it back.
	shiftFrom    int
	pendingShift bool

	produced uint64 // cumulative bytes ever produced, never reset by slides
	done     bool

	sum checksum.Trait
}

func newOutputWindow(capacity, minKeep int, sum checksum.Trait) *outputWindow {
	if sum == nil {
		sum = checksum.Noop{}
	}
	// capacity must leave room beyond the retained history or the window
	// never regains available() after its first slide.
	if minKeep >= capacity {
		capacity = minKeep + 1
	}
	return &outputWindow{
		buf:     make([]byte, capacity),
		minKeep: minKeep,
		sum:     sum,
	}
}

func (w *outputWindow) available() int {
	return len(w.buf) - w.used
}

// addByte appends a single literal byte. The caller (the decoder) is
// responsible for yielding before capacity would be exceeded; exceeding it
// here is a logic error, not a data error.
func (w *outputWindow) addByte(b byte) error {
	if w.available() < 1 {
		return newError(Internal, "addByte called with no available capacity")
	}
	w.buf[w.used] = b
	w.used++
	w.produced++
	return nil
}

func (w *outputWindow) addBytes(s []byte) error {
	if w.available() < len(s) {
		return newError(Internal, "addBytes called with insufficient available capacity")
	}
	n := copy(w.buf[w.used:], s)
	w.used += n
	w.produced += uint64(n)
	return nil
}

// producedSoFar is the cumulative number of bytes produced this session,
// used to validate that a back-reference distance is satisfiable.
func (w *outputWindow) producedSoFar() uint64 {
	return w.produced
}

// repeatSequence performs an overlapping LZ77 copy of length bytes from
// used-distance forward. distance < length (RLE-style overlap) is
// supported by copying in chunks of size min(distance, remaining); each
// chunk extends the readable source range for the next one, which is what
// reproduces a repeating motif.
func (w *outputWindow) repeatSequence(length, distance int) error {
	if length > w.available() {
		return newError(Internal, "repeatSequence called with insufficient available capacity")
	}
	remaining := length
	for remaining > 0 {
		chunk := distance
		if chunk > remaining {
			chunk = remaining
		}
		src := w.used - distance
		copy(w.buf[w.used:w.used+chunk], w.buf[src:src+chunk])
		w.used += chunk
		remaining -= chunk
	}
	w.produced += uint64(length)
	return nil
}

// consume returns the bytes produced since the previous consume call,
// folding them into the checksum. It first applies the slide left pending
// by the *previous* call — the region that slide reads from is exactly
// what that call already returned, so it's only safe to overwrite now,
// once the caller has had it to itself. It then retains at least
// max(bytesToKeep, minOutputBufferSize) bytes of trailing history (or
// everything if less than that has been produced) so that future
// back-references up to 32768 bytes remain addressable — but only
// schedules that slide for next time, rather than running it against the
// slice this call is about to hand back.
func (w *outputWindow) consume(bytesToKeep int) []byte {
	if w.pendingShift {
		n := copy(w.buf, w.buf[w.shiftFrom:w.used])
		w.used = n
		w.readMark -= w.shiftFrom
		w.pendingShift = false
	}

	out := w.buf[w.readMark:w.used]
	w.sum.Update(out)
	w.readMark = w.used

	if w.done {
		return out
	}

	retain := bytesToKeep
	if w.minKeep > retain {
		retain = w.minKeep
	}
	if retain > w.used {
		retain = w.used
	}
	w.shiftFrom = w.used - retain
	w.pendingShift = true
	return out
}

// markDone marks the stream terminated; subsequent consume calls return
// all remaining bytes without sliding.
func (w *outputWindow) markDone() {
	w.done = true
}
