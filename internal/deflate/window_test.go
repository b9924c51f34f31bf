package deflate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adilg123/gzdecomp/internal/checksum"
)

// TestConsumeDoesNotCorruptItsOwnReturnedSlice exercises the first
// mid-stream consume on a window filled past minKeep: readMark starts at 0
// while the retained history window sits at the tail of what's being
// returned, which is exactly the aliasing case a same-call slide would
// corrupt.
func TestConsumeDoesNotCorruptItsOwnReturnedSlice(t *testing.T) {
	w := newOutputWindow(20, 5, checksum.Noop{})
	want := make([]byte, 20)
	for i := range want {
		want[i] = byte(i)
		require.NoError(t, w.addByte(want[i]))
	}

	got := append([]byte(nil), w.consume(0)...)
	require.Equal(t, want, got, "first consume must return the untouched bytes, not the post-slide history")
}

// TestConsumeAcrossMultipleSlidesReproducesEveryByte drives several
// produce/consume cycles past the window's capacity and checks the
// reassembled stream against the original bytes, including the cycle where
// the window is exactly full and a consume call must apply a deferred
// slide before any new bytes are available.
func TestConsumeAcrossMultipleSlidesReproducesEveryByte(t *testing.T) {
	w := newOutputWindow(8, 3, checksum.Noop{})
	var want, got []byte
	for i := 0; i < 50; i++ {
		b := byte(i % 256)
		want = append(want, b)
		for w.available() == 0 {
			got = append(got, w.consume(0)...)
		}
		require.NoError(t, w.addByte(b))
	}
	w.markDone()
	got = append(got, w.consume(0)...)

	require.Equal(t, want, got)
}

// TestRepeatSequenceSurvivesAPendingSlide checks that a back-reference
// issued right after a consume call (whose slide is now deferred) still
// reads from the correct, already-relocated history.
func TestRepeatSequenceSurvivesAPendingSlide(t *testing.T) {
	w := newOutputWindow(10, 2, checksum.Noop{})
	for _, b := range []byte("abcd") {
		require.NoError(t, w.addByte(b))
	}
	first := append([]byte(nil), w.consume(0)...)
	require.Equal(t, []byte("abcd"), first)

	// The slide from the call above (retaining the last 2 bytes, "cd") is
	// still pending; repeatSequence must address history through w.used
	// as it stood before that slide runs, not assume it already happened.
	require.NoError(t, w.repeatSequence(2, 2))
	second := append([]byte(nil), w.consume(0)...)
	require.Equal(t, []byte("cd"), second)
}
