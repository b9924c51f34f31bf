package sink_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adilg123/gzdecomp/internal/sink"
)

// fakeStream produces data in fixed-size chunks without any real
// decompression, exercising sink's pull loop in isolation.
type fakeStream struct {
	data         []byte
	chunkSize    int
	produced     int
	consumedThru int
	done         bool
}

func newFakeStream(data []byte, chunkSize int) *fakeStream {
	return &fakeStream{data: data, chunkSize: chunkSize}
}

func (f *fakeStream) ParseSome() (bool, error) {
	if f.produced >= len(f.data) {
		f.done = true
		return false, nil
	}
	end := f.produced + f.chunkSize
	if end > len(f.data) {
		end = len(f.data)
	}
	f.produced = end
	return f.produced < len(f.data), nil
}

func (f *fakeStream) Consume(bytesToKeep int) []byte {
	out := f.data[f.consumedThru:f.produced]
	f.consumedThru = f.produced
	return out
}

func (f *fakeStream) Done() bool { return f.done }

func TestReadAllReassemblesEveryChunk(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, thirty-five times")
	s := newFakeStream(data, 6)

	out, err := sink.ReadAll(s)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestReadSomeYieldsOneChunkPerCallThenFalse(t *testing.T) {
	data := []byte("abcdefghij")
	s := newFakeStream(data, 4)

	var got []byte
	for {
		chunk, ok, err := sink.ReadSome(s, 0)
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, chunk...)
	}
	require.Equal(t, data, got)
}

func TestReadByLinesInvokesOncePerSeparatorPlusTrailing(t *testing.T) {
	lines := [][]byte{[]byte("alpha"), []byte("beta"), []byte("gamma")}
	input := bytes.Join(lines, []byte("\n")) // no trailing separator

	s := newFakeStream(input, 3)
	var got [][]byte
	err := sink.ReadByLines(s, func(line []byte) error {
		cp := append([]byte(nil), line...)
		got = append(got, cp)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, lines, got)
}

func TestReadByLinesWithTerminatedInputHasNoTrailingCall(t *testing.T) {
	lines := [][]byte{[]byte("one"), []byte("two")}
	input := append(bytes.Join(lines, []byte("\n")), '\n')

	s := newFakeStream(input, 5)
	var got [][]byte
	err := sink.ReadByLines(s, func(line []byte) error {
		cp := append([]byte(nil), line...)
		got = append(got, cp)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, lines, got)
}
