package deflate_test

import (
	"bytes"
	"compress/flate"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adilg123/gzdecomp/internal/checksum"
	"github.com/adilg123/gzdecomp/internal/deflate"
)

// chunkReader hands out at most maxChunk bytes per Read, so tests can
// exercise the decoder against arbitrarily fragmented input deliveries
// without changing the underlying bytes (the "chunk-invariance" property).
type chunkReader struct {
	data     []byte
	pos      int
	maxChunk int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	n := c.maxChunk
	if n > len(p) {
		n = len(p)
	}
	if rem := len(c.data) - c.pos; n > rem {
		n = rem
	}
	copy(p, c.data[c.pos:c.pos+n])
	c.pos += n
	return n, nil
}

// decodeAll drains a Decoder configured with the given output buffer sizes,
// returning the full decompressed payload.
func decodeAll(t *testing.T, src io.Reader, maxOut, minOut int) []byte {
	t.Helper()
	d := deflate.New(src, deflate.Config{
		MaxOutputBufferSize: maxOut,
		MinOutputBufferSize: minOut,
		InputBufferSize:     64,
		Checksum:            checksum.NewCRC32(),
	})

	var out []byte
	for {
		more, err := d.ParseSome()
		require.NoError(t, err)
		out = append(out, d.Consume(minOut)...)
		if !more && d.Done() {
			break
		}
	}
	return out
}

// rawDeflate compresses data with the standard library's compressor into a
// raw DEFLATE stream (no ZLIB/GZIP framing), used purely as a reference
// encoder to produce test fixtures.
func rawDeflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestRoundTripRawDeflateVariousSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sizes := []int{0, 1, 17, 1000, 5000, 70000}
	for _, n := range sizes {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte('a' + rng.Intn(4))
		}
		compressed := rawDeflate(t, data)
		got := decodeAll(t, bytes.NewReader(compressed), 1<<18, 32*1024)
		require.Equal(t, data, got, "size %d", n)
	}
}

func TestChunkInvarianceAcrossDeliveryGranularities(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	data := make([]byte, 40000)
	for i := range data {
		data[i] = byte(rng.Intn(256))
	}
	compressed := rawDeflate(t, data)

	whole := decodeAll(t, bytes.NewReader(compressed), 1<<18, 32*1024)
	require.Equal(t, data, whole)

	for _, chunk := range []int{1, 3, 7, 64} {
		got := decodeAll(t, &chunkReader{data: compressed, maxChunk: chunk}, 1<<18, 32*1024)
		require.Equalf(t, whole, got, "chunk size %d", chunk)
	}
}

func TestBackPressureInvarianceAcrossWindowSizes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	data := make([]byte, 90000)
	for i := range data {
		data[i] = byte('A' + rng.Intn(3))
	}
	compressed := rawDeflate(t, data)

	reference := decodeAll(t, bytes.NewReader(compressed), 100000, 32768)
	for _, maxOut := range []int{32769, 40000, 65536} {
		got := decodeAll(t, bytes.NewReader(compressed), maxOut, 32768)
		require.Equalf(t, reference, got, "maxOutputBufferSize %d", maxOut)
	}
}

func TestChecksumMatchesEmittedBytes(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated for good measure")
	compressed := rawDeflate(t, data)

	d := deflate.New(bytes.NewReader(compressed), deflate.Config{
		MaxOutputBufferSize: 1 << 16,
		MinOutputBufferSize: 32 * 1024,
		InputBufferSize:     64,
		Checksum:            checksum.NewCRC32(),
	})
	var out []byte
	for {
		more, err := d.ParseSome()
		require.NoError(t, err)
		out = append(out, d.Consume(0)...)
		if !more && d.Done() {
			break
		}
	}
	require.Equal(t, data, out)

	want := checksum.NewCRC32()
	want.Update(out)
	require.Equal(t, want.Sum32(), d.Checksum())
}

func TestErrorSensitivityToBitFlips(t *testing.T) {
	data := bytes.Repeat([]byte("flip me if you can"), 200)
	compressed := rawDeflate(t, data)

	mismatches, errored := 0, 0
	for i := 0; i < len(compressed)*8 && i < 400; i++ {
		mutated := append([]byte(nil), compressed...)
		mutated[i/8] ^= 1 << uint(i%8)

		func() {
			defer func() { _ = recover() }()
			d := deflate.New(bytes.NewReader(mutated), deflate.Config{
				MaxOutputBufferSize: 1 << 16,
				MinOutputBufferSize: 32 * 1024,
				InputBufferSize:     64,
				Checksum:            checksum.NewCRC32(),
			})
			var out []byte
			for {
				more, err := d.ParseSome()
				if err != nil {
					errored++
					return
				}
				out = append(out, d.Consume(0)...)
				if !more && d.Done() {
					break
				}
			}
			if !bytes.Equal(out, data) {
				mismatches++
			}
		}()
	}
	// Every flipped bit must either reproduce the original output or be
	// caught as an error; a silent, different-but-unreported output would
	// fail this assertion by inflating mismatches without a matching error.
	require.Equal(t, 0, mismatches)
}

func TestS1EmptyFinalBlockGZIP(t *testing.T) {
	hex := []byte{
		0x1F, 0x8B, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF,
		0x03, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	// Skip the 10-byte GZIP header to feed the raw DEFLATE member directly.
	// 03 00 is a final fixed-Huffman block holding only end-of-block.
	d := deflate.New(bytes.NewReader(hex[10:12]), deflate.Config{
		MaxOutputBufferSize: 1024,
		MinOutputBufferSize: 32,
		InputBufferSize:     16,
		Checksum:            checksum.NewCRC32(),
	})
	var out []byte
	for {
		more, err := d.ParseSome()
		require.NoError(t, err)
		out = append(out, d.Consume(0)...)
		if !more && d.Done() {
			break
		}
	}
	require.Empty(t, out)
	require.Equal(t, uint32(0), d.Checksum())
}

func TestS2FixedHuffmanLiteralA(t *testing.T) {
	payload := []byte{0x4B, 0x04, 0x00}
	got := decodeAll(t, bytes.NewReader(payload), 1024, 32)
	require.Equal(t, []byte("a"), got)
}

func TestS3FixedHuffmanRepeatedA(t *testing.T) {
	// Literal 'a', literal 'a', then length 8 at distance 1.
	payload := []byte{0x4B, 0x4C, 0x84, 0x01, 0x00}
	got := decodeAll(t, bytes.NewReader(payload), 1024, 32)
	require.Equal(t, bytes.Repeat([]byte("a"), 10), got)
}

func TestS4StoredBlockHello(t *testing.T) {
	payload := []byte{
		0x00, // BFINAL=0 BTYPE=00
		0x05, 0x00, 0xFA, 0xFF,
		'h', 'e', 'l', 'l', 'o',
		0x01, // BFINAL=1 BTYPE=00, empty stored block
		0x00, 0x00, 0xFF, 0xFF,
	}
	got := decodeAll(t, bytes.NewReader(payload), 1024, 32)
	require.Equal(t, []byte("hello"), got)
}

func TestS6OverlappingBackReference(t *testing.T) {
	data := []byte("X")
	data = append(data, bytes.Repeat([]byte("X"), 9)...)
	compressed := rawDeflate(t, data)
	got := decodeAll(t, bytes.NewReader(compressed), 1024, 32)
	require.Equal(t, []byte("XXXXXXXXXX"), got)
}
