package gzip_test

import (
	"bytes"
	stdgzip "compress/gzip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adilg123/gzdecomp/internal/checksum"
	"github.com/adilg123/gzdecomp/internal/deflate"
	"github.com/adilg123/gzdecomp/internal/gzip"
	"github.com/adilg123/gzdecomp/internal/sink"
)

func fixture(t *testing.T, name string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := stdgzip.NewWriterLevel(&buf, stdgzip.BestCompression)
	require.NoError(t, err)
	w.Name = name
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func defaultCfg(verify bool) gzip.Config {
	return gzip.Config{
		Config: deflate.Config{
			MaxOutputBufferSize: 1 << 18,
			MinOutputBufferSize: 32 * 1024,
			InputBufferSize:     256,
			Checksum:            checksum.NewCRC32(),
		},
		VerifyChecksum: verify,
	}
}

func TestHeaderNameSurvivesRoundTrip(t *testing.T) {
	data := []byte("one kilobyte or so of ASCII content for a dynamic Huffman block, " +
		"repeated to make sure the block isn't degenerate. ")
	data = bytes.Repeat(data, 20)
	raw := fixture(t, "report.txt", data)

	r, err := gzip.NewReader(bytes.NewReader(raw), defaultCfg(true))
	require.NoError(t, err)
	require.Equal(t, "report.txt", r.Header().Name)

	out, err := sink.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, data, out)
	require.True(t, r.Done())
}

func TestTrailerChecksumMismatchIsReported(t *testing.T) {
	data := []byte("some payload bytes for the trailer verification test")
	raw := fixture(t, "", data)

	// Flip a byte inside the trailer's CRC-32 field (last 8 bytes are
	// CRC-32 then ISIZE).
	corrupt := append([]byte(nil), raw...)
	corrupt[len(corrupt)-8] ^= 0xFF

	r, err := gzip.NewReader(bytes.NewReader(corrupt), defaultCfg(true))
	require.NoError(t, err)

	_, err = sink.ReadAll(r)
	require.Error(t, err)

	var derr *deflate.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, deflate.ChecksumMismatch, derr.Kind)
}

func TestVerifyChecksumDisabledIgnoresTrailerCorruption(t *testing.T) {
	data := []byte("payload that will be decompressed without verification")
	raw := fixture(t, "", data)

	corrupt := append([]byte(nil), raw...)
	corrupt[len(corrupt)-8] ^= 0xFF

	r, err := gzip.NewReader(bytes.NewReader(corrupt), defaultCfg(false))
	require.NoError(t, err)

	out, err := sink.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestBadMagicIsMalformedHeader(t *testing.T) {
	bad := []byte{0x00, 0x00, 0x08, 0x00, 0, 0, 0, 0, 0, 0xFF}
	_, err := gzip.NewReader(bytes.NewReader(bad), defaultCfg(true))
	require.Error(t, err)

	var derr *deflate.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, deflate.MalformedHeader, derr.Kind)
}

func TestFNAMEAndFCOMMENTAreIndependentFields(t *testing.T) {
	var buf bytes.Buffer
	w, err := stdgzip.NewWriterLevel(&buf, stdgzip.BestSpeed)
	require.NoError(t, err)
	w.Name = "data.txt"
	w.Comment = "generated for a test"
	_, err = w.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := gzip.NewReader(bytes.NewReader(buf.Bytes()), defaultCfg(true))
	require.NoError(t, err)
	require.Equal(t, "data.txt", r.Header().Name)
	require.Equal(t, "generated for a test", r.Header().Comment)
}
