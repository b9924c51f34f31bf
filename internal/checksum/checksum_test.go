package checksum_test

import (
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adilg123/gzdecomp/internal/checksum"
)

func TestCRC32MatchesStandardLibrary(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	c := checksum.NewCRC32()
	c.Update(data)

	require.Equal(t, crc32.ChecksumIEEE(data), c.Sum32())
}

func TestCRC32AndSlicing16AgreeOnEveryPrefix(t *testing.T) {
	data := []byte("0123456789abcdefghijklmnopqrstuvwxyz")

	crcA := checksum.NewCRC32()
	crcB := checksum.NewSlicing16()

	for i := range data {
		crcA.Update(data[i : i+1])
		crcB.Update(data[i : i+1])
		require.Equalf(t, crcA.Sum32(), crcB.Sum32(), "prefix length %d", i+1)
	}
}

func TestNoopNeverAccumulates(t *testing.T) {
	n := checksum.Noop{}
	n.Update([]byte("anything"))
	require.Equal(t, uint32(0), n.Sum32())
}
