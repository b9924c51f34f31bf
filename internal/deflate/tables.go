package deflate

// rangeCode is a (base, extraBits) pair: a symbol maps to [base, base+2^extraBits).
type rangeCode struct {
	base  uint32
	extra uint
}

// lengthTable maps length symbols 257..285 to (base length, extra bits),
// indexed by symbol-257 (spec §3, "Length codes").
var lengthTable = [285 - 257 + 1]rangeCode{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// distanceTable maps distance symbols 0..29 to (base distance, extra bits)
// (spec §3, "Distance codes").
var distanceTable = [30]rangeCode{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// codeLengthOrder is the fixed, non-monotonic permutation the wire format
// uses to transmit the 19 code-length-alphabet lengths (spec §3).
var codeLengthOrder = [19]int{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15,
}

// fixedLitLengths and fixedDistLengths are the hardcoded code lengths for
// BTYPE=01 fixed-Huffman blocks (spec §4.5).
var fixedLitLengths = func() []uint8 {
	l := make([]uint8, 288)
	for i := 0; i < 144; i++ {
		l[i] = 8
	}
	for i := 144; i < 256; i++ {
		l[i] = 9
	}
	for i := 256; i < 280; i++ {
		l[i] = 7
	}
	for i := 280; i < 288; i++ {
		l[i] = 8
	}
	return l
}()

var fixedDistLengths = func() []uint8 {
	l := make([]uint8, 30)
	for i := range l {
		l[i] = 5
	}
	return l
}()

const (
	maxBackDistance = 32768
	maxMatchLength  = 258
)
