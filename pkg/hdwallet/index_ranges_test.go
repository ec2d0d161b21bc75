package hdwallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndexRanges(t *testing.T) {
	tests := []struct {
		input  string
		output []IndexRange
		err    error
	}{
		{"0", []IndexRange{{0, 0}}, nil},
		{"0-2", []IndexRange{{0, 2}}, nil},
		{"0,2-4,10", []IndexRange{{0, 0}, {2, 4}, {10, 10}}, nil},
		{" 0 , 2 - 4 ", []IndexRange{{0, 0}, {2, 4}}, nil},
		// order and overlaps are preserved as given
		{"5-10,0-7", []IndexRange{{5, 10}, {0, 7}}, nil},
		{"2147483647", []IndexRange{{2147483647, 2147483647}}, nil},

		{"", nil, ErrRangeNotSpecified},
		{"   ", nil, ErrRangeNotSpecified},
		{"0,,5", nil, EmptyRangeError{Position: 1}},
		{"0,x", nil, WrongIndexNumberError{Token: "x", Position: 1}},
		{"0,5-x", nil, WrongIndexNumberError{Token: "x", Position: 1}},
		{"1-2-3", nil, WrongRangeError{Token: "1-2-3", Position: 0}},
		{"5-1", nil, WrongRangeError{Token: "5-1", Position: 0}},
		// hardened indexes are out of the 31-bit normal space
		{"2147483648", nil, WrongIndexNumberError{Token: "2147483648", Position: 0}},
	}
	for _, tt := range tests {
		set, err := ParseIndexRanges(tt.input)
		if tt.err != nil {
			assert.Equal(t, tt.err, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.output, set.Ranges())
	}
}

func TestIndexRangesRoundTrip(t *testing.T) {
	tests := []string{"0", "0-2", "0,2-4,10", "5-10,0-7"}
	for _, tt := range tests {
		set, err := ParseIndexRanges(tt)
		require.NoError(t, err)

		reparsed, err := ParseIndexRanges(set.String())
		require.NoError(t, err)
		assert.Equal(t, set.Ranges(), reparsed.Ranges())
	}
}

func TestIndexRangesBoundsAndIteration(t *testing.T) {
	set, err := ParseIndexRanges("0,2-4,10")
	require.NoError(t, err)

	min, max := set.Bounds()
	assert.Equal(t, uint32(0), min)
	assert.Equal(t, uint32(10), max)
	assert.Equal(t, uint64(5), set.Count())

	indexes := collectIndexes(t, set)
	assert.Equal(t, []uint32{0, 2, 3, 4, 10}, indexes)

	for _, index := range indexes {
		assert.True(t, set.Contains(index))
		assert.GreaterOrEqual(t, index, min)
		assert.LessOrEqual(t, index, max)
	}
	assert.False(t, set.Contains(1))
	assert.False(t, set.Contains(11))
}

func TestIndexRangesOverlapsNotCollapsed(t *testing.T) {
	set, err := ParseIndexRanges("0-2,1-3")
	require.NoError(t, err)

	assert.Equal(t, uint64(6), set.Count())
	assert.Equal(t, []uint32{0, 1, 2, 1, 2, 3}, collectIndexes(t, set))
}

func TestIndexIteratorIsRestartable(t *testing.T) {
	set, err := ParseIndexRanges("7-9")
	require.NoError(t, err)

	first := collectIndexes(t, set)
	second := collectIndexes(t, set)
	assert.Equal(t, first, second)
}

func collectIndexes(t *testing.T, set *IndexRangeSet) []uint32 {
	t.Helper()

	indexes := make([]uint32, 0, set.Count())
	it := set.Iterator()
	for {
		index, ok := it.Next()
		if !ok {
			break
		}
		indexes = append(indexes, index)
	}
	return indexes
}
