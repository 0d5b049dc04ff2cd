package rom

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandOrder(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []uint32
	}{
		{name: "no wildcards", pattern: "101", want: []uint32{5}},
		{name: "single low", pattern: "10x", want: []uint32{4, 5}},
		{name: "single high", pattern: "x01", want: []uint32{1, 5}},
		// The leftmost wildcard takes bit 0 of the counter.
		{name: "two split", pattern: "x0x", want: []uint32{0, 4, 1, 5}},
		{name: "upper case", pattern: "1X", want: []uint32{2, 3}},
		{name: "all wild", pattern: "xx", want: []uint32{0, 2, 1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.pattern)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Expand(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestExpandExhaustiveAndInjective(t *testing.T) {
	patterns := []string{"x", "0", "1x0x", "xxxx", "1x1x1x1x", "x0000000000000000001", "xxxxxxxxxx"}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			got, err := Expand(p)
			require.NoError(t, err)

			var want []uint32
			for addr := uint32(0); addr < 1<<uint(len(p)); addr++ {
				if matches(p, addr) {
					want = append(want, addr)
				}
			}
			sorted := append([]uint32(nil), got...)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
			assert.Equal(t, want, sorted)
		})
	}
}

func matches(pattern string, addr uint32) bool {
	for i := 0; i < len(pattern); i++ {
		bit := (addr >> uint(len(pattern)-1-i)) & 1
		switch pattern[i] {
		case '0':
			if bit != 0 {
				return false
			}
		case '1':
			if bit != 1 {
				return false
			}
		}
	}
	return true
}

func TestWriteRange(t *testing.T) {
	img := make([]byte, 8)
	require.NoError(t, WriteRange(img, "1x0", 0xAA))
	assert.Equal(t, []byte{0, 0, 0, 0, 0xAA, 0, 0xAA, 0}, img)

	// Later writes win at overlapping addresses.
	require.NoError(t, WriteRange(img, "11x", 0x55))
	assert.Equal(t, []byte{0, 0, 0, 0, 0xAA, 0, 0x55, 0x55}, img)
}

func TestWriteRangeSingleAddress(t *testing.T) {
	img := make([]byte, 4)
	require.NoError(t, WriteRange(img, "01", 7))
	assert.Equal(t, []byte{0, 7, 0, 0}, img)
}

func TestWriteRangeErrors(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		pattern string
	}{
		{name: "empty pattern", size: 4, pattern: ""},
		{name: "bad character", size: 4, pattern: "0-"},
		{name: "too wide", size: 1 << 21, pattern: "xxxxxxxxxxxxxxxxxxxxx"},
		{name: "image too small", size: 2, pattern: "1x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := make([]byte, tt.size)
			assert.Error(t, WriteRange(img, tt.pattern, 1))
		})
	}
}
