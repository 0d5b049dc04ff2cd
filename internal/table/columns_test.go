package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	c, err := ParseHeader("AA01", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Line)
	assert.Equal(t, 2, c.AddressBits)
	assert.Equal(t, 2, c.ImageCount)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []Role{AddressBit, AddressBit, 0, 1}, c.Roles)
	assert.Equal(t, []int{0, 1}, c.Images())
	assert.Equal(t, "AA01", c.String())
}

func TestParseHeaderSparseImages(t *testing.T) {
	c, err := ParseHeader("a3Aa33", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, c.AddressBits)
	assert.Equal(t, 4, c.ImageCount)
	assert.Equal(t, []int{3}, c.Images())
	assert.Equal(t, 3, c.Width(3))
	assert.Equal(t, 0, c.Width(0))
	assert.Equal(t, 0, c.Width(12))
}

func TestParseHeaderBounds(t *testing.T) {
	c, err := ParseHeader("AAAAAAAAAAAAAAAAAAAA9", 1)
	require.NoError(t, err)
	assert.Equal(t, 20, c.AddressBits)
	assert.Equal(t, 10, c.ImageCount)
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		header string
		kind   ConfigErrorKind
		reason string
	}{
		{name: "bad character", header: "AAx0", kind: BadHeader, reason: "invalid character in configuration"},
		{name: "dash", header: "AA-0", kind: BadHeader, reason: "invalid character in configuration"},
		{name: "no images", header: "AAAA", kind: ImageCountRange, reason: "must specify at least 1 ROM number"},
		{name: "no address", header: "0123", kind: AddressBitsRange, reason: "must have between 1-20 state bits"},
		{name: "too many address bits", header: "AAAAAAAAAAAAAAAAAAAAA0", kind: AddressBitsRange, reason: "must have between 1-20 state bits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.header, 7)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, 7, cfgErr.Line)
			assert.Equal(t, tt.kind, cfgErr.Kind)
			assert.Equal(t, tt.reason, cfgErr.Reason)
			assert.Equal(t, "line 7: "+tt.reason, err.Error())
		})
	}
}
