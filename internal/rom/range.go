package rom

import "fmt"

// MaxAddressBits is the widest address a truth table may declare.
const MaxAddressBits = 20

// wildcards holds the bit weights of the don't-care positions of a pattern,
// ordered left to right. The j-th entry receives bit j of the counter.
type wildcards struct {
	weight [MaxAddressBits]uint32
	n      int
}

// parsePattern folds a pattern of '0', '1' and 'x' characters MSB first into
// its base address (don't-care bits as zero) and the ordered wildcard list.
func parsePattern(pattern string) (uint32, wildcards, error) {
	var (
		base uint32
		wild wildcards
	)
	if len(pattern) == 0 || len(pattern) > MaxAddressBits {
		return 0, wild, fmt.Errorf("address pattern %q must have 1-%d bits", pattern, MaxAddressBits)
	}
	for i := 0; i < len(pattern); i++ {
		base <<= 1
		switch pattern[i] {
		case '0':
		case '1':
			base |= 1
		case 'x', 'X':
			wild.weight[wild.n] = 1 << uint(len(pattern)-1-i)
			wild.n++
		default:
			return 0, wild, fmt.Errorf("invalid character %q in address pattern %q", pattern[i], pattern)
		}
	}
	return base, wild, nil
}

// offset spreads the bits of counter k over the wildcard positions.
func (w *wildcards) offset(k uint32) uint32 {
	var off uint32
	for j := 0; j < w.n; j++ {
		if (k>>uint(j))&1 != 0 {
			off |= w.weight[j]
		}
	}
	return off
}

// WriteRange writes val at every address denoted by pattern. A pattern with
// w don't-care bits touches exactly 2^w distinct addresses.
func WriteRange(img []byte, pattern string, val byte) error {
	base, wild, err := parsePattern(pattern)
	if err != nil {
		return err
	}
	if len(img) < 1<<uint(len(pattern)) {
		return fmt.Errorf("image of %d bytes cannot hold %d-bit address pattern %q", len(img), len(pattern), pattern)
	}
	count := uint32(1) << uint(wild.n)
	for k := uint32(0); k < count; k++ {
		img[base+wild.offset(k)] = val
	}
	return nil
}

// Expand lists the addresses denoted by pattern in the order WriteRange
// visits them.
func Expand(pattern string) ([]uint32, error) {
	base, wild, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}
	count := uint32(1) << uint(wild.n)
	out := make([]uint32, 0, count)
	for k := uint32(0); k < count; k++ {
		out = append(out, base+wild.offset(k))
	}
	return out, nil
}
