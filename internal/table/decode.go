package table

import (
	"fmt"
	"strings"
)

// Row is one decoded data line: the address pattern over '0', '1' and 'x',
// and the output byte accumulated for each image.
type Row struct {
	Line    int
	Pattern string
	Values  []byte
}

// DecodeRow splits a cleaned data line into its address pattern and per-image
// output bytes. Output don't-cares must already be substituted.
func DecodeRow(text string, line int, c *Columns) (Row, error) {
	if strings.Trim(text, "01xX") != "" {
		return Row{}, &RowError{Line: line, Kind: BadCharacter, Reason: "invalid character in data"}
	}
	if len(text) != c.Len() {
		return Row{}, &RowError{
			Line:   line,
			Kind:   WrongLength,
			Reason: fmt.Sprintf("wrong number of fields (wanted %d, got %d)", c.Len(), len(text)),
		}
	}

	pattern := make([]byte, 0, c.AddressBits)
	values := make([]byte, c.ImageCount)
	for i, role := range c.Roles {
		ch := text[i]
		if role.IsAddress() {
			if ch == 'X' {
				ch = 'x'
			}
			pattern = append(pattern, ch)
			continue
		}
		if ch != '0' && ch != '1' {
			return Row{}, &RowError{Line: line, Kind: DontCareInData, Reason: "illegal don't-care bit in data"}
		}
		idx := role.Image()
		values[idx] = values[idx]<<1 | (ch - '0')
	}
	return Row{Line: line, Pattern: string(pattern), Values: values}, nil
}
