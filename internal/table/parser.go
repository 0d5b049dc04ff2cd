package table

import (
	"strings"
	"unicode"
)

const (
	commentChar    = '#'
	outputDontCare = '-'
)

// Line is a cleaned, non-blank source line and its 1-based line number.
type Line struct {
	Num  int
	Text string
}

// Table is a parsed truth-table source: the header and the raw data rows.
type Table struct {
	Columns *Columns
	Rows    []Line
}

// Parse strips comments and whitespace from src, parses the first remaining
// line as the header, and substitutes output don't-cares on every data line
// with the configured default bit.
func Parse(src []byte, opts Options) (*Table, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	var t *Table
	for i, raw := range strings.Split(string(src), "\n") {
		text := cleanLine(raw)
		if text == "" {
			continue
		}
		num := i + 1
		if t == nil {
			cols, err := ParseHeader(text, num)
			if err != nil {
				return nil, err
			}
			t = &Table{Columns: cols}
			opts.Logger.Debug("Parsed configuration line.", "line", num, "columns", cols.String(), "address_bits", cols.AddressBits, "images", cols.ImageCount)
			continue
		}
		text = strings.Map(func(r rune) rune {
			if r == outputDontCare {
				return rune(opts.DontCare)
			}
			return r
		}, text)
		t.Rows = append(t.Rows, Line{Num: num, Text: text})
	}
	if t == nil {
		return nil, ErrNoConfiguration
	}
	return t, nil
}

// cleanLine removes a trailing comment and all whitespace.
func cleanLine(s string) string {
	if idx := strings.IndexByte(s, commentChar); idx >= 0 {
		s = s[:idx]
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
