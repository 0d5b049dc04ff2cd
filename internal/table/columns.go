package table

import (
	"fmt"

	"github.com/pborges/tt2rom/internal/rom"
)

// AddressBit marks a column that contributes to the address pattern. Any
// other Role value is the index of the image the column feeds.
const AddressBit Role = -1

type Role int

func (r Role) IsAddress() bool { return r == AddressBit }

// Image returns the image index of an output column.
func (r Role) Image() int { return int(r) }

func (r Role) String() string {
	if r.IsAddress() {
		return "A"
	}
	return fmt.Sprintf("%d", int(r))
}

// Columns is the column-role map parsed from a header line.
type Columns struct {
	Line        int
	Roles       []Role
	ImageCount  int
	AddressBits int
	width       [rom.MaxImages]int
}

// ParseHeader builds the column configuration from a cleaned header line.
// line is the source line number used in errors.
func ParseHeader(header string, line int) (*Columns, error) {
	c := &Columns{Line: line, Roles: make([]Role, 0, len(header))}
	maxImage := -1
	for i := 0; i < len(header); i++ {
		ch := header[i]
		switch {
		case ch == 'A' || ch == 'a':
			c.Roles = append(c.Roles, AddressBit)
			c.AddressBits++
		case ch >= '0' && ch <= '9':
			idx := int(ch - '0')
			c.Roles = append(c.Roles, Role(idx))
			c.width[idx]++
			if idx > maxImage {
				maxImage = idx
			}
		default:
			return nil, &ConfigError{Line: line, Kind: BadHeader, Reason: "invalid character in configuration"}
		}
	}
	c.ImageCount = maxImage + 1

	if c.ImageCount < 1 {
		return nil, &ConfigError{Line: line, Kind: ImageCountRange, Reason: "must specify at least 1 ROM number"}
	}
	if c.ImageCount > rom.MaxImages {
		return nil, &ConfigError{Line: line, Kind: ImageCountRange, Reason: fmt.Sprintf("cannot specify more than %d ROMs", rom.MaxImages)}
	}
	if c.AddressBits < 1 || c.AddressBits > rom.MaxAddressBits {
		return nil, &ConfigError{Line: line, Kind: AddressBitsRange, Reason: fmt.Sprintf("must have between 1-%d state bits", rom.MaxAddressBits)}
	}
	return c, nil
}

// Len returns the number of columns every data row must have.
func (c *Columns) Len() int { return len(c.Roles) }

// Width returns the number of output columns feeding image idx.
func (c *Columns) Width(idx int) int {
	if idx < 0 || idx >= rom.MaxImages {
		return 0
	}
	return c.width[idx]
}

// Images lists the image indices named by at least one header column.
func (c *Columns) Images() []int {
	var out []int
	for i, w := range c.width {
		if w > 0 {
			out = append(out, i)
		}
	}
	return out
}

func (c *Columns) String() string {
	buf := make([]byte, 0, len(c.Roles))
	for _, r := range c.Roles {
		buf = append(buf, r.String()...)
	}
	return string(buf)
}
