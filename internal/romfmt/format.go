// Package romfmt serializes completed ROM images as raw bytes, a hex dump,
// or Intel HEX records.
package romfmt

import (
	"fmt"
	"io"
	"strings"
)

type Format int

const (
	Intel Format = iota
	Raw
	Text
)

var formatNames = map[Format]string{
	Intel: "intel",
	Raw:   "raw",
	Text:  "text",
}

// Formats lists every supported format name.
func Formats() []string {
	return []string{"intel", "raw", "text"}
}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "intel":
		return Intel, nil
	case "raw":
		return Raw, nil
	case "text":
		return Text, nil
	default:
		return Intel, fmt.Errorf("output format must be 'raw', 'text', or 'intel', got %q", name)
	}
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Write serializes img to w in format f.
func Write(w io.Writer, f Format, img []byte) error {
	switch f {
	case Raw:
		return WriteRaw(w, img)
	case Text:
		return WriteText(w, img)
	case Intel:
		return WriteIntel(w, img)
	default:
		return fmt.Errorf("unknown output format %v", f)
	}
}

// WriteRaw writes the image bytes unchanged.
func WriteRaw(w io.Writer, img []byte) error {
	_, err := w.Write(img)
	return err
}
