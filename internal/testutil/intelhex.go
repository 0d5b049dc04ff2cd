package testutil

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

type HexRecord struct {
	Line    int
	Type    byte
	Address uint16
	Data    []byte
	Sum     byte
}

type IntelHex struct {
	Records []HexRecord
	// Segments lists the payload of every extended segment record in order.
	Segments []uint16
	// Image holds every data byte at its absolute address.
	Image map[int]byte
	Ended bool
}

// ParseIntelHex decodes Intel HEX text, checking framing and checksums.
func ParseIntelHex(data []byte) (IntelHex, error) {
	h := IntelHex{Image: map[int]byte{}}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var seg int
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if h.Ended {
			return h, fmt.Errorf("line %d: record after end record", line)
		}
		if !strings.HasPrefix(text, ":") {
			return h, fmt.Errorf("line %d: missing start code", line)
		}
		if strings.ToUpper(text) != text {
			return h, fmt.Errorf("line %d: lower case hex", line)
		}
		raw, err := hex.DecodeString(text[1:])
		if err != nil {
			return h, fmt.Errorf("line %d: %w", line, err)
		}
		if len(raw) < 5 {
			return h, fmt.Errorf("line %d: short record", line)
		}
		n := int(raw[0])
		if len(raw) != n+5 {
			return h, fmt.Errorf("line %d: length %d does not match %d payload bytes", line, n, len(raw)-5)
		}
		var sum byte
		for _, b := range raw {
			sum += b
		}
		if sum != 0 {
			return h, fmt.Errorf("line %d: checksum mismatch (sum %02X)", line, sum)
		}
		rec := HexRecord{
			Line:    line,
			Type:    raw[3],
			Address: uint16(raw[1])<<8 | uint16(raw[2]),
			Data:    raw[4 : 4+n],
			Sum:     raw[len(raw)-1],
		}
		h.Records = append(h.Records, rec)
		switch rec.Type {
		case 0x00:
			for i, b := range rec.Data {
				h.Image[seg*16+int(rec.Address)+i] = b
			}
		case 0x01:
			h.Ended = true
		case 0x02:
			if n != 2 {
				return h, fmt.Errorf("line %d: segment record with %d bytes", line, n)
			}
			v := uint16(rec.Data[0])<<8 | uint16(rec.Data[1])
			h.Segments = append(h.Segments, v)
			seg = int(v)
		default:
			return h, fmt.Errorf("line %d: unexpected record type %02X", line, rec.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		return h, err
	}
	if !h.Ended {
		return h, fmt.Errorf("missing end record")
	}
	return h, nil
}

// Bytes flattens the decoded image into a buffer of the given size, zero
// filling addresses no record covered.
func (h IntelHex) Bytes(size int) []byte {
	out := make([]byte, size)
	for addr, b := range h.Image {
		if addr < size {
			out[addr] = b
		}
	}
	return out
}

// CompareImages returns a human-readable diff of two images, or "" when equal.
func CompareImages(got, want []byte) string {
	if len(got) != len(want) {
		return fmt.Sprintf("image length mismatch: got %d want %d", len(got), len(want))
	}
	var buf bytes.Buffer
	mismatches := 0
	for i := range got {
		if got[i] != want[i] {
			mismatches++
			fmt.Fprintf(&buf, "  [%05X]: got=%02X want=%02X\n", i, got[i], want[i])
			if mismatches >= 40 {
				fmt.Fprintf(&buf, "  ... (%d+ mismatches, truncated)\n", mismatches)
				break
			}
		}
	}
	if mismatches == 0 {
		return ""
	}
	return fmt.Sprintf("%d byte mismatches:\n%s", mismatches, buf.String())
}
