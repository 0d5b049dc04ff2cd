package romfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ChunkSize is the number of image bytes carried by one data record.
const ChunkSize = 16

// RecordType is the TT field of an Intel HEX record.
type RecordType byte

const (
	DataRecord   RecordType = 0x00
	EndRecord    RecordType = 0x01
	OffsetRecord RecordType = 0x02 // extended segment address
)

// Record is one line of Intel HEX output.
type Record struct {
	Type    RecordType
	Address uint16
	Data    []byte
}

// Checksum returns the two's complement of the byte sum of the length,
// address, type and data fields.
func (r Record) Checksum() byte {
	sum := byte(len(r.Data))
	sum += byte(r.Address >> 8)
	sum += byte(r.Address)
	sum += byte(r.Type)
	for _, b := range r.Data {
		sum += b
	}
	return ^sum + 1
}

// String renders the record as ":LLAAAATT<data>CC" without a line break.
func (r Record) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, ":%02X%04X%02X", len(r.Data), r.Address, byte(r.Type))
	for _, b := range r.Data {
		fmt.Fprintf(&sb, "%02X", b)
	}
	fmt.Fprintf(&sb, "%02X", r.Checksum())
	return sb.String()
}

func offsetRecord(seg uint16) Record {
	return Record{Type: OffsetRecord, Data: []byte{byte(seg >> 8), byte(seg)}}
}

// segment isolates address bits 16-19 and left-justifies them in 16 bits.
func segment(addr int) uint16 {
	return uint16(((addr >> 16) & 0xF) << 12)
}

// Records returns the Intel HEX records for img in output order: a priming
// offset record, data records in ChunkSize pieces with an offset record
// whenever the segment changes, and the end record.
func Records(img []byte) []Record {
	var seg uint16
	out := make([]Record, 0, len(img)/ChunkSize+3)
	out = append(out, offsetRecord(seg))
	for cur := 0; cur < len(img); cur += ChunkSize {
		if s := segment(cur); s != seg {
			seg = s
			out = append(out, offsetRecord(seg))
		}
		end := cur + ChunkSize
		if end > len(img) {
			end = len(img)
		}
		out = append(out, Record{
			Type:    DataRecord,
			Address: uint16(cur & 0xFFFF),
			Data:    img[cur:end],
		})
	}
	return append(out, Record{Type: EndRecord})
}

// WriteIntel writes img as Intel HEX records, one per line.
func WriteIntel(w io.Writer, img []byte) error {
	bw := bufio.NewWriter(w)
	for _, r := range Records(img) {
		bw.WriteString(r.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
