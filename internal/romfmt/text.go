package romfmt

import (
	"bufio"
	"fmt"
	"io"
)

const bytesPerLine = 16

// WriteText writes a hex dump, 16 bytes per line, each line prefixed by its
// starting address. A short final line is still terminated.
func WriteText(w io.Writer, img []byte) error {
	bw := bufio.NewWriter(w)
	brk := 0
	for pos, b := range img {
		if brk == 0 {
			fmt.Fprintf(bw, "%05X:", pos)
		}
		fmt.Fprintf(bw, " %02X", b)
		brk = (brk + 1) % bytesPerLine
		if brk == 0 {
			bw.WriteByte('\n')
		}
	}
	if brk != 0 {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
