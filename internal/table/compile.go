package table

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pborges/tt2rom/internal/rom"
)

// Options configures one compilation. The zero value forces output
// don't-cares high and sets no memory limit.
type Options struct {
	// DontCare replaces '-' in data rows; '0' or '1'.
	DontCare byte
	// MemoryLimit caps the bytes allocated for images; zero means no limit.
	MemoryLimit int
	Logger      *slog.Logger
}

func (o Options) normalize() (Options, error) {
	if o.DontCare == 0 {
		o.DontCare = '1'
	}
	if o.DontCare != '0' && o.DontCare != '1' {
		return o, fmt.Errorf("default output value must be 0 or 1, got %q", o.DontCare)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o, nil
}

// Result holds the images built from a table.
type Result struct {
	Columns *Columns
	Store   *rom.Store
}

// Compile decodes every row of t in order and writes its output bytes into
// the images named by the header. Any error aborts the whole compilation.
func Compile(t *Table, opts Options) (*Result, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	cols := t.Columns

	store, err := rom.NewStore(cols.AddressBits, rom.WithMemoryLimit(opts.MemoryLimit))
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", cols.Line, err)
	}
	images := cols.Images()
	for _, idx := range images {
		if err := store.Allocate(idx); err != nil {
			return nil, err
		}
		if w := cols.Width(idx); w > 8 {
			opts.Logger.Warn("Image has more than 8 output columns; only the low 8 bits are kept.", "image", idx, "columns", w)
		}
	}

	for _, line := range t.Rows {
		row, err := DecodeRow(line.Text, line.Num, cols)
		if err != nil {
			return nil, err
		}
		for _, idx := range images {
			img, _ := store.Get(idx)
			if err := rom.WriteRange(img, row.Pattern, row.Values[idx]); err != nil {
				return nil, fmt.Errorf("line %d: %w", line.Num, err)
			}
		}
	}
	opts.Logger.Debug("Compiled truth table.", "rows", len(t.Rows), "images", len(images), "image_size", store.Size())
	return &Result{Columns: cols, Store: store}, nil
}
