package output

import (
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/pborges/tt2rom/internal/romfmt"
)

// Images is the read-only view of a compiled image store.
type Images interface {
	Indices() []int
	Get(idx int) ([]byte, bool)
	Size() int
}

// Opener hands out one sink per image index.
type Opener interface {
	Name(idx int) string
	Open(idx int) (io.WriteCloser, error)
}

// Files creates one file per image, named by Template unless Paths holds an
// explicit name for that index.
type Files struct {
	Template Template
	Paths    map[int]string
}

func (f Files) Name(idx int) string {
	if p, ok := f.Paths[idx]; ok && p != "" {
		return p
	}
	return f.Template.Name(idx)
}

func (f Files) Open(idx int) (io.WriteCloser, error) {
	name := f.Name(idx)
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "unable to create directory for '%s'", name)
		}
	}
	fp, err := os.Create(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open output file '%s' for writing", name)
	}
	return fp, nil
}

// WriteImages serializes every allocated image in format f. A failing image
// is reported and skipped; the remaining images are still written.
func WriteImages(imgs Images, f romfmt.Format, o Opener, logger *slog.Logger) error {
	indices := imgs.Indices()
	logger.Info("ROM images to be written.", "count", len(indices), "bytes_per_image", imgs.Size(), "format", f.String())

	var errs []error
	for _, idx := range indices {
		img, _ := imgs.Get(idx)
		if err := writeImage(img, idx, f, o, logger); err != nil {
			logger.Error("Failed to write ROM image.", "image", idx, "error", err)
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

func writeImage(img []byte, idx int, f romfmt.Format, o Opener, logger *slog.Logger) (err error) {
	w, err := o.Open(idx)
	if err != nil {
		return errors.Wrapf(err, "ROM #%d", idx)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "ROM #%d: close '%s'", idx, o.Name(idx))
		}
	}()

	logger.Info("Writing ROM image.", "image", idx, "path", o.Name(idx))
	if err := romfmt.Write(w, f, img); err != nil {
		return errors.Wrapf(err, "ROM #%d: write '%s'", idx, o.Name(idx))
	}
	return nil
}
