// Package project loads optional HCL build settings for tt2rom.
package project

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

// File is the decoded form of a project file. Unset attributes stay nil so
// callers can layer them over defaults.
type File struct {
	Format      *string `hcl:"format,optional"`
	OutputDC    *int    `hcl:"output_dc,optional"`
	Template    *string `hcl:"template,optional"`
	MemoryLimit *int    `hcl:"memory_limit,optional"`
	Images      []Image `hcl:"image,block"`
}

// Image overrides the output path of one image index.
type Image struct {
	Index string `hcl:"index,label"`
	Path  string `hcl:"path"`
}

// Load reads and decodes the project file at path.
func Load(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, src, os.Environ())
}

// Decode parses src, exposing environ (KEY=VALUE pairs) to expressions as the
// "env" object. filename must end in .hcl or .json.
func Decode(filename string, src []byte, environ []string) (*File, error) {
	var f File
	if err := hclsimple.Decode(filename, src, evalContext(environ), &f); err != nil {
		return nil, fmt.Errorf("failed to decode project file %s: %w", filename, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("project file %s: %w", filename, err)
	}
	return &f, nil
}

func evalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func (f *File) validate() error {
	if f.OutputDC != nil && *f.OutputDC != 0 && *f.OutputDC != 1 {
		return fmt.Errorf("output_dc must be 0 or 1, got %d", *f.OutputDC)
	}
	if f.MemoryLimit != nil && *f.MemoryLimit < 0 {
		return fmt.Errorf("memory_limit must not be negative, got %d", *f.MemoryLimit)
	}
	seen := make(map[int]bool)
	for _, img := range f.Images {
		idx, err := img.index()
		if err != nil {
			return err
		}
		if seen[idx] {
			return fmt.Errorf("image %d declared twice", idx)
		}
		seen[idx] = true
		if img.Path == "" {
			return fmt.Errorf("image %d: path must not be empty", idx)
		}
	}
	return nil
}

func (img Image) index() (int, error) {
	idx, err := strconv.Atoi(img.Index)
	if err != nil || idx < 0 || idx > 9 {
		return 0, fmt.Errorf("image label %q must be a digit 0-9", img.Index)
	}
	return idx, nil
}

// Paths maps image indices to their overridden output paths.
func (f *File) Paths() map[int]string {
	out := make(map[int]string, len(f.Images))
	for _, img := range f.Images {
		if idx, err := img.index(); err == nil {
			out[idx] = img.Path
		}
	}
	return out
}
