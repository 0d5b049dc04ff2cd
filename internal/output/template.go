// Package output names and writes the serialized ROM images of a build.
package output

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// EnvTemplate names the environment variable that overrides the file name
// template.
const EnvTemplate = "FTEMPLATE"

const (
	prefixLen     = 6
	defaultSuffix = "%d.hex"
)

// ErrInvalidTemplate reports a template without exactly one %d, or with any
// other formatting verb.
var ErrInvalidTemplate = errors.New("file name template must contain exactly one %d")

// Template is a printf-style file name with a single %d for the image index.
type Template string

// ParseTemplate validates s. Only %d (once) and %% are accepted.
func ParseTemplate(s string) (Template, error) {
	hasNum := false
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("%q: trailing %%: %w", s, ErrInvalidTemplate)
		}
		switch s[i+1] {
		case 'd':
			if hasNum {
				return "", fmt.Errorf("%q: repeated %%d: %w", s, ErrInvalidTemplate)
			}
			hasNum = true
		case '%':
		default:
			return "", fmt.Errorf("%q: verb %%%c: %w", s, s[i+1], ErrInvalidTemplate)
		}
		i++
	}
	if !hasNum {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidTemplate)
	}
	return Template(s), nil
}

// DefaultTemplate derives a template from the input file name: up to six
// characters of its base name before the first '.', then "%d.hex". Names that
// are empty or start with '.' use "output".
func DefaultTemplate(inputPath string) Template {
	dir, base := filepath.Split(inputPath)
	prefix := base
	if idx := strings.IndexByte(prefix, '.'); idx >= 0 {
		prefix = prefix[:idx]
	}
	if prefix == "" {
		prefix = "output"
	} else if len(prefix) > prefixLen {
		prefix = prefix[:prefixLen]
	}
	return Template(strings.ReplaceAll(dir+prefix, "%", "%%") + defaultSuffix)
}

// Name returns the file name for image idx.
func (t Template) Name(idx int) string {
	return fmt.Sprintf(string(t), idx)
}
