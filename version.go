// Package tt2rom holds release metadata for the tt2rom compiler.
package tt2rom

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var versionRaw string

// Version returns the release number embedded from VERSION.
func Version() string {
	return strings.TrimSpace(versionRaw)
}

// Banner is the line the command prints for "tt2rom version".
func Banner() string {
	return "tt2rom v. " + Version()
}
