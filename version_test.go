package tt2rom

import (
	"regexp"
	"testing"
)

func TestVersion(t *testing.T) {
	v := Version()
	if !regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`).MatchString(v) {
		t.Fatalf("unexpected version %q", v)
	}
}

func TestBanner(t *testing.T) {
	if got, want := Banner(), "tt2rom v. "+Version(); got != want {
		t.Fatalf("Banner() = %q, want %q", got, want)
	}
}
