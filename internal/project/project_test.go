package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFull(t *testing.T) {
	src := `
format       = "text"
output_dc    = 0
template     = "${env.ROM_PREFIX}%d.hex"
memory_limit = 4096

image "1" {
  path = "decoder-high.hex"
}

image "3" {
  path = "${env.ROM_PREFIX}-three.hex"
}
`
	f, err := Decode("build.hcl", []byte(src), []string{"ROM_PREFIX=cpu", "PATH=/bin", "EMPTY="})
	require.NoError(t, err)
	require.NotNil(t, f.Format)
	assert.Equal(t, "text", *f.Format)
	require.NotNil(t, f.OutputDC)
	assert.Equal(t, 0, *f.OutputDC)
	require.NotNil(t, f.Template)
	assert.Equal(t, "cpu%d.hex", *f.Template)
	require.NotNil(t, f.MemoryLimit)
	assert.Equal(t, 4096, *f.MemoryLimit)

	want := map[int]string{1: "decoder-high.hex", 3: "cpu-three.hex"}
	if diff := cmp.Diff(want, f.Paths()); diff != "" {
		t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEmpty(t *testing.T) {
	f, err := Decode("empty.hcl", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, f.Format)
	assert.Nil(t, f.OutputDC)
	assert.Nil(t, f.Template)
	assert.Nil(t, f.MemoryLimit)
	assert.Empty(t, f.Paths())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax", src: `format = `},
		{name: "unknown attribute", src: `colour = "blue"`},
		{name: "bad output_dc", src: `output_dc = 2`},
		{name: "negative memory", src: `memory_limit = -1`},
		{name: "bad image label", src: "image \"ten\" {\n  path = \"x\"\n}\n"},
		{name: "image out of range", src: "image \"12\" {\n  path = \"x\"\n}\n"},
		{name: "duplicate image", src: "image \"1\" {\n  path = \"a\"\n}\nimage \"1\" {\n  path = \"b\"\n}\n"},
		{name: "empty path", src: "image \"1\" {\n  path = \"\"\n}\n"},
		{name: "missing env", src: `template = "${env.NOPE}%d"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("bad.hcl", []byte(tt.src), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad.hcl")
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tt2rom.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`format = "raw"`+"\n"), 0o644))
	f, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, f.Format)
	assert.Equal(t, "raw", *f.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
