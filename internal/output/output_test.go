package output

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterClasses(t *testing.T) {
	var terminal, diagnosis bytes.Buffer
	p := NewPrinterTo([]Class{Required, Error, Normal}, false, &terminal, &diagnosis)

	p.Out(Required, "req %d\n", 1)
	p.Out(Normal, "normal\n")
	p.Out(Verbose, "verbose\n")
	p.Out(Error, "oops\n")

	assert.Equal(t, "req 1\nnormal\n", terminal.String())
	assert.Equal(t, "oops\n", diagnosis.String())
	assert.True(t, p.Enabled(Normal))
	assert.False(t, p.Enabled(Verbose))
}

func TestPrinterFormat(t *testing.T) {
	plain := NewPrinterTo(nil, false, &bytes.Buffer{}, &bytes.Buffer{})
	fancy := NewPrinterTo(nil, true, &bytes.Buffer{}, &bytes.Buffer{})

	assert.Equal(t, "ERROR", plain.Format("ERROR", TerminalFormatAsError))
	assert.Equal(t, "\x1B[31mERROR\x1B[0m", fancy.Format("ERROR", TerminalFormatAsError))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "file", Plural(1, "file", "files"))
	assert.Equal(t, "files", Plural(0, "file", "files"))
	assert.Equal(t, "files", Plural([]string{"a", "b"}, "file", "files"))
	assert.Equal(t, "file", Plural([]string{"a"}, "file", "files"))
}

func TestSizes(t *testing.T) {
	assert.Equal(t, "0.00 MB", Megabytes(0))
	assert.Equal(t, "1.50 MB", Megabytes(1024*1024*3/2))
	assert.Equal(t, "512 bytes", Filesize(512))
	assert.Equal(t, "2.0 MiB (2097152 bytes)", Filesize(2*1024*1024))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", Indent(2, "a\nb"))
	assert.Equal(t, "   .", Indent(3, "."))
}

func TestVisualFileTree(t *testing.T) {
	tree := NewVisualFileTree(".")
	tree.InsertDirectory(filepath.Join("features", "admin"), "(1 file)")
	tree.InsertDirectory(filepath.Join("features", "admin", "countries"), "(2 files)")
	tree.InsertDirectory(filepath.Join("features", "coastlines"), "(2 files)")
	tree.InsertPath(filepath.Join("features", "coastlines", "coastline_10m.geojson"))

	rendered := tree.Render()
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	assert.Equal(t, []string{
		".",
		"└── features",
		"    ├── admin (1 file)",
		"    │   └── countries (2 files)",
		"    └── coastlines (2 files)",
		"        └── coastline_10m.geojson",
	}, lines)
}
