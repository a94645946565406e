// Package catalog holds the declarative table of upstream files to download.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Entry maps one upstream source file to its local destination.
type Entry struct {
	Source    string `yaml:"source" validate:"required,basename"`
	Enabled   bool   `yaml:"enabled"`
	Directory string `yaml:"directory" validate:"required,semanticdir"` //slash separated, relative to the download base directory
	SaveAs    string `yaml:"save_as" validate:"required,basename"`
	Overwrite *bool  `yaml:"overwrite,omitempty"` //nil means "use the run default"
}

// Catalog is an ordered list of entries. Declaration order is processing order.
type Catalog []Entry

var validate *validator.Validate

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("basename", validateBasename); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("semanticdir", validateSemanticDir); err != nil {
		panic(err)
	}
}

func validateBasename(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func validateSemanticDir(fl validator.FieldLevel) bool {
	dir := fl.Field().String()
	if strings.Contains(dir, `\`) || path.IsAbs(dir) {
		return false
	}
	for _, segment := range strings.Split(path.Clean(dir), "/") {
		if segment == ".." {
			return false
		}
	}
	return true
}

// Default yields the catalog compiled into the binary.
func Default() Catalog {
	c, err := Load(bytes.NewReader(embeddedCatalog))
	if err != nil {
		panic(fmt.Errorf("embedded catalog is broken: %w", err))
	}
	return c
}

// Load decodes and validates a YAML catalog. Unknown keys are rejected.
func Load(r io.Reader) (Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var c Catalog
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog decode error: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads a catalog from disk, see Load.
func LoadFile(filePath string) (Catalog, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	c, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return c, nil
}

// Validate checks every entry and reports the first invalid one.
func (c Catalog) Validate() error {
	for i, entry := range c {
		if err := validate.Struct(entry); err != nil {
			var fieldErrors validator.ValidationErrors
			if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
				first := fieldErrors[0]
				return fmt.Errorf("catalog entry %d (%s): field %s fails %q", i+1, entry.Source, first.Field(), first.Tag())
			}
			return fmt.Errorf("catalog entry %d (%s): %w", i+1, entry.Source, err)
		}
	}
	return nil
}

// Enabled filters the catalog down to entries marked for download, preserving order.
func (c Catalog) Enabled() Catalog {
	enabled := make(Catalog, 0, len(c))
	for _, entry := range c {
		if entry.Enabled {
			enabled = append(enabled, entry)
		}
	}
	return enabled
}

// EffectiveOverwrite resolves the entry override against the run default.
func (e Entry) EffectiveOverwrite(runDefault bool) bool {
	if e.Overwrite != nil {
		return *e.Overwrite
	}
	return runDefault
}

// NativeDirectory converts the entry directory to system-native separators.
func (e Entry) NativeDirectory() string {
	return filepath.FromSlash(e.Directory)
}

// Destination is the system-native path of the stored file, relative to the base directory.
func (e Entry) Destination() string {
	return filepath.Join(e.NativeDirectory(), e.SaveAs)
}
