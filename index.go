package geocorpus

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/n2code/geocorpus/internal/index"
	"github.com/n2code/geocorpus/internal/output"
	"github.com/n2code/geocorpus/internal/storage"
)

const DefaultIndexRoot = "features"
const DefaultIndexBaseURL = "https://dvanauken.github.io/data"
const DefaultIndexExtension = ".geojson"
const DefaultIndexFile = "index.html"

type IndexOptions struct {
	Root          string //relative paths are resolved against WorkingDir
	RemoteBaseURL string //no trailing slash, one is inserted
	Extension     string //case-sensitive suffix
	OutputFile    string
	Title         string
	WorkingDir    string           //empty means process working directory
	Now           func() time.Time //nil means time.Now
	Tree          bool             //print the listed files as tree
}

func DefaultIndexOptions() IndexOptions {
	return IndexOptions{
		Root:          DefaultIndexRoot,
		RemoteBaseURL: DefaultIndexBaseURL,
		Extension:     DefaultIndexExtension,
		OutputFile:    DefaultIndexFile,
		Title:         index.DefaultTitle,
	}
}

func (c *corpus) WriteIndex(options IndexOptions) (listed int, err error) {
	wd, err := resolveDirectory(options.WorkingDir)
	if err != nil {
		return 0, err
	}
	records, err := index.Scan(options.Root, options.Extension, wd, options.RemoteBaseURL)
	if err != nil {
		return 0, err
	}

	now := time.Now
	if options.Now != nil {
		now = options.Now
	}
	var page bytes.Buffer
	if err := index.Render(&page, options.Title, now(), records); err != nil {
		return 0, fmt.Errorf("index rendering failed: %w", err)
	}

	outputFile := options.OutputFile
	if !filepath.IsAbs(outputFile) {
		outputFile = filepath.Join(wd, outputFile)
	}
	if err := storage.WriteFile(outputFile, page.Bytes()); err != nil {
		return 0, fmt.Errorf("index not written: %w", err)
	}

	for _, record := range records {
		c.out.Out(output.Verbose, "%s -> %s\n", record.RelativePath, record.URL)
	}
	if options.Tree && c.out.Enabled(output.Normal) {
		tree := output.NewVisualFileTree(".")
		for _, record := range records {
			tree.InsertPath(filepath.FromSlash(record.RelativePath))
		}
		c.out.Out(output.Normal, "%s", tree.Render())
	}
	c.out.Out(output.Required, "Generated %s with %d %s\n", options.OutputFile, len(records), output.Plural(len(records), "file", "files"))
	return len(records), nil
}
