package geocorpus

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/n2code/geocorpus/internal/catalog"
	"github.com/n2code/geocorpus/internal/fetch"
	"github.com/n2code/geocorpus/internal/output"
	"github.com/n2code/geocorpus/internal/storage"
)

const DefaultBaseURL = "https://github.com/nvkelso/natural-earth-vector/raw/master/geojson/"
const DefaultDelay = 1 * time.Second
const DefaultTimeout = 60 * time.Second
const DefaultHighlightKeyword = "coastline"

type DownloadOptions struct {
	BaseURL          string //source names are appended verbatim
	BaseDir          string //empty means working directory, must exist
	DefaultOverwrite bool
	Delay            time.Duration //minimum spacing between requests
	UserAgent        string
	Timeout          time.Duration //per request
	HighlightKeyword string        //entries whose source contains it are listed separately in the summary
}

func DefaultDownloadOptions() DownloadOptions {
	return DownloadOptions{
		BaseURL:          DefaultBaseURL,
		DefaultOverwrite: true,
		Delay:            DefaultDelay,
		UserAgent:        fetch.DefaultUserAgent,
		Timeout:          DefaultTimeout,
		HighlightKeyword: DefaultHighlightKeyword,
	}
}

// RunState is the bookkeeping of a single download run.
type RunState struct {
	ID                 uuid.UUID
	Attempted          int //enabled entries
	Succeeded          int
	Skipped            int
	Failed             []string //sources in processing order
	CreatedDirectories []string //slash separated, in creation order
	Directories        map[string]int
	BaseDir            string
}

func (s *RunState) Completed() int {
	return s.Succeeded + s.Skipped + len(s.Failed)
}

func (c *corpus) Download(ctx context.Context, entries catalog.Catalog, options DownloadOptions) (*RunState, error) {
	baseDir, err := resolveDirectory(options.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("base directory unusable: %w", err)
	}
	if stat, err := os.Stat(baseDir); err != nil {
		return nil, fmt.Errorf("base directory unusable: %w", err)
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("base directory unusable: %s is not a directory", baseDir)
	}

	todo := entries.Enabled()
	state := &RunState{
		ID:          uuid.New(),
		Attempted:   len(todo),
		Directories: make(map[string]int),
		BaseDir:     baseDir,
	}
	for _, entry := range todo {
		state.Directories[entry.Directory]++
	}

	client := fetch.NewClient(fetch.Config{
		BaseURL:   options.BaseURL,
		UserAgent: options.UserAgent,
		Timeout:   options.Timeout,
		Delay:     options.Delay,
	})

	c.out.Out(output.Verbose, "Run %s\n", state.ID)
	c.out.Out(output.Normal, "Starting download of %d GeoJSON %s...\n", state.Attempted, output.Plural(state.Attempted, "file", "files"))
	c.out.Out(output.Normal, "Base directory: %s\n", c.displayablePath(baseDir))
	c.out.Out(output.Normal, "Files will be organized by category in subdirectories\n\n")

	for i, entry := range todo {
		if ctx.Err() != nil {
			return state, ErrInterrupted
		}
		progress := fmt.Sprintf("[%3d/%d]", i+1, state.Attempted)
		err := c.fetchEntry(ctx, client, state, entry, options.DefaultOverwrite, progress)
		if errors.Is(err, ErrInterrupted) {
			return state, err
		}
		if err != nil {
			c.out.Out(output.Error, "    %s: %s\n", c.out.Format("ERROR", output.TerminalFormatAsError), err)
			state.Failed = append(state.Failed, entry.Source)
		}
	}

	c.printSummary(state, todo, options.HighlightKeyword)
	return state, nil
}

// fetchEntry stores a single entry. A returned ItemError concerns only that entry.
func (c *corpus) fetchEntry(ctx context.Context, client *fetch.Client, state *RunState, entry catalog.Entry, defaultOverwrite bool, progress string) error {
	dir := filepath.Join(state.BaseDir, entry.NativeDirectory())
	created, err := storage.EnsureDir(dir)
	if err != nil {
		return newItemError(entry.Source, "directory creation failed", err)
	}
	if created {
		state.CreatedDirectories = append(state.CreatedDirectories, entry.Directory)
		c.out.Out(output.Normal, "Created directory: %s\n", entry.Directory)
	}

	destination := filepath.Join(state.BaseDir, entry.Destination())
	if storage.Exists(destination) && !entry.EffectiveOverwrite(defaultOverwrite) {
		c.out.Out(output.Normal, "%s %s: %s (file exists, overwrite disabled)\n", progress, c.out.Format("SKIP", output.TerminalFormatAsDim), entry.Source)
		state.Skipped++
		return nil
	}

	c.out.Out(output.Normal, "%s DOWNLOADING: %s -> %s\n", progress, entry.Source, entry.Directory+"/"+entry.SaveAs)
	c.out.Out(output.Verbose, "    from %s\n", client.URL(entry.Source))
	body, err := client.Get(ctx, entry.Source)
	if err != nil {
		if ctx.Err() != nil {
			return ErrInterrupted
		}
		return newItemError(entry.Source, "download failed", err)
	}
	if err := storage.WriteFile(destination, body); err != nil {
		return newItemError(entry.Source, "saving failed", err)
	}
	state.Succeeded++

	kind := "File"
	if category := catalog.Classify(entry.Source); category != catalog.Generic {
		kind = category.String() + " file"
	}
	c.out.Out(output.Normal, "    %s: %s saved (%s)\n", c.out.Format("SUCCESS", output.TerminalFormatAsSuccess), kind, output.Megabytes(int64(len(body))))
	c.out.Out(output.Verbose, "    wrote %s to %s\n", output.Filesize(int64(len(body))), c.displayablePath(destination))
	return nil
}

func (c *corpus) printSummary(state *RunState, todo catalog.Catalog, highlightKeyword string) {
	c.out.Out(output.Normal, "\nDownload complete!\n")
	c.out.Out(output.Required, "SUCCESS: %d/%d %s downloaded\n", state.Succeeded, state.Attempted, output.Plural(state.Attempted, "file", "files"))
	if state.Skipped > 0 {
		c.out.Out(output.Required, "SKIPPED: %d %s already present\n", state.Skipped, output.Plural(state.Skipped, "file", "files"))
	}
	if len(state.Failed) > 0 {
		c.out.Out(output.Required, "FAILED: %d %s\n", len(state.Failed), output.Plural(len(state.Failed), "file", "files"))
		for _, source := range state.Failed {
			c.out.Out(output.Required, "   - %s\n", source)
		}
	}

	c.out.Out(output.Normal, "\nFiles organized in directories under: %s\n", c.displayablePath(state.BaseDir))
	if len(state.Directories) > 0 && c.out.Enabled(output.Normal) {
		c.out.Out(output.Normal, "\nDirectory structure:\n%s\n", output.Indent(3, strings.TrimSuffix(directoryTree(state), "\n")))
	}

	if highlightKeyword != "" && c.out.Enabled(output.Normal) {
		var keyEntries []catalog.Entry
		for _, entry := range todo {
			if strings.Contains(entry.Source, highlightKeyword) {
				keyEntries = append(keyEntries, entry)
			}
		}
		if len(keyEntries) > 0 {
			c.out.Out(output.Normal, "\nKey %s files:\n", highlightKeyword)
			for _, entry := range keyEntries {
				if storage.Exists(filepath.Join(state.BaseDir, entry.Destination())) {
					c.out.Out(output.Normal, "   %s: %s\n", c.out.Format("SUCCESS", output.TerminalFormatAsSuccess), entry.Source)
				} else {
					c.out.Out(output.Normal, "   %s: %s\n", c.out.Format("MISSING", output.TerminalFormatAsAttention), entry.Source)
				}
			}
		}
	}

	c.out.Out(output.Normal, "\n=== COMPLETE ===\n")
	if len(state.Failed) == 0 {
		c.out.Out(output.Normal, "All downloads finished successfully!\n")
	} else {
		c.out.Out(output.Normal, "Finished with %d failed %s.\n", len(state.Failed), output.Plural(len(state.Failed), "download", "downloads"))
	}
}

func directoryTree(state *RunState) string {
	dirs := make([]string, 0, len(state.Directories))
	for dir := range state.Directories {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	tree := output.NewVisualFileTree(".")
	for _, dir := range dirs {
		count := state.Directories[dir]
		tree.InsertDirectory(filepath.FromSlash(dir), fmt.Sprintf("(%d %s)", count, output.Plural(count, "file", "files")))
	}
	return tree.Render()
}
