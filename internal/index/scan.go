// Package index turns a directory tree of downloaded files into a static HTML listing.
package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrRootMissing = errors.New("directory not found")

// Record is one listed file.
type Record struct {
	Filename     string
	RelativePath string //slash separated, relative to the working directory
	URL          string
}

// SemanticPath normalizes any separator flavor to forward slashes.
func SemanticPath(nativePath string) string {
	return strings.ReplaceAll(filepath.ToSlash(nativePath), `\`, "/")
}

// Scan walks root recursively and collects every file whose name ends with extension.
// Paths are taken relative to workingDir, each link is remoteBaseURL + "/" + relative path.
// The result is sorted by filename in plain byte order, so upper case sorts before lower case.
// Unreadable directories are skipped and a root that is not a directory yields no records.
func Scan(root string, extension string, workingDir string, remoteBaseURL string) ([]Record, error) {
	if !filepath.IsAbs(root) {
		root = filepath.Join(workingDir, root)
	}
	stat, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRootMissing, root)
		}
		return nil, err
	}
	if !stat.IsDir() {
		return nil, nil
	}

	var records []Record
	visitor := func(absolutePath string, d fs.DirEntry, walkError error) error {
		if walkError != nil {
			if d != nil && d.IsDir() && errors.Is(walkError, fs.ErrPermission) {
				return fs.SkipDir
			}
			return walkError
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), extension) {
			return nil
		}
		relative, err := filepath.Rel(workingDir, absolutePath)
		if err != nil {
			return err
		}
		relative = SemanticPath(relative)
		records = append(records, Record{
			Filename:     d.Name(),
			RelativePath: relative,
			URL:          remoteBaseURL + "/" + relative,
		})
		return nil
	}
	if err := filepath.WalkDir(root, visitor); err != nil {
		return nil, fmt.Errorf("scanning %s failed: %w", root, err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Filename < records[j].Filename
	})
	return records, nil
}
