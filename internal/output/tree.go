package output

import (
	"path/filepath"

	"github.com/disiqueira/gotree/v3"
)

type VisualFileTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
}

func NewVisualFileTree(rootLabel string) VisualFileTree {
	return VisualFileTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t VisualFileTree) getDir(dirPath string) (dir gotree.Tree) {
	if dirPath == "." {
		return t.tree
	}
	dir = t.dirs[dirPath]
	if dir == nil {
		parentPath := filepath.Dir(dirPath)
		parentDir := t.getDir(parentPath)
		dir = parentDir.Add(filepath.Base(dirPath))
		t.dirs[dirPath] = dir
	}
	return
}

func (t VisualFileTree) InsertPath(filePath string) {
	dir := t.getDir(filepath.Dir(filePath))
	dir.Add(filepath.Base(filePath))
}

// InsertDirectory adds a directory node labelled with an annotation, e.g. a file count.
// Labels are fixed on creation: insert parents before their children (sorted order does that)
// or an implicitly created parent stays without annotation.
func (t VisualFileTree) InsertDirectory(dirPath string, annotation string) {
	dirPath = filepath.Clean(dirPath)
	if dirPath == "." || t.dirs[dirPath] != nil {
		return
	}
	parentDir := t.getDir(filepath.Dir(dirPath))
	label := filepath.Base(dirPath)
	if annotation != "" {
		label += " " + annotation
	}
	t.dirs[dirPath] = parentDir.Add(label)
}

func (t VisualFileTree) Render() string {
	return t.tree.Print()
}
