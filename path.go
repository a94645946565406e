package geocorpus

import (
	"os"
	"path/filepath"
	"strings"
)

const dot string = "."
const dirSeparator = string(filepath.Separator)
const dotDirSeparator = dot + dirSeparator
const doubleDot = dot + dot
const doubleDotDirSeparator = doubleDot + dirSeparator

// pleasantPath turns an absolute path into something easily understandable from the current context.
// Below the working directory a relative path is emitted, with leading "./" to stress relativity (opt-out possible).
// Anything outside the working directory is reflected unchanged.
func pleasantPath(absolute string, wd string, omitDotSlash bool) string {
	relative, err := filepath.Rel(wd, absolute)
	if err != nil || relative == doubleDot || strings.HasPrefix(relative, doubleDotDirSeparator) {
		return absolute
	}
	if relative == dot {
		return dot
	}
	if omitDotSlash {
		return relative
	}
	return dotDirSeparator + relative
}

func (c *corpus) displayablePath(absolutePath string) string {
	wd, err := os.Getwd()
	if err != nil {
		return absolutePath
	}
	return pleasantPath(filepath.Clean(absolutePath), wd, false)
}

// resolveDirectory yields an absolute version of dir, the working directory if dir is empty.
func resolveDirectory(dir string) (string, error) {
	if dir == "" {
		return os.Getwd()
	}
	return filepath.Abs(dir)
}
