// Package geocorpus assembles a local corpus of Natural Earth vector files and publishes an index of it.
package geocorpus

import (
	"context"
	"io"
	"os"

	"github.com/n2code/geocorpus/internal/catalog"
	"github.com/n2code/geocorpus/internal/output"
)

type VerbosityLevel int

const (
	DefaultVerbosity VerbosityLevel = iota
	VerboseMode
	QuietMode
)

// CreateConfig holds the switches that concern all calls to the geocorpus API.
// The zero value is a sensible default writing plain text to stdout and stderr.
type CreateConfig struct {
	Verbosity     VerbosityLevel
	FancyTerminal bool      //allows escape sequences for highlighting
	Out           io.Writer //nil means os.Stdout
	ErrOut        io.Writer //nil means os.Stderr
}

type Corpus interface {

	// Download fetches every enabled catalog entry in declaration order and stores it below the base directory.
	// Failures of single entries are reported and recorded in the returned state but never abort the run.
	// If the context is cancelled the run stops before the next entry and ErrInterrupted is returned along with the partial state.
	Download(ctx context.Context, entries catalog.Catalog, options DownloadOptions) (*RunState, error)

	// WriteIndex scans the root directory for matching files and writes the HTML listing, replacing any previous one.
	// If the root directory does not exist ErrRootMissing is returned and nothing is written.
	WriteIndex(options IndexOptions) (listed int, err error)
}

type corpus struct {
	out output.Printer
}

// New creates a handle for the geocorpus API.
func New(config CreateConfig) Corpus {
	return makeCorpus(config)
}

func makeCorpus(config CreateConfig) (instance *corpus) {
	terminal, diagnosis := config.Out, config.ErrOut
	if terminal == nil {
		terminal = os.Stdout
	}
	if diagnosis == nil {
		diagnosis = os.Stderr
	}
	classes := []output.Class{output.Required, output.Error}
	switch config.Verbosity {
	case VerboseMode:
		classes = append(classes, output.Verbose)
		fallthrough
	case DefaultVerbosity:
		classes = append(classes, output.Normal)
	}
	return &corpus{out: output.NewPrinterTo(classes, config.FancyTerminal, terminal, diagnosis)}
}
