package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/n2code/geocorpus"
	"github.com/n2code/geocorpus/internal/env"
	"golang.org/x/term"
)

type CliRequest struct {
	verbose bool
	quiet   bool
	options geocorpus.IndexOptions
}

func parseFlags(args []string, errOut io.Writer) (request *CliRequest, exitCode int) {
	flags := flag.NewFlagSet("ne-index", flag.ContinueOnError)
	flags.SetOutput(errOut)
	flags.Usage = func() {
		fmt.Fprint(flags.Output(), `
Usage:
   ne-index [-v|-q] [-tree] [FLAG...]

 Lists all matching files below the root directory in a static HTML page
 linking to their hosted copies. An existing page is replaced.

`)
		flags.PrintDefaults()
		fmt.Fprintf(flags.Output(), `
 The hosting base URL can also be set via %sINDEX_BASE_URL (environment or .env file).

`, env.Prefix)
	}

	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(errOut, "%s\nUsage help: ne-index -h\n", err)
			exitCode = 2
			request = nil
		}
	}()

	request = &CliRequest{options: geocorpus.DefaultIndexOptions()}
	request.options.RemoteBaseURL = env.String("INDEX_BASE_URL", request.options.RemoteBaseURL)
	flags.BoolVar(&request.verbose, "v", false, "Output more details on what is done (verbose mode)")
	flags.BoolVar(&request.quiet, "q", false, "Output as little as possible, i.e. only the result line (quiet mode)")
	flags.BoolVar(&request.options.Tree, "tree", false, "print the listed files as directory tree")
	flags.StringVar(&request.options.Root, "root", request.options.Root, "`directory` to scan recursively")
	flags.StringVar(&request.options.RemoteBaseURL, "base-url", request.options.RemoteBaseURL, "`URL` the relative file paths are appended to")
	flags.StringVar(&request.options.Extension, "ext", request.options.Extension, "case-sensitive filename `suffix` of listed files")
	flags.StringVar(&request.options.OutputFile, "out", request.options.OutputFile, "`file` to write the page to")
	flags.StringVar(&request.options.Title, "title", request.options.Title, "page title and heading")

	if parseErr := flags.Parse(args); parseErr != nil {
		request = nil
		if parseErr == flag.ErrHelp {
			return nil, 0
		}
		return nil, 2
	}

	if flags.NArg() > 0 {
		err = fmt.Errorf("Unexpected argument: %s", flags.Arg(0))
		return
	}
	if request.verbose && request.quiet {
		err = errors.New("Quiet mode and verbose mode are mutually exclusive!")
		return
	}
	if request.options.OutputFile == "" {
		err = errors.New("Output file must not be empty!")
		return
	}
	return
}

func (rq *CliRequest) execute(out io.Writer, errOut io.Writer) (exitCode int) {
	config := geocorpus.CreateConfig{Out: out, ErrOut: errOut, FancyTerminal: isTerminal(out)}
	if rq.verbose {
		config.Verbosity = geocorpus.VerboseMode
	}
	if rq.quiet {
		config.Verbosity = geocorpus.QuietMode
	}

	_, err := geocorpus.New(config).WriteIndex(rq.options)
	switch {
	case errors.Is(err, geocorpus.ErrRootMissing):
		fmt.Fprintf(errOut, "ERROR: Directory '%s' not found!\n", rq.options.Root)
	case err != nil:
		fmt.Fprintln(errOut, err)
		return 1
	}
	return 0
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func main() {
	if err := env.LoadFiles(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	rq, rc := parseFlags(os.Args[1:], os.Stderr)
	if rq == nil {
		os.Exit(rc)
	}
	os.Exit(rq.execute(os.Stdout, os.Stderr))
}
