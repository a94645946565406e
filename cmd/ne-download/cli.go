package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/n2code/geocorpus"
	"github.com/n2code/geocorpus/internal/catalog"
	"github.com/n2code/geocorpus/internal/env"
	"golang.org/x/term"
)

type CliRequest struct {
	verbose     bool
	quiet       bool
	catalogFile string
	options     geocorpus.DownloadOptions
}

// defaultOptions layers the environment over the built-in defaults.
func defaultOptions() (options geocorpus.DownloadOptions, err error) {
	options = geocorpus.DefaultDownloadOptions()
	options.BaseURL = env.String("BASE_URL", options.BaseURL)
	options.UserAgent = env.String("USER_AGENT", options.UserAgent)
	if options.DefaultOverwrite, err = env.Bool("OVERWRITE", options.DefaultOverwrite); err != nil {
		return
	}
	if options.Delay, err = env.Duration("DELAY", options.Delay); err != nil {
		return
	}
	options.Timeout, err = env.Duration("TIMEOUT", options.Timeout)
	return
}

func parseFlags(args []string, errOut io.Writer) (request *CliRequest, exitCode int) {
	flags := flag.NewFlagSet("ne-download", flag.ContinueOnError)
	flags.SetOutput(errOut)
	flags.Usage = func() {
		fmt.Fprint(flags.Output(), `
Usage:
   ne-download [-v|-q] [FLAG...]

 Downloads the enabled entries of the Natural Earth catalog into
 category directories below the base directory.

`)
		flags.PrintDefaults()
		fmt.Fprintf(flags.Output(), `
 Defaults can also be set via environment or a .env file:
    %[1]sBASE_URL  %[1]sOVERWRITE  %[1]sDELAY  %[1]sUSER_AGENT  %[1]sTIMEOUT

`, env.Prefix)
	}

	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(errOut, "%s\nUsage help: ne-download -h\n", err)
			exitCode = 2
			request = nil
		}
	}()

	request = &CliRequest{}
	request.options, err = defaultOptions()
	if err != nil {
		return
	}
	flags.BoolVar(&request.verbose, "v", false, "Output more details on what is done (verbose mode)")
	flags.BoolVar(&request.quiet, "q", false, "Output as little as possible, i.e. only the final tally and errors (quiet mode)")
	flags.StringVar(&request.catalogFile, "catalog", "", "read the catalog from a YAML `file` instead of the built-in one")
	flags.StringVar(&request.options.BaseURL, "base-url", request.options.BaseURL, "`URL` prefix that source names are appended to")
	flags.StringVar(&request.options.BaseDir, "dir", "", "base `directory` of the downloaded tree (default: working directory)")
	flags.BoolVar(&request.options.DefaultOverwrite, "overwrite", request.options.DefaultOverwrite, "replace existing files unless an entry says otherwise")
	flags.DurationVar(&request.options.Delay, "delay", request.options.Delay, "pause between two consecutive requests")
	flags.StringVar(&request.options.UserAgent, "user-agent", request.options.UserAgent, "User-Agent header sent upstream")
	flags.DurationVar(&request.options.Timeout, "timeout", request.options.Timeout, "timeout of a single request")
	flags.StringVar(&request.options.HighlightKeyword, "highlight", request.options.HighlightKeyword, "list entries whose source contains this `word` separately in the summary")

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
	if request.options.Delay < 0 || request.options.Timeout < 0 {
		err = errors.New("Delay and timeout must not be negative!")
		return
	}
	return
}

func (rq *CliRequest) execute(ctx context.Context, out io.Writer, errOut io.Writer) (exitCode int) {
	entries := catalog.Default()
	if rq.catalogFile != "" {
		var err error
		if entries, err = catalog.LoadFile(rq.catalogFile); err != nil {
			fmt.Fprintf(errOut, "Unexpected error occurred: %s\n", err)
			return 1
		}
	}

	config := geocorpus.CreateConfig{Out: out, ErrOut: errOut, FancyTerminal: isTerminal(out)}
	if rq.verbose {
		config.Verbosity = geocorpus.VerboseMode
	}
	if rq.quiet {
		config.Verbosity = geocorpus.QuietMode
	}

	_, err := geocorpus.New(config).Download(ctx, entries, rq.options)
	switch {
	case errors.Is(err, geocorpus.ErrInterrupted):
		fmt.Fprintln(errOut, "\nInterrupted by user")
	case err != nil:
		fmt.Fprintf(errOut, "Unexpected error occurred: %s\n", err)
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
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rc = rq.execute(ctx, os.Stdout, os.Stderr)
	stop()
	os.Exit(rc)
}
