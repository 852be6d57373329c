// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"heredity/internal/config"
	"heredity/internal/engine"
	"heredity/internal/writers"
)

// UsageError is a command-line mistake: the caller should print usage and
// exit 2.
type UsageError struct{ Msg string }

func (e *UsageError) Error() string { return e.Msg }

func usagef(format string, a ...any) error { return &UsageError{Msg: fmt.Sprintf(format, a...)} }

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	DataFile string // CSV path or "-"
	SQLite   string
	Table    string
	Tables   string // YAML probability tables

	// Inference
	Threads        int
	MaxIndividuals int

	// Output
	Output    string
	Precision int
	Sort      bool
	Header    bool // true unless --no-header
	RunID     string

	// Observability
	MetricsFile  string
	OtelEndpoint string
	LogLevel     string
	LogJSON      bool
	Quiet        bool

	Version bool
}

// ParseArgs registers and parses all flags over defaults from the
// environment. Usage mistakes come back as *UsageError; -h as flag.ErrHelp.
func ParseArgs(fs *flag.FlagSet, argv []string, env config.Env) (Options, error) {
	var opt Options

	// Input
	fs.StringVar(&opt.SQLite, "sqlite", "", "read the pedigree from this SQLite database instead of a CSV file")
	fs.StringVar(&opt.Table, "table", "people", "table to read with --sqlite")
	fs.StringVar(&opt.Tables, "tables", "", "YAML file overriding gene priors, trait likelihoods and mutation rate")

	// Inference
	fs.IntVar(&opt.Threads, "threads", env.Threads, "worker goroutines (0 = all CPUs)")
	fs.IntVar(&opt.Threads, "t", env.Threads, "alias of --threads")
	fs.IntVar(&opt.MaxIndividuals, "max-individuals", env.MaxIndividuals,
		fmt.Sprintf("refuse pedigrees larger than this (hard limit %d)", engine.MaxSupported))

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output: text | tsv | json | jsonl")
	fs.StringVar(&opt.Output, "o", "text", "alias of --output")
	fs.IntVar(&opt.Precision, "precision", 4, "decimals for text/tsv output")
	fs.BoolVar(&opt.Sort, "sort", false, "order individuals by name instead of input order")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress the tsv header line")
	fs.StringVar(&opt.RunID, "run-id", "", "run identifier for json output (default: random UUID)")

	// Observability
	fs.StringVar(&opt.MetricsFile, "metrics-file", env.MetricsFile, "write Prometheus text metrics here after the run")
	fs.StringVar(&opt.OtelEndpoint, "otel-endpoint", env.OtelEndpoint, "OTLP/HTTP endpoint for traces (empty = off)")
	fs.StringVar(&opt.LogLevel, "log-level", env.LogLevel, "log level: debug | info | warn | error")
	fs.BoolVar(&opt.LogJSON, "log-json", false, "log as JSON")
	fs.BoolVar(&opt.Quiet, "quiet", false, "only log errors")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")

	flagArgs, posArgs := splitArgs(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opt, err
		}
		return opt, &UsageError{Msg: err.Error()}
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader
	if opt.Quiet {
		opt.LogLevel = "error"
	}

	switch {
	case opt.SQLite != "" && len(posArgs) > 0:
		return opt, usagef("--sqlite conflicts with a data file argument")
	case opt.SQLite == "" && len(posArgs) != 1:
		return opt, usagef("expected exactly one data file, got %d", len(posArgs))
	case opt.SQLite == "":
		opt.DataFile = posArgs[0]
	}

	if opt.Threads < 0 {
		return opt, usagef("--threads must be ≥ 0")
	}
	if opt.MaxIndividuals < 1 || opt.MaxIndividuals > engine.MaxSupported {
		return opt, usagef("--max-individuals must be between 1 and %d", engine.MaxSupported)
	}
	if opt.Precision < 1 || opt.Precision > 17 {
		return opt, usagef("--precision must be between 1 and 17")
	}
	if !validOutput(opt.Output) {
		return opt, usagef("invalid --output %q", opt.Output)
	}
	return opt, nil
}

func validOutput(f string) bool {
	for _, known := range writers.Formats() {
		if f == known {
			return true
		}
	}
	return false
}
