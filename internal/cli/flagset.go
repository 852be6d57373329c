package cli

import (
	"flag"
	"fmt"

	"heredity/internal/version"
)

// NewFlagSet returns a ContinueOnError FlagSet with the heredity usage banner.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: exact gene / trait posteriors for a small pedigree

Version: %s

Usage: %s [flags] data.csv
       %s [flags] --sqlite pedigree.db [--table people]

Flags:
`, name, version.Version, name, name)
		fs.PrintDefaults()
	}
	return fs
}
