// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"

	"heredity/internal/engine"
)

// Report is everything a writer may render.
type Report struct {
	RunID     string
	Source    string
	Scored    uint64
	Marginals []engine.Marginal

	Precision int  // decimals for text/tsv; <=0 means 4
	Header    bool // tsv header line
	Sort      bool // order by name instead of input order
}

// Func renders a report.
type Func func(w io.Writer, r Report) error

// registry (format → handler); formats register themselves in init().
var registry = map[string]Func{}

// Register adds or replaces the writer for format.
func Register(format string, fn Func) { registry[format] = fn }

// Formats lists registered formats, sorted.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for f := range registry {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write dispatches r to the writer registered for format.
func Write(format string, w io.Writer, r Report) error {
	fn, ok := registry[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, prepare(r))
}

func prepare(r Report) Report {
	if r.Precision <= 0 {
		r.Precision = 4
	}
	if r.Sort {
		ms := make([]engine.Marginal, len(r.Marginals))
		copy(ms, r.Marginals)
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].Name < ms[j].Name })
		r.Marginals = ms
	}
	return r
}

// IsBrokenPipe reports whether err means the reader went away (e.g. `head`).
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
