package writers

import (
	"bufio"
	"fmt"
	"io"
)

func init() {
	Register("text", WriteText)
	Register("tsv", WriteTSV)
}

// WriteText prints each individual as an indented block: gene counts from
// two copies down to none, then the trait as True/False.
func WriteText(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)
	for _, m := range r.Marginals {
		fmt.Fprintf(bw, "%s:\n  Gene:\n", m.Name)
		for g := 2; g >= 0; g-- {
			fmt.Fprintf(bw, "    %d: %.*f\n", g, r.Precision, m.Gene[g])
		}
		fmt.Fprintf(bw, "  Trait:\n    True: %.*f\n    False: %.*f\n",
			r.Precision, m.Trait[1], r.Precision, m.Trait[0])
	}
	return bw.Flush()
}

// WriteTSV prints one row per individual.
func WriteTSV(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)
	if r.Header {
		fmt.Fprintln(bw, "name\tgene_0\tgene_1\tgene_2\ttrait_true\ttrait_false")
	}
	for _, m := range r.Marginals {
		fmt.Fprintf(bw, "%s\t%.*f\t%.*f\t%.*f\t%.*f\t%.*f\n", m.Name,
			r.Precision, m.Gene[0], r.Precision, m.Gene[1], r.Precision, m.Gene[2],
			r.Precision, m.Trait[1], r.Precision, m.Trait[0])
	}
	return bw.Flush()
}
