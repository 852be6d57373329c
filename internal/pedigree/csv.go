// internal/pedigree/csv.go
package pedigree

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var csvColumns = []string{"name", "mother", "father", "trait"}

// LoadCSV reads a pedigree file with a header naming the columns
// name, mother, father, trait (any order). path "-" reads stdin.
func LoadCSV(path string) (*Pedigree, error) {
	if path == "-" {
		return ReadCSV(os.Stdin, "<stdin>")
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ReadCSV(fh, path)
}

// ReadCSV parses CSV pedigree data from r; src labels error messages.
//
// Blank mother/father means "absent"; trait is "1", "0" or blank (unknown).
func ReadCSV(r io.Reader, src string) (*Pedigree, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w: empty file", src, ErrInvalid)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, want := range csvColumns {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("%s: %w: missing column %q", src, ErrInvalid, want)
		}
	}

	var people []Individual
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src, err)
		}
		ln, _ := cr.FieldPos(0)
		field := func(name string) string { return strings.TrimSpace(rec[col[name]]) }

		trait, err := ParseObservation(field("trait"))
		if err != nil {
			return nil, fmt.Errorf("%s:%d %w", src, ln, err)
		}
		people = append(people, Individual{
			Name:   field("name"),
			Mother: field("mother"),
			Father: field("father"),
			Trait:  trait,
		})
	}

	pd, err := New(people)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	return pd, nil
}

// ParseObservation maps the file encoding of a trait field.
func ParseObservation(s string) (Observation, error) {
	switch s {
	case "":
		return Unknown, nil
	case "1":
		return Expressed, nil
	case "0":
		return NotExpressed, nil
	}
	return Unknown, fmt.Errorf("%w: trait %q must be 1, 0 or blank", ErrInvalid, s)
}
