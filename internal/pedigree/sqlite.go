package pedigree

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultTable is the table LoadSQLite reads when none is named.
const DefaultTable = "people"

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads individuals from a table with columns name, mother, father
// and trait, in rowid order. NULL and "" mean absent/unknown; trait holds 1 or 0.
func LoadSQLite(ctx context.Context, path, table string) (*Pedigree, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identRE.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, `SELECT name, mother, father, CAST(trait AS TEXT) FROM `+table+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var people []Individual
	for rows.Next() {
		var (
			name                  string
			mother, father, trait sql.NullString
		)
		if err := rows.Scan(&name, &mother, &father, &trait); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		obs, err := ParseObservation(trait.String)
		if err != nil {
			return nil, fmt.Errorf("%s: row %q: %w", table, name, err)
		}
		people = append(people, Individual{
			Name:   name,
			Mother: mother.String,
			Father: father.String,
			Trait:  obs,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	pd, err := New(people)
	if err != nil {
		return nil, fmt.Errorf("%s:%s: %w", path, table, err)
	}
	return pd, nil
}
