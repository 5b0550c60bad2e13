// Package schema holds the SQL layout of the ledger for each supported driver.
package schema

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Migrate applies every migration file of the given driver ("postgres" or "sqlite") in name order.
// All statements use IF NOT EXISTS, so running it twice is harmless.
func Migrate(ctx context.Context, db *sqlx.DB, driver string) error {
	stmts, err := Statements(driver)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

// Statements returns the ordered DDL statements for driver.
func Statements(driver string) ([]string, error) {
	dir := driver
	if dir == "pgx" {
		dir = "postgres"
	}
	names, err := fs.Glob(files, dir+"/*.sql")
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
	sort.Strings(names)

	var stmts []string
	for _, name := range names {
		raw, err := files.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		for _, stmt := range strings.Split(string(raw), ";") {
			if s := strings.TrimSpace(stmt); s != "" {
				stmts = append(stmts, s)
			}
		}
	}
	return stmts, nil
}
