// Package db owns the SQLite store tracking synced features, their
// scenarios and recorded run outcomes.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (creating if needed) the database at path and brings its
// schema up to date. Foreign keys are enabled through the DSN so every
// pooled connection gets the pragma.
func Open(path string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := Migrate(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}
