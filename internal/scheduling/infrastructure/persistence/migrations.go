package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed migrations/sqlite/*.sql
var sqliteFS embed.FS

// RunMigrations executes every embedded migration in lexical order. Each
// statement is written CREATE TABLE/INDEX IF NOT EXISTS, so re-running the
// set on an already-migrated database is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	entries, err := sqliteFS.ReadDir("migrations/sqlite")
	if err != nil {
		return fmt.Errorf("persistence: read migrations dir: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, file := range upFiles {
		migration, err := sqliteFS.ReadFile("migrations/sqlite/" + file)
		if err != nil {
			return fmt.Errorf("persistence: read migration %s: %w", file, err)
		}
		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return fmt.Errorf("persistence: apply migration %s: %w", file, err)
		}
	}
	return nil
}
