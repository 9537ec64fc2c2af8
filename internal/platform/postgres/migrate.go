package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"nestegg/internal/platform/postgres/migrations"
)

const migrationTable = "schema_migrations"

// ApplyMigrations executes the embedded migrations at most once per file, in
// lexical order, each in its own transaction.
func ApplyMigrations(ctx context.Context, db *sql.DB) error {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, migrationTable)
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		if err := applyOne(ctx, db, file); err != nil {
			return err
		}
	}
	return nil
}

func applyOne(ctx context.Context, db *sql.DB, file string) error {
	content, err := fs.ReadFile(migrations.FS, file)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", file, err)
	}
	upSQL := extractUp(string(content))
	if strings.TrimSpace(upSQL) == "" {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", file, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serializes concurrent boots against the same database.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, migrationTable); err != nil {
		return fmt.Errorf("lock migrations: %w", err)
	}

	var applied bool
	err = tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1)`, migrationTable), file,
	).Scan(&applied)
	if err != nil {
		return fmt.Errorf("check migration %s: %w", file, err)
	}
	if applied {
		return nil
	}

	if _, err := tx.ExecContext(ctx, upSQL); err != nil {
		return fmt.Errorf("exec migration %s: %w", file, err)
	}
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1)`, migrationTable), file,
	); err != nil {
		return fmt.Errorf("record migration %s: %w", file, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", file, err)
	}
	return nil
}

// extractUp returns the SQL in the -- +migrate Up section, or the whole file
// when it has no markers.
func extractUp(content string) string {
	upIdx := strings.Index(content, "-- +migrate Up")
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, "-- +migrate Down")
	if downIdx == -1 {
		return content[upIdx+len("-- +migrate Up"):]
	}
	return content[upIdx+len("-- +migrate Up") : downIdx]
}
