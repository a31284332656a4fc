package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"
)

// RunMigrations applies every .up.sql file under migrationsPath in name order,
// inside a single transaction.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, fsys afero.Fs, migrationsPath string) error {
	files, err := UpMigrations(fsys, migrationsPath)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, path := range files {
		content, err := afero.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading migration file %s: %w", filepath.Base(path), err)
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", filepath.Base(path), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing migrations: %w", err)
	}
	return nil
}

// UpMigrations lists the .up.sql files in migrationsPath, sorted by name.
func UpMigrations(fsys afero.Fs, migrationsPath string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, f := range entries {
		if !f.IsDir() && strings.HasSuffix(f.Name(), ".up.sql") {
			upFiles = append(upFiles, filepath.Join(migrationsPath, f.Name()))
		}
	}

	sort.Strings(upFiles)
	return upFiles, nil
}
