package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/ssis/internal/db"
	"github.com/yigit/ssis/internal/pkg/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

const createMigrationTableSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrator manages database migrations
type Migrator struct {
	db    *db.PostgresDB
	files fs.FS
	log   zerolog.Logger
}

// NewMigrator creates a migrator over the SQL files compiled into the binary
func NewMigrator(database *db.PostgresDB) *Migrator {
	files, err := fs.Sub(embedded, "sql")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return NewMigratorFS(database, files)
}

// NewMigratorFS creates a migrator reading *.sql files from the root of files
func NewMigratorFS(database *db.PostgresDB, files fs.FS) *Migrator {
	return &Migrator{
		db:    database,
		files: files,
		log:   logger.WithComponent("migrator"),
	}
}

// versionOf extracts the version from a filename ("001_init.sql" => "001")
func versionOf(filename string) string {
	base := path.Base(filename)
	version, _, _ := strings.Cut(strings.TrimSuffix(base, ".sql"), "_")
	return version
}

// Up applies every pending migration in lexical order
func (m *Migrator) Up(ctx context.Context) error {
	err := m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, createMigrationTableSQL)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	names, err := fs.Glob(m.files, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		ran, err := m.apply(ctx, name)
		if err != nil {
			return err
		}
		if ran {
			applied++
		}
	}

	m.log.Info().Int("applied", applied).Int("total", len(names)).Msg("Migrations complete")
	return nil
}

// apply runs one migration and records it in the same transaction
func (m *Migrator) apply(ctx context.Context, name string) (bool, error) {
	content, err := fs.ReadFile(m.files, name)
	if err != nil {
		return false, fmt.Errorf("failed to read migration file %s: %w", name, err)
	}
	version := versionOf(name)

	ran := false
	err = m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			return nil
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration execution: %w", err)
		}

		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}

		ran = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("migration %s: %w", name, err)
	}

	if ran {
		m.log.Info().Str("file", name).Msg("Migration applied")
	} else {
		m.log.Debug().Str("file", name).Msg("Migration already applied, skipping")
	}
	return ran, nil
}
