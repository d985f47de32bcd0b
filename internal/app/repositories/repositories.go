package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/ssis/internal/db"
	"github.com/yigit/ssis/internal/pkg/logger"
)

// Repositories holds all the repository instances
type Repositories struct {
	CollegeRepository *CollegeRepository
	ProgramRepository *ProgramRepository
	StudentRepository *StudentRepository
	UserRepository    *UserRepository
	MetricsRepository *MetricsRepository
}

// NewRepositories initializes all repositories on one shared pool
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CollegeRepository: NewCollegeRepository(database),
		ProgramRepository: NewProgramRepository(database),
		StudentRepository: NewStudentRepository(database),
		UserRepository:    NewUserRepository(database),
		MetricsRepository: NewMetricsRepository(database),
	}
}

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// queryRow runs a single-row statement as its own unit of work.
// found is false when the statement matched nothing.
func queryRow(ctx context.Context, database *db.PostgresDB, stmt squirrel.Sqlizer, scan func(pgx.Row) error) (bool, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	found := true
	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := scan(tx.QueryRow(ctx, sql, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		logger.Debug().Err(err).Str("sql", sql).Msg("Query failed")
		return false, err
	}

	return found, nil
}

// queryRows runs a multi-row statement as its own unit of work, calling scan once per row.
func queryRows(ctx context.Context, database *db.PostgresDB, stmt squirrel.Sqlizer, scan func(pgx.Rows) error) error {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			if err := scan(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	})
	if err != nil {
		logger.Debug().Err(err).Str("sql", sql).Msg("Query failed")
	}
	return err
}

// execAffected runs a statement as its own unit of work and returns the affected row count.
func execAffected(ctx context.Context, database *db.PostgresDB, stmt squirrel.Sqlizer) (int64, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var affected int64
	err = database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		logger.Debug().Err(err).Str("sql", sql).Msg("Statement failed")
		return 0, err
	}

	return affected, nil
}
