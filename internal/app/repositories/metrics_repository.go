package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/db"
)

// Tables covered by metrics. Table names cannot be bound as parameters,
// so only these are ever interpolated.
const (
	TableColleges = "colleges"
	TablePrograms = "programs"
	TableStudents = "students"
	TableUsers    = "users"
)

var trackedTables = map[string]bool{
	TableColleges: true,
	TablePrograms: true,
	TableStudents: true,
	TableUsers:    true,
}

// IMetricsRepository defines the interface for reporting queries
type IMetricsRepository interface {
	CountRows(ctx context.Context, table string) (int64, error)
	DailyCounts(ctx context.Context, table string, start, end time.Time, loc *time.Location) ([]models.DailyCount, error)
}

// MetricsRepository runs row-count queries over the tracked tables
type MetricsRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewMetricsRepository creates a new MetricsRepository
func NewMetricsRepository(database *db.PostgresDB) *MetricsRepository {
	return &MetricsRepository{
		db: database,
		sb: newStatementBuilder(),
	}
}

func checkTable(table string) error {
	if !trackedTables[table] {
		return fmt.Errorf("table %q is not tracked by metrics", table)
	}
	return nil
}

// CountRows returns the total number of rows in table
func (r *MetricsRepository) CountRows(ctx context.Context, table string) (int64, error) {
	if err := checkTable(table); err != nil {
		return 0, err
	}

	var count int64
	_, err := queryRow(ctx, r.db, r.sb.Select("COUNT(*)").From(table), func(row pgx.Row) error {
		return row.Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}

	return count, nil
}

// DailyCounts groups the rows created in [start, end) by calendar day in loc.
// Days without rows are absent from the result.
func (r *MetricsRepository) DailyCounts(ctx context.Context, table string, start, end time.Time, loc *time.Location) ([]models.DailyCount, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	stmt := r.sb.Select().
		Column(squirrel.Expr("DATE(created_at AT TIME ZONE ?) AS day", loc.String())).
		Column("COUNT(*)").
		From(table).
		Where(squirrel.GtOrEq{"created_at": start}).
		Where(squirrel.Lt{"created_at": end}).
		GroupBy("day").
		OrderBy("day")

	counts := []models.DailyCount{}
	err := queryRows(ctx, r.db, stmt, func(rows pgx.Rows) error {
		var dc models.DailyCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return err
		}
		counts = append(counts, dc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error counting daily %s: %w", table, err)
	}

	return counts, nil
}
