package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/db"
)

var collegeColumns = []string{"code", "name", "created_at"}

// ICollegeRepository defines the interface for college database operations
type ICollegeRepository interface {
	GetAll(ctx context.Context) ([]*models.College, error)
	GetByCode(ctx context.Context, code string) (*models.College, error)
	Create(ctx context.Context, college *models.College) (*models.College, error)
	Update(ctx context.Context, code string, college *models.College) (*models.College, error)
	Delete(ctx context.Context, code string) (*models.College, error)
	BulkDelete(ctx context.Context, codes []string) (int64, error)
}

// CollegeRepository handles college database operations
type CollegeRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewCollegeRepository creates a new CollegeRepository
func NewCollegeRepository(database *db.PostgresDB) *CollegeRepository {
	return &CollegeRepository{
		db: database,
		sb: newStatementBuilder(),
	}
}

func scanCollege(row pgx.Row) (*models.College, error) {
	college := &models.College{}
	if err := row.Scan(&college.Code, &college.Name, &college.CreatedAt); err != nil {
		return nil, err
	}
	return college, nil
}

// one runs a statement returning at most one college row; nil means no row matched
func (r *CollegeRepository) one(ctx context.Context, stmt squirrel.Sqlizer) (*models.College, error) {
	var college *models.College
	found, err := queryRow(ctx, r.db, stmt, func(row pgx.Row) error {
		var err error
		college, err = scanCollege(row)
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return college, nil
}

// GetAll retrieves all colleges ordered by code
func (r *CollegeRepository) GetAll(ctx context.Context) ([]*models.College, error) {
	stmt := r.sb.Select(collegeColumns...).
		From("colleges").
		OrderBy("code")

	colleges := []*models.College{}
	err := queryRows(ctx, r.db, stmt, func(rows pgx.Rows) error {
		college, err := scanCollege(rows)
		if err != nil {
			return err
		}
		colleges = append(colleges, college)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error querying colleges: %w", err)
	}

	return colleges, nil
}

// GetByCode retrieves a college by its code
func (r *CollegeRepository) GetByCode(ctx context.Context, code string) (*models.College, error) {
	college, err := r.one(ctx, r.sb.Select(collegeColumns...).
		From("colleges").
		Where(squirrel.Eq{"code": code}))
	if err != nil {
		return nil, fmt.Errorf("error getting college by code: %w", err)
	}
	return college, nil
}

// Create inserts a college and returns the stored row
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) (*models.College, error) {
	created, err := r.one(ctx, r.sb.Insert("colleges").
		Columns("code", "name").
		Values(college.Code, college.Name).
		Suffix("RETURNING code, name, created_at"))
	if err != nil {
		return nil, fmt.Errorf("error creating college: %w", err)
	}
	return created, nil
}

// Update replaces the college identified by code; the code itself may change
func (r *CollegeRepository) Update(ctx context.Context, code string, college *models.College) (*models.College, error) {
	updated, err := r.one(ctx, r.sb.Update("colleges").
		Set("code", college.Code).
		Set("name", college.Name).
		Where(squirrel.Eq{"code": code}).
		Suffix("RETURNING code, name, created_at"))
	if err != nil {
		return nil, fmt.Errorf("error updating college: %w", err)
	}
	return updated, nil
}

// Delete removes a college and returns the deleted row
func (r *CollegeRepository) Delete(ctx context.Context, code string) (*models.College, error) {
	deleted, err := r.one(ctx, r.sb.Delete("colleges").
		Where(squirrel.Eq{"code": code}).
		Suffix("RETURNING code, name, created_at"))
	if err != nil {
		return nil, fmt.Errorf("error deleting college: %w", err)
	}
	return deleted, nil
}

// BulkDelete removes every college whose code is listed and returns how many existed
func (r *CollegeRepository) BulkDelete(ctx context.Context, codes []string) (int64, error) {
	deleted, err := execAffected(ctx, r.db, r.sb.Delete("colleges").
		Where(squirrel.Expr("code = ANY(?)", codes)))
	if err != nil {
		return 0, fmt.Errorf("error bulk deleting colleges: %w", err)
	}
	return deleted, nil
}
