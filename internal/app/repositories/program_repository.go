package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/db"
)

const programReturning = "RETURNING code, name, college_code, created_at"

// IProgramRepository defines the interface for program database operations
type IProgramRepository interface {
	GetAll(ctx context.Context) ([]*models.Program, error)
	GetByCode(ctx context.Context, code string) (*models.Program, error)
	Create(ctx context.Context, program *models.Program) (*models.Program, error)
	Update(ctx context.Context, code string, program *models.Program) (*models.Program, error)
	Delete(ctx context.Context, code string) (*models.Program, error)
	BulkDelete(ctx context.Context, codes []string) (int64, error)
}

// ProgramRepository handles program database operations
type ProgramRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(database *db.PostgresDB) *ProgramRepository {
	return &ProgramRepository{
		db: database,
		sb: newStatementBuilder(),
	}
}

func scanProgram(row pgx.Row) (*models.Program, error) {
	program := &models.Program{}
	err := row.Scan(&program.Code, &program.Name, &program.CollegeCode, &program.CreatedAt)
	if err != nil {
		return nil, err
	}
	return program, nil
}

func (r *ProgramRepository) one(ctx context.Context, stmt squirrel.Sqlizer) (*models.Program, error) {
	var program *models.Program
	found, err := queryRow(ctx, r.db, stmt, func(row pgx.Row) error {
		var err error
		program, err = scanProgram(row)
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return program, nil
}

// GetAll retrieves all programs ordered by code
func (r *ProgramRepository) GetAll(ctx context.Context) ([]*models.Program, error) {
	stmt := r.sb.Select("code", "name", "college_code", "created_at").
		From("programs").
		OrderBy("code")

	programs := []*models.Program{}
	err := queryRows(ctx, r.db, stmt, func(rows pgx.Rows) error {
		program, err := scanProgram(rows)
		if err != nil {
			return err
		}
		programs = append(programs, program)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error querying programs: %w", err)
	}

	return programs, nil
}

// GetByCode retrieves a program by its code
func (r *ProgramRepository) GetByCode(ctx context.Context, code string) (*models.Program, error) {
	program, err := r.one(ctx, r.sb.Select("code", "name", "college_code", "created_at").
		From("programs").
		Where(squirrel.Eq{"code": code}))
	if err != nil {
		return nil, fmt.Errorf("error getting program by code: %w", err)
	}
	return program, nil
}

// Create inserts a program and returns the stored row
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) (*models.Program, error) {
	created, err := r.one(ctx, r.sb.Insert("programs").
		Columns("code", "name", "college_code").
		Values(program.Code, program.Name, program.CollegeCode).
		Suffix(programReturning))
	if err != nil {
		return nil, fmt.Errorf("error creating program: %w", err)
	}
	return created, nil
}

// Update replaces the program identified by code
func (r *ProgramRepository) Update(ctx context.Context, code string, program *models.Program) (*models.Program, error) {
	updated, err := r.one(ctx, r.sb.Update("programs").
		Set("code", program.Code).
		Set("name", program.Name).
		Set("college_code", program.CollegeCode).
		Where(squirrel.Eq{"code": code}).
		Suffix(programReturning))
	if err != nil {
		return nil, fmt.Errorf("error updating program: %w", err)
	}
	return updated, nil
}

// Delete removes a program and returns the deleted row
func (r *ProgramRepository) Delete(ctx context.Context, code string) (*models.Program, error) {
	deleted, err := r.one(ctx, r.sb.Delete("programs").
		Where(squirrel.Eq{"code": code}).
		Suffix(programReturning))
	if err != nil {
		return nil, fmt.Errorf("error deleting program: %w", err)
	}
	return deleted, nil
}

// BulkDelete removes every listed program and returns how many existed
func (r *ProgramRepository) BulkDelete(ctx context.Context, codes []string) (int64, error) {
	deleted, err := execAffected(ctx, r.db, r.sb.Delete("programs").
		Where(squirrel.Expr("code = ANY(?)", codes)))
	if err != nil {
		return 0, fmt.Errorf("error bulk deleting programs: %w", err)
	}
	return deleted, nil
}
