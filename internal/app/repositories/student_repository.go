package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/db"
)

var studentColumns = []string{
	`"idNo"`, `"firstName"`, `"lastName"`, "course", "year", "gender", "photo_path", "college_code", "created_at",
}

const studentReturning = `RETURNING "idNo", "firstName", "lastName", course, year, gender, photo_path, college_code, created_at`

// IStudentRepository defines the interface for student database operations
type IStudentRepository interface {
	GetAll(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, idNo string) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) (*models.Student, error)
	Update(ctx context.Context, idNo string, student *models.Student) (*models.Student, error)
	UpdatePhotoPath(ctx context.Context, idNo string, photoPath string) (*models.Student, error)
	Delete(ctx context.Context, idNo string) (*models.Student, error)
	BulkDelete(ctx context.Context, ids []string) ([]*models.Student, error)
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.PostgresDB) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: newStatementBuilder(),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.IDNo,
		&s.FirstName,
		&s.LastName,
		&s.Course,
		&s.Year,
		&s.Gender,
		&s.PhotoPath,
		&s.CollegeCode,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// collegeOfCourse resolves the student's college through the course's program
func collegeOfCourse(course *string) squirrel.Sqlizer {
	return squirrel.Expr("(SELECT college_code FROM programs WHERE code = ?)", course)
}

func (r *StudentRepository) one(ctx context.Context, stmt squirrel.Sqlizer) (*models.Student, error) {
	var student *models.Student
	found, err := queryRow(ctx, r.db, stmt, func(row pgx.Row) error {
		var err error
		student, err = scanStudent(row)
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return student, nil
}

// GetAll retrieves all students ordered by id number
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	stmt := r.sb.Select(studentColumns...).
		From("students").
		OrderBy(`"idNo"`)

	students := []*models.Student{}
	err := queryRows(ctx, r.db, stmt, func(rows pgx.Rows) error {
		student, err := scanStudent(rows)
		if err != nil {
			return err
		}
		students = append(students, student)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error querying students: %w", err)
	}

	return students, nil
}

// GetByID retrieves a student by id number
func (r *StudentRepository) GetByID(ctx context.Context, idNo string) (*models.Student, error) {
	student, err := r.one(ctx, r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{`"idNo"`: idNo}))
	if err != nil {
		return nil, fmt.Errorf("error getting student by id: %w", err)
	}
	return student, nil
}

// Create inserts a student; college_code is taken from the course's program
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	created, err := r.one(ctx, r.sb.Insert("students").
		Columns(`"idNo"`, `"firstName"`, `"lastName"`, "course", "year", "gender", "photo_path", "college_code").
		Values(
			student.IDNo,
			student.FirstName,
			student.LastName,
			student.Course,
			student.Year,
			student.Gender,
			student.PhotoPath,
			collegeOfCourse(student.Course),
		).
		Suffix(studentReturning))
	if err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return created, nil
}

// Update replaces the student identified by idNo and re-derives college_code
func (r *StudentRepository) Update(ctx context.Context, idNo string, student *models.Student) (*models.Student, error) {
	updated, err := r.one(ctx, r.sb.Update("students").
		Set(`"idNo"`, student.IDNo).
		Set(`"firstName"`, student.FirstName).
		Set(`"lastName"`, student.LastName).
		Set("course", student.Course).
		Set("year", student.Year).
		Set("gender", student.Gender).
		Set("photo_path", student.PhotoPath).
		Set("college_code", collegeOfCourse(student.Course)).
		Where(squirrel.Eq{`"idNo"`: idNo}).
		Suffix(studentReturning))
	if err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return updated, nil
}

// UpdatePhotoPath records the stored photo of a student
func (r *StudentRepository) UpdatePhotoPath(ctx context.Context, idNo string, photoPath string) (*models.Student, error) {
	updated, err := r.one(ctx, r.sb.Update("students").
		Set("photo_path", photoPath).
		Where(squirrel.Eq{`"idNo"`: idNo}).
		Suffix(studentReturning))
	if err != nil {
		return nil, fmt.Errorf("error updating student photo: %w", err)
	}
	return updated, nil
}

// Delete removes a student and returns the deleted row
func (r *StudentRepository) Delete(ctx context.Context, idNo string) (*models.Student, error) {
	deleted, err := r.one(ctx, r.sb.Delete("students").
		Where(squirrel.Eq{`"idNo"`: idNo}).
		Suffix(studentReturning))
	if err != nil {
		return nil, fmt.Errorf("error deleting student: %w", err)
	}
	return deleted, nil
}

// BulkDelete removes every listed student and returns the rows that existed
func (r *StudentRepository) BulkDelete(ctx context.Context, ids []string) ([]*models.Student, error) {
	stmt := r.sb.Delete("students").
		Where(squirrel.Expr(`"idNo" = ANY(?)`, ids)).
		Suffix(studentReturning)

	deleted := []*models.Student{}
	err := queryRows(ctx, r.db, stmt, func(rows pgx.Rows) error {
		student, err := scanStudent(rows)
		if err != nil {
			return err
		}
		deleted = append(deleted, student)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error bulk deleting students: %w", err)
	}
	return deleted, nil
}
