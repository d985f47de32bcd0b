package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/ssis/internal/app/models"
)

type mockCollegeRepo struct{ mock.Mock }

func (m *mockCollegeRepo) GetAll(ctx context.Context) ([]*models.College, error) {
	args := m.Called(ctx)
	colleges, _ := args.Get(0).([]*models.College)
	return colleges, args.Error(1)
}

func (m *mockCollegeRepo) GetByCode(ctx context.Context, code string) (*models.College, error) {
	args := m.Called(ctx, code)
	college, _ := args.Get(0).(*models.College)
	return college, args.Error(1)
}

func (m *mockCollegeRepo) Create(ctx context.Context, college *models.College) (*models.College, error) {
	args := m.Called(ctx, college)
	created, _ := args.Get(0).(*models.College)
	return created, args.Error(1)
}

func (m *mockCollegeRepo) Update(ctx context.Context, code string, college *models.College) (*models.College, error) {
	args := m.Called(ctx, code, college)
	updated, _ := args.Get(0).(*models.College)
	return updated, args.Error(1)
}

func (m *mockCollegeRepo) Delete(ctx context.Context, code string) (*models.College, error) {
	args := m.Called(ctx, code)
	deleted, _ := args.Get(0).(*models.College)
	return deleted, args.Error(1)
}

func (m *mockCollegeRepo) BulkDelete(ctx context.Context, codes []string) (int64, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).(int64), args.Error(1)
}

type mockProgramRepo struct{ mock.Mock }

func (m *mockProgramRepo) GetAll(ctx context.Context) ([]*models.Program, error) {
	args := m.Called(ctx)
	programs, _ := args.Get(0).([]*models.Program)
	return programs, args.Error(1)
}

func (m *mockProgramRepo) GetByCode(ctx context.Context, code string) (*models.Program, error) {
	args := m.Called(ctx, code)
	program, _ := args.Get(0).(*models.Program)
	return program, args.Error(1)
}

func (m *mockProgramRepo) Create(ctx context.Context, program *models.Program) (*models.Program, error) {
	args := m.Called(ctx, program)
	created, _ := args.Get(0).(*models.Program)
	return created, args.Error(1)
}

func (m *mockProgramRepo) Update(ctx context.Context, code string, program *models.Program) (*models.Program, error) {
	args := m.Called(ctx, code, program)
	updated, _ := args.Get(0).(*models.Program)
	return updated, args.Error(1)
}

func (m *mockProgramRepo) Delete(ctx context.Context, code string) (*models.Program, error) {
	args := m.Called(ctx, code)
	deleted, _ := args.Get(0).(*models.Program)
	return deleted, args.Error(1)
}

func (m *mockProgramRepo) BulkDelete(ctx context.Context, codes []string) (int64, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).(int64), args.Error(1)
}

type mockStudentRepo struct{ mock.Mock }

func (m *mockStudentRepo) GetAll(ctx context.Context) ([]*models.Student, error) {
	args := m.Called(ctx)
	students, _ := args.Get(0).([]*models.Student)
	return students, args.Error(1)
}

func (m *mockStudentRepo) GetByID(ctx context.Context, idNo string) (*models.Student, error) {
	args := m.Called(ctx, idNo)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	args := m.Called(ctx, student)
	created, _ := args.Get(0).(*models.Student)
	return created, args.Error(1)
}

func (m *mockStudentRepo) Update(ctx context.Context, idNo string, student *models.Student) (*models.Student, error) {
	args := m.Called(ctx, idNo, student)
	updated, _ := args.Get(0).(*models.Student)
	return updated, args.Error(1)
}

func (m *mockStudentRepo) UpdatePhotoPath(ctx context.Context, idNo string, photoPath string) (*models.Student, error) {
	args := m.Called(ctx, idNo, photoPath)
	updated, _ := args.Get(0).(*models.Student)
	return updated, args.Error(1)
}

func (m *mockStudentRepo) Delete(ctx context.Context, idNo string) (*models.Student, error) {
	args := m.Called(ctx, idNo)
	deleted, _ := args.Get(0).(*models.Student)
	return deleted, args.Error(1)
}

func (m *mockStudentRepo) BulkDelete(ctx context.Context, ids []string) ([]*models.Student, error) {
	args := m.Called(ctx, ids)
	deleted, _ := args.Get(0).([]*models.Student)
	return deleted, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*models.User)
	return created, args.Error(1)
}

func (m *mockUserRepo) UpdateDateLogged(ctx context.Context, username string, at time.Time) (*models.User, error) {
	args := m.Called(ctx, username, at)
	updated, _ := args.Get(0).(*models.User)
	return updated, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	deleted, _ := args.Get(0).(*models.User)
	return deleted, args.Error(1)
}

type mockMetricsRepo struct{ mock.Mock }

func (m *mockMetricsRepo) CountRows(ctx context.Context, table string) (int64, error) {
	args := m.Called(ctx, table)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMetricsRepo) DailyCounts(ctx context.Context, table string, start, end time.Time, loc *time.Location) ([]models.DailyCount, error) {
	args := m.Called(ctx, table, start, end, loc)
	counts, _ := args.Get(0).([]models.DailyCount)
	return counts, args.Error(1)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	args := m.Called(fileHeader, subPath)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) DeleteFile(filePath string) error {
	return m.Called(filePath).Error(0)
}

func (m *mockStorage) GetFullPath(filePath string) (string, error) {
	args := m.Called(filePath)
	return args.String(0), args.Error(1)
}

func strPtr(s string) *string { return &s }
