package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/app/repositories"
	"github.com/yigit/ssis/internal/pkg/apperrors"
	"github.com/yigit/ssis/internal/pkg/filestorage"
	"github.com/yigit/ssis/internal/pkg/helpers"
	"github.com/yigit/ssis/internal/pkg/validation"
)

// photoDir is the storage subdirectory for student photos
const photoDir = "students"

// StudentService defines the interface for student operations.
// college_code is never taken from input: the repository derives it from the course's program.
type StudentService interface {
	GetAll(ctx context.Context) ([]*dto.StudentResponse, error)
	GetByID(ctx context.Context, idNo string) (*dto.StudentResponse, error)
	Create(ctx context.Context, req dto.StudentRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, idNo string, req dto.StudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, idNo string) (*dto.StudentResponse, error)
	BulkDelete(ctx context.Context, ids []string) (int64, error)
	UploadPhoto(ctx context.Context, idNo string, file *multipart.FileHeader) (*dto.StudentResponse, error)
}

type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	storage     filestorage.FileStorage
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository, storage filestorage.FileStorage, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		storage:     storage,
		logger:      logger,
	}
}

func studentFromRequest(req dto.StudentRequest) (*models.Student, error) {
	student := &models.Student{
		IDNo:      strings.TrimSpace(req.IDNo),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Course:    helpers.NullableString(req.Course),
		Year:      req.Year,
		Gender:    strings.TrimSpace(req.Gender),
		PhotoPath: helpers.NullableString(req.PhotoPath),
	}

	if student.IDNo == "" || student.FirstName == "" || student.LastName == "" ||
		student.Course == nil || student.Gender == "" {
		return nil, apperrors.NewValidationError("idNo, firstName, lastName, course and gender are required")
	}
	if !validation.ValidYear(student.Year) {
		return nil, apperrors.NewValidationError("year must be between 1 and 4")
	}
	return student, nil
}

func (s *studentServiceImpl) GetAll(ctx context.Context) ([]*dto.StudentResponse, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.StudentResponse, 0, len(students))
	for _, st := range students {
		result = append(result, dto.NewStudentResponse(st))
	}
	return result, nil
}

func (s *studentServiceImpl) GetByID(ctx context.Context, idNo string) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, idNo)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentServiceImpl) Create(ctx context.Context, req dto.StudentRequest) (*dto.StudentResponse, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponse(created), nil
}

func (s *studentServiceImpl) Update(ctx context.Context, idNo string, req dto.StudentRequest) (*dto.StudentResponse, error) {
	student, err := studentFromRequest(req)
	if err != nil {
		return nil, err
	}

	current, err := s.studentRepo.GetByID(ctx, idNo)
	if err != nil || current == nil {
		return nil, err
	}

	updated, err := s.studentRepo.Update(ctx, idNo, student)
	if err != nil || updated == nil {
		return nil, err
	}

	if helpers.StringValue(current.PhotoPath) != helpers.StringValue(updated.PhotoPath) {
		s.removePhoto(current.PhotoPath)
	}
	return dto.NewStudentResponse(updated), nil
}

func (s *studentServiceImpl) Delete(ctx context.Context, idNo string) (*dto.StudentResponse, error) {
	deleted, err := s.studentRepo.Delete(ctx, idNo)
	if err != nil || deleted == nil {
		return nil, err
	}

	s.removePhoto(deleted.PhotoPath)
	return dto.NewStudentResponse(deleted), nil
}

func (s *studentServiceImpl) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	ids = cleanKeys(ids)
	if len(ids) == 0 {
		return 0, apperrors.NewValidationError("No ids provided")
	}

	deleted, err := s.studentRepo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, err
	}
	for _, st := range deleted {
		s.removePhoto(st.PhotoPath)
	}
	return int64(len(deleted)), nil
}

// UploadPhoto stores a new photo and points the student at it. The previous
// photo is removed once the new path is recorded.
func (s *studentServiceImpl) UploadPhoto(ctx context.Context, idNo string, file *multipart.FileHeader) (*dto.StudentResponse, error) {
	if s.storage == nil {
		return nil, apperrors.NewValidationError("Photo uploads are not enabled")
	}

	current, err := s.studentRepo.GetByID(ctx, idNo)
	if err != nil || current == nil {
		return nil, err
	}

	stored, err := s.storage.SaveFileWithPath(file, photoDir)
	if err != nil {
		if errors.Is(err, filestorage.ErrNoFile) || errors.Is(err, filestorage.ErrFileTooLarge) ||
			errors.Is(err, filestorage.ErrUnsupportedFileType) {
			return nil, apperrors.NewValidationError(err.Error())
		}
		return nil, err
	}

	updated, err := s.studentRepo.UpdatePhotoPath(ctx, idNo, stored)
	if err != nil || updated == nil {
		// the row is gone or the write failed; do not leave an orphan file
		s.removePhoto(&stored)
		return nil, err
	}

	s.removePhoto(current.PhotoPath)
	return dto.NewStudentResponse(updated), nil
}

func (s *studentServiceImpl) removePhoto(photoPath *string) {
	if s.storage == nil || photoPath == nil || *photoPath == "" {
		return
	}
	if err := s.storage.DeleteFile(*photoPath); err != nil {
		s.logger.Warn().Err(err).Str("path", *photoPath).Msg("Failed to remove student photo")
	}
}
