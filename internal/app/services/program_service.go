package services

import (
	"context"
	"strings"

	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/app/repositories"
	"github.com/yigit/ssis/internal/pkg/apperrors"
	"github.com/yigit/ssis/internal/pkg/helpers"
)

// ProgramService defines the interface for program operations
type ProgramService interface {
	GetAll(ctx context.Context) ([]*dto.ProgramResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.ProgramResponse, error)
	Create(ctx context.Context, req dto.ProgramRequest) (*dto.ProgramResponse, error)
	Update(ctx context.Context, code string, req dto.ProgramRequest) (*dto.ProgramResponse, error)
	Delete(ctx context.Context, code string) (*dto.ProgramResponse, error)
	BulkDelete(ctx context.Context, codes []string) (int64, error)
}

type programServiceImpl struct {
	programRepo repositories.IProgramRepository
}

// NewProgramService creates a new program service instance
func NewProgramService(programRepo repositories.IProgramRepository) ProgramService {
	return &programServiceImpl{programRepo: programRepo}
}

func programFromRequest(req dto.ProgramRequest) (*models.Program, error) {
	program := &models.Program{
		Code:        strings.TrimSpace(req.Code),
		Name:        strings.TrimSpace(req.Name),
		CollegeCode: helpers.NullableString(req.CollegeCode),
	}
	if program.Code == "" || program.Name == "" || program.CollegeCode == nil {
		return nil, apperrors.NewValidationError("Program code, name and college_code are required")
	}
	return program, nil
}

func (s *programServiceImpl) GetAll(ctx context.Context) ([]*dto.ProgramResponse, error) {
	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ProgramResponse, 0, len(programs))
	for _, p := range programs {
		result = append(result, dto.NewProgramResponse(p))
	}
	return result, nil
}

func (s *programServiceImpl) GetByCode(ctx context.Context, code string) (*dto.ProgramResponse, error) {
	program, err := s.programRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto.NewProgramResponse(program), nil
}

func (s *programServiceImpl) Create(ctx context.Context, req dto.ProgramRequest) (*dto.ProgramResponse, error) {
	program, err := programFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	return dto.NewProgramResponse(created), nil
}

func (s *programServiceImpl) Update(ctx context.Context, code string, req dto.ProgramRequest) (*dto.ProgramResponse, error) {
	program, err := programFromRequest(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.programRepo.Update(ctx, code, program)
	if err != nil {
		return nil, err
	}
	return dto.NewProgramResponse(updated), nil
}

func (s *programServiceImpl) Delete(ctx context.Context, code string) (*dto.ProgramResponse, error) {
	deleted, err := s.programRepo.Delete(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto.NewProgramResponse(deleted), nil
}

func (s *programServiceImpl) BulkDelete(ctx context.Context, codes []string) (int64, error) {
	codes = cleanKeys(codes)
	if len(codes) == 0 {
		return 0, apperrors.NewValidationError("No codes provided")
	}
	return s.programRepo.BulkDelete(ctx, codes)
}
