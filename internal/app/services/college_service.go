package services

import (
	"context"
	"strings"

	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/app/repositories"
	"github.com/yigit/ssis/internal/pkg/apperrors"
)

// CollegeService defines the interface for college operations.
// Lookups, updates and deletes of an absent code return a nil record.
type CollegeService interface {
	GetAll(ctx context.Context) ([]*dto.CollegeResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.CollegeResponse, error)
	Create(ctx context.Context, req dto.CollegeRequest) (*dto.CollegeResponse, error)
	Update(ctx context.Context, code string, req dto.CollegeRequest) (*dto.CollegeResponse, error)
	Delete(ctx context.Context, code string) (*dto.CollegeResponse, error)
	BulkDelete(ctx context.Context, codes []string) (int64, error)
}

// collegeServiceImpl implements the CollegeService interface
type collegeServiceImpl struct {
	collegeRepo repositories.ICollegeRepository
}

// NewCollegeService creates a new college service instance
func NewCollegeService(collegeRepo repositories.ICollegeRepository) CollegeService {
	return &collegeServiceImpl{collegeRepo: collegeRepo}
}

func collegeFromRequest(req dto.CollegeRequest) (*models.College, error) {
	college := &models.College{
		Code: strings.TrimSpace(req.Code),
		Name: strings.TrimSpace(req.Name),
	}
	if college.Code == "" || college.Name == "" {
		return nil, apperrors.NewValidationError("College code and name are required")
	}
	return college, nil
}

func (s *collegeServiceImpl) GetAll(ctx context.Context) ([]*dto.CollegeResponse, error) {
	colleges, err := s.collegeRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.CollegeResponse, 0, len(colleges))
	for _, c := range colleges {
		result = append(result, dto.NewCollegeResponse(c))
	}
	return result, nil
}

func (s *collegeServiceImpl) GetByCode(ctx context.Context, code string) (*dto.CollegeResponse, error) {
	college, err := s.collegeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto.NewCollegeResponse(college), nil
}

func (s *collegeServiceImpl) Create(ctx context.Context, req dto.CollegeRequest) (*dto.CollegeResponse, error) {
	college, err := collegeFromRequest(req)
	if err != nil {
		return nil, err
	}

	created, err := s.collegeRepo.Create(ctx, college)
	if err != nil {
		return nil, err
	}
	return dto.NewCollegeResponse(created), nil
}

func (s *collegeServiceImpl) Update(ctx context.Context, code string, req dto.CollegeRequest) (*dto.CollegeResponse, error) {
	college, err := collegeFromRequest(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.collegeRepo.Update(ctx, code, college)
	if err != nil {
		return nil, err
	}
	return dto.NewCollegeResponse(updated), nil
}

func (s *collegeServiceImpl) Delete(ctx context.Context, code string) (*dto.CollegeResponse, error) {
	deleted, err := s.collegeRepo.Delete(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto.NewCollegeResponse(deleted), nil
}

func (s *collegeServiceImpl) BulkDelete(ctx context.Context, codes []string) (int64, error) {
	codes = cleanKeys(codes)
	if len(codes) == 0 {
		return 0, apperrors.NewValidationError("No codes provided")
	}
	return s.collegeRepo.BulkDelete(ctx, codes)
}
