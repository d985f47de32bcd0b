package services

import (
	"context"

	"github.com/yigit/ssis/internal/app/models/dto"
	"github.com/yigit/ssis/internal/app/repositories"
)

// UserService defines the interface for user account listing and removal
type UserService interface {
	GetAll(ctx context.Context) ([]*dto.UserResponse, error)
	Delete(ctx context.Context, username string) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	userRepo repositories.IUserRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo repositories.IUserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) GetAll(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, dto.NewUserResponse(u))
	}
	return result, nil
}

// Delete removes an account; nil means no such user
func (s *userServiceImpl) Delete(ctx context.Context, username string) (*dto.UserResponse, error) {
	deleted, err := s.userRepo.Delete(ctx, username)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(deleted), nil
}
