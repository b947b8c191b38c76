package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetUser(ctx, id)
}

// Update patches name and/or email. Nil fields are left untouched.
func (s *UserService) Update(ctx context.Context, id int64, name, email *string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if email != nil {
		user.Email = *email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetUsers(ctx)
}
