package service

import (
	"context"
	"time"

	"github.com/campuscare/complaint-api/internal/core/domain"
	"github.com/campuscare/complaint-api/internal/core/ports"
)

// UserService exposes profile operations for any authenticated actor.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Profile(ctx context.Context, actorID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, actorID)
}

// UpdateProfile changes the actor's display name and, for staff, department.
// A department sent by a non-staff account is ignored.
func (s *UserService) UpdateProfile(ctx context.Context, actorID, name, department string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if department != "" && user.Role == domain.RoleStaff {
		user.Department = department
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListStaff(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListByRole(ctx, domain.RoleStaff)
}
