package ports

import (
	"context"

	"github.com/campuscare/complaint-api/internal/core/domain"
)

// AuthService handles self-registration and login. Self-registration always
// produces a student account; staff and admin accounts are provisioned
// elsewhere.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// UserService exposes profile operations for any authenticated actor.
type UserService interface {
	Profile(ctx context.Context, actorID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, actorID, name, department string) (*domain.User, error)
	ListStaff(ctx context.Context) ([]*domain.User, error)
}
