package ports

import (
	"context"

	"github.com/campuscare/complaint-api/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	// ListByRole returns all users with the given role, ordered by name.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}
