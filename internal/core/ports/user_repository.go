package ports

import (
	"context"

	"github.com/weddingplan/planner-api/internal/core/domain"
)

// UserRepository defines persistence operations for planner accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update overwrites the stored account with user (matched by ID).
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
