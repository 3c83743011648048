package repository

import (
	"context"

	"socialmedia/internal/domain"
)

// UserRepository defines persistence operations for User entities. Create and
// Update run the user save contract before writing.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, query ListQuery) ([]domain.User, int, error)
}
