package repository

import (
	"context"

	"socialmedia/internal/domain"
)

// ProfileEntry is a profile listed together with its owner's identity.
type ProfileEntry struct {
	Profile   domain.Profile
	UserEmail string
	UserName  string
}

// ProfileRepository manages the profile owned by each user. Callers run the
// profile save contract before Create and Update.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (int64, error)
	Update(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	List(ctx context.Context, query ListQuery) ([]ProfileEntry, int, error)
}
