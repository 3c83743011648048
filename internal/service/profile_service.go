package service

import (
	"context"

	"socialmedia/internal/domain"
	"socialmedia/internal/repository"
)

// ProfileUpdate lists the profile fields a caller may edit. The avatar is
// owned by the synchronizer.
type ProfileUpdate struct {
	FullName   *string
	Bio        *string
	IsVerified *bool
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*domain.Profile, error)
	ListProfiles(ctx context.Context, query repository.ListQuery) ([]repository.ProfileEntry, int, error)
}

type profileService struct {
	store repository.Store
}

func NewProfileService(store repository.Store) ProfileService {
	return &profileService{store: store}
}

func (s *profileService) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	return s.store.Profiles().GetByUserID(ctx, userID)
}

func (s *profileService) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*domain.Profile, error) {
	var out *domain.Profile
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		owner, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		profile, err := tx.Profiles().GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if update.FullName != nil {
			profile.FullName = *update.FullName
		}
		if update.Bio != nil {
			profile.Bio = *update.Bio
		}
		if update.IsVerified != nil {
			profile.IsVerified = *update.IsVerified
		}
		profile.PrepareSave(owner)
		if err := profile.Validate(); err != nil {
			return err
		}
		if err := tx.Profiles().Update(ctx, profile); err != nil {
			return err
		}
		out = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *profileService) ListProfiles(ctx context.Context, query repository.ListQuery) ([]repository.ProfileEntry, int, error) {
	return s.store.Profiles().List(ctx, query)
}
