package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"socialmedia/internal/domain"
	"socialmedia/internal/observability/metrics"
	"socialmedia/internal/repository"
)

const (
	SyncStageCreate = "create"
	SyncStageSave   = "save"
)

// ProfileSynchronizer keeps the profile of a user in step with user writes.
// It runs inside the transaction of the user write.
type ProfileSynchronizer struct {
	logger  logrus.FieldLogger
	metrics *metrics.Metrics
}

func NewProfileSynchronizer(logger logrus.FieldLogger, m *metrics.Metrics) *ProfileSynchronizer {
	return &ProfileSynchronizer{logger: logger, metrics: m}
}

// UserSaved must be called after every user write. A newly created user gets
// a profile; then the profile is saved again so it picks up the user avatar.
func (s *ProfileSynchronizer) UserSaved(ctx context.Context, tx repository.Tx, user *domain.User, created bool) error {
	if created {
		if err := s.createProfile(ctx, tx, user); err != nil {
			return err
		}
	}

	profile, err := tx.Profiles().GetByUserID(ctx, user.ID)
	if errors.Is(err, repository.ErrNotFound) {
		// rows written before profiles existed
		s.logger.WithField("user_id", user.ID).Warn("user has no profile, creating one")
		return s.createProfile(ctx, tx, user)
	}
	if err != nil {
		return err
	}

	profile.PrepareSave(user)
	if err := profile.Validate(); err != nil {
		return err
	}
	if err := tx.Profiles().Update(ctx, profile); err != nil {
		return fmt.Errorf("save profile of user %d: %w", user.ID, err)
	}
	s.metrics.ProfileSynced(SyncStageSave)
	return nil
}

func (s *ProfileSynchronizer) createProfile(ctx context.Context, tx repository.Tx, user *domain.User) error {
	profile := &domain.Profile{UserID: user.ID}
	profile.PrepareSave(user)
	if _, err := tx.Profiles().Create(ctx, profile); err != nil {
		return fmt.Errorf("create profile of user %d: %w", user.ID, err)
	}
	s.metrics.ProfileSynced(SyncStageCreate)
	s.logger.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"profile_id": profile.ID,
	}).Debug("profile created")
	return nil
}
