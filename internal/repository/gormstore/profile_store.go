package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"socialmedia/internal/domain"
	"socialmedia/internal/repository"
)

var profileColumns = map[string]string{
	repository.FieldUserEmail:  "u.email",
	repository.FieldUserName:   "u.name",
	repository.FieldIsVerified: "p.is_verified",
}

type ProfileStore struct{ db *gorm.DB }

func (s *ProfileStore) Create(ctx context.Context, profile *domain.Profile) (int64, error) {
	m := toProfileModel(profile)
	m.ID = 0
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return 0, mapError(err, "insert profile")
	}
	profile.ID = m.ID
	return m.ID, nil
}

func (s *ProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	res := s.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("user_id = ?", profile.UserID).
		Select(profileUpdateColumns).
		Updates(toProfileModel(profile))
	if res.Error != nil {
		return mapError(res.Error, "update profile")
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound, "profile")
	}
	return nil
}

func (s *ProfileStore) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var m profileModel
	if err := s.db.WithContext(ctx).First(&m, "user_id = ?", userID).Error; err != nil {
		return nil, mapError(err, "profile")
	}
	return m.toDomain(), nil
}

func (s *ProfileStore) List(ctx context.Context, query repository.ListQuery) ([]repository.ProfileEntry, int, error) {
	if err := query.Validate(repository.ProfileFields); err != nil {
		return nil, 0, err
	}
	cond, args := query.Condition(repository.ProfileFields, profileColumns)
	scope := func() *gorm.DB {
		q := s.db.WithContext(ctx).Table("profiles p").Joins("JOIN users u ON u.id = p.user_id")
		return where(q, cond, args)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, mapError(err, "count profiles")
	}

	limit, offset := query.Page()
	var rows []profileRow
	if err := scope().
		Select("p.id, p.user_id, p.full_name, p.avatar, p.bio, p.is_verified, u.email AS user_email, u.name AS user_name").
		Order("p.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, mapError(err, "query profiles")
	}

	entries := make([]repository.ProfileEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, repository.ProfileEntry{
			Profile: domain.Profile{
				ID:         r.ID,
				UserID:     r.UserID,
				FullName:   r.FullName,
				Avatar:     r.Avatar,
				Bio:        r.Bio,
				IsVerified: r.IsVerified,
			},
			UserEmail: r.UserEmail,
			UserName:  r.UserName,
		})
	}
	return entries, int(total), nil
}
