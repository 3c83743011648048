package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"socialmedia/internal/domain"
	"socialmedia/internal/repository"
)

var userColumns = map[string]string{
	repository.FieldEmail:    "u.email",
	repository.FieldName:     "u.name",
	repository.FieldIsActive: "u.is_active",
	repository.FieldIsAdmin:  "u.is_admin",
}

type UserStore struct{ db *gorm.DB }

func (s *UserStore) Create(ctx context.Context, user *domain.User) (int64, error) {
	user.PrepareSave(time.Now().UTC())

	m := toUserModel(user)
	m.ID = 0
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return 0, mapError(err, "insert user "+user.Email)
	}
	user.ID = m.ID
	return m.ID, nil
}

func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	user.PrepareSave(time.Now().UTC())

	res := s.db.WithContext(ctx).
		Model(&userModel{ID: user.ID}).
		Select(userUpdateColumns).
		Updates(toUserModel(user))
	if res.Error != nil {
		return mapError(res.Error, "update user "+user.Email)
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound, "user")
	}
	return nil
}

// Delete removes the user and its profile.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("user_id = ?", id).Delete(&profileModel{}).Error; err != nil {
		return mapError(err, "delete profile")
	}
	res := db.Delete(&userModel{}, id)
	if res.Error != nil {
		return mapError(res.Error, "delete user")
	}
	if res.RowsAffected == 0 {
		return mapError(gorm.ErrRecordNotFound, "user")
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, mapError(err, "user")
	}
	return m.toDomain(), nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := s.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		return nil, mapError(err, "user")
	}
	return m.toDomain(), nil
}

func (s *UserStore) List(ctx context.Context, query repository.ListQuery) ([]domain.User, int, error) {
	if err := query.Validate(repository.UserFields); err != nil {
		return nil, 0, err
	}
	cond, args := query.Condition(repository.UserFields, userColumns)
	scope := func() *gorm.DB {
		return where(s.db.WithContext(ctx).Table("users u"), cond, args)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, mapError(err, "count users")
	}

	limit, offset := query.Page()
	var models []userModel
	if err := scope().Select("u.*").Order("u.id DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, mapError(err, "query users")
	}

	users := make([]domain.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].toDomain())
	}
	return users, int(total), nil
}
