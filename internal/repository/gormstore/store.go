package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"socialmedia/internal/repository"
)

// Store implements repository.Store on gorm.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{DB: db} }

func (s *Store) Users() repository.UserRepository { return &UserStore{db: s.DB} }

func (s *Store) Profiles() repository.ProfileRepository { return &ProfileStore{db: s.DB} }

// Init migrates the users and profiles tables.
func (s *Store) Init(ctx context.Context) error {
	if err := s.DB.WithContext(ctx).AutoMigrate(&userModel{}, &profileModel{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{DB: tx})
	})
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ repository.Store = (*Store)(nil)

// mapError converts gorm errors to repository sentinels.
func mapError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(strings.ToLower(err.Error()), "unique"):
		return fmt.Errorf("%s: %w", what, repository.ErrAlreadyExists)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

// where applies a rendered list condition to q.
func where(q *gorm.DB, cond string, args []any) *gorm.DB {
	if cond == "" {
		return q
	}
	return q.Where(cond, args...)
}
