package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"socialmedia/internal/repository"
)

// Store implements repository.Store on a sqlite database.
type Store struct {
	db   *sql.DB
	q    DBTX
	inTx bool
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() repository.UserRepository {
	return NewUserRepository(s.q)
}

func (s *Store) Profiles() repository.ProfileRepository {
	return NewProfileRepository(s.q)
}

// Init creates the users and profiles tables. Users must exist first for the
// profiles foreign key.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.q.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if _, err := s.q.ExecContext(ctx, createProfilesTable); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

// WithTx runs fn in a transaction. Nested calls join the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if err := fn(&Store{db: s.db, q: tx, inTx: true}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

var _ repository.Store = (*Store)(nil)
