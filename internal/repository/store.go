package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Tx exposes the repositories bound to one unit of work.
type Tx interface {
	Users() UserRepository
	Profiles() ProfileRepository
}

// Store owns the account tables. WithTx commits when fn returns nil and rolls
// back otherwise.
type Store interface {
	Tx
	Init(ctx context.Context) error
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}
