package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"socialmedia/internal/domain"
	"socialmedia/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL DEFAULT '',
	is_active INTEGER NOT NULL DEFAULT 1,
	is_admin INTEGER NOT NULL DEFAULT 0,
	avatar TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_users_name ON users(name);
CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at);
CREATE INDEX IF NOT EXISTS idx_users_updated_at ON users(updated_at);
`

const selectUserColumns = `u.id, u.email, u.name, u.password_hash, u.is_active, u.is_admin, u.avatar, u.bio, u.created_at, u.updated_at`

var userColumns = map[string]string{
	repository.FieldEmail:    "u.email",
	repository.FieldName:     "u.name",
	repository.FieldIsActive: "u.is_active",
	repository.FieldIsAdmin:  "u.is_admin",
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	user.PrepareSave(time.Now().UTC())

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (email, name, password_hash, is_active, is_admin, avatar, bio, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.IsActive,
		user.IsAdmin,
		user.Avatar,
		user.Bio,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %s: %w", user.Email, repository.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	user.PrepareSave(time.Now().UTC())

	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET email=?, name=?, password_hash=?, is_active=?, is_admin=?, avatar=?, bio=?, updated_at=?
WHERE id=?`,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.IsActive,
		user.IsAdmin,
		user.Avatar,
		user.Bio,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update user %s: %w", user.Email, repository.ErrAlreadyExists)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return expectAffected(res, "user")
}

// Delete removes the user and its profile.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id=?`, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectAffected(res, "user")
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+selectUserColumns+`
FROM users u
WHERE u.id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+selectUserColumns+`
FROM users u
WHERE u.email = ?`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context, query repository.ListQuery) ([]domain.User, int, error) {
	if err := query.Validate(repository.UserFields); err != nil {
		return nil, 0, err
	}
	where, args := whereClause(query, repository.UserFields, userColumns)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	limit, offset := query.Page()
	rows, err := r.db.QueryContext(ctx, `
SELECT `+selectUserColumns+`
FROM users u`+where+`
ORDER BY u.id DESC
LIMIT ? OFFSET ?`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}

	return users, total, rows.Err()
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsAdmin,
		&user.Avatar,
		&user.Bio,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func whereClause(query repository.ListQuery, fields map[string]repository.FieldKind, columns map[string]string) (string, []any) {
	cond, args := query.Condition(fields, columns)
	if cond == "" {
		return "", nil
	}
	return "\nWHERE " + cond, args
}

func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

func expectAffected(res sql.Result, entity string) error {
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if aff == 0 {
		return fmt.Errorf("%s: %w", entity, repository.ErrNotFound)
	}
	return nil
}
