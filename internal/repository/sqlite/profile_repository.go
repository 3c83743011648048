package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"socialmedia/internal/domain"
	"socialmedia/internal/repository"
)

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL UNIQUE,
	full_name TEXT NOT NULL DEFAULT '',
	avatar TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	is_verified INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_profiles_is_verified ON profiles(is_verified);
`

const selectProfileColumns = `p.id, p.user_id, p.full_name, p.avatar, p.bio, p.is_verified`

var profileColumns = map[string]string{
	repository.FieldUserEmail:  "u.email",
	repository.FieldUserName:   "u.name",
	repository.FieldIsVerified: "p.is_verified",
}

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) repository.ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO profiles (user_id, full_name, avatar, bio, is_verified)
VALUES (?, ?, ?, ?, ?)`,
		profile.UserID,
		profile.FullName,
		profile.Avatar,
		profile.Bio,
		profile.IsVerified,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert profile for user %d: %w", profile.UserID, repository.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("insert profile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("profile last insert id: %w", err)
	}
	profile.ID = id
	return id, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE profiles
SET full_name=?, avatar=?, bio=?, is_verified=?
WHERE user_id=?`,
		profile.FullName,
		profile.Avatar,
		profile.Bio,
		profile.IsVerified,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return expectAffected(res, "profile")
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+selectProfileColumns+`
FROM profiles p
WHERE p.user_id = ?`,
		userID,
	)

	var profile domain.Profile
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Avatar,
		&profile.Bio,
		&profile.IsVerified,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) List(ctx context.Context, query repository.ListQuery) ([]repository.ProfileEntry, int, error) {
	if err := query.Validate(repository.ProfileFields); err != nil {
		return nil, 0, err
	}
	where, args := whereClause(query, repository.ProfileFields, profileColumns)
	const from = `
FROM profiles p
JOIN users u ON u.id = p.user_id`

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	limit, offset := query.Page()
	rows, err := r.db.QueryContext(ctx, `
SELECT `+selectProfileColumns+`, u.email, u.name`+from+where+`
ORDER BY p.id DESC
LIMIT ? OFFSET ?`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var entries []repository.ProfileEntry
	for rows.Next() {
		var entry repository.ProfileEntry
		if err := rows.Scan(
			&entry.Profile.ID,
			&entry.Profile.UserID,
			&entry.Profile.FullName,
			&entry.Profile.Avatar,
			&entry.Profile.Bio,
			&entry.Profile.IsVerified,
			&entry.UserEmail,
			&entry.UserName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan profile: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, total, rows.Err()
}
