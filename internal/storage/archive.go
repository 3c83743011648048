package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"socialmedia/internal/domain"
)

const defaultKeyPrefix = "accounts"

// Snapshot is the archived form of a deleted account. It never contains the
// password credential.
type Snapshot struct {
	ArchivedAt time.Time        `json:"archived_at"`
	User       SnapshotUser     `json:"user"`
	Profile    *SnapshotProfile `json:"profile,omitempty"`
}

type SnapshotUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SnapshotProfile struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Avatar     string `json:"avatar"`
	Bio        string `json:"bio"`
	IsVerified bool   `json:"is_verified"`
}

// Archiver writes account snapshots under <prefix>/<user id>/<unix nanos>.json.
type Archiver struct {
	svc    Service
	bucket string
	prefix string
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewArchiver(svc Service, bucket, keyPrefix string, logger logrus.FieldLogger) *Archiver {
	prefix := strings.Trim(keyPrefix, "/")
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Archiver{
		svc:    svc,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (a *Archiver) Archive(ctx context.Context, user *domain.User, profile *domain.Profile) error {
	now := a.now()
	snap := Snapshot{
		ArchivedAt: now,
		User: SnapshotUser{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			IsActive:  user.IsActive,
			IsAdmin:   user.IsAdmin,
			Avatar:    user.Avatar,
			Bio:       user.Bio,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
	}
	if profile != nil {
		snap.Profile = &SnapshotProfile{
			ID:         profile.ID,
			FullName:   profile.FullName,
			Avatar:     profile.Avatar,
			Bio:        profile.Bio,
			IsVerified: profile.IsVerified,
		}
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	key := a.UserPrefix(user.ID) + strconv.FormatInt(now.UnixNano(), 10) + ".json"
	location, err := a.svc.PutObject(ctx, bytes.NewReader(body), PutOptions{
		Bucket:      a.bucket,
		Key:         key,
		ContentType: "application/json",
	})
	if err != nil {
		return err
	}

	a.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"location": location,
	}).Info("account archived")
	return nil
}

// List returns every stored snapshot object.
func (a *Archiver) List(ctx context.Context) ([]ObjectInfo, error) {
	return a.svc.ListObjects(ctx, a.bucket, a.prefix+"/")
}

// Purge removes all snapshots of userID.
func (a *Archiver) Purge(ctx context.Context, userID int64) error {
	if err := a.svc.DeletePrefix(ctx, a.bucket, a.UserPrefix(userID)); err != nil {
		return err
	}
	a.logger.WithField("user_id", userID).Info("account archives purged")
	return nil
}

// UserPrefix is the key prefix holding the snapshots of userID.
func (a *Archiver) UserPrefix(userID int64) string {
	return a.prefix + "/" + strconv.FormatInt(userID, 10) + "/"
}
