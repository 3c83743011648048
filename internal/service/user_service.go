package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"socialmedia/internal/domain"
	"socialmedia/internal/observability/metrics"
	"socialmedia/internal/password"
	"socialmedia/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// NewUser carries the input of CreateUser. A nil Password stores an unusable
// credential.
type NewUser struct {
	Email    string
	Name     string
	IsAdmin  bool
	Password *string
}

// UserUpdate lists the fields UpdateUser changes; nil fields are left alone.
// Setting Avatar to "" derives it again from the current name.
type UserUpdate struct {
	Name     *string
	Bio      *string
	Avatar   *string
	IsActive *bool
	IsAdmin  *bool
}

// Archiver stores a snapshot of an account before it is deleted.
type Archiver interface {
	Archive(ctx context.Context, user *domain.User, profile *domain.Profile) error
}

// UserService describes user lifecycle operations.
type UserService interface {
	CreateUser(ctx context.Context, in NewUser) (*domain.User, error)
	CreateSuperuser(ctx context.Context, in NewUser) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (*domain.User, error)
	SetPassword(ctx context.Context, id int64, plaintext *string) error
	Authenticate(ctx context.Context, email, plaintext string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, query repository.ListQuery) ([]domain.User, int, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	store    repository.Store
	hasher   password.Hasher
	sync     *ProfileSynchronizer
	archiver Archiver
	logger   logrus.FieldLogger
	metrics  *metrics.Metrics
}

// NewUserService wires the user service. archiver may be nil, in which case
// deletions are not archived.
func NewUserService(store repository.Store, hasher password.Hasher, archiver Archiver, logger logrus.FieldLogger, m *metrics.Metrics) UserService {
	return &userService{
		store:    store,
		hasher:   hasher,
		sync:     NewProfileSynchronizer(logger, m),
		archiver: archiver,
		logger:   logger,
		metrics:  m,
	}
}

// CreateUser stores a new user and its profile in one transaction.
func (s *userService) CreateUser(ctx context.Context, in NewUser) (*domain.User, error) {
	user := domain.NewUser(domain.NormalizeEmail(in.Email), in.Name)
	user.IsAdmin = in.IsAdmin
	if err := user.Validate(); err != nil {
		s.metrics.UserCreated("invalid")
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		s.metrics.UserCreated("error")
		return nil, err
	}
	user.PasswordHash = hash

	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		return s.sync.UserSaved(ctx, tx, user, true)
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			s.metrics.UserCreated("duplicate")
			return nil, fmt.Errorf("%w: %w", ErrUserAlreadyExists, err)
		}
		s.metrics.UserCreated("error")
		return nil, err
	}

	s.metrics.UserCreated("ok")
	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("user created")
	return sanitizeUser(user), nil
}

// CreateSuperuser creates the user and then saves it again as an admin.
func (s *userService) CreateSuperuser(ctx context.Context, in NewUser) (*domain.User, error) {
	created, err := s.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}

	isAdmin := true
	user, err := s.UpdateUser(ctx, created.ID, UserUpdate{IsAdmin: &isAdmin})
	if err != nil {
		return nil, err
	}
	s.logger.WithField("user_id", user.ID).Info("superuser created")
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, update UserUpdate) (*domain.User, error) {
	var out *domain.User
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		user, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if update.Name != nil {
			user.Name = *update.Name
		}
		if update.Bio != nil {
			user.Bio = *update.Bio
		}
		if update.Avatar != nil {
			user.Avatar = strings.TrimSpace(*update.Avatar)
		}
		if update.IsActive != nil {
			user.IsActive = *update.IsActive
		}
		if update.IsAdmin != nil {
			user.IsAdmin = *update.IsAdmin
		}
		if err := user.Validate(); err != nil {
			return err
		}
		if err := s.save(ctx, tx, user); err != nil {
			return err
		}
		out = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sanitizeUser(out), nil
}

func (s *userService) SetPassword(ctx context.Context, id int64, plaintext *string) error {
	hash, err := s.hashPassword(plaintext)
	if err != nil {
		return err
	}
	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		user, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		return s.save(ctx, tx, user)
	})
	if err != nil {
		return err
	}
	s.logger.WithField("user_id", id).Info("password changed")
	return nil
}

// Authenticate checks plaintext against the stored credential of the active
// user registered under email.
func (s *userService) Authenticate(ctx context.Context, email, plaintext string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		s.metrics.Login("invalid")
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.Login("invalid")
			return nil, ErrInvalidCredentials
		}
		s.metrics.Login("error")
		return nil, err
	}

	if !user.IsActive || !password.IsUsable(user.PasswordHash) || !s.hasher.Verify(plaintext, user.PasswordHash) {
		s.metrics.Login("invalid")
		return nil, ErrInvalidCredentials
	}

	s.metrics.Login("ok")
	return sanitizeUser(user), nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.store.Users().GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) ListUsers(ctx context.Context, query repository.ListQuery) ([]domain.User, int, error) {
	users, total, err := s.store.Users().List(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, total, nil
}

// DeleteUser removes the user and its profile, archiving both first when an
// archiver is configured. A failed archive keeps the account.
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		user, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if s.archiver != nil {
			profile, err := tx.Profiles().GetByUserID(ctx, id)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			if err := s.archiver.Archive(ctx, sanitizeUser(user), profile); err != nil {
				return fmt.Errorf("archive user %d: %w", id, err)
			}
		}

		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.WithField("user_id", id).Info("user deleted")
	return nil
}

// save writes an existing user and runs the profile synchronizer.
func (s *userService) save(ctx context.Context, tx repository.Tx, user *domain.User) error {
	if err := tx.Users().Update(ctx, user); err != nil {
		return err
	}
	return s.sync.UserSaved(ctx, tx, user, false)
}

func (s *userService) hashPassword(plaintext *string) (string, error) {
	if plaintext == nil {
		return password.Unusable(), nil
	}
	return s.hasher.Hash(*plaintext)
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone
}
