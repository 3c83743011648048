package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxEmailLength      = 255
	MaxNameLength       = 255
	MaxUserAvatarLength = 100
	MaxBioLength        = 200
)

// User represents an account holder. Email is the login identity.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	Avatar       string
	Bio          string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser returns a user with the default status flags set.
func NewUser(email, name string) *User {
	return &User{
		Email:    email,
		Name:     name,
		IsActive: true,
	}
}

// DeriveAvatar returns the first two characters of name upper-cased, or the
// whole name upper-cased when it is shorter than that.
func DeriveAvatar(name string) string {
	if utf8.RuneCountInString(name) >= 2 {
		runes := []rune(name)
		return strings.ToUpper(string(runes[:2]))
	}
	return strings.ToUpper(name)
}

// PrepareSave applies the user save contract and must run before every write.
// The avatar is only derived while empty; a later rename leaves it untouched.
func (u *User) PrepareSave(now time.Time) {
	if u.Avatar == "" {
		u.Avatar = DeriveAvatar(u.Name)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// Validate checks the required email and the stored field bounds.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return &ValidationError{Field: "email", Message: "user must have an email address"}
	}
	if err := checkLength("email", u.Email, MaxEmailLength); err != nil {
		return err
	}
	if err := checkLength("name", u.Name, MaxNameLength); err != nil {
		return err
	}
	if err := checkLength("avatar", u.Avatar, MaxUserAvatarLength); err != nil {
		return err
	}
	return checkLength("bio", u.Bio, MaxBioLength)
}

func (u *User) FullName() string {
	return u.Name
}

// HasModulePermission reports whether the user may view the admin listing of
// appLabel. Every user may.
func (u *User) HasModulePermission(appLabel string) bool {
	return true
}

func (u *User) IsStaff() bool {
	return u.IsAdmin
}

// NormalizeEmail trims the address and lower-cases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
