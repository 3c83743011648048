package gormstore

import (
	"time"

	"socialmedia/internal/domain"
)

// Timestamps are set by domain.User.PrepareSave, not by gorm.
type userModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	Name         string    `gorm:"size:255;not null;index"`
	PasswordHash string    `gorm:"size:255;not null"`
	IsActive     bool      `gorm:"not null"`
	IsAdmin      bool      `gorm:"not null"`
	Avatar       string    `gorm:"size:100;not null"`
	Bio          string    `gorm:"size:200;not null"`
	CreatedAt    time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"not null;index;autoUpdateTime:false"`
}

func (userModel) TableName() string { return "users" }

type profileModel struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	UserID     int64      `gorm:"not null;uniqueIndex"`
	User       *userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FullName   string     `gorm:"size:1500;not null"`
	Avatar     string     `gorm:"size:2;not null"`
	Bio        string     `gorm:"size:200;not null"`
	IsVerified bool       `gorm:"not null;index"`
}

func (profileModel) TableName() string { return "profiles" }

// profileRow is a profile joined with its owner for listings.
type profileRow struct {
	ID         int64
	UserID     int64
	FullName   string
	Avatar     string
	Bio        string
	IsVerified bool
	UserEmail  string
	UserName   string
}

var userUpdateColumns = []string{"email", "name", "password_hash", "is_active", "is_admin", "avatar", "bio", "updated_at"}

var profileUpdateColumns = []string{"full_name", "avatar", "bio", "is_verified"}

func toUserModel(u *domain.User) *userModel {
	return &userModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsAdmin:      u.IsAdmin,
		Avatar:       u.Avatar,
		Bio:          u.Bio,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		IsAdmin:      m.IsAdmin,
		Avatar:       m.Avatar,
		Bio:          m.Bio,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toProfileModel(p *domain.Profile) *profileModel {
	return &profileModel{
		ID:         p.ID,
		UserID:     p.UserID,
		FullName:   p.FullName,
		Avatar:     p.Avatar,
		Bio:        p.Bio,
		IsVerified: p.IsVerified,
	}
}

func (m *profileModel) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:         m.ID,
		UserID:     m.UserID,
		FullName:   m.FullName,
		Avatar:     m.Avatar,
		Bio:        m.Bio,
		IsVerified: m.IsVerified,
	}
}
