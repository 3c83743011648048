package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialmedia/internal/domain"
	"socialmedia/internal/repository"
)

func TestUsersQuery(t *testing.T) {
	q, err := Users.Query(" bob ", map[string]string{"is_admin": "true", "email": "bob@example.com"}, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, "bob", q.Search)
	assert.Equal(t, []string{"name", "email"}, q.SearchFields)
	assert.Equal(t, map[string]string{"is_admin": "true", "email": "bob@example.com"}, q.Filters)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 5, q.Offset)

	q, err = Users.Query("", nil, 0, 0)
	require.NoError(t, err)
	assert.Nil(t, q.Filters)
}

func TestQueryRejectsUnknownFilters(t *testing.T) {
	_, err := Users.Query("", map[string]string{"password_hash": "x"}, 0, 0)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = Users.Query("", map[string]string{"is_verified": "true"}, 0, 0)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = Profiles.Query("", map[string]string{"email": "x"}, 0, 0)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = Users.Query("", map[string]string{"is_active": "sometimes"}, 0, 0)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestProfilesQuery(t *testing.T) {
	q, err := Profiles.Query("ann", map[string]string{"user.email": "ann@example.com", "is_verified": "0"}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"user.name", "user.email"}, q.SearchFields)
	assert.Len(t, q.Filters, 2)
}

func TestRows(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	row := Users.Row(UserValues(domain.User{
		Email:     "ann@example.com",
		Name:      "ann",
		Avatar:    "AN",
		IsActive:  true,
		CreatedAt: created,
	}))
	assert.Equal(t, []any{"ann@example.com", "ann", "AN", true, false, created}, row)

	row = Profiles.Row(ProfileValues(repository.ProfileEntry{
		Profile:   domain.Profile{Avatar: "AN"},
		UserEmail: "ann@example.com",
	}))
	assert.Equal(t, []any{"AN", "ann@example.com"}, row)

	assert.Equal(t, []any{nil}, Listing{Display: []string{"missing"}}.Row(nil))
}
