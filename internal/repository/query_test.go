package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialmedia/internal/domain"
)

func TestListQueryPage(t *testing.T) {
	limit, offset := ListQuery{}.Page()
	assert.Equal(t, DefaultListLimit, limit)
	assert.Zero(t, offset)

	limit, offset = ListQuery{Limit: 5000, Offset: -3}.Page()
	assert.Equal(t, MaxListLimit, limit)
	assert.Zero(t, offset)

	limit, offset = ListQuery{Limit: 10, Offset: 20}.Page()
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)
}

func TestListQueryValidate(t *testing.T) {
	require.NoError(t, ListQuery{
		SearchFields: []string{FieldName, FieldEmail},
		Filters:      map[string]string{FieldIsAdmin: "false", FieldEmail: "a@b.c"},
	}.Validate(UserFields))

	err := ListQuery{SearchFields: []string{FieldIsAdmin}}.Validate(UserFields)
	require.ErrorIs(t, err, domain.ErrValidation)

	err = ListQuery{Filters: map[string]string{FieldUserEmail: "x"}}.Validate(UserFields)
	require.ErrorIs(t, err, domain.ErrValidation)

	err = ListQuery{Filters: map[string]string{FieldIsVerified: "yes"}}.Validate(ProfileFields)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestListQueryCondition(t *testing.T) {
	columns := map[string]string{
		FieldEmail:   "u.email",
		FieldName:    "u.name",
		FieldIsAdmin: "u.is_admin",
	}

	cond, args := ListQuery{}.Condition(UserFields, columns)
	assert.Empty(t, cond)
	assert.Empty(t, args)

	cond, args = ListQuery{
		Search:       " Ab_c ",
		SearchFields: []string{FieldName, FieldEmail},
		Filters:      map[string]string{FieldIsAdmin: "true", FieldEmail: "x@y.z"},
	}.Condition(UserFields, columns)

	assert.Equal(t,
		`(LOWER(u.name) LIKE ? ESCAPE '\' OR LOWER(u.email) LIKE ? ESCAPE '\') AND u.email = ? AND u.is_admin = ?`,
		cond)
	assert.Equal(t, []any{`%ab\_c%`, `%ab\_c%`, "x@y.z", true}, args)
}
