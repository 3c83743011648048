// Package admin declares how account entities are listed, searched and
// filtered by staff.
package admin

import (
	"sort"
	"strings"

	"socialmedia/internal/domain"
	"socialmedia/internal/repository"
)

// Listing is the admin configuration of one entity.
type Listing struct {
	Entity       string
	Display      []string
	SearchFields []string
	Filters      []string
}

var Users = Listing{
	Entity:       "users",
	Display:      []string{"email", "name", "avatar", "is_active", "is_admin", "created_at"},
	SearchFields: []string{repository.FieldName, repository.FieldEmail},
	Filters:      []string{repository.FieldName, repository.FieldEmail, repository.FieldIsActive, repository.FieldIsAdmin},
}

var Profiles = Listing{
	Entity:       "profiles",
	Display:      []string{"avatar", "user"},
	SearchFields: []string{repository.FieldUserName, repository.FieldUserEmail},
	Filters:      []string{repository.FieldUserName, repository.FieldUserEmail, repository.FieldIsVerified},
}

// Query builds the repository query for a search term and filter parameters
// keyed by filter name. Parameters that are not declared filters are
// rejected.
func (l Listing) Query(search string, params map[string]string, limit, offset int) (repository.ListQuery, error) {
	query := repository.ListQuery{
		Search:       strings.TrimSpace(search),
		SearchFields: l.SearchFields,
		Limit:        limit,
		Offset:       offset,
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !l.filterable(k) {
			return repository.ListQuery{}, &domain.ValidationError{Field: k, Message: "unknown filter"}
		}
		if query.Filters == nil {
			query.Filters = make(map[string]string, len(params))
		}
		query.Filters[k] = params[k]
	}

	if err := query.Validate(l.fields()); err != nil {
		return repository.ListQuery{}, err
	}
	return query, nil
}

// Row orders values by the display columns. Missing values are nil.
func (l Listing) Row(values map[string]any) []any {
	row := make([]any, len(l.Display))
	for i, col := range l.Display {
		row[i] = values[col]
	}
	return row
}

func (l Listing) filterable(field string) bool {
	for _, f := range l.Filters {
		if f == field {
			return true
		}
	}
	return false
}

func (l Listing) fields() map[string]repository.FieldKind {
	if l.Entity == Profiles.Entity {
		return repository.ProfileFields
	}
	return repository.UserFields
}

// UserValues returns the listable columns of u.
func UserValues(u domain.User) map[string]any {
	return map[string]any{
		"email":      u.Email,
		"name":       u.Name,
		"avatar":     u.Avatar,
		"is_active":  u.IsActive,
		"is_admin":   u.IsAdmin,
		"created_at": u.CreatedAt,
	}
}

// ProfileValues returns the listable columns of e. A profile's user is shown
// by its email.
func ProfileValues(e repository.ProfileEntry) map[string]any {
	return map[string]any{
		"avatar": e.Profile.Avatar,
		"user":   e.UserEmail,
	}
}
