package repository

import (
	"sort"
	"strconv"
	"strings"

	"socialmedia/internal/domain"
)

// Field names accepted in ListQuery.SearchFields and ListQuery.Filters.
const (
	FieldEmail      = "email"
	FieldName       = "name"
	FieldIsActive   = "is_active"
	FieldIsAdmin    = "is_admin"
	FieldIsVerified = "is_verified"
	FieldUserEmail  = "user.email"
	FieldUserName   = "user.name"
)

// ListQuery selects a page of records. Search is matched as a case-insensitive
// substring against any of SearchFields; Filters are exact matches.
type ListQuery struct {
	Search       string
	SearchFields []string
	Filters      map[string]string
	Limit        int
	Offset       int
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// Page returns the effective limit and offset.
func (q ListQuery) Page() (limit, offset int) {
	limit = q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset = q.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type FieldKind int

const (
	TextField FieldKind = iota
	BoolField
)

// UserFields and ProfileFields list the searchable and filterable fields of
// each table.
var (
	UserFields = map[string]FieldKind{
		FieldEmail:    TextField,
		FieldName:     TextField,
		FieldIsActive: BoolField,
		FieldIsAdmin:  BoolField,
	}
	ProfileFields = map[string]FieldKind{
		FieldUserEmail:  TextField,
		FieldUserName:   TextField,
		FieldIsVerified: BoolField,
	}
)

// Validate checks the query against fields. Only text fields are searchable.
func (q ListQuery) Validate(fields map[string]FieldKind) error {
	for _, f := range q.SearchFields {
		kind, ok := fields[f]
		if !ok || kind != TextField {
			return &domain.ValidationError{Field: f, Message: "field is not searchable"}
		}
	}
	for f, raw := range q.Filters {
		kind, ok := fields[f]
		if !ok {
			return &domain.ValidationError{Field: f, Message: "field is not filterable"}
		}
		if _, err := FilterValue(f, kind, raw); err != nil {
			return err
		}
	}
	return nil
}

// FilterValue converts a raw filter value to the type stored for kind.
func FilterValue(field string, kind FieldKind, raw string) (any, error) {
	if kind == BoolField {
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, &domain.ValidationError{Field: field, Message: "must be true or false"}
		}
		return v, nil
	}
	return raw, nil
}

// Condition renders the search and filters of a validated query as a SQL
// boolean expression with positional placeholders. columns maps field names
// to qualified column expressions. An empty string means no condition.
func (q ListQuery) Condition(fields map[string]FieldKind, columns map[string]string) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if search := strings.TrimSpace(q.Search); search != "" && len(q.SearchFields) > 0 {
		pattern := likePattern(search)
		ors := make([]string, 0, len(q.SearchFields))
		for _, f := range q.SearchFields {
			ors = append(ors, "LOWER("+columns[f]+`) LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	keys := make([]string, 0, len(q.Filters))
	for f := range q.Filters {
		keys = append(keys, f)
	}
	sort.Strings(keys)
	for _, f := range keys {
		value, _ := FilterValue(f, fields[f], q.Filters[f])
		clauses = append(clauses, columns[f]+" = ?")
		args = append(args, value)
	}

	return strings.Join(clauses, " AND "), args
}

func likePattern(search string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(search))
	return "%" + escaped + "%"
}
