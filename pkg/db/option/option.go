// Package option translates request query parameters into gorm query clauses.
package option

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	DefaultSort  = "created_at"
	DefaultOrder = "desc"
)

type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type queryOptionFunc func(*gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(stmt *gorm.DB) *gorm.DB { return f(stmt) }

// WithFilter adds an equality predicate on a single column.
func WithFilter(column string, value any) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		return stmt.Where(fmt.Sprintf("%s = ?", column), value)
	})
}

// WithWhere adds a raw predicate for clauses the helpers above cannot
// express, such as ownership subqueries.
func WithWhere(query string, args ...any) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		return stmt.Where(query, args...)
	})
}

// WithSearch adds a case-insensitive substring match OR-ed across columns.
// An empty term or empty column set is a no-op.
func WithSearch(term string, columns ...string) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return stmt
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, column := range columns {
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", column))
			args = append(args, pattern)
		}
		return stmt.Where("("+strings.Join(clauses, " OR ")+")", args...)
	})
}

// WithSortBy orders by one allow-listed field; unknown fields and directions
// fall back to created_at desc.
func WithSortBy(sortBy, orderBy string, allowed map[string]bool) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		field := strings.TrimSpace(strings.ToLower(sortBy))
		if field == "" || !allowed[field] {
			field = DefaultSort
		}
		direction := strings.TrimSpace(strings.ToLower(orderBy))
		if direction != "asc" && direction != "desc" {
			direction = DefaultOrder
		}
		return stmt.Order(field + " " + direction)
	})
}

// WithPage applies offset pagination: skip = (page-1) * limit.
func WithPage(page, limit int) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		if page < 1 {
			page = DefaultPage
		}
		if limit < 1 {
			limit = DefaultLimit
		}
		return stmt.Offset((page - 1) * limit).Limit(limit)
	})
}

// WithPreload expands the named relationships on the read side.
func WithPreload(associations ...string) QueryOption {
	return queryOptionFunc(func(stmt *gorm.DB) *gorm.DB {
		for _, association := range associations {
			stmt = stmt.Preload(association)
		}
		return stmt
	})
}

// ParsePage parses a page query value, falling back to the default on
// non-numeric or out-of-range input.
func ParsePage(raw string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || parsed < 1 {
		return DefaultPage
	}
	return parsed
}

// ParseLimit parses a limit query value with the same non-throwing fallback.
func ParseLimit(raw string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || parsed < 1 {
		return DefaultLimit
	}
	return parsed
}
