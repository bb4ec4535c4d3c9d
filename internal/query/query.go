// Package query builds bounded, user-scoped list queries from request
// filters. Every scope it produces includes the owning user's predicate,
// so a handler cannot accidentally leak another user's rows by forgetting
// a WHERE clause.
package query

import (
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Pagination defaults. Malformed or missing page/limit values degrade to
// these instead of failing the request.
const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 500
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ParsePage builds a PageRequest from raw query-string values, falling
// back to defaults for anything empty, non-numeric, or out of range.
func ParsePage(pageStr, limitStr string) PageRequest {
	return PageRequest{
		Page:  Atoi(pageStr, DefaultPage),
		Limit: min(Atoi(limitStr, DefaultLimit), MaxLimit),
	}
}

// Atoi parses s as a positive integer, returning def when s is empty,
// malformed, or less than one.
func Atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// Offset returns the SQL OFFSET for the current page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrDefaults fills in missing or out-of-range page values so services
// can accept a zero-value PageRequest.
func (p PageRequest) OrDefaults() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// PageResponse wraps a paginated list of items with metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse creates a PageResponse from the given data and total count.
func NewPageResponse[T any](data []T, page PageRequest, totalItems int64) PageResponse[T] {
	totalPages := int(math.Ceil(float64(totalItems) / float64(page.Limit)))
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(page PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Limit)
	}
}

// Params describes one filtered fetch against a single table. Column
// names (Equals keys, SearchColumns, DateColumn, Order) are supplied by
// the services, never taken from request input.
type Params struct {
	// UserID scopes every query to its owner. Required.
	UserID string

	// DateColumn is the column the date range applies to, "date" when empty.
	DateColumn string
	StartDate  *time.Time
	EndDate    *time.Time

	// Search is matched case-insensitively as a substring against each
	// of SearchColumns, OR-ed together.
	Search        string
	SearchColumns []string

	// Equals holds exact-match column filters. Nil-valued and empty-string
	// entries are skipped so "filter not supplied" needs no special casing
	// at the call site.
	Equals map[string]any

	// Order is a raw ORDER BY expression, e.g. "date DESC". Empty means
	// the database's natural order.
	Order string
}

// Scope converts the params into a GORM scope. Every predicate is
// combined with AND; the search term alone expands to an OR across its
// columns.
func (p Params) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", p.UserID)

		for column, value := range p.Equals {
			if value == nil {
				continue
			}
			if s, ok := value.(string); ok && s == "" {
				continue
			}
			db = db.Where(column+" = ?", value)
		}

		dateColumn := p.DateColumn
		if dateColumn == "" {
			dateColumn = "date"
		}
		if p.StartDate != nil {
			db = db.Where(dateColumn+" >= ?", *p.StartDate)
		}
		if p.EndDate != nil {
			db = db.Where(dateColumn+" <= ?", *p.EndDate)
		}

		if p.Search != "" && len(p.SearchColumns) > 0 {
			term := "%" + strings.ToLower(p.Search) + "%"
			clauses := make([]string, len(p.SearchColumns))
			args := make([]interface{}, len(p.SearchColumns))
			for i, column := range p.SearchColumns {
				// LOWER() instead of ILIKE keeps the clause portable
				// between PostgreSQL and the SQLite test databases.
				clauses[i] = "LOWER(" + column + ") LIKE ?"
				args[i] = term
			}
			db = db.Where(strings.Join(clauses, " OR "), args...)
		}

		if p.Order != "" {
			db = db.Order(p.Order)
		}

		return db
	}
}
