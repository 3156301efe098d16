// Package query holds the list/filter/paginate primitive shared by every list
// operation, and the change-set builder used by partial updates.
package query

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a normalised page request.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewParams applies the defaults and caps: page < 1 becomes 1, limit < 1
// becomes DefaultLimit, and limit above MaxLimit is capped.
func NewParams(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the number of rows skipped before this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one slice of a filtered list. Total counts every row matching the
// filters, independent of the slice.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// TotalPages returns how many pages of Limit rows cover Total.
func (p Page[T]) TotalPages() int {
	if p.Limit < 1 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// Equal adds "column = value" when value is non-nil.
func Equal[V any](db *gorm.DB, column string, value *V) *gorm.DB {
	if value == nil {
		return db
	}
	return db.Where(fmt.Sprintf("%s = ?", column), *value)
}

// Search adds a case-insensitive substring match of term against any of the
// columns. A blank term adds nothing.
func Search(db *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return db
	}

	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	conds := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		conds[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", col)
		args[i] = pattern
	}

	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// Between adds an inclusive range on column for whichever bounds are set.
func Between(db *gorm.DB, column string, from, to *time.Time) *gorm.DB {
	if from != nil {
		db = db.Where(fmt.Sprintf("%s >= ?", column), from.UTC())
	}
	if to != nil {
		db = db.Where(fmt.Sprintf("%s <= ?", column), to.UTC())
	}
	return db
}

// Paginate counts and fetches one page of T using the predicates already on db.
// Rows are ordered newest first, ties broken by id descending.
func Paginate[T any](db *gorm.DB, params Params) (Page[T], error) {
	params = NewParams(params.Page, params.Limit)
	result := Page[T]{
		Data:  []T{},
		Page:  params.Page,
		Limit: params.Limit,
	}

	base := db.Model(new(T)).Session(&gorm.Session{})

	if err := base.Count(&result.Total).Error; err != nil {
		return result, fmt.Errorf("failed to count rows: %w", err)
	}
	if result.Total == 0 {
		return result, nil
	}

	if err := base.
		Order("created_at DESC").
		Order("id DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&result.Data).Error; err != nil {
		return result, fmt.Errorf("failed to fetch rows: %w", err)
	}

	return result, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
