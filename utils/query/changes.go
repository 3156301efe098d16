package query

import (
	"time"

	"github.com/studyabroad/cms-api/utils/optional"
)

// Changes maps column names to the values a partial update writes.
type Changes map[string]interface{}

// SetField records column when f is present.
func SetField[T any](c Changes, column string, f optional.Field[T]) {
	if v, ok := f.Get(); ok {
		c[column] = v
	}
}

// SetNullable records column when n is present, writing NULL for an explicit null.
func SetNullable[T any](c Changes, column string, n optional.Nullable[T]) {
	if !n.IsSet() {
		return
	}
	if v, ok := n.Get(); ok {
		c[column] = v
		return
	}
	c[column] = nil
}

// Touch stamps updated_at. Every successful update calls it, even when no
// other column changed.
func (c Changes) Touch(now time.Time) Changes {
	c["updated_at"] = now
	return c
}

// Map returns c as the plain map type gorm's Updates expects.
func (c Changes) Map() map[string]interface{} {
	return map[string]interface{}(c)
}
