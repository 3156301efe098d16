package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/studyabroad/cms-api/utils/validation"
	"gorm.io/gorm"
)

// Failure kinds. Every business-rule failure returned by a service wraps one
// of these, so callers branch with errors.Is. A missing record is not an
// error: lookups return nil and deletes return false.
var (
	ErrValidation        = errors.New("validation failed")
	ErrReferenceNotFound = errors.New("referenced record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrDependency        = errors.New("record has dependents")
)

// ServiceError is a business-rule failure with a human readable message.
type ServiceError struct {
	Kind    error
	Message string
	// Fields maps input field names to messages for validation failures.
	Fields map[string]string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Kind
}

func newValidationError(err error) error {
	fields := validation.FormatValidationErrors(err)
	msg := err.Error()
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, m := range fields {
			parts = append(parts, m)
		}
		msg = strings.Join(sortedStrings(parts), "; ")
	}
	return &ServiceError{Kind: ErrValidation, Message: msg, Fields: fields}
}

func invalid(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func referenceNotFound(entity string, id uint) error {
	return &ServiceError{Kind: ErrReferenceNotFound, Message: fmt.Sprintf("%s with id %d not found", entity, id)}
}

func duplicate(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrDuplicate, Message: fmt.Sprintf(format, args...)}
}

func dependencyConflict(format string, args ...interface{}) error {
	return &ServiceError{Kind: ErrDependency, Message: fmt.Sprintf(format, args...)}
}

// isUniqueViolation recognises a unique-constraint failure from any of the
// supported drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
