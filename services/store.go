package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate row-locks the selected rows until the transaction ends.
// Only Postgres supports it; SQLite serialises writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// lockForShare keeps a referenced parent row from being deleted while a child
// referencing it is written.
func lockForShare(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "SHARE"})
	}
	return tx
}

// findOne returns the first row matching the conditions, or nil when none does.
func findOne[T any](db *gorm.DB, conds ...interface{}) (*T, error) {
	var row T
	if err := db.Take(&row, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func findByID[T any](db *gorm.DB, id uint) (*T, error) {
	return findOne[T](db, "id = ?", id)
}

// ensureExists fails with ErrReferenceNotFound unless a T with id exists.
func ensureExists[T any](tx *gorm.DB, entity string, id uint) error {
	var ids []uint
	if err := lockForShare(tx).Model(new(T)).Where("id = ?", id).Limit(1).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to look up %s: %w", entity, err)
	}
	if len(ids) == 0 {
		return referenceNotFound(entity, id)
	}
	return nil
}

// ensureUnique fails with ErrDuplicate when another T already has value in column.
func ensureUnique[T any](tx *gorm.DB, column string, value interface{}, excludeID uint, msg string) error {
	var count int64
	q := tx.Model(new(T)).Where(fmt.Sprintf("%s = ?", column), value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check %s uniqueness: %w", column, err)
	}
	if count > 0 {
		return duplicate("%s", msg)
	}
	return nil
}

// countWhere counts T rows whose column equals id.
func countWhere[T any](tx *gorm.DB, column string, id uint) (int64, error) {
	var count int64
	err := tx.Model(new(T)).Where(fmt.Sprintf("%s = ?", column), id).Count(&count).Error
	return count, err
}

// deleteByID physically removes the T with id and reports whether a row went away.
func deleteByID[T any](db *gorm.DB, id uint) (bool, error) {
	result := db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// now returns the current time from the connection's clock.
func now(db *gorm.DB) time.Time {
	return db.NowFunc()
}

// wrapWrite passes business-rule failures through, turns a unique-constraint
// violation that slipped past the pre-checks into ErrDuplicate, and wraps
// everything else.
func wrapWrite(err error, action, duplicateMsg string) error {
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	if isUniqueViolation(err) {
		return duplicate("%s", duplicateMsg)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
