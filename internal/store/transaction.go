package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DoInTx runs fn inside a database transaction bound to ctx. A returned error
// or a panic rolls the transaction back; cancelling ctx before commit does too.
func DoInTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) (err error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = errors.Errorf("transaction panicked: %v", r)
		}
	}()

	if err = fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
