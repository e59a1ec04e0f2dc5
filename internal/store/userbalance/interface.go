package userbalance

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/model"
)

var ErrNegativeBalance = errors.New("balance would become negative")

type IStore interface {
	// GetBalance reads the balance without locking; zero for users without a row.
	GetBalance(tx *gorm.DB, userID uint) (decimal.Decimal, error)

	// LockForUpdate makes sure the user's row exists and holds it with
	// SELECT ... FOR UPDATE until tx ends.
	LockForUpdate(tx *gorm.DB, userID uint) (*model.UserBalance, error)

	// ApplyDelta locks the row, adds delta and writes the result back,
	// returning the new balance. It refuses to go below zero.
	ApplyDelta(tx *gorm.DB, userID uint, delta decimal.Decimal) (decimal.Decimal, error)
}
