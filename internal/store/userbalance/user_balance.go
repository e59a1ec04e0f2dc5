package userbalance

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwarvesf/funds-backend/internal/model"
)

type store struct{}

func New() IStore {
	return &store{}
}

func (s *store) GetBalance(tx *gorm.DB, userID uint) (decimal.Decimal, error) {
	var row model.UserBalance
	err := tx.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return row.Balance, nil
}

func (s *store) LockForUpdate(tx *gorm.DB, userID uint) (*model.UserBalance, error) {
	seed := model.UserBalance{UserID: userID, Balance: decimal.Zero, UpdatedAt: time.Now()}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}

	var row model.UserBalance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *store) ApplyDelta(tx *gorm.DB, userID uint, delta decimal.Decimal) (decimal.Decimal, error) {
	row, err := s.LockForUpdate(tx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	newBalance := row.Balance.Add(delta)
	if newBalance.IsNegative() {
		return row.Balance, ErrNegativeBalance
	}

	err = tx.Model(&model.UserBalance{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    newBalance,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return row.Balance, err
	}
	return newBalance, nil
}
