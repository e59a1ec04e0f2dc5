package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserBalance is the ledger row for one forum user. Every mutation happens
// while the row is held with SELECT ... FOR UPDATE.
type UserBalance struct {
	UserID    uint            `json:"user_id" gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Balance   decimal.Decimal `json:"balance" gorm:"column:balance;type:numeric(36,18);not null;default:0"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (UserBalance) TableName() string {
	return "user_balances"
}
