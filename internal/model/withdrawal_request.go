package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalRequest struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"column:user_id;not null;index"`
	PlatformID     uint            `json:"platform_id" gorm:"column:platform_id;not null;index"`
	Amount         decimal.Decimal `json:"amount" gorm:"column:amount;type:numeric(36,18);not null"`
	Fee            decimal.Decimal `json:"fee" gorm:"column:fee;type:numeric(36,18);not null;default:0"`
	AccountDetails string          `json:"account_details" gorm:"column:account_details;type:text;not null"`
	Message        string          `json:"message,omitempty" gorm:"column:message;type:text"`
	Adjudication
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

// TotalDebit is what approval takes from the ledger: the amount plus the fee
// captured when the request was submitted.
func (w WithdrawalRequest) TotalDebit() decimal.Decimal {
	return w.Amount.Add(w.Fee)
}
