package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositRecord struct {
	ID              uint                `json:"id" gorm:"primaryKey"`
	UserID          uint                `json:"user_id" gorm:"column:user_id;not null;index"`
	PlatformID      uint                `json:"platform_id" gorm:"column:platform_id;not null;index"`
	Amount          decimal.Decimal     `json:"amount" gorm:"column:amount;type:numeric(36,18);not null"`
	PlatformAccount string              `json:"platform_account" gorm:"column:platform_account;type:varchar(255);not null"`
	RealName        string              `json:"real_name,omitempty" gorm:"column:real_name;type:varchar(100)"`
	DepositTime     time.Time           `json:"deposit_time" gorm:"column:deposit_time;not null"`
	ScreenshotURL   string              `json:"screenshot_url,omitempty" gorm:"column:screenshot_url;type:varchar(500)"`
	UserMessage     string              `json:"user_message,omitempty" gorm:"column:user_message;type:text"`
	CreditedAmount  decimal.NullDecimal `json:"credited_amount" gorm:"column:credited_amount;type:numeric(36,18)"`
	Adjudication
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DepositRecord) TableName() string {
	return "deposit_records"
}
