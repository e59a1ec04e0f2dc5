package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeMinAmount   = errors.New("min amount must not be negative")
	ErrMaxBelowMinAmount   = errors.New("max amount must not be lower than min amount")
	ErrNegativeFee         = errors.New("fee must not be negative")
	ErrPlatformNameMissing = errors.New("platform name is required")
	ErrPlatformSymbolEmpty = errors.New("platform symbol is required")
	ErrAmountPrecision     = errors.New("amounts support at most 18 decimal places")
)

// AmountScale is the number of fractional digits every numeric(36,18) amount column keeps.
const AmountScale int32 = 18

// FitsAmountScale reports whether d is stored without rounding.
func FitsAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(AmountScale))
}

// PlatformConstraints is the catalog snapshot a submission is validated against.
type PlatformConstraints struct {
	ID        uint
	Symbol    string
	Network   string
	MinAmount decimal.Decimal
	MaxAmount decimal.NullDecimal
	Fee       decimal.Decimal
	IsActive  bool
}

func (c PlatformConstraints) Validate() error {
	if !FitsAmountScale(c.MinAmount) || !FitsAmountScale(c.Fee) || (c.MaxAmount.Valid && !FitsAmountScale(c.MaxAmount.Decimal)) {
		return ErrAmountPrecision
	}
	if c.MinAmount.IsNegative() {
		return ErrNegativeMinAmount
	}
	if c.MaxAmount.Valid && c.MaxAmount.Decimal.LessThan(c.MinAmount) {
		return ErrMaxBelowMinAmount
	}
	if c.Fee.IsNegative() {
		return ErrNegativeFee
	}
	return nil
}

type WithdrawalPlatform struct {
	ID        uint                `json:"id" gorm:"primaryKey"`
	Name      string              `json:"name" gorm:"column:name;type:varchar(100);not null"`
	Symbol    string              `json:"symbol" gorm:"column:symbol;type:varchar(20);not null"`
	Network   string              `json:"network,omitempty" gorm:"column:network;type:varchar(50)"`
	MinAmount decimal.Decimal     `json:"min_amount" gorm:"column:min_amount;type:numeric(36,18);not null;default:0"`
	MaxAmount decimal.NullDecimal `json:"max_amount" gorm:"column:max_amount;type:numeric(36,18)"`
	Fee       decimal.Decimal     `json:"fee" gorm:"column:fee;type:numeric(36,18);not null;default:0"`
	Icon      string              `json:"icon,omitempty" gorm:"column:icon;type:varchar(255)"`
	IsActive  bool                `json:"is_active" gorm:"column:is_active;not null"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (WithdrawalPlatform) TableName() string {
	return "withdrawal_platforms"
}

func (p WithdrawalPlatform) Constraints() PlatformConstraints {
	return PlatformConstraints{
		ID:        p.ID,
		Symbol:    p.Symbol,
		Network:   p.Network,
		MinAmount: p.MinAmount,
		MaxAmount: p.MaxAmount,
		Fee:       p.Fee,
		IsActive:  p.IsActive,
	}
}

func (p WithdrawalPlatform) Validate() error {
	if p.Name == "" {
		return ErrPlatformNameMissing
	}
	if p.Symbol == "" {
		return ErrPlatformSymbolEmpty
	}
	return p.Constraints().Validate()
}

type DepositPlatform struct {
	ID        uint                `json:"id" gorm:"primaryKey"`
	Name      string              `json:"name" gorm:"column:name;type:varchar(100);not null"`
	Symbol    string              `json:"symbol" gorm:"column:symbol;type:varchar(20);not null"`
	Network   string              `json:"network,omitempty" gorm:"column:network;type:varchar(50)"`
	MinAmount decimal.Decimal     `json:"min_amount" gorm:"column:min_amount;type:numeric(36,18);not null;default:0"`
	MaxAmount decimal.NullDecimal `json:"max_amount" gorm:"column:max_amount;type:numeric(36,18)"`
	Address   string              `json:"address,omitempty" gorm:"column:address;type:varchar(255)"`
	QRCodeURL string              `json:"qr_code_url,omitempty" gorm:"column:qr_code_url;type:varchar(500)"`
	Icon      string              `json:"icon,omitempty" gorm:"column:icon;type:varchar(255)"`
	IsActive  bool                `json:"is_active" gorm:"column:is_active;not null"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (DepositPlatform) TableName() string {
	return "deposit_platforms"
}

// Constraints for a deposit platform never carry a fee.
func (p DepositPlatform) Constraints() PlatformConstraints {
	return PlatformConstraints{
		ID:        p.ID,
		Symbol:    p.Symbol,
		Network:   p.Network,
		MinAmount: p.MinAmount,
		MaxAmount: p.MaxAmount,
		Fee:       decimal.Zero,
		IsActive:  p.IsActive,
	}
}

func (p DepositPlatform) Validate() error {
	if p.Name == "" {
		return ErrPlatformNameMissing
	}
	if p.Symbol == "" {
		return ErrPlatformSymbolEmpty
	}
	return p.Constraints().Validate()
}
