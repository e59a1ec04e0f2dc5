package platform

import (
	"github.com/shopspring/decimal"

	"github.com/dwarvesf/funds-backend/internal/handler/request"
	"github.com/dwarvesf/funds-backend/internal/model"
)

type limits struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Symbol    string  `json:"symbol" validate:"required,max=20"`
	Network   string  `json:"network" validate:"max=50"`
	MinAmount string  `json:"min_amount" validate:"omitempty,numeric"`
	MaxAmount *string `json:"max_amount" validate:"omitempty,numeric"`
	Icon      string  `json:"icon" validate:"max=255"`
	IsActive  *bool   `json:"is_active"`
}

type WithdrawalPlatformRequest struct {
	limits
	Fee string `json:"fee" validate:"omitempty,numeric"`
}

type DepositPlatformRequest struct {
	limits
	Address   string `json:"address" validate:"max=255"`
	QRCodeURL string `json:"qr_code_url" validate:"omitempty,url,max=500"`
}

type parsedLimits struct {
	min    decimal.Decimal
	max    decimal.NullDecimal
	active bool
}

func (l limits) parse() (parsedLimits, error) {
	minAmount, err := request.Decimal("min_amount", l.MinAmount)
	if err != nil {
		return parsedLimits{}, err
	}
	maxAmount, err := request.OptionalDecimal("max_amount", l.MaxAmount)
	if err != nil {
		return parsedLimits{}, err
	}

	out := parsedLimits{min: minAmount, active: true}
	if maxAmount != nil {
		out.max = decimal.NewNullDecimal(*maxAmount)
	}
	if l.IsActive != nil {
		out.active = *l.IsActive
	}
	return out, nil
}

func (r WithdrawalPlatformRequest) toModel(id uint) (*model.WithdrawalPlatform, error) {
	parsed, err := r.parse()
	if err != nil {
		return nil, err
	}
	fee, err := request.Decimal("fee", r.Fee)
	if err != nil {
		return nil, err
	}

	return &model.WithdrawalPlatform{
		ID:        id,
		Name:      r.Name,
		Symbol:    r.Symbol,
		Network:   r.Network,
		MinAmount: parsed.min,
		MaxAmount: parsed.max,
		Fee:       fee,
		Icon:      r.Icon,
		IsActive:  parsed.active,
	}, nil
}

func (r DepositPlatformRequest) toModel(id uint) (*model.DepositPlatform, error) {
	parsed, err := r.parse()
	if err != nil {
		return nil, err
	}

	return &model.DepositPlatform{
		ID:        id,
		Name:      r.Name,
		Symbol:    r.Symbol,
		Network:   r.Network,
		MinAmount: parsed.min,
		MaxAmount: parsed.max,
		Address:   r.Address,
		QRCodeURL: r.QRCodeURL,
		Icon:      r.Icon,
		IsActive:  parsed.active,
	}, nil
}
