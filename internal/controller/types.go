package controller

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/model"
)

type WithdrawalSubmission struct {
	PlatformID     uint
	Amount         decimal.Decimal
	AccountDetails string
	Message        string
}

type DepositSubmission struct {
	PlatformID      uint
	Amount          decimal.Decimal
	PlatformAccount string
	RealName        string
	DepositTime     time.Time
	ScreenshotURL   string
	UserMessage     string
}

type AdjudicationInput struct {
	Action funds.Action
	Notes  string
	// CreditedAmount overrides the credited sum of a deposit approval.
	// Ignored for withdrawals and rejections.
	CreditedAmount *decimal.Decimal
}

type ListQuery struct {
	UserID     uint
	PlatformID uint
	Status     model.RequestStatus
	Limit      int
	Offset     int
}

type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type BalanceView struct {
	UserID    uint            `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	Reserved  decimal.Decimal `json:"reserved"`
	Available decimal.Decimal `json:"available"`
}
