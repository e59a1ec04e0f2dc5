package funds

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dwarvesf/funds-backend/internal/model"
)

// ValidateSubmission checks an amount against a platform snapshot. balance is
// the spendable balance for withdrawals and nil for deposits; when present the
// platform fee must be covered as well. It has no side effects and reserves
// nothing.
func ValidateSubmission(p model.PlatformConstraints, amount decimal.Decimal, balance *decimal.Decimal) error {
	if !p.IsActive {
		return ErrPlatformInactive
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !model.FitsAmountScale(amount) {
		return ErrAmountPrecision
	}
	if amount.LessThan(p.MinAmount) {
		return ErrAmountBelowMinimum.WithMessage(fmt.Sprintf("amount must be at least %s %s", p.MinAmount.String(), p.Symbol))
	}
	if p.MaxAmount.Valid && amount.GreaterThan(p.MaxAmount.Decimal) {
		return ErrAmountAboveMaximum.WithMessage(fmt.Sprintf("amount must be at most %s %s", p.MaxAmount.Decimal.String(), p.Symbol))
	}
	if balance != nil {
		totalRequired := amount.Add(p.Fee)
		if balance.LessThan(totalRequired) {
			return ErrInsufficientBalance.WithMessage(fmt.Sprintf("insufficient balance: %s required including fee, %s available", totalRequired.String(), balance.String()))
		}
	}
	return nil
}

func ValidateWithdrawalPayload(accountDetails string) error {
	if strings.TrimSpace(accountDetails) == "" {
		return missingField("account_details")
	}
	return nil
}

func ValidateDepositPayload(platformAccount string, depositTime time.Time) error {
	if strings.TrimSpace(platformAccount) == "" {
		return missingField("platform_account")
	}
	if depositTime.IsZero() {
		return missingField("deposit_time")
	}
	return nil
}

func missingField(name string) *Error {
	return ErrMissingRequiredField.WithMessage(fmt.Sprintf("%s is required", name))
}
