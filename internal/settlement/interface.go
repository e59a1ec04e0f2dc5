package settlement

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/model"
)

// IEngine applies an admin decision to a pending record and, on approval,
// moves the money on the owner's balance in the same transaction.
type IEngine interface {
	// SettleWithdrawal debits amount + fee snapshot on approval.
	SettleWithdrawal(ctx context.Context, id uint, adminID uint, action funds.Action, notes string) (*model.WithdrawalRequest, error)

	// SettleDeposit credits creditedAmount on approval, or the submitted
	// amount when creditedAmount is nil.
	SettleDeposit(ctx context.Context, id uint, adminID uint, action funds.Action, creditedAmount *decimal.Decimal, notes string) (*model.DepositRecord, error)
}
