package controller

import (
	"context"

	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/model"
)

type IController interface {
	// SubmitWithdrawal validates against the platform and the caller's
	// available balance (balance minus pending withdrawals) and stores a
	// pending request. Nothing is debited until approval.
	SubmitWithdrawal(ctx context.Context, actor funds.Actor, in WithdrawalSubmission) (*model.WithdrawalRequest, error)

	// SubmitDeposit stores a pending deposit record claiming an off-platform transfer.
	SubmitDeposit(ctx context.Context, actor funds.Actor, in DepositSubmission) (*model.DepositRecord, error)

	// AdjudicateWithdrawal approves or rejects a pending withdrawal. Admin only.
	AdjudicateWithdrawal(ctx context.Context, actor funds.Actor, id uint, in AdjudicationInput) (*model.WithdrawalRequest, error)

	// AdjudicateDeposit approves or rejects a pending deposit, optionally
	// crediting a different amount than submitted. Admin only.
	AdjudicateDeposit(ctx context.Context, actor funds.Actor, id uint, in AdjudicationInput) (*model.DepositRecord, error)

	// CancelWithdrawal and CancelDeposit delete a record that is still
	// pending. Allowed for its owner and for admins.
	CancelWithdrawal(ctx context.Context, actor funds.Actor, id uint) error
	CancelDeposit(ctx context.Context, actor funds.Actor, id uint) error

	GetWithdrawal(ctx context.Context, actor funds.Actor, id uint) (*model.WithdrawalRequest, error)
	GetDeposit(ctx context.Context, actor funds.Actor, id uint) (*model.DepositRecord, error)

	// ListWithdrawals and ListDeposits only return the caller's own records
	// unless the caller is an admin.
	ListWithdrawals(ctx context.Context, actor funds.Actor, q ListQuery) (*Page[*model.WithdrawalRequest], error)
	ListDeposits(ctx context.Context, actor funds.Actor, q ListQuery) (*Page[*model.DepositRecord], error)

	GetBalance(ctx context.Context, actor funds.Actor) (*BalanceView, error)
}
