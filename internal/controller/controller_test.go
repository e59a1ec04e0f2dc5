package controller

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/catalog"
	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/model"
	"github.com/dwarvesf/funds-backend/internal/monitoring"
	"github.com/dwarvesf/funds-backend/internal/settlement"
	"github.com/dwarvesf/funds-backend/internal/store"
	"github.com/dwarvesf/funds-backend/internal/store/storetest"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

var (
	alice = funds.Actor{ID: 21}
	bob   = funds.Actor{ID: 22}
	admin = funds.Actor{ID: 1, IsAdmin: true}
)

type fixture struct {
	ctx        context.Context
	db         *gorm.DB
	store      *store.Store
	ctrl       IController
	withdrawal *model.WithdrawalPlatform
	deposit    *model.DepositPlatform
}

func newFixture(t *testing.T) *fixture {
	db := storetest.NewDB(t)
	s := store.New()
	l := logger.NewNop()
	metrics := monitoring.NewFundsMetrics()
	cat := catalog.New(db, s, time.Minute, metrics, l)
	engine := settlement.New(db, s, metrics, l, 5*time.Second)

	ctx := context.Background()
	wp, err := cat.CreateWithdrawalPlatform(ctx, &model.WithdrawalPlatform{
		Name:      "USDT TRC20",
		Symbol:    "USDT",
		Network:   "TRC20",
		MinAmount: decimal.NewFromInt(10),
		MaxAmount: decimal.NewNullDecimal(decimal.NewFromInt(1000)),
		Fee:       decimal.NewFromInt(1),
		IsActive:  true,
	})
	require.NoError(t, err)
	dp, err := cat.CreateDepositPlatform(ctx, &model.DepositPlatform{
		Name:      "Alipay",
		Symbol:    "CNY",
		MinAmount: decimal.NewFromInt(10),
		IsActive:  true,
	})
	require.NoError(t, err)

	return &fixture{
		ctx:        ctx,
		db:         db,
		store:      s,
		ctrl:       New(db, s, cat, engine, metrics, l),
		withdrawal: wp,
		deposit:    dp,
	}
}

func (f *fixture) seed(t *testing.T, user uint, amount int64) {
	_, err := f.store.UserBalance.ApplyDelta(f.db, user, decimal.NewFromInt(amount))
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, user uint) decimal.Decimal {
	b, err := f.store.UserBalance.GetBalance(f.db, user)
	require.NoError(t, err)
	return b
}

func (f *fixture) withdraw(amount int64) WithdrawalSubmission {
	return WithdrawalSubmission{
		PlatformID:     f.withdrawal.ID,
		Amount:         decimal.NewFromInt(amount),
		AccountDetails: "TQn9Y2khEsLJW1ChVWFMSMeRDow5KcbLSE",
	}
}

func (f *fixture) depositOf(amount int64) DepositSubmission {
	return DepositSubmission{
		PlatformID:      f.deposit.ID,
		Amount:          decimal.NewFromInt(amount),
		PlatformAccount: "alice@alipay",
		DepositTime:     time.Now().Add(-time.Hour),
	}
}

func TestSubmitWithdrawal_BalanceMustCoverFee(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice.ID, 100)

	_, err := f.ctrl.SubmitWithdrawal(f.ctx, alice, f.withdraw(100))
	assert.ErrorIs(t, err, funds.ErrInsufficientBalance)

	page, err := f.ctrl.ListWithdrawals(f.ctx, alice, ListQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestSubmitWithdrawal_StoresPendingRequestWithFeeSnapshot(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice.ID, 200)

	request, err := f.ctrl.SubmitWithdrawal(f.ctx, alice, f.withdraw(100))
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, request.Status)
	assert.True(t, request.Fee.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, alice.ID, request.UserID)

	// submission reserves but never debits
	assert.True(t, f.balance(t, alice.ID).Equal(decimal.NewFromInt(200)))
}

func TestSubmitWithdrawal_PendingRequestsCannotOvercommit(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice.ID, 200)

	_, err := f.ctrl.SubmitWithdrawal(f.ctx, alice, f.withdraw(100))
	require.NoError(t, err)

	_, err = f.ctrl.SubmitWithdrawal(f.ctx, alice, f.withdraw(100))
	assert.ErrorIs(t, err, funds.ErrInsufficientBalance)

	_, err = f.ctrl.SubmitWithdrawal(f.ctx, alice, f.withdraw(98))
	require.NoError(t, err)

	view, err := f.ctrl.GetBalance(f.ctx, alice)
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(decimal.NewFromInt(200)))
	assert.True(t, view.Reserved.Equal(decimal.NewFromInt(200)))
	assert.True(t, view.Available.IsZero())
}

func TestSubmitWithdrawal_Validation(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice.ID, 5000)

	tests := []struct {
		name    string
		mutate  func(in *WithdrawalSubmission)
		wantErr error
		wantMsg string
	}{
		{"below minimum", func(in *WithdrawalSubmission) { in.Amount = decimal.NewFromInt(5) }, funds.ErrAmountBelowMinimum, "amount must be at least 10 USDT"},
		{"above maximum", func(in *WithdrawalSubmission) { in.Amount = decimal.NewFromInt(1001) }, funds.ErrAmountAboveMaximum, ""},
		{"zero amount", func(in *WithdrawalSubmission) { in.Amount = decimal.Zero }, funds.ErrInvalidAmount, ""},
		{"no account details", func(in *WithdrawalSubmission) { in.AccountDetails = " " }, funds.ErrMissingRequiredField, "account_details is required"},
		{"unknown platform", func(in *WithdrawalSubmission) { in.PlatformID = 999 }, funds.ErrPlatformNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.withdraw(50)
			tt.mutate(&in)
			_, err := f.ctrl.SubmitWithdrawal(f.ctx, alice, in)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestSubmitDeposit(t *testing.T) {
	f := newFixture(t)

	record, err := f.ctrl.SubmitDeposit(f.ctx, alice, f.depositOf(50))
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, record.Status)
	assert.False(t, record.CreditedAmount.Valid)

	in := f.depositOf(50)
	in.PlatformAccount = ""
	_, err = f.ctrl.SubmitDeposit(f.ctx, alice, in)
	assert.ErrorIs(t, err, funds.ErrMissingRequiredField)

	in = f.depositOf(50)
	in.DepositTime = time.Time{}
	_, err = f.ctrl.SubmitDeposit(f.ctx, alice, in)
	assert.ErrorIs(t, err, funds.ErrMissingRequiredField)

	_, err = f.ctrl.SubmitDeposit(f.ctx, funds.Actor{}, f.depositOf(50))
	assert.ErrorIs(t, err, funds.ErrForbidden)
}

func TestSubmitDeposit_InactivePlatform(t *testing.T) {
	f := newFixture(t)
	f.deposit.IsActive = false
	require.NoError(t, f.db.Save(f.deposit).Error)

	_, err := f.ctrl.SubmitDeposit(f.ctx, alice, f.depositOf(50))
	assert.ErrorIs(t, err, funds.ErrPlatformInactive)
}

func TestAdjudicateDeposit(t *testing.T) {
	f := newFixture(t)
	record, err := f.ctrl.SubmitDeposit(f.ctx, alice, f.depositOf(50))
	require.NoError(t, err)

	credited := decimal.NewFromInt(45)
	in := AdjudicationInput{Action: funds.ActionApprove, Notes: "fee adjustment", CreditedAmount: &credited}

	_, err = f.ctrl.AdjudicateDeposit(f.ctx, alice, record.ID, in)
	assert.ErrorIs(t, err, funds.ErrForbidden)

	settled, err := f.ctrl.AdjudicateDeposit(f.ctx, admin, record.ID, in)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusApproved, settled.Status)
	assert.True(t, settled.CreditedAmount.Decimal.Equal(credited))
	assert.True(t, f.balance(t, alice.ID).Equal(credited))

	_, err = f.ctrl.AdjudicateDeposit(f.ctx, admin, record.ID, AdjudicationInput{Action: funds.ActionReject, Notes: "late"})
	assert.ErrorIs(t, err, funds.ErrAlreadyProcessed)
	assert.True(t, f.balance(t, alice.ID).Equal(credited))
}

func TestAdjudicateWithdrawal(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice.ID, 200)
	request, err := f.ctrl.SubmitWithdrawal(f.ctx, alice, f.withdraw(100))
	require.NoError(t, err)

	settled, err := f.ctrl.AdjudicateWithdrawal(f.ctx, admin, request.ID, AdjudicationInput{Action: funds.ActionApprove})
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusApproved, settled.Status)

	view, err := f.ctrl.GetBalance(f.ctx, alice)
	require.NoError(t, err)
	assert.True(t, view.Balance.Equal(decimal.NewFromInt(99)))
	assert.True(t, view.Reserved.IsZero())
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	f.seed(t, alice.ID, 500)

	own, err := f.ctrl.SubmitWithdrawal(f.ctx, alice, f.withdraw(50))
	require.NoError(t, err)
	assert.ErrorIs(t, f.ctrl.CancelWithdrawal(f.ctx, bob, own.ID), funds.ErrForbidden)
	require.NoError(t, f.ctrl.CancelWithdrawal(f.ctx, alice, own.ID))
	_, err = f.ctrl.GetWithdrawal(f.ctx, alice, own.ID)
	assert.ErrorIs(t, err, funds.ErrRequestNotFound)

	approved, err := f.ctrl.SubmitWithdrawal(f.ctx, alice, f.withdraw(50))
	require.NoError(t, err)
	_, err = f.ctrl.AdjudicateWithdrawal(f.ctx, admin, approved.ID, AdjudicationInput{Action: funds.ActionApprove})
	require.NoError(t, err)
	assert.ErrorIs(t, f.ctrl.CancelWithdrawal(f.ctx, alice, approved.ID), funds.ErrAlreadyProcessed)
	assert.True(t, f.balance(t, alice.ID).Equal(decimal.NewFromInt(449)))

	deposit, err := f.ctrl.SubmitDeposit(f.ctx, alice, f.depositOf(20))
	require.NoError(t, err)
	require.NoError(t, f.ctrl.CancelDeposit(f.ctx, admin, deposit.ID))
	assert.ErrorIs(t, f.ctrl.CancelDeposit(f.ctx, admin, deposit.ID), funds.ErrRequestNotFound)
}

func TestListDeposits_ScopedToOwner(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		_, err := f.ctrl.SubmitDeposit(f.ctx, alice, f.depositOf(20))
		require.NoError(t, err)
	}
	bobs, err := f.ctrl.SubmitDeposit(f.ctx, bob, f.depositOf(30))
	require.NoError(t, err)

	page, err := f.ctrl.ListDeposits(f.ctx, alice, ListQuery{UserID: bob.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, defaultPageSize, page.Limit)
	for _, r := range page.Items {
		assert.Equal(t, alice.ID, r.UserID)
	}

	_, err = f.ctrl.GetDeposit(f.ctx, alice, bobs.ID)
	assert.ErrorIs(t, err, funds.ErrForbidden)

	page, err = f.ctrl.ListDeposits(f.ctx, admin, ListQuery{Status: model.RequestStatusPending, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, maxPageSize, page.Limit)

	page, err = f.ctrl.ListDeposits(f.ctx, admin, ListQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}
