package settlement

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/model"
	"github.com/dwarvesf/funds-backend/internal/monitoring"
	"github.com/dwarvesf/funds-backend/internal/store"
	"github.com/dwarvesf/funds-backend/internal/store/depositrecord"
	"github.com/dwarvesf/funds-backend/internal/store/userbalance"
	"github.com/dwarvesf/funds-backend/internal/store/withdrawalrequest"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

type Engine struct {
	db          *gorm.DB
	store       *store.Store
	metrics     *monitoring.FundsMetrics
	logger      *logger.Logger
	lockTimeout time.Duration
	now         func() time.Time
}

func New(db *gorm.DB, s *store.Store, metrics *monitoring.FundsMetrics, logger *logger.Logger, lockTimeout time.Duration) IEngine {
	return &Engine{
		db:          db,
		store:       s,
		metrics:     metrics,
		logger:      logger,
		lockTimeout: lockTimeout,
		now:         time.Now,
	}
}

func (e *Engine) SettleDeposit(ctx context.Context, id uint, adminID uint, action funds.Action, creditedAmount *decimal.Decimal, notes string) (*model.DepositRecord, error) {
	start := time.Now()

	record, err := e.settleDeposit(ctx, id, adminID, action, creditedAmount, notes)

	moved := decimal.Zero
	if err == nil && record.CreditedAmount.Valid {
		moved = record.CreditedAmount.Decimal
	}
	e.record(string(funds.RequestKindDeposit), action, err, moved, start)
	if err != nil {
		e.logFailure("[SettleDeposit]", id, adminID, action, err)
		return nil, err
	}

	e.logger.Info("[SettleDeposit] deposit settled", map[string]string{
		"deposit_id": strconv.FormatUint(uint64(id), 10),
		"user_id":    strconv.FormatUint(uint64(record.UserID), 10),
		"admin_id":   strconv.FormatUint(uint64(adminID), 10),
		"status":     string(record.Status),
		"credited":   moved.String(),
	})
	return record, nil
}

func (e *Engine) settleDeposit(ctx context.Context, id uint, adminID uint, action funds.Action, creditedAmount *decimal.Decimal, notes string) (*model.DepositRecord, error) {
	current, err := e.store.DepositRecord.GetByID(e.db.WithContext(ctx), id)
	if err != nil {
		return nil, readError(err)
	}
	if !current.IsPending() {
		return nil, funds.ErrAlreadyProcessed
	}

	ctx, cancel := context.WithTimeout(ctx, e.lockTimeout)
	defer cancel()

	var settled *model.DepositRecord
	err = store.DoInTx(ctx, e.db, func(tx *gorm.DB) error {
		// balance row first, record second, on every path
		if _, err := e.store.UserBalance.LockForUpdate(tx, current.UserID); err != nil {
			return funds.ErrLedgerUnavailable.WithCause(err)
		}

		record, err := e.store.DepositRecord.GetByIDForUpdate(tx, id)
		if err != nil {
			return readError(err)
		}
		if !record.IsPending() {
			return funds.ErrRecordNotPending
		}

		next, err := funds.Adjudicate(record.Adjudication, action, adminID, notes, e.now())
		if err != nil {
			return err
		}

		fields := depositrecord.TerminalFields{
			Status:      next.Status,
			ProcessedAt: *next.ProcessedAt,
			ProcessedBy: adminID,
			AdminNotes:  next.AdminNotes,
		}
		if next.Status == model.RequestStatusApproved {
			credit := record.Amount
			if creditedAmount != nil {
				credit = *creditedAmount
			}
			if !credit.IsPositive() {
				return funds.ErrInvalidCreditedAmount
			}
			if !model.FitsAmountScale(credit) {
				return funds.ErrInvalidCreditedAmount.WithMessage("credited amount supports at most 18 decimal places")
			}
			if _, err := e.store.UserBalance.ApplyDelta(tx, record.UserID, credit); err != nil {
				return ledgerError(err)
			}
			fields.CreditedAmount = decimal.NewNullDecimal(credit)
		}

		rows, err := e.store.DepositRecord.UpdateTerminal(tx, id, fields)
		if err != nil {
			return funds.ErrSettlementFailed.WithCause(err)
		}
		if rows == 0 {
			return funds.ErrRecordNotPending
		}

		record.Adjudication = next
		record.CreditedAmount = fields.CreditedAmount
		settled = record
		return nil
	})
	if err != nil {
		return nil, txError(err)
	}
	return settled, nil
}

func (e *Engine) SettleWithdrawal(ctx context.Context, id uint, adminID uint, action funds.Action, notes string) (*model.WithdrawalRequest, error) {
	start := time.Now()

	request, err := e.settleWithdrawal(ctx, id, adminID, action, notes)

	moved := decimal.Zero
	if err == nil && request.Status == model.RequestStatusApproved {
		moved = request.TotalDebit()
	}
	e.record(string(funds.RequestKindWithdrawal), action, err, moved, start)
	if err != nil {
		e.logFailure("[SettleWithdrawal]", id, adminID, action, err)
		return nil, err
	}

	e.logger.Info("[SettleWithdrawal] withdrawal settled", map[string]string{
		"withdrawal_id": strconv.FormatUint(uint64(id), 10),
		"user_id":       strconv.FormatUint(uint64(request.UserID), 10),
		"admin_id":      strconv.FormatUint(uint64(adminID), 10),
		"status":        string(request.Status),
		"debited":       moved.String(),
	})
	return request, nil
}

func (e *Engine) settleWithdrawal(ctx context.Context, id uint, adminID uint, action funds.Action, notes string) (*model.WithdrawalRequest, error) {
	current, err := e.store.WithdrawalRequest.GetByID(e.db.WithContext(ctx), id)
	if err != nil {
		return nil, readError(err)
	}
	if !current.IsPending() {
		return nil, funds.ErrAlreadyProcessed
	}

	ctx, cancel := context.WithTimeout(ctx, e.lockTimeout)
	defer cancel()

	var settled *model.WithdrawalRequest
	err = store.DoInTx(ctx, e.db, func(tx *gorm.DB) error {
		if _, err := e.store.UserBalance.LockForUpdate(tx, current.UserID); err != nil {
			return funds.ErrLedgerUnavailable.WithCause(err)
		}

		request, err := e.store.WithdrawalRequest.GetByIDForUpdate(tx, id)
		if err != nil {
			return readError(err)
		}
		if !request.IsPending() {
			return funds.ErrRecordNotPending
		}

		next, err := funds.Adjudicate(request.Adjudication, action, adminID, notes, e.now())
		if err != nil {
			return err
		}

		if next.Status == model.RequestStatusApproved {
			_, err := e.store.UserBalance.ApplyDelta(tx, request.UserID, request.TotalDebit().Neg())
			if errors.Is(err, userbalance.ErrNegativeBalance) {
				return funds.ErrInsufficientBalance
			}
			if err != nil {
				return ledgerError(err)
			}
		}

		rows, err := e.store.WithdrawalRequest.UpdateTerminal(tx, id, withdrawalrequest.TerminalFields{
			Status:      next.Status,
			ProcessedAt: *next.ProcessedAt,
			ProcessedBy: adminID,
			AdminNotes:  next.AdminNotes,
		})
		if err != nil {
			return funds.ErrSettlementFailed.WithCause(err)
		}
		if rows == 0 {
			return funds.ErrRecordNotPending
		}

		request.Adjudication = next
		settled = request
		return nil
	})
	if err != nil {
		return nil, txError(err)
	}
	return settled, nil
}

func (e *Engine) record(kind string, action funds.Action, err error, moved decimal.Decimal, start time.Time) {
	outcome := monitoring.OutcomeSuccess
	if err != nil {
		outcome = monitoring.OutcomeError
	}
	e.metrics.RecordSettlement(kind, string(action), outcome, moved, time.Since(start).Seconds())
}

// logFailure keeps expected business rejections at warn level.
func (e *Engine) logFailure(tag string, id, adminID uint, action funds.Action, err error) {
	fields := map[string]string{
		"id":       strconv.FormatUint(uint64(id), 10),
		"admin_id": strconv.FormatUint(uint64(adminID), 10),
		"action":   string(action),
		"error":    err.Error(),
	}
	if fe, ok := funds.AsError(err); ok && fe.Code != funds.CodeSettlementFailed && fe.Code != funds.CodeLedgerUnavailable {
		e.logger.Warn(tag+" rejected", fields)
		return
	}
	e.logger.Error(tag+"[DoInTx]", fields)
}

func readError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return funds.ErrRequestNotFound
	}
	return ledgerError(err)
}

func ledgerError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return funds.ErrLedgerUnavailable.WithCause(err)
	}
	return funds.ErrSettlementFailed.WithCause(err)
}

// txError maps failures raised outside fn, such as Begin or Commit, onto the
// settlement taxonomy.
func txError(err error) error {
	if _, ok := funds.AsError(err); ok {
		return err
	}
	return ledgerError(err)
}
