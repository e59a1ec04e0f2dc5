package controller

import (
	"context"

	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/model"
	"github.com/dwarvesf/funds-backend/internal/store"
	"github.com/dwarvesf/funds-backend/internal/store/depositrecord"
)

func (c *Controller) SubmitDeposit(ctx context.Context, actor funds.Actor, in DepositSubmission) (*model.DepositRecord, error) {
	record, err := c.submitDeposit(ctx, actor, in)
	c.metrics.RecordSubmission(string(funds.RequestKindDeposit), outcomeOf(err))
	if err != nil {
		return nil, err
	}

	c.logger.Info("[SubmitDeposit] deposit submitted", map[string]string{
		"deposit_id":  idStr(record.ID),
		"user_id":     idStr(record.UserID),
		"platform_id": idStr(record.PlatformID),
		"amount":      record.Amount.String(),
	})
	return record, nil
}

func (c *Controller) submitDeposit(ctx context.Context, actor funds.Actor, in DepositSubmission) (*model.DepositRecord, error) {
	if actor.ID == 0 {
		return nil, funds.ErrForbidden
	}
	if err := funds.ValidateDepositPayload(in.PlatformAccount, in.DepositTime); err != nil {
		return nil, err
	}

	platform, err := c.catalog.GetDepositPlatform(ctx, in.PlatformID)
	if err != nil {
		return nil, err
	}
	if err := funds.ValidateSubmission(platform.Constraints(), in.Amount, nil); err != nil {
		return nil, err
	}

	record, err := c.store.DepositRecord.Create(c.db.WithContext(ctx), &model.DepositRecord{
		UserID:          actor.ID,
		PlatformID:      platform.ID,
		Amount:          in.Amount,
		PlatformAccount: in.PlatformAccount,
		RealName:        in.RealName,
		DepositTime:     in.DepositTime,
		ScreenshotURL:   in.ScreenshotURL,
		UserMessage:     in.UserMessage,
		Adjudication:    model.NewPendingAdjudication(),
	})
	if err != nil {
		c.logger.Error("[SubmitDeposit][Create]", map[string]string{
			"user_id": idStr(actor.ID),
			"error":   err.Error(),
		})
		return nil, asFundsError(err, "submit deposit")
	}
	return record, nil
}

func (c *Controller) AdjudicateDeposit(ctx context.Context, actor funds.Actor, id uint, in AdjudicationInput) (*model.DepositRecord, error) {
	if !actor.IsAdmin {
		return nil, funds.ErrForbidden
	}
	return c.engine.SettleDeposit(ctx, id, actor.ID, in.Action, in.CreditedAmount, in.Notes)
}

func (c *Controller) CancelDeposit(ctx context.Context, actor funds.Actor, id uint) error {
	record, err := c.store.DepositRecord.GetByID(c.db.WithContext(ctx), id)
	if err != nil {
		return notFoundOr(err, "load deposit")
	}
	if !actor.CanManage(record.UserID) {
		return funds.ErrForbidden
	}

	err = store.DoInTx(ctx, c.db, func(tx *gorm.DB) error {
		if _, err := c.store.UserBalance.LockForUpdate(tx, record.UserID); err != nil {
			return funds.ErrLedgerUnavailable.WithCause(err)
		}
		locked, err := c.store.DepositRecord.GetByIDForUpdate(tx, id)
		if err != nil {
			return notFoundOr(err, "lock deposit")
		}
		if !locked.IsPending() {
			return funds.ErrAlreadyProcessed
		}
		return c.store.DepositRecord.Delete(tx, id)
	})
	if err != nil {
		return asFundsError(err, "cancel deposit")
	}

	c.logger.Info("[CancelDeposit] deposit cancelled", map[string]string{
		"deposit_id": idStr(id),
		"actor_id":   idStr(actor.ID),
	})
	return nil
}

func (c *Controller) GetDeposit(ctx context.Context, actor funds.Actor, id uint) (*model.DepositRecord, error) {
	record, err := c.store.DepositRecord.GetByID(c.db.WithContext(ctx), id)
	if err != nil {
		return nil, notFoundOr(err, "load deposit")
	}
	if !actor.CanManage(record.UserID) {
		return nil, funds.ErrForbidden
	}
	return record, nil
}

func (c *Controller) ListDeposits(ctx context.Context, actor funds.Actor, q ListQuery) (*Page[*model.DepositRecord], error) {
	if actor.ID == 0 && !actor.IsAdmin {
		return nil, funds.ErrForbidden
	}
	q = scopeToActor(actor, q)

	items, total, err := c.store.DepositRecord.List(c.db.WithContext(ctx), depositrecord.ListFilter{
		UserID:     q.UserID,
		PlatformID: q.PlatformID,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		c.logger.Error("[ListDeposits][List]", map[string]string{
			"error": err.Error(),
		})
		return nil, asFundsError(err, "list deposits")
	}

	return &Page[*model.DepositRecord]{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}
