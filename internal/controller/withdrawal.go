package controller

import (
	"context"

	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/model"
	"github.com/dwarvesf/funds-backend/internal/store"
	"github.com/dwarvesf/funds-backend/internal/store/withdrawalrequest"
)

func (c *Controller) SubmitWithdrawal(ctx context.Context, actor funds.Actor, in WithdrawalSubmission) (*model.WithdrawalRequest, error) {
	request, err := c.submitWithdrawal(ctx, actor, in)
	c.metrics.RecordSubmission(string(funds.RequestKindWithdrawal), outcomeOf(err))
	if err != nil {
		return nil, err
	}

	c.logger.Info("[SubmitWithdrawal] withdrawal submitted", map[string]string{
		"withdrawal_id": idStr(request.ID),
		"user_id":       idStr(request.UserID),
		"platform_id":   idStr(request.PlatformID),
		"amount":        request.Amount.String(),
		"fee":           request.Fee.String(),
	})
	return request, nil
}

func (c *Controller) submitWithdrawal(ctx context.Context, actor funds.Actor, in WithdrawalSubmission) (*model.WithdrawalRequest, error) {
	if actor.ID == 0 {
		return nil, funds.ErrForbidden
	}
	if err := funds.ValidateWithdrawalPayload(in.AccountDetails); err != nil {
		return nil, err
	}

	platform, err := c.catalog.GetWithdrawalPlatform(ctx, in.PlatformID)
	if err != nil {
		return nil, err
	}
	constraints := platform.Constraints()

	var created *model.WithdrawalRequest
	err = store.DoInTx(ctx, c.db, func(tx *gorm.DB) error {
		// same per-user lock as settlement, so pending totals cannot race
		row, err := c.store.UserBalance.LockForUpdate(tx, actor.ID)
		if err != nil {
			return funds.ErrLedgerUnavailable.WithCause(err)
		}

		reserved, err := c.store.WithdrawalRequest.SumPendingByUser(tx, actor.ID)
		if err != nil {
			return funds.ErrLedgerUnavailable.WithCause(err)
		}
		available := row.Balance.Sub(reserved)

		if err := funds.ValidateSubmission(constraints, in.Amount, &available); err != nil {
			return err
		}

		created, err = c.store.WithdrawalRequest.Create(tx, &model.WithdrawalRequest{
			UserID:         actor.ID,
			PlatformID:     platform.ID,
			Amount:         in.Amount,
			Fee:            constraints.Fee,
			AccountDetails: in.AccountDetails,
			Message:        in.Message,
			Adjudication:   model.NewPendingAdjudication(),
		})
		return err
	})
	if err != nil {
		if _, ok := funds.AsError(err); !ok {
			c.logger.Error("[SubmitWithdrawal][DoInTx]", map[string]string{
				"user_id": idStr(actor.ID),
				"error":   err.Error(),
			})
		}
		return nil, asFundsError(err, "submit withdrawal")
	}
	return created, nil
}

func (c *Controller) AdjudicateWithdrawal(ctx context.Context, actor funds.Actor, id uint, in AdjudicationInput) (*model.WithdrawalRequest, error) {
	if !actor.IsAdmin {
		return nil, funds.ErrForbidden
	}
	return c.engine.SettleWithdrawal(ctx, id, actor.ID, in.Action, in.Notes)
}

func (c *Controller) CancelWithdrawal(ctx context.Context, actor funds.Actor, id uint) error {
	request, err := c.store.WithdrawalRequest.GetByID(c.db.WithContext(ctx), id)
	if err != nil {
		return notFoundOr(err, "load withdrawal")
	}
	if !actor.CanManage(request.UserID) {
		return funds.ErrForbidden
	}

	err = store.DoInTx(ctx, c.db, func(tx *gorm.DB) error {
		if _, err := c.store.UserBalance.LockForUpdate(tx, request.UserID); err != nil {
			return funds.ErrLedgerUnavailable.WithCause(err)
		}
		locked, err := c.store.WithdrawalRequest.GetByIDForUpdate(tx, id)
		if err != nil {
			return notFoundOr(err, "lock withdrawal")
		}
		if !locked.IsPending() {
			return funds.ErrAlreadyProcessed
		}
		return c.store.WithdrawalRequest.Delete(tx, id)
	})
	if err != nil {
		return asFundsError(err, "cancel withdrawal")
	}

	c.logger.Info("[CancelWithdrawal] withdrawal cancelled", map[string]string{
		"withdrawal_id": idStr(id),
		"actor_id":      idStr(actor.ID),
	})
	return nil
}

func (c *Controller) GetWithdrawal(ctx context.Context, actor funds.Actor, id uint) (*model.WithdrawalRequest, error) {
	request, err := c.store.WithdrawalRequest.GetByID(c.db.WithContext(ctx), id)
	if err != nil {
		return nil, notFoundOr(err, "load withdrawal")
	}
	if !actor.CanManage(request.UserID) {
		return nil, funds.ErrForbidden
	}
	return request, nil
}

func (c *Controller) ListWithdrawals(ctx context.Context, actor funds.Actor, q ListQuery) (*Page[*model.WithdrawalRequest], error) {
	if actor.ID == 0 && !actor.IsAdmin {
		return nil, funds.ErrForbidden
	}
	q = scopeToActor(actor, q)

	items, total, err := c.store.WithdrawalRequest.List(c.db.WithContext(ctx), withdrawalrequest.ListFilter{
		UserID:     q.UserID,
		PlatformID: q.PlatformID,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		c.logger.Error("[ListWithdrawals][List]", map[string]string{
			"error": err.Error(),
		})
		return nil, asFundsError(err, "list withdrawals")
	}

	return &Page[*model.WithdrawalRequest]{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}
