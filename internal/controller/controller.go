package controller

import (
	"context"

	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/catalog"
	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/monitoring"
	"github.com/dwarvesf/funds-backend/internal/settlement"
	"github.com/dwarvesf/funds-backend/internal/store"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

type Controller struct {
	db      *gorm.DB
	store   *store.Store
	catalog catalog.ICatalog
	engine  settlement.IEngine
	metrics *monitoring.FundsMetrics
	logger  *logger.Logger
}

func New(
	db *gorm.DB,
	store *store.Store,
	catalog catalog.ICatalog,
	engine settlement.IEngine,
	metrics *monitoring.FundsMetrics,
	logger *logger.Logger,
) IController {
	return &Controller{
		db:      db,
		store:   store,
		catalog: catalog,
		engine:  engine,
		metrics: metrics,
		logger:  logger,
	}
}

func (c *Controller) GetBalance(ctx context.Context, actor funds.Actor) (*BalanceView, error) {
	if actor.ID == 0 {
		return nil, funds.ErrForbidden
	}

	tx := c.db.WithContext(ctx)
	balance, err := c.store.UserBalance.GetBalance(tx, actor.ID)
	if err != nil {
		c.logger.Error("[GetBalance][GetBalance]", map[string]string{
			"user_id": idStr(actor.ID),
			"error":   err.Error(),
		})
		return nil, funds.ErrLedgerUnavailable.WithCause(err)
	}

	reserved, err := c.store.WithdrawalRequest.SumPendingByUser(tx, actor.ID)
	if err != nil {
		c.logger.Error("[GetBalance][SumPendingByUser]", map[string]string{
			"user_id": idStr(actor.ID),
			"error":   err.Error(),
		})
		return nil, funds.ErrLedgerUnavailable.WithCause(err)
	}

	return &BalanceView{
		UserID:    actor.ID,
		Balance:   balance,
		Reserved:  reserved,
		Available: balance.Sub(reserved),
	}, nil
}
