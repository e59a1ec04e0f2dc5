package monitoring

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/model"
	"github.com/dwarvesf/funds-backend/internal/store"
)

const BacklogJobName = "pending_backlog_refresh"

// NewBacklogJob returns a job that publishes the number of requests waiting
// for adjudication, per kind.
func NewBacklogJob(db *gorm.DB, s *store.Store, metrics *FundsMetrics) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		tx := db.WithContext(ctx)

		withdrawals, err := s.WithdrawalRequest.CountByStatus(tx, model.RequestStatusPending)
		if err != nil {
			return errors.Wrap(err, "count pending withdrawals")
		}
		deposits, err := s.DepositRecord.CountByStatus(tx, model.RequestStatusPending)
		if err != nil {
			return errors.Wrap(err, "count pending deposits")
		}

		metrics.SetPendingBacklog("withdrawal", withdrawals)
		metrics.SetPendingBacklog("deposit", deposits)
		return nil
	}
}
