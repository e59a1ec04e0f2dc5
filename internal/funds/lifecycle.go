package funds

import (
	"strings"
	"time"

	"github.com/dwarvesf/funds-backend/internal/model"
)

// Adjudicate applies an admin decision to the adjudication part of a record.
// Only pending -> approved and pending -> rejected exist; anything already
// terminal fails with ErrAlreadyProcessed. Rejections need a reason for both
// withdrawals and deposits.
//
// The caller must pass state read under the balance lock; this function does
// not persist anything.
func Adjudicate(current model.Adjudication, action Action, adminID uint, notes string, now time.Time) (model.Adjudication, error) {
	if !current.IsPending() {
		return current, ErrAlreadyProcessed
	}

	var next model.RequestStatus
	switch action {
	case ActionApprove:
		next = model.RequestStatusApproved
	case ActionReject:
		if strings.TrimSpace(notes) == "" {
			return current, ErrMissingRejectionReason
		}
		next = model.RequestStatusRejected
	default:
		return current, ErrInvalidTransition
	}

	processedAt := now
	processedBy := adminID
	return model.Adjudication{
		Status:      next,
		ProcessedAt: &processedAt,
		ProcessedBy: &processedBy,
		AdminNotes:  strings.TrimSpace(notes),
	}, nil
}
