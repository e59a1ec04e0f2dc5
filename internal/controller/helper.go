package controller

import (
	"strconv"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/funds"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// scopeToActor pins non-admin queries to the caller's own records.
func scopeToActor(actor funds.Actor, q ListQuery) ListQuery {
	if !actor.IsAdmin {
		q.UserID = actor.ID
	}
	q.Limit, q.Offset = normalizePage(q.Limit, q.Offset)
	return q
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return funds.ErrRequestNotFound
	}
	return errors.Wrap(err, msg)
}

// asFundsError passes funds errors through and wraps everything else.
func asFundsError(err error, msg string) error {
	if _, ok := funds.AsError(err); ok {
		return err
	}
	return errors.Wrap(err, msg)
}

func idStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func outcomeOf(err error) string {
	if err == nil {
		return "accepted"
	}
	if fe, ok := funds.AsError(err); ok {
		return string(fe.Code)
	}
	return "error"
}
