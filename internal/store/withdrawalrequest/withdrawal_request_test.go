package withdrawalrequest_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwarvesf/funds-backend/internal/model"
	"github.com/dwarvesf/funds-backend/internal/store/storetest"
	"github.com/dwarvesf/funds-backend/internal/store/withdrawalrequest"
)

func newRequest(userID uint, amount, fee string) *model.WithdrawalRequest {
	return &model.WithdrawalRequest{
		UserID:         userID,
		PlatformID:     1,
		Amount:         decimal.RequireFromString(amount),
		Fee:            decimal.RequireFromString(fee),
		AccountDetails: "wallet-" + amount,
		Adjudication:   model.NewPendingAdjudication(),
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	db := storetest.NewDB(t)
	s := withdrawalrequest.New()

	created, err := s.Create(db, newRequest(1, "100", "1"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := s.GetByID(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, got.Status)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, got.ProcessedAt)
	assert.Nil(t, got.ProcessedBy)
}

func TestStore_SumPendingByUser(t *testing.T) {
	db := storetest.NewDB(t)
	s := withdrawalrequest.New()

	_, err := s.Create(db, newRequest(1, "10.5", "0.5"))
	require.NoError(t, err)
	_, err = s.Create(db, newRequest(1, "20", "1"))
	require.NoError(t, err)
	done, err := s.Create(db, newRequest(1, "1000", "1"))
	require.NoError(t, err)
	_, err = s.Create(db, newRequest(2, "70", "1"))
	require.NoError(t, err)

	rows, err := s.UpdateTerminal(db, done.ID, withdrawalrequest.TerminalFields{
		Status:      model.RequestStatusRejected,
		ProcessedAt: time.Now(),
		ProcessedBy: 99,
		AdminNotes:  "duplicate",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	sum, err := s.SumPendingByUser(db, 1)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(32)), "got %s", sum)
}

func TestStore_UpdateTerminalOnlyOnce(t *testing.T) {
	db := storetest.NewDB(t)
	s := withdrawalrequest.New()

	created, err := s.Create(db, newRequest(1, "100", "1"))
	require.NoError(t, err)

	fields := withdrawalrequest.TerminalFields{Status: model.RequestStatusApproved, ProcessedAt: time.Now(), ProcessedBy: 5}
	rows, err := s.UpdateTerminal(db, created.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	fields.Status = model.RequestStatusRejected
	rows, err = s.UpdateTerminal(db, created.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	got, err := s.GetByID(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusApproved, got.Status)
	require.NotNil(t, got.ProcessedBy)
	assert.Equal(t, uint(5), *got.ProcessedBy)
}

func TestStore_ListAndDelete(t *testing.T) {
	db := storetest.NewDB(t)
	s := withdrawalrequest.New()

	for i := 0; i < 3; i++ {
		_, err := s.Create(db, newRequest(7, "15", "0"))
		require.NoError(t, err)
	}
	_, err := s.Create(db, newRequest(8, "15", "0"))
	require.NoError(t, err)

	page, total, err := s.List(db, withdrawalrequest.ListFilter{UserID: 7, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)
	assert.Greater(t, page[0].ID, page[1].ID)

	pending, err := s.ListByStatus(db, model.RequestStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 4)

	mine, err := s.ListByUser(db, 8)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	require.NoError(t, s.Delete(db, mine[0].ID))
	_, err = s.GetByID(db, mine[0].ID)
	assert.Error(t, err)

	count, err := s.CountByPlatform(db, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestStore_GetByIDForUpdateEmitsRowLock(t *testing.T) {
	db, rec := storetest.NewPostgresDryRun(t)

	_, err := withdrawalrequest.New().GetByIDForUpdate(db, 3)
	require.NoError(t, err)

	statements := rec.Statements()
	require.Len(t, statements, 1)
	assert.Contains(t, statements[0], "FOR UPDATE")
}
