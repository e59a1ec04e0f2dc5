package settlement

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/model"
	"github.com/dwarvesf/funds-backend/internal/monitoring"
	"github.com/dwarvesf/funds-backend/internal/store"
	"github.com/dwarvesf/funds-backend/internal/store/storetest"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
)

const (
	userID  uint = 11
	adminID uint = 1
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var _ = Describe("Engine", func() {
	var (
		ctx    context.Context
		db     *gorm.DB
		s      *store.Store
		engine *Engine
		fixed  time.Time
	)

	seedBalance := func(user uint, amount string) {
		_, err := s.UserBalance.ApplyDelta(db, user, d(amount))
		Expect(err).NotTo(HaveOccurred())
	}

	balanceOf := func(user uint) decimal.Decimal {
		balance, err := s.UserBalance.GetBalance(db, user)
		Expect(err).NotTo(HaveOccurred())
		return balance
	}

	createDeposit := func(user uint, amount string) *model.DepositRecord {
		record, err := s.DepositRecord.Create(db, &model.DepositRecord{
			UserID:          user,
			PlatformID:      1,
			Amount:          d(amount),
			PlatformAccount: "alipay-881",
			DepositTime:     fixed.Add(-time.Hour),
			Adjudication:    model.NewPendingAdjudication(),
		})
		Expect(err).NotTo(HaveOccurred())
		return record
	}

	createWithdrawal := func(user uint, amount, fee string) *model.WithdrawalRequest {
		request, err := s.WithdrawalRequest.Create(db, &model.WithdrawalRequest{
			UserID:         user,
			PlatformID:     1,
			Amount:         d(amount),
			Fee:            d(fee),
			AccountDetails: "TRC20 TQn9...",
			Adjudication:   model.NewPendingAdjudication(),
		})
		Expect(err).NotTo(HaveOccurred())
		return request
	}

	BeforeEach(func() {
		ctx = context.Background()
		db = storetest.NewDB(GinkgoT())
		s = store.New()
		engine = New(db, s, monitoring.NewFundsMetrics(), logger.NewNop(), 5*time.Second).(*Engine)
		fixed = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		engine.now = func() time.Time { return fixed }
	})

	Describe("SettleDeposit", func() {
		It("credits the submitted amount when no override is given", func() {
			seedBalance(userID, "10")
			record := createDeposit(userID, "50")

			settled, err := engine.SettleDeposit(ctx, record.ID, adminID, funds.ActionApprove, nil, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(settled.Status).To(Equal(model.RequestStatusApproved))
			Expect(settled.CreditedAmount.Valid).To(BeTrue())
			Expect(settled.CreditedAmount.Decimal.Equal(d("50"))).To(BeTrue())
			Expect(balanceOf(userID).Equal(d("60"))).To(BeTrue())
		})

		It("credits the admin override and persists it", func() {
			record := createDeposit(userID, "50")
			credited := d("45")

			_, err := engine.SettleDeposit(ctx, record.ID, adminID, funds.ActionApprove, &credited, "fee adjustment")
			Expect(err).NotTo(HaveOccurred())

			stored, err := s.DepositRecord.GetByID(db, record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal(model.RequestStatusApproved))
			Expect(stored.CreditedAmount.Decimal.Equal(credited)).To(BeTrue())
			Expect(stored.AdminNotes).To(Equal("fee adjustment"))
			Expect(*stored.ProcessedBy).To(Equal(adminID))
			Expect(stored.ProcessedAt.Equal(fixed)).To(BeTrue())
			Expect(stored.Adjudication.Consistent()).To(BeTrue())
			Expect(balanceOf(userID).Equal(d("45"))).To(BeTrue())
		})

		It("refuses a second decision and leaves the ledger alone", func() {
			record := createDeposit(userID, "50")
			_, err := engine.SettleDeposit(ctx, record.ID, adminID, funds.ActionApprove, nil, "")
			Expect(err).NotTo(HaveOccurred())

			_, err = engine.SettleDeposit(ctx, record.ID, 2, funds.ActionReject, nil, "changed my mind")
			Expect(err).To(MatchError(funds.ErrAlreadyProcessed))
			Expect(balanceOf(userID).Equal(d("50"))).To(BeTrue())

			stored, err := s.DepositRecord.GetByID(db, record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal(model.RequestStatusApproved))
			Expect(*stored.ProcessedBy).To(Equal(adminID))
		})

		It("rejects without touching the balance", func() {
			seedBalance(userID, "30")
			record := createDeposit(userID, "50")

			settled, err := engine.SettleDeposit(ctx, record.ID, adminID, funds.ActionReject, nil, "screenshot unreadable")
			Expect(err).NotTo(HaveOccurred())
			Expect(settled.Status).To(Equal(model.RequestStatusRejected))
			Expect(settled.CreditedAmount.Valid).To(BeFalse())
			Expect(balanceOf(userID).Equal(d("30"))).To(BeTrue())
		})

		It("needs a reason to reject", func() {
			record := createDeposit(userID, "50")

			_, err := engine.SettleDeposit(ctx, record.ID, adminID, funds.ActionReject, nil, "  ")
			Expect(err).To(MatchError(funds.ErrMissingRejectionReason))

			stored, err := s.DepositRecord.GetByID(db, record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsPending()).To(BeTrue())
		})

		DescribeTable("rolls back on an override the ledger cannot hold",
			func(override string) {
				seedBalance(userID, "5")
				record := createDeposit(userID, "50")
				credited := d(override)

				_, err := engine.SettleDeposit(ctx, record.ID, adminID, funds.ActionApprove, &credited, "")
				Expect(err).To(MatchError(funds.ErrInvalidCreditedAmount))
				Expect(balanceOf(userID).Equal(d("5"))).To(BeTrue())

				stored, err := s.DepositRecord.GetByID(db, record.ID)
				Expect(err).NotTo(HaveOccurred())
				Expect(stored.IsPending()).To(BeTrue())
				Expect(stored.CreditedAmount.Valid).To(BeFalse())
			},
			Entry("zero", "0"),
			Entry("negative", "-1"),
			Entry("finer than the column scale", "45.0000000000000000004"),
		)

		It("reports unknown records", func() {
			_, err := engine.SettleDeposit(ctx, 404, adminID, funds.ActionApprove, nil, "")
			Expect(err).To(MatchError(funds.ErrRequestNotFound))
		})

		It("reports unknown actions as invalid transitions", func() {
			record := createDeposit(userID, "50")

			_, err := engine.SettleDeposit(ctx, record.ID, adminID, funds.Action("refund"), nil, "")
			Expect(err).To(MatchError(funds.ErrInvalidTransition))
		})

		It("reports a cancelled context as retryable", func() {
			record := createDeposit(userID, "50")
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := engine.SettleDeposit(cancelled, record.ID, adminID, funds.ActionApprove, nil, "")
			Expect(err).To(HaveOccurred())
			Expect(funds.IsRetryable(err)).To(BeTrue())
			Expect(balanceOf(userID).IsZero()).To(BeTrue())
		})

		It("sums concurrent approvals for one user exactly", func() {
			seedBalance(userID, "100")
			const n = 10
			records := make([]*model.DepositRecord, n)
			for i := range records {
				records[i] = createDeposit(userID, "7.5")
			}

			var wg sync.WaitGroup
			errs := make(chan error, n)
			for _, r := range records {
				wg.Add(1)
				go func(id uint) {
					defer GinkgoRecover()
					defer wg.Done()
					_, err := engine.SettleDeposit(ctx, id, adminID, funds.ActionApprove, nil, "")
					errs <- err
				}(r.ID)
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(balanceOf(userID).Equal(d("175"))).To(BeTrue())
		})

		It("lets exactly one of several racing admins win", func() {
			record := createDeposit(userID, "20")

			var wg sync.WaitGroup
			results := make(chan error, 5)
			for i := 0; i < 5; i++ {
				wg.Add(1)
				go func(admin uint) {
					defer GinkgoRecover()
					defer wg.Done()
					_, err := engine.SettleDeposit(ctx, record.ID, admin, funds.ActionApprove, nil, "")
					results <- err
				}(uint(i + 1))
			}
			wg.Wait()
			close(results)

			succeeded := 0
			for err := range results {
				if err == nil {
					succeeded++
					continue
				}
				Expect(err).To(MatchError(funds.ErrAlreadyProcessed))
			}
			Expect(succeeded).To(Equal(1))
			Expect(balanceOf(userID).Equal(d("20"))).To(BeTrue())
		})
	})

	Describe("SettleWithdrawal", func() {
		It("debits amount plus the fee snapshot on approval", func() {
			seedBalance(userID, "200")
			request := createWithdrawal(userID, "100", "1")

			settled, err := engine.SettleWithdrawal(ctx, request.ID, adminID, funds.ActionApprove, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(settled.Status).To(Equal(model.RequestStatusApproved))
			Expect(balanceOf(userID).Equal(d("99"))).To(BeTrue())
		})

		It("keeps the request pending when the balance no longer covers it", func() {
			seedBalance(userID, "100")
			request := createWithdrawal(userID, "100", "1")

			_, err := engine.SettleWithdrawal(ctx, request.ID, adminID, funds.ActionApprove, "")
			Expect(err).To(MatchError(funds.ErrInsufficientBalance))
			Expect(balanceOf(userID).Equal(d("100"))).To(BeTrue())

			stored, err := s.WithdrawalRequest.GetByID(db, request.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsPending()).To(BeTrue())
		})

		It("rejects with a reason and leaves the balance unchanged", func() {
			seedBalance(userID, "200")
			request := createWithdrawal(userID, "100", "1")

			_, err := engine.SettleWithdrawal(ctx, request.ID, adminID, funds.ActionReject, "")
			Expect(err).To(MatchError(funds.ErrMissingRejectionReason))

			settled, err := engine.SettleWithdrawal(ctx, request.ID, adminID, funds.ActionReject, "wrong network")
			Expect(err).NotTo(HaveOccurred())
			Expect(settled.Status).To(Equal(model.RequestStatusRejected))
			Expect(settled.AdminNotes).To(Equal("wrong network"))
			Expect(balanceOf(userID).Equal(d("200"))).To(BeTrue())

			_, err = engine.SettleWithdrawal(ctx, request.ID, adminID, funds.ActionApprove, "")
			Expect(err).To(MatchError(funds.ErrAlreadyProcessed))
		})
	})
})
