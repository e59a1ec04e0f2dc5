package funds

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dwarvesf/funds-backend/internal/model"
)

var _ = Describe("Adjudicate", func() {
	var (
		now     time.Time
		pending model.Adjudication
	)

	BeforeEach(func() {
		now = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
		pending = model.NewPendingAdjudication()
	})

	Describe("approve", func() {
		It("moves pending to approved and stamps the admin", func() {
			next, err := Adjudicate(pending, ActionApprove, 42, "ok", now)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Status).To(Equal(model.RequestStatusApproved))
			Expect(*next.ProcessedAt).To(Equal(now))
			Expect(*next.ProcessedBy).To(Equal(uint(42)))
			Expect(next.AdminNotes).To(Equal("ok"))
			Expect(next.Consistent()).To(BeTrue())
		})

		It("does not require notes", func() {
			next, err := Adjudicate(pending, ActionApprove, 1, "", now)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.AdminNotes).To(BeEmpty())
		})
	})

	Describe("reject", func() {
		It("requires a reason", func() {
			next, err := Adjudicate(pending, ActionReject, 1, "  ", now)
			Expect(err).To(MatchError(ErrMissingRejectionReason))
			Expect(next).To(Equal(pending))
		})

		It("moves pending to rejected with the reason as notes", func() {
			next, err := Adjudicate(pending, ActionReject, 1, " screenshot unreadable ", now)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Status).To(Equal(model.RequestStatusRejected))
			Expect(next.AdminNotes).To(Equal("screenshot unreadable"))
		})
	})

	It("rejects unknown actions", func() {
		_, err := Adjudicate(pending, Action("escalate"), 1, "x", now)
		Expect(err).To(MatchError(ErrInvalidTransition))
	})

	DescribeTable("never leaves a terminal state",
		func(first Action, second Action) {
			once, err := Adjudicate(pending, first, 1, "first", now)
			Expect(err).NotTo(HaveOccurred())

			twice, err := Adjudicate(once, second, 2, "second", now.Add(time.Minute))
			Expect(err).To(MatchError(ErrAlreadyProcessed))
			Expect(twice).To(Equal(once))
			Expect(*twice.ProcessedBy).To(Equal(uint(1)))
		},
		Entry("approve then approve", ActionApprove, ActionApprove),
		Entry("approve then reject", ActionApprove, ActionReject),
		Entry("reject then approve", ActionReject, ActionApprove),
		Entry("reject then reject", ActionReject, ActionReject),
	)
})
