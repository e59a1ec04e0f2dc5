package funds

// Kind of funds movement a request represents.
type RequestKind string

const (
	RequestKindWithdrawal RequestKind = "withdrawal"
	RequestKindDeposit    RequestKind = "deposit"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Actor is the authenticated caller. It is passed explicitly into every
// operation instead of being read from ambient session state.
type Actor struct {
	ID      uint
	IsAdmin bool
}

// CanManage reports whether the actor may act on a record owned by ownerID.
func (a Actor) CanManage(ownerID uint) bool {
	return a.IsAdmin || (a.ID != 0 && a.ID == ownerID)
}
