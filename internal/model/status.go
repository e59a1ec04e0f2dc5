package model

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

func (s RequestStatus) IsValid() bool {
	return s == RequestStatusPending || s.IsTerminal()
}

// Adjudication is the mutable part of a withdrawal request or deposit record.
// It is written exactly once, when an admin moves the record out of pending.
type Adjudication struct {
	Status      RequestStatus `json:"status" gorm:"column:status;type:varchar(20);not null;default:'pending';index"`
	ProcessedAt *time.Time    `json:"processed_at" gorm:"column:processed_at"`
	ProcessedBy *uint         `json:"processed_by" gorm:"column:processed_by"`
	AdminNotes  string        `json:"admin_notes,omitempty" gorm:"column:admin_notes;type:text"`
}

func NewPendingAdjudication() Adjudication {
	return Adjudication{Status: RequestStatusPending}
}

func (a Adjudication) IsPending() bool {
	return a.Status == RequestStatusPending
}

// Consistent reports whether ProcessedAt/ProcessedBy are set exactly when the
// status is terminal.
func (a Adjudication) Consistent() bool {
	processed := a.ProcessedAt != nil && a.ProcessedBy != nil
	unprocessed := a.ProcessedAt == nil && a.ProcessedBy == nil
	if a.IsPending() {
		return unprocessed
	}
	return a.Status.IsTerminal() && processed
}
