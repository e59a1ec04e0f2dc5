package funds

import (
	"github.com/pkg/errors"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindLifecycle     Kind = "lifecycle"
	KindSettlement    Kind = "settlement"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
)

type Code string

const (
	CodePlatformInactive     Code = "platform_inactive"
	CodeInvalidPlatform      Code = "invalid_platform"
	CodeAmountBelowMinimum   Code = "amount_below_minimum"
	CodeAmountAboveMaximum   Code = "amount_above_maximum"
	CodeInsufficientBalance  Code = "insufficient_balance"
	CodeMissingRequiredField Code = "missing_required_field"
	CodeInvalidAmount        Code = "invalid_amount"
	CodeAmountPrecision      Code = "amount_precision"

	CodeAlreadyProcessed       Code = "already_processed"
	CodeInvalidTransition      Code = "invalid_transition"
	CodeMissingRejectionReason Code = "missing_rejection_reason"
	CodePlatformInUse          Code = "platform_in_use"

	CodeRecordNotPending      Code = "record_not_pending"
	CodeInvalidCreditedAmount Code = "invalid_credited_amount"
	CodeLedgerUnavailable     Code = "ledger_unavailable"
	CodeSettlementFailed      Code = "settlement_failed"

	CodeForbidden Code = "forbidden"

	CodeRequestNotFound  Code = "request_not_found"
	CodePlatformNotFound Code = "platform_not_found"
)

// Error is the value every funds operation fails with. Two errors match under
// errors.Is when their codes match, so call sites compare against the
// sentinels below regardless of the message attached.
type Error struct {
	Kind      Kind
	Code      Code
	Message   string
	Retryable bool
	cause     error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches by code. A lost settlement race (RecordNotPending) also reports
// as AlreadyProcessed so callers render one generic message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Code == t.Code {
		return true
	}
	return e.Code == CodeRecordNotPending && t.Code == CodeAlreadyProcessed
}

// WithMessage returns a copy carrying a more specific, user-facing message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithCause returns a copy wrapping the underlying infrastructure error.
func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.cause = err
	return &cp
}

var (
	ErrPlatformInactive     = &Error{Kind: KindValidation, Code: CodePlatformInactive, Message: "platform is not active"}
	ErrAmountBelowMinimum   = &Error{Kind: KindValidation, Code: CodeAmountBelowMinimum, Message: "amount is below the platform minimum"}
	ErrAmountAboveMaximum   = &Error{Kind: KindValidation, Code: CodeAmountAboveMaximum, Message: "amount is above the platform maximum"}
	ErrInsufficientBalance  = &Error{Kind: KindValidation, Code: CodeInsufficientBalance, Message: "insufficient balance"}
	ErrMissingRequiredField = &Error{Kind: KindValidation, Code: CodeMissingRequiredField, Message: "required field is missing"}
	ErrInvalidAmount        = &Error{Kind: KindValidation, Code: CodeInvalidAmount, Message: "amount must be greater than zero"}
	ErrAmountPrecision      = &Error{Kind: KindValidation, Code: CodeAmountPrecision, Message: "amount supports at most 18 decimal places"}
	ErrInvalidPlatform      = &Error{Kind: KindValidation, Code: CodeInvalidPlatform, Message: "invalid platform configuration"}

	ErrAlreadyProcessed       = &Error{Kind: KindLifecycle, Code: CodeAlreadyProcessed, Message: "request has already been processed"}
	ErrInvalidTransition      = &Error{Kind: KindLifecycle, Code: CodeInvalidTransition, Message: "invalid status transition"}
	ErrMissingRejectionReason = &Error{Kind: KindLifecycle, Code: CodeMissingRejectionReason, Message: "a reason is required to reject a request"}
	ErrPlatformInUse          = &Error{Kind: KindLifecycle, Code: CodePlatformInUse, Message: "platform is referenced by existing requests"}

	ErrRecordNotPending      = &Error{Kind: KindSettlement, Code: CodeRecordNotPending, Message: "request has already been processed"}
	ErrInvalidCreditedAmount = &Error{Kind: KindSettlement, Code: CodeInvalidCreditedAmount, Message: "credited amount must be greater than zero"}
	ErrLedgerUnavailable     = &Error{Kind: KindSettlement, Code: CodeLedgerUnavailable, Message: "balance ledger is unavailable, try again", Retryable: true}
	ErrSettlementFailed      = &Error{Kind: KindSettlement, Code: CodeSettlementFailed, Message: "settlement failed"}

	ErrForbidden = &Error{Kind: KindAuthorization, Code: CodeForbidden, Message: "not allowed to act on this request"}

	ErrRequestNotFound  = &Error{Kind: KindNotFound, Code: CodeRequestNotFound, Message: "request not found"}
	ErrPlatformNotFound = &Error{Kind: KindNotFound, Code: CodePlatformNotFound, Message: "platform not found"}
)

// AsError extracts the funds error from a wrapped chain.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func IsRetryable(err error) bool {
	fe, ok := AsError(err)
	return ok && fe.Retryable
}
