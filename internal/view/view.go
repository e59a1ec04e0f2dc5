package view

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/dwarvesf/funds-backend/internal/funds"
)

var errInternal = errors.New("internal server error")

type Response[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Request any    `json:"request,omitempty"`
}

// ErrorResponse and MessageResponse only exist for the API docs.
type ErrorResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

type MessageResponse struct {
	Data string `json:"data"`
}

// CreateResponse builds the envelope every endpoint answers with. req is
// echoed back on errors to help clients debug their payload.
func CreateResponse[T any](data T, err error, req any, message string) Response[T] {
	res := Response[T]{
		Data:    data,
		Message: message,
	}
	if err == nil {
		return res
	}

	res.Error = err.Error()
	res.Request = req
	if fe, ok := funds.AsError(err); ok {
		// the wrapped cause stays in the logs
		res.Error = fe.Message
		res.Code = string(fe.Code)
		if message == "" {
			res.Message = fe.Message
		}
	}
	return res
}

// Fail writes err with the status HTTPStatus maps it to. Errors from outside
// the funds core are answered with a generic message. Retryable failures
// carry a Retry-After hint.
func Fail(c *gin.Context, err error, req any, message string) {
	status := HTTPStatus(err)
	if funds.IsRetryable(err) {
		c.Header("Retry-After", "1")
	}
	if _, ok := funds.AsError(err); !ok {
		err = errInternal
	}
	c.JSON(status, CreateResponse[any](nil, err, req, message))
}

// HTTPStatus maps an error from the funds core to the status code it is served with.
func HTTPStatus(err error) int {
	fe, ok := funds.AsError(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch fe.Kind {
	case funds.KindValidation:
		return http.StatusUnprocessableEntity
	case funds.KindLifecycle:
		return http.StatusConflict
	case funds.KindAuthorization:
		return http.StatusForbidden
	case funds.KindNotFound:
		return http.StatusNotFound
	case funds.KindSettlement:
		switch fe.Code {
		case funds.CodeLedgerUnavailable:
			return http.StatusServiceUnavailable
		case funds.CodeRecordNotPending, funds.CodeInvalidCreditedAmount:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}
