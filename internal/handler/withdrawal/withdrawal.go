package withdrawal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dwarvesf/funds-backend/internal/controller"
	"github.com/dwarvesf/funds-backend/internal/funds"
	"github.com/dwarvesf/funds-backend/internal/handler/request"
	"github.com/dwarvesf/funds-backend/internal/middleware"
	"github.com/dwarvesf/funds-backend/internal/model"
	"github.com/dwarvesf/funds-backend/internal/utils/logger"
	"github.com/dwarvesf/funds-backend/internal/view"
)

type SubmitRequest struct {
	PlatformID     uint   `json:"platform_id" validate:"required"`
	Amount         string `json:"amount" validate:"required,numeric"`
	AccountDetails string `json:"account_details" validate:"max=1000"`
	Message        string `json:"message" validate:"max=1000"`
}

type AdjudicateRequest struct {
	Notes string `json:"notes" validate:"max=1000"`
}

type ListRequest struct {
	UserID     uint   `form:"user_id"`
	PlatformID uint   `form:"platform_id"`
	Status     string `form:"status" validate:"omitempty,oneof=pending approved rejected"`
	Limit      int    `form:"limit" validate:"gte=0"`
	Offset     int    `form:"offset" validate:"gte=0"`
}

type handler struct {
	controller controller.IController
	logger     *logger.Logger
}

func New(controller controller.IController, logger *logger.Logger) IHandler {
	return &handler{
		controller: controller,
		logger:     logger,
	}
}

// Submit godoc
// @Summary Submit a withdrawal request
// @Description Validates the amount against the platform limits and the caller's available balance, then stores a pending request
// @id submitWithdrawal
// @Tags Withdrawal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitRequest true "Withdrawal request"
// @Success 201 {object} model.WithdrawalRequest
// @Failure 400 {object} view.ErrorResponse
// @Failure 422 {object} view.ErrorResponse
// @Router /withdrawals [post]
func (h *handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := request.Bind(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}
	amount, err := request.Decimal("amount", req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	created, err := h.controller.SubmitWithdrawal(c.Request.Context(), middleware.ActorFrom(c), controller.WithdrawalSubmission{
		PlatformID:     req.PlatformID,
		Amount:         amount,
		AccountDetails: req.AccountDetails,
		Message:        req.Message,
	})
	if err != nil {
		h.logger.Error("[Submit][SubmitWithdrawal]", map[string]string{
			"error": err.Error(),
		})
		view.Fail(c, err, req, "")
		return
	}

	c.JSON(http.StatusCreated, view.CreateResponse(created, nil, nil, ""))
}

// Get godoc
// @Summary Get a withdrawal request
// @id getWithdrawal
// @Tags Withdrawal
// @Produce json
// @Security BearerAuth
// @Param id path int true "Withdrawal ID"
// @Success 200 {object} model.WithdrawalRequest
// @Failure 403 {object} view.ErrorResponse
// @Failure 404 {object} view.ErrorResponse
// @Router /withdrawals/{id} [get]
func (h *handler) Get(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}

	found, err := h.controller.GetWithdrawal(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		view.Fail(c, err, nil, "")
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(found, nil, nil, ""))
}

// List godoc
// @Summary List withdrawal requests
// @Description Users see their own requests; admins may filter by user, platform and status
// @id listWithdrawals
// @Tags Withdrawal
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, approved or rejected"
// @Param platform_id query int false "Platform ID"
// @Param user_id query int false "User ID (admin only)"
// @Param limit query int false "Page size, default 20, max 100"
// @Param offset query int false "Offset"
// @Success 200 {object} controller.Page[model.WithdrawalRequest]
// @Router /withdrawals [get]
func (h *handler) List(c *gin.Context) {
	var req ListRequest
	if err := request.BindQuery(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
		return
	}

	page, err := h.controller.ListWithdrawals(c.Request.Context(), middleware.ActorFrom(c), controller.ListQuery{
		UserID:     req.UserID,
		PlatformID: req.PlatformID,
		Status:     model.RequestStatus(req.Status),
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		h.logger.Error("[List][ListWithdrawals]", map[string]string{
			"error": err.Error(),
		})
		view.Fail(c, err, req, "failed to list withdrawals")
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(page, nil, nil, ""))
}

// Cancel godoc
// @Summary Cancel a pending withdrawal request
// @id cancelWithdrawal
// @Tags Withdrawal
// @Produce json
// @Security BearerAuth
// @Param id path int true "Withdrawal ID"
// @Success 200 {object} view.MessageResponse
// @Failure 409 {object} view.ErrorResponse
// @Router /withdrawals/{id} [delete]
func (h *handler) Cancel(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}

	if err := h.controller.CancelWithdrawal(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		view.Fail(c, err, nil, "")
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse("withdrawal cancelled", nil, nil, ""))
}

// Approve godoc
// @Summary Approve a withdrawal request
// @Description Debits amount plus fee from the owner's balance
// @id approveWithdrawal
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Withdrawal ID"
// @Param request body AdjudicateRequest false "Notes"
// @Success 200 {object} model.WithdrawalRequest
// @Failure 409 {object} view.ErrorResponse
// @Failure 503 {object} view.ErrorResponse
// @Router /admin/withdrawals/{id}/approve [post]
func (h *handler) Approve(c *gin.Context) {
	h.adjudicate(c, funds.ActionApprove)
}

// Reject godoc
// @Summary Reject a withdrawal request
// @Description A non-empty reason is required
// @id rejectWithdrawal
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Withdrawal ID"
// @Param request body AdjudicateRequest true "Reason"
// @Success 200 {object} model.WithdrawalRequest
// @Failure 409 {object} view.ErrorResponse
// @Router /admin/withdrawals/{id}/reject [post]
func (h *handler) Reject(c *gin.Context) {
	h.adjudicate(c, funds.ActionReject)
}

func (h *handler) adjudicate(c *gin.Context, action funds.Action) {
	id, err := request.ID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, nil, "invalid id"))
		return
	}

	var req AdjudicateRequest
	if c.Request.ContentLength != 0 {
		if err := request.Bind(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, view.CreateResponse[any](nil, err, req, "invalid request"))
			return
		}
	}

	settled, err := h.controller.AdjudicateWithdrawal(c.Request.Context(), middleware.ActorFrom(c), id, controller.AdjudicationInput{
		Action: action,
		Notes:  req.Notes,
	})
	if err != nil {
		view.Fail(c, err, req, "")
		return
	}

	c.JSON(http.StatusOK, view.CreateResponse(settled, nil, nil, ""))
}
